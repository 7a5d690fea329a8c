package repository

import (
	"strings"

	"go-inventory-api/internal/model"

	"gorm.io/gorm"
)

// ListOptions configures a filtered, sorted, paginated product listing.
type ListOptions struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Search   string
	Category string
}

// allowedSort whitelists sortable columns; anything else falls back to id.
var allowedSort = map[string]string{
	"name":       "name",
	"category":   "category",
	"brand":      "brand",
	"stock":      "stock",
	"status":     "status",
	"created_at": "created_at",
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindByNameExcept(name string, excludeID uint) (*model.Product, error)
	SearchByName(name string) ([]model.Product, error)
	List(opts ListOptions) ([]model.Product, int64, error)
	Update(product *model.Product) error
	Delete(id uint) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName matches case-insensitively; name uniqueness is enforced
// application-side against this lookup.
func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "LOWER(name) = ?", strings.ToLower(name)).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByNameExcept(name string, excludeID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "LOWER(name) = ? AND id != ?", strings.ToLower(name), excludeID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) SearchByName(name string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").Find(&products).Error
	return products, err
}

// List returns one page of products plus the total count of matches.
// The count runs over the same filter predicate as the page query so
// pagination stays consistent with the filtered set.
func (r *productRepo) List(opts ListOptions) ([]model.Product, int64, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	query := r.db.Model(&model.Product{})
	if opts.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(opts.Search)+"%")
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := allowedSort[opts.Sort]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if strings.EqualFold(opts.Order, "desc") {
		direction = "DESC"
	}

	var products []model.Product
	err := query.
		Order(column + " " + direction).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete hard-deletes and reports rows affected so callers can 404 on
// unknown ids. Inventory logs are left in place.
func (r *productRepo) Delete(id uint) (int64, error) {
	res := r.db.Delete(&model.Product{}, id)
	return res.RowsAffected, res.Error
}
