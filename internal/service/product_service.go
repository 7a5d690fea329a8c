package service

import (
	"errors"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/logger"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("Product not found")
	ErrNameInUse       = errors.New("Name already in use")
)

type ProductService interface {
	ListProducts(opts repository.ListOptions) ([]model.Product, int64, error)
	SearchProducts(name string) ([]model.Product, error)
	CreateProduct(req *model.Product, actor string) error
	UpdateProduct(id uint, req *model.Product, actor string) (*model.Product, error)
	DeleteProduct(id uint, actor string) error
	GetHistory(productID uint) ([]model.InventoryLog, error)
	ExportCSV() (string, error)
}

type productService struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	wsHub       *ws.Hub
	log         zerolog.Logger
}

func NewProductService(pRepo repository.ProductRepository, lRepo repository.InventoryLogRepository, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		logRepo:     lRepo,
		wsHub:       hub,
		log:         logger.New("product"),
	}
}

func (s *productService) ListProducts(opts repository.ListOptions) ([]model.Product, int64, error) {
	return s.productRepo.List(opts)
}

func (s *productService) SearchProducts(name string) ([]model.Product, error) {
	return s.productRepo.SearchByName(name)
}

func (s *productService) CreateProduct(req *model.Product, actor string) error {
	// Name uniqueness is case-insensitive
	existing, err := s.productRepo.FindByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return ErrNameInUse
	}

	// Status is always derived server-side, never taken from the body
	req.Status = model.StatusFor(req.Stock)

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.BroadcastEvent("product_created", map[string]interface{}{
		"product": map[string]interface{}{
			"id":     req.ID,
			"name":   req.Name,
			"stock":  req.Stock,
			"status": req.Status,
		},
		"actor": actor,
	})

	return nil
}

func (s *productService) UpdateProduct(id uint, req *model.Product, actor string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Reject names held by a different product
	conflict, err := s.productRepo.FindByNameExcept(req.Name, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrNameInUse
	}

	oldStock := existing.Stock

	existing.Name = req.Name
	existing.Unit = req.Unit
	existing.Category = req.Category
	existing.Brand = req.Brand
	existing.Stock = req.Stock
	existing.Status = model.StatusFor(req.Stock)
	if req.Image != "" {
		existing.Image = req.Image
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	if oldStock != existing.Stock {
		// Best-effort audit append: a log failure never blocks the update.
		go s.logStockChange(existing.ID, oldStock, existing.Stock, actor)
	}

	go s.wsHub.BroadcastEvent("product_updated", map[string]interface{}{
		"product": map[string]interface{}{
			"id":        existing.ID,
			"name":      existing.Name,
			"old_stock": oldStock,
			"new_stock": existing.Stock,
			"status":    existing.Status,
		},
		"actor": actor,
	})

	return existing, nil
}

func (s *productService) logStockChange(productID uint, oldStock, newStock int, actor string) {
	entry := &model.InventoryLog{
		ProductID: productID,
		OldStock:  oldStock,
		NewStock:  newStock,
		ChangedBy: actor,
	}
	if err := s.logRepo.Create(entry); err != nil {
		s.log.Warn().Err(err).Uint("product_id", productID).Msg("inventory log write failed")
	}
}

func (s *productService) DeleteProduct(id uint, actor string) error {
	affected, err := s.productRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	go s.wsHub.BroadcastEvent("product_deleted", map[string]interface{}{
		"product_id": id,
		"actor":      actor,
	})

	return nil
}

func (s *productService) GetHistory(productID uint) ([]model.InventoryLog, error) {
	return s.logRepo.FindByProductID(productID)
}

func (s *productService) ExportCSV() (string, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return "", err
	}
	return productsToCSV(products), nil
}
