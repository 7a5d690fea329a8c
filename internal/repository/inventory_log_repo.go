package repository

import (
	"go-inventory-api/internal/model"

	"gorm.io/gorm"
)

type InventoryLogRepository interface {
	Create(entry *model.InventoryLog) error
	FindByProductID(productID uint) ([]model.InventoryLog, error)
}

type inventoryLogRepo struct {
	db *gorm.DB
}

func NewInventoryLogRepo(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db}
}

func (r *inventoryLogRepo) Create(entry *model.InventoryLog) error {
	return r.db.Create(entry).Error
}

// FindByProductID returns the audit trail newest-first.
func (r *inventoryLogRepo) FindByProductID(productID uint) ([]model.InventoryLog, error) {
	var entries []model.InventoryLog
	err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}
