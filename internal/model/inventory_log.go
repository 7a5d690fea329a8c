package model

import "time"

// InventoryLog is an append-only record of a stock change on a product.
// ProductID is a weak reference: rows are kept when the product is deleted.
type InventoryLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	ChangedBy string    `gorm:"type:varchar(255)" json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}
