package model

import "time"

const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// StatusFor derives the display status from a stock count. Status is
// never taken from the client; every mutation path recomputes it here.
func StatusFor(stock int) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Unit      string    `gorm:"type:varchar(20)" json:"unit" validate:"required"`
	Category  string    `gorm:"type:varchar(100)" json:"category" validate:"required"`
	Brand     string    `gorm:"type:varchar(100)" json:"brand" validate:"required"`
	Stock     int       `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Status    string    `gorm:"type:varchar(20)" json:"status"`
	Image     string    `gorm:"type:varchar(512)" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
