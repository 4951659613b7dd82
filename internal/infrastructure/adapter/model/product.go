package model

import (
	"time"
)

// Product represents the database model for catalog products
type Product struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null;size:255"`
	Price     int64  `gorm:"not null"` // Kopecks
	IsActive  bool   `gorm:"not null;index"` // no column default: gorm drops IsActive=false on insert when one is set
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
