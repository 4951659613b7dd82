package model

import (
	"time"
)

// CartItem represents the database model for cart lines. One line per
// (user, product) pair.
type CartItem struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:idx_cart_user_product"`
	ProductID uint64 `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  uint32 `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`

	User    User    `gorm:"foreignKey:UserID;references:ID"`
	Product Product `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName specifies the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}
