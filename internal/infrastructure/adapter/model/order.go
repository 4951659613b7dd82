package model

import (
	"time"
)

// Order represents the database model for finalized orders. The idempotency
// key is unique per user, not globally: two users may send the same key and
// each gets their own order. The column is nullable so orders created without
// a key never collide on the index.
type Order struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement"`
	UserID          uint64  `gorm:"not null;index;uniqueIndex:idx_orders_user_idem_key"`
	IdempotencyKey  *string `gorm:"size:64;uniqueIndex:idx_orders_user_idem_key"`
	TotalAmount     int64   `gorm:"not null"` // Kopecks
	CashbackEarned  int64   `gorm:"not null"` // Kopecks
	CustomerName    string  `gorm:"size:255"`
	CustomerPhone   string  `gorm:"size:64"`
	PickupLocation  string  `gorm:"size:512"`
	DeliveryType    string  `gorm:"not null;size:32;default:pickup"`
	DeliveryCity    string  `gorm:"size:255"`
	DeliveryAddress string  `gorm:"size:512"`
	DeliveryPrice   int64   `gorm:"not null;default:0"` // Kopecks
	Status          string  `gorm:"not null;size:32;default:pending"`
	CreatedAt       time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
