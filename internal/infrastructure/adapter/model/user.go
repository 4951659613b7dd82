package model

import (
	"time"
)

// User represents the database model for shop accounts
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	TelegramID   int64  `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"size:255"`
	FirstName    string `gorm:"size:255"`
	Balance      int64  `gorm:"not null;default:0"` // Balance in kopecks
	IsVerified   bool   `gorm:"not null;default:false;index"`
	ReferralCode string `gorm:"uniqueIndex;size:64"`
	InvitedBy    *uint64 `gorm:"index"`
	TotalSpent   int64  `gorm:"not null;default:0"` // Kopecks
	TotalOrders  uint64 `gorm:"not null;default:0"`
	TotalInvited uint64 `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
