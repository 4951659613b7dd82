package model

import (
	"time"
)

// ReferralBonus represents the append-only audit ledger for referral grants.
// The unique pair index is the authoritative double-grant guard.
type ReferralBonus struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ReferrerID uint64 `gorm:"not null;index;uniqueIndex:idx_referral_pair"`
	ReferredID uint64 `gorm:"not null;index;uniqueIndex:idx_referral_pair"`
	Amount     int64  `gorm:"not null"` // Kopecks
	CreatedAt  time.Time `gorm:"not null"`

	Referrer User `gorm:"foreignKey:ReferrerID;references:ID"`
	Referred User `gorm:"foreignKey:ReferredID;references:ID"`
}

// TableName specifies the table name for ReferralBonus
func (ReferralBonus) TableName() string {
	return "referral_bonuses"
}
