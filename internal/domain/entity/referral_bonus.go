package entity

import "time"

// ReferralBonus is an append-only audit row recording exactly one bonus grant
// per successful referred signup. Never updated or deleted.
type ReferralBonus struct {
	ID         uint64
	ReferrerID uint64
	ReferredID uint64
	Amount     int64 // kopecks
	CreatedAt  time.Time
}
