package persistence

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// ReferralBonusRepository manages the append-only referral bonus ledger
type ReferralBonusRepository interface {
	// Create inserts the audit row for a grant. The (referrer, referred) pair
	// is unique; a second insert for the same pair fails.
	//
	// Possible errors:
	// - ErrDuplicateReferralBonus: If a bonus for this pair already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, bonus *entity.ReferralBonus) error

	// ExistsForPair checks whether a bonus was already granted for the pair
	ExistsForPair(ctx context.Context, referrerID, referredID uint64) (bool, error)
}
