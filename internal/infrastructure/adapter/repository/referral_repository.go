package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
)

// ReferralBonusRepository implements persistence.ReferralBonusRepository
// using GORM
type ReferralBonusRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewReferralBonusRepository creates a new ReferralBonusRepository instance
func NewReferralBonusRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ReferralBonusRepository {
	return &ReferralBonusRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create inserts the audit row for a grant. The unique (referrer, referred)
// index is the authoritative double-grant guard; a violation maps to
// ErrDuplicateReferralBonus.
func (r *ReferralBonusRepository) Create(ctx context.Context, bonus *entity.ReferralBonus) error {
	bonusModel := model.ReferralBonus{
		ReferrerID: bonus.ReferrerID,
		ReferredID: bonus.ReferredID,
		Amount:     bonus.Amount,
		CreatedAt:  bonus.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&bonusModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Referral bonus already granted for pair", map[string]any{
				"referrer_id": bonus.ReferrerID,
				"referred_id": bonus.ReferredID,
			})
			return errs.ErrDuplicateReferralBonus
		}
		r.logger.Error("Database error when creating referral bonus", map[string]any{
			"referrer_id": bonus.ReferrerID,
			"referred_id": bonus.ReferredID,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	bonus.ID = bonusModel.ID
	return nil
}

// ExistsForPair checks whether a bonus was already granted for the pair
func (r *ReferralBonusRepository) ExistsForPair(ctx context.Context, referrerID, referredID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ReferralBonus{}).
		Where("referrer_id = ? AND referred_id = ?", referrerID, referredID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return count > 0, nil
}
