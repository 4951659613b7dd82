package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
)

// Ledger owns every balance mutation in the system. All methods resolve their
// repositories through the unit of work from the caller's context, so when the
// caller runs inside a transaction the mutations join it; credits and debits
// are single conditional updates in the repository and are never computed from
// stale application state.
type Ledger struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewLedger creates a new account ledger
func NewLedger(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Ledger {
	return &Ledger{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Debit atomically decrements a user's balance. Fails with a detailed
// insufficient-funds error, leaving the row untouched, when the persisted
// balance cannot cover the amount.
func (l *Ledger) Debit(ctx context.Context, userID uint64, amountKopecks int64) error {
	if amountKopecks < 0 {
		return errs.ErrNegativeAmount
	}
	userRepo := l.uow.GetUserRepository(ctx)

	err := userRepo.Debit(ctx, userID, amountKopecks)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientFunds) {
			user, getErr := userRepo.GetByID(ctx, userID)
			if getErr != nil {
				return errs.NewInsufficientFundsError(userID, entity.FormatAmount(amountKopecks), "unknown")
			}
			return errs.NewInsufficientFundsError(userID, entity.FormatAmount(amountKopecks), user.FormattedBalance())
		}
		return err
	}

	l.logger.Info("Balance debited", map[string]any{
		"user_id": userID,
		"amount":  entity.FormatAmount(amountKopecks),
	})
	return nil
}

// CreditOrder applies the post-order credits: the cashback on the balance plus
// the total-spent and order counters, as one update on the user row
func (l *Ledger) CreditOrder(ctx context.Context, userID uint64, cashbackKopecks, orderTotalKopecks int64) error {
	if cashbackKopecks < 0 || orderTotalKopecks < 0 {
		return errs.ErrNegativeAmount
	}
	userRepo := l.uow.GetUserRepository(ctx)

	if err := userRepo.CreditOrder(ctx, userID, cashbackKopecks, orderTotalKopecks); err != nil {
		return err
	}

	l.logger.Info("Order credited to account", map[string]any{
		"user_id":     userID,
		"cashback":    entity.FormatAmount(cashbackKopecks),
		"order_total": entity.FormatAmount(orderTotalKopecks),
	})
	return nil
}

// CreditReferralBonus grants the one-time bonus for a referred signup: the
// audit row and the referrer's balance/invite-counter update, in the caller's
// transaction. A bonus already recorded for the (referrer, referred) pair
// makes the grant fail with ErrDuplicateReferralBonus so retried signups can
// never double-credit.
func (l *Ledger) CreditReferralBonus(ctx context.Context, referrerID, referredID uint64, amountKopecks int64) error {
	if amountKopecks < 0 {
		return errs.ErrNegativeAmount
	}
	bonusRepo := l.uow.GetReferralBonusRepository(ctx)
	userRepo := l.uow.GetUserRepository(ctx)

	exists, err := bonusRepo.ExistsForPair(ctx, referrerID, referredID)
	if err != nil {
		return fmt.Errorf("failed to check referral bonus: %w", err)
	}
	if exists {
		return errs.NewDuplicateReferralBonusError(referrerID, referredID)
	}

	bonus := &entity.ReferralBonus{
		ReferrerID: referrerID,
		ReferredID: referredID,
		Amount:     amountKopecks,
		CreatedAt:  l.timeProvider.Now(),
	}
	if err := bonusRepo.Create(ctx, bonus); err != nil {
		// The unique (referrer, referred) index is the authoritative guard;
		// losing the race to it is the same duplicate condition.
		if errors.Is(err, errs.ErrDuplicateReferralBonus) {
			return errs.NewDuplicateReferralBonusError(referrerID, referredID)
		}
		return err
	}

	if err := userRepo.CreditReferral(ctx, referrerID, amountKopecks); err != nil {
		return err
	}

	l.logger.Info("Referral bonus credited", map[string]any{
		"referrer_id": referrerID,
		"referred_id": referredID,
		"amount":      entity.FormatAmount(amountKopecks),
	})
	return nil
}
