package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/identity"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
	"github.com/podmarket/shop-backend/internal/domain/usecase/ledger"
)

// DefaultReferralBonusKopecks is the fixed bonus credited to a referrer when
// an invitee's account is first created via their code (100.00)
const DefaultReferralBonusKopecks int64 = 10_000

// Service handles account bootstrap and profile reads. Accounts are created
// on first contact and never hard-deleted.
type Service struct {
	uow                  persistence.UnitOfWork
	accounts             *ledger.Ledger
	timeProvider         coreport.TimeProvider
	logger               coreport.Logger
	referralBonusKopecks int64
}

// NewService creates the user service. A non-positive bonus amount falls back
// to the default.
func NewService(
	uow persistence.UnitOfWork,
	accounts *ledger.Ledger,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	referralBonusKopecks int64,
) *Service {
	if referralBonusKopecks <= 0 {
		referralBonusKopecks = DefaultReferralBonusKopecks
	}
	return &Service{
		uow:                  uow,
		accounts:             accounts,
		timeProvider:         timeProvider,
		logger:               logger,
		referralBonusKopecks: referralBonusKopecks,
	}
}

// GetOrCreate resolves a Telegram identity to an account, creating one on
// first contact. A valid referral code on creation records the inviter and
// grants the one-time bonus atomically with the account insert; an unknown
// code is not an error for the new user. Retried signups cannot double-credit:
// the grant is guarded by the unique (referrer, referred) pair.
func (s *Service) GetOrCreate(ctx context.Context, tgUser *identity.TelegramUser, referralCode string) (*entity.User, error) {
	if tgUser == nil || tgUser.ID == 0 {
		return nil, fmt.Errorf("%w: telegram identity is required", errs.ErrValidation)
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to roll back registration transaction", map[string]any{
					"telegram_id": tgUser.ID,
					"error":       rbErr.Error(),
				})
			}
		}
	}()

	userRepo := s.uow.GetUserRepository(txCtx)

	existing, err := userRepo.GetByTelegramID(txCtx, tgUser.ID)
	if err == nil {
		existing.FirstName = tgUser.FirstName
		existing.Username = tgUser.Username
		if err := userRepo.UpdateProfile(txCtx, existing); err != nil {
			return nil, err
		}
		if err := s.uow.Commit(txCtx); err != nil {
			return nil, err
		}
		committed = true
		return existing, nil
	}
	if !errs.IsUserNotFoundError(err) {
		return nil, err
	}

	newUser, err := entity.NewUser(tgUser.ID, tgUser.Username, tgUser.FirstName, s.timeProvider)
	if err != nil {
		return nil, err
	}

	var referrer *entity.User
	if referralCode != "" {
		referrer, err = userRepo.GetByReferralCode(txCtx, referralCode)
		if err != nil {
			if !errs.IsUserNotFoundError(err) {
				return nil, err
			}
			// Unknown codes are ignored; signup proceeds without a bonus
			s.logger.Info("Referral code did not resolve to an account", map[string]any{
				"referral_code": referralCode,
			})
			referrer = nil
		}
	}
	if referrer != nil {
		referrerID := referrer.ID
		newUser.InvitedBy = &referrerID
	}

	if err := userRepo.Create(txCtx, newUser); err != nil {
		// Two concurrent first contacts for the same Telegram id: the loser
		// of the unique-index race reads the winner's row outside the aborted
		// transaction. The rollback must happen before that read: with the
		// sqlite driver the pool holds a single connection, and the open
		// transaction would block the base-connection query forever.
		if errors.Is(err, errs.ErrDuplicateUser) {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				return nil, rbErr
			}
			return s.uow.GetUserRepository(ctx).GetByTelegramID(ctx, tgUser.ID)
		}
		return nil, err
	}

	if referrer != nil {
		err := s.accounts.CreditReferralBonus(txCtx, referrer.ID, newUser.ID, s.referralBonusKopecks)
		if err != nil {
			// A duplicate grant is rejected silently; anything else aborts
			// the signup so the audit trail stays consistent
			if !errs.IsDuplicateReferralBonusError(err) {
				return nil, err
			}
			s.logger.Warn("Referral bonus already granted for this pair", map[string]any{
				"referrer_id": referrer.ID,
				"referred_id": newUser.ID,
			})
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true

	s.logger.Info("User created", map[string]any{
		"user_id":     newUser.ID,
		"telegram_id": newUser.TelegramID,
		"invited_by":  newUser.InvitedBy,
	})
	return newUser, nil
}

// Lookup resolves an account by Telegram id or, failing that, by username.
// The admin tooling addresses accounts both ways.
func (s *Service) Lookup(ctx context.Context, telegramID int64, username string) (*entity.User, error) {
	userRepo := s.uow.GetUserRepository(ctx)
	if telegramID != 0 {
		return userRepo.GetByTelegramID(ctx, telegramID)
	}
	if username != "" {
		return userRepo.GetByUsername(ctx, username)
	}
	return nil, fmt.Errorf("%w: не указан ID или username пользователя", errs.ErrValidation)
}

// SetVerified flips the ordering gate for an account (admin action)
func (s *Service) SetVerified(ctx context.Context, telegramID int64, username string, verified bool) (*entity.User, error) {
	userRepo := s.uow.GetUserRepository(ctx)
	user, err := s.Lookup(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}
	if err := userRepo.SetVerified(ctx, user.ID, verified); err != nil {
		return nil, err
	}
	user.IsVerified = verified
	s.logger.Info("User verification updated", map[string]any{
		"user_id":  user.ID,
		"verified": verified,
	})
	return user, nil
}

// GetByTelegramID resolves an existing account without creating one
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	return s.uow.GetUserRepository(ctx).GetByTelegramID(ctx, telegramID)
}
