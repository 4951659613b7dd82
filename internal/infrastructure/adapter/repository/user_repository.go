package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// userModelToEntity converts a user model to an entity
func userModelToEntity(m *model.User) *entity.User {
	user := &entity.User{
		ID:           m.ID,
		TelegramID:   m.TelegramID,
		Username:     m.Username,
		FirstName:    m.FirstName,
		IsVerified:   m.IsVerified,
		ReferralCode: m.ReferralCode,
		InvitedBy:    m.InvitedBy,
		TotalSpent:   m.TotalSpent,
		TotalOrders:  m.TotalOrders,
		TotalInvited: m.TotalInvited,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	user.SetBalance(m.Balance)
	return user
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return userModelToEntity(&userModel), nil
}

// GetByIDForUpdate retrieves a user by ID holding a row-level write lock.
// Must run inside a unit-of-work transaction; the lock serializes concurrent
// finalizations for the same account.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	r.logger.Debug("Locking user row", map[string]any{
		"user_id": id,
	})

	query := r.db.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single-writer mode serializes anyway
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var userModel model.User
	result := query.First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user", result.Error, id)
	}
	return userModelToEntity(&userModel), nil
}

// GetByTelegramID retrieves a user by the stable external identity
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("getting user by telegram id", result.Error, 0)
	}
	return userModelToEntity(&userModel), nil
}

// GetByReferralCode resolves a referral code to its owning account
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Where("referral_code = ?", code).
		First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("getting user by referral code", result.Error, 0)
	}
	return userModelToEntity(&userModel), nil
}

// GetByUsername resolves a Telegram username to an account
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.handleDatabaseError("getting user by username", result.Error, 0)
	}
	return userModelToEntity(&userModel), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"telegram_id": user.TelegramID,
	})

	userModel := model.User{
		TelegramID:   user.TelegramID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		Balance:      user.Balance(),
		IsVerified:   user.IsVerified,
		ReferralCode: user.ReferralCode,
		InvitedBy:    user.InvitedBy,
		TotalSpent:   user.TotalSpent,
		TotalOrders:  user.TotalOrders,
		TotalInvited: user.TotalInvited,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, 0)
	}

	// Propagate the generated primary key back to the entity
	user.ID = userModel.ID

	r.logger.Info("User created", map[string]any{
		"user_id":     user.ID,
		"telegram_id": user.TelegramID,
	})
	return nil
}

// UpdateProfile refreshes mutable identity fields (name, username)
func (r *UserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":   user.Username,
			"first_name": user.FirstName,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating user profile", result.Error, user.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// SetVerified flips the ordering gate for an account
func (r *UserRepository) SetVerified(ctx context.Context, id uint64, verified bool) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified": verified,
			"updated_at":  r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("setting verification", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Info("User verification updated", map[string]any{
		"user_id":  id,
		"verified": verified,
	})
	return nil
}

// Debit decrements the balance as one conditional update. The WHERE clause
// re-checks the persisted balance, so a concurrent writer can never push the
// account negative no matter what the caller read earlier.
func (r *UserRepository) Debit(ctx context.Context, id uint64, amountKopecks int64) error {
	if amountKopecks < 0 {
		return errs.ErrNegativeAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND balance >= ?", id, amountKopecks).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amountKopecks),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("debiting user", result.Error, id)
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing row from a short balance
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.User{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return r.handleDatabaseError("debiting user", err, id)
		}
		if count == 0 {
			return errs.ErrUserNotFound
		}

		r.logger.Warn("Debit rejected, insufficient balance", map[string]any{
			"user_id": id,
			"amount":  entity.FormatAmount(amountKopecks),
		})
		return errs.ErrInsufficientFunds
	}

	r.logger.Debug("User debited", map[string]any{
		"user_id": id,
		"amount":  entity.FormatAmount(amountKopecks),
	})
	return nil
}

// CreditOrder applies the post-order mutations in one update
func (r *UserRepository) CreditOrder(ctx context.Context, id uint64, cashbackKopecks, orderTotalKopecks int64) error {
	if cashbackKopecks < 0 || orderTotalKopecks < 0 {
		return errs.ErrNegativeAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance + ?", cashbackKopecks),
			"total_spent":  gorm.Expr("total_spent + ?", orderTotalKopecks),
			"total_orders": gorm.Expr("total_orders + 1"),
			"updated_at":   r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("crediting order", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Debug("Order credited to user", map[string]any{
		"user_id":  id,
		"cashback": entity.FormatAmount(cashbackKopecks),
		"total":    entity.FormatAmount(orderTotalKopecks),
	})
	return nil
}

// CreditReferral applies the referrer-side mutations in one update
func (r *UserRepository) CreditReferral(ctx context.Context, id uint64, amountKopecks int64) error {
	if amountKopecks < 0 {
		return errs.ErrNegativeAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance + ?", amountKopecks),
			"total_invited": gorm.Expr("total_invited + 1"),
			"updated_at":    r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("crediting referral bonus", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Info("Referral bonus credited", map[string]any{
		"user_id": id,
		"amount":  entity.FormatAmount(amountKopecks),
	})
	return nil
}
