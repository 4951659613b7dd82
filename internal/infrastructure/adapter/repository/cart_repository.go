package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
)

// CartRepository implements persistence.CartRepository using GORM
type CartRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCartRepository creates a new CartRepository instance
func NewCartRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CartRepository {
	return &CartRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// ListByUser returns all cart lines for a user joined with live product data.
// The product side may be inactive; callers decide how to treat that.
func (r *CartRepository) ListByUser(ctx context.Context, userID uint64) ([]persistence.CartLine, error) {
	var itemModels []model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&itemModels).Error
	if err != nil {
		r.logger.Error("Database error when listing cart", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	lines := make([]persistence.CartLine, 0, len(itemModels))
	for i := range itemModels {
		m := &itemModels[i]
		line := persistence.CartLine{
			Item: &entity.CartItem{
				ID:        m.ID,
				UserID:    m.UserID,
				ProductID: m.ProductID,
				Quantity:  m.Quantity,
				CreatedAt: m.CreatedAt,
			},
		}
		if m.Product.ID != 0 {
			line.Product = &entity.Product{
				ID:        m.Product.ID,
				Name:      m.Product.Name,
				Price:     m.Product.Price,
				IsActive:  m.Product.IsActive,
				CreatedAt: m.Product.CreatedAt,
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddItem inserts a cart line or bumps the quantity when the product is
// already in the cart. The (user, product) unique index drives the upsert.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID uint64, quantity uint32) error {
	if quantity == 0 {
		return fmt.Errorf("%w: quantity must be positive", errs.ErrValidation)
	}

	itemModel := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: r.timeProvider.Now(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", quantity),
			}),
		}).
		Create(&itemModel).Error
	if err != nil {
		r.logger.Error("Database error when adding cart item", map[string]any{
			"user_id":    userID,
			"product_id": productID,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	r.logger.Debug("Cart item added", map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

// SetQuantity updates the quantity of an existing line; a zero quantity
// removes the line
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID uint64, quantity uint32) error {
	if quantity == 0 {
		return r.RemoveItem(ctx, userID, productID)
	}

	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrCartItemNotFound
	}
	return nil
}

// RemoveItem deletes a single cart line
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrCartItemNotFound
	}
	return nil
}

// ClearForUser deletes all cart lines for a user. Runs inside the
// finalization transaction so the cart empties only when the order commits.
func (r *CartRepository) ClearForUser(ctx context.Context, userID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
	if err != nil {
		r.logger.Error("Database error when clearing cart", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	r.logger.Debug("Cart cleared", map[string]any{
		"user_id": userID,
	})
	return nil
}
