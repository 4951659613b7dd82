package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
)

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func orderModelToEntity(m *model.Order) *entity.Order {
	order := &entity.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		TotalAmount:     m.TotalAmount,
		CashbackEarned:  m.CashbackEarned,
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		PickupLocation:  m.PickupLocation,
		DeliveryType:    entity.DeliveryType(m.DeliveryType),
		DeliveryCity:    m.DeliveryCity,
		DeliveryAddress: m.DeliveryAddress,
		DeliveryPrice:   m.DeliveryPrice,
		Status:          entity.OrderStatus(m.Status),
		CreatedAt:       m.CreatedAt,
	}
	if m.IdempotencyKey != nil {
		order.IdempotencyKey = *m.IdempotencyKey
	}
	return order
}

// Create inserts a new order row. The (user, idempotency key) pair is unique,
// so a concurrent retry of the same attempt surfaces as ErrDuplicateOrder.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := model.Order{
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		CashbackEarned:  order.CashbackEarned,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		PickupLocation:  order.PickupLocation,
		DeliveryType:    string(order.DeliveryType),
		DeliveryCity:    order.DeliveryCity,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryPrice:   order.DeliveryPrice,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
	}
	if order.IdempotencyKey != "" {
		key := order.IdempotencyKey
		orderModel.IdempotencyKey = &key
	}

	result := r.db.WithContext(ctx).Create(&orderModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate order idempotency key", map[string]any{
				"user_id":         order.UserID,
				"idempotency_key": order.IdempotencyKey,
			})
			return errs.ErrDuplicateOrder
		}
		r.logger.Error("Database error when creating order", map[string]any{
			"user_id": order.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	order.ID = orderModel.ID

	r.logger.Info("Order created", map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.FormattedTotal(),
	})
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uint64) (*entity.Order, error) {
	var orderModel model.Order
	result := r.db.WithContext(ctx).First(&orderModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return orderModelToEntity(&orderModel), nil
}

// GetByIdempotencyKey retrieves a previously committed order for a retry of
// the same client attempt. Scoped to the owning user: another user's key is
// not a replay.
func (r *OrderRepository) GetByIdempotencyKey(ctx context.Context, userID uint64, key string) (*entity.Order, error) {
	var orderModel model.Order
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&orderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return orderModelToEntity(&orderModel), nil
}

// ListByUser returns the user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Order, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orderModels []model.Order
	if err := query.Find(&orderModels).Error; err != nil {
		r.logger.Error("Database error when listing orders", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderModelToEntity(&orderModels[i]))
	}
	return orders, nil
}

// UpdateStatus persists an externally driven status transition. The update is
// conditional on the expected prior status, so a concurrent transition that
// got there first leaves zero rows affected instead of being overwritten.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint64, from, to entity.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		// Missing row and lost race look the same to the conditional update
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		if count == 0 {
			return errs.ErrOrderNotFound
		}
		return fmt.Errorf("%w: order %d is no longer %s", errs.ErrValidation, id, from)
	}

	r.logger.Info("Order status updated", map[string]any{
		"order_id": id,
		"status":   string(to),
	})
	return nil
}
