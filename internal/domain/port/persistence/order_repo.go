package persistence

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// OrderRepository defines methods to interact with persisted orders
type OrderRepository interface {
	// Create inserts a new order row
	//
	// Possible errors:
	// - ErrDuplicateOrder: If the idempotency key was already used
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, order *entity.Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id uint64) (*entity.Order, error)

	// GetByIdempotencyKey retrieves a previously committed order for a retry
	// of the same client attempt. The lookup is scoped to the owning user so
	// one user's key never resolves to another user's order. Returns
	// ErrOrderNotFound when the user has no order under the key.
	GetByIdempotencyKey(ctx context.Context, userID uint64, key string) (*entity.Order, error)

	// ListByUser returns the user's orders, newest first
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Order, error)

	// UpdateStatus persists an externally driven status transition. The write
	// is conditional on the expected prior status, so two concurrent
	// transitions cannot both win; the loser gets ErrValidation. Returns
	// ErrOrderNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, id uint64, from, to entity.OrderStatus) error
}
