package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across multiple
// repositories within one database transaction, so the cart-to-order
// transition and its balance mutations commit or roll back together
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetOrderRepository returns an order repository bound to the current transaction
	GetOrderRepository(ctx context.Context) OrderRepository

	// GetCartRepository returns a cart repository bound to the current transaction
	GetCartRepository(ctx context.Context) CartRepository

	// GetProductRepository returns a product repository bound to the current transaction
	GetProductRepository(ctx context.Context) ProductRepository

	// GetLocationRepository returns a location repository bound to the current transaction
	GetLocationRepository(ctx context.Context) LocationRepository

	// GetReferralBonusRepository returns a referral bonus repository bound to
	// the current transaction
	GetReferralBonusRepository(ctx context.Context) ReferralBonusRepository
}
