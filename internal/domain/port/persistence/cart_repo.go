package persistence

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// CartLine couples a cart item with its live catalog product. Pricing always
// goes through the product side, never a price cached on the item.
type CartLine struct {
	Item    *entity.CartItem
	Product *entity.Product
}

// CartRepository defines methods to interact with cart contents
type CartRepository interface {
	// ListByUser returns all cart lines for a user joined with live product data
	ListByUser(ctx context.Context, userID uint64) ([]CartLine, error)

	// AddItem inserts a cart line or bumps the quantity when the product is
	// already in the cart
	AddItem(ctx context.Context, userID, productID uint64, quantity uint32) error

	// SetQuantity updates the quantity of an existing line; a zero quantity
	// removes the line
	//
	// Possible errors:
	// - ErrCartItemNotFound: If the line doesn't exist
	SetQuantity(ctx context.Context, userID, productID uint64, quantity uint32) error

	// RemoveItem deletes a single cart line
	RemoveItem(ctx context.Context, userID, productID uint64) error

	// ClearForUser deletes all cart lines for a user. Part of the
	// finalization transaction.
	ClearForUser(ctx context.Context, userID uint64) error
}
