package entity

import (
	"fmt"
	"time"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

// CartItem is an ephemeral (user, product, quantity) line. It carries no
// price: prices are re-read from the catalog at finalization time.
type CartItem struct {
	ID        uint64
	UserID    uint64
	ProductID uint64
	Quantity  uint32
	CreatedAt time.Time
}

// NewCartItem creates a cart line with a positive quantity
func NewCartItem(userID, productID uint64, quantity uint32) (*CartItem, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrValidation)
	}
	if productID == 0 {
		return nil, fmt.Errorf("%w: product id is required", errs.ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", errs.ErrValidation)
	}
	return &CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}, nil
}
