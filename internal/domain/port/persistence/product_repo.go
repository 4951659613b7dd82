package persistence

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// ProductRepository exposes the catalog reads needed for cart pricing
type ProductRepository interface {
	// GetByID retrieves a product regardless of active status
	//
	// Possible errors:
	// - ErrProductNotFound: If the product doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)

	// GetActiveByID retrieves a product only if it is active
	//
	// Possible errors:
	// - ErrProductNotFound: If the product doesn't exist
	// - ErrProductUnavailable: If the product is deactivated
	GetActiveByID(ctx context.Context, id uint64) (*entity.Product, error)
}
