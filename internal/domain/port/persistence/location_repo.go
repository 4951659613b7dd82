package persistence

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// LocationRepository exposes the delivery catalog reads used during
// finalization and by the location listing endpoints
type LocationRepository interface {
	// GetPickupByID retrieves an active pickup point
	//
	// Possible errors:
	// - ErrNotFound: If no such pickup point exists
	GetPickupByID(ctx context.Context, id uint64) (*entity.DeliveryLocation, error)

	// GetDeliveryForCity resolves the courier delivery zone configured for a
	// city
	//
	// Possible errors:
	// - ErrDeliveryUnavailable: If no delivery zone is configured for the city
	GetDeliveryForCity(ctx context.Context, city string) (*entity.DeliveryLocation, error)

	// ListCities returns the distinct cities with configured courier delivery
	ListCities(ctx context.Context) ([]string, error)

	// ListByType returns active locations of the given type, optionally
	// filtered by city
	ListByType(ctx context.Context, locationType entity.LocationType, city string) ([]*entity.DeliveryLocation, error)
}
