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

// LocationRepository implements persistence.LocationRepository using GORM
type LocationRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewLocationRepository creates a new LocationRepository instance
func NewLocationRepository(db *gorm.DB, logger coreport.Logger) *LocationRepository {
	return &LocationRepository{db: db, logger: logger}
}

func locationModelToEntity(m *model.DeliveryLocation) *entity.DeliveryLocation {
	return &entity.DeliveryLocation{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		City:          m.City,
		LocationType:  entity.LocationType(m.LocationType),
		DeliveryPrice: m.DeliveryPrice,
		IsActive:      m.IsActive,
	}
}

// GetPickupByID retrieves an active pickup point
func (r *LocationRepository) GetPickupByID(ctx context.Context, id uint64) (*entity.DeliveryLocation, error) {
	var locationModel model.DeliveryLocation
	result := r.db.WithContext(ctx).
		Where("id = ? AND location_type = ? AND is_active = ?", id, string(entity.LocationPickup), true).
		First(&locationModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return locationModelToEntity(&locationModel), nil
}

// GetDeliveryForCity resolves the courier delivery zone configured for a city
func (r *LocationRepository) GetDeliveryForCity(ctx context.Context, city string) (*entity.DeliveryLocation, error) {
	var locationModel model.DeliveryLocation
	result := r.db.WithContext(ctx).
		Where("city = ? AND location_type = ? AND is_active = ?", city, string(entity.LocationDelivery), true).
		First(&locationModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("No delivery zone for city", map[string]any{
				"city": city,
			})
			return nil, errs.ErrDeliveryUnavailable
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return locationModelToEntity(&locationModel), nil
}

// ListCities returns the distinct cities with configured courier delivery
func (r *LocationRepository) ListCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).Model(&model.DeliveryLocation{}).
		Where("location_type = ? AND is_active = ?", string(entity.LocationDelivery), true).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return cities, nil
}

// ListByType returns active locations of the given type, optionally filtered
// by city
func (r *LocationRepository) ListByType(ctx context.Context, locationType entity.LocationType, city string) ([]*entity.DeliveryLocation, error) {
	query := r.db.WithContext(ctx).
		Where("location_type = ? AND is_active = ?", string(locationType), true)
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var locationModels []model.DeliveryLocation
	if err := query.Order("city ASC, name ASC").Find(&locationModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	locations := make([]*entity.DeliveryLocation, 0, len(locationModels))
	for i := range locationModels {
		locations = append(locations, locationModelToEntity(&locationModels[i]))
	}
	return locations, nil
}
