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

// ProductRepository implements persistence.ProductRepository using GORM
type ProductRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

func productModelToEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// GetByID retrieves a product regardless of active status
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var productModel model.Product
	result := r.db.WithContext(ctx).First(&productModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProductNotFound
		}
		r.logger.Error("Database error when getting product", map[string]any{
			"product_id": id,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return productModelToEntity(&productModel), nil
}

// GetActiveByID retrieves a product only if it is active
func (r *ProductRepository) GetActiveByID(ctx context.Context, id uint64) (*entity.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, errs.ErrProductUnavailable
	}
	return product, nil
}
