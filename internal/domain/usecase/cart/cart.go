package cart

import (
	"context"
	"fmt"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
)

// Line is a cart line priced from the live catalog for display. The values
// here are informational; finalization re-prices inside its own transaction.
type Line struct {
	ProductID uint64
	Name      string
	Price     string
	Quantity  uint32
	LineTotal string
}

// Contents is the cart view returned to the client
type Contents struct {
	Lines []Line
	Total string
}

// Service handles cart mutations. Carts are ephemeral: lines appear on add,
// disappear on removal or order finalization.
type Service struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

// NewService creates the cart service
func NewService(uow persistence.UnitOfWork, logger coreport.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Add puts one unit of a product into the cart, bumping the quantity when the
// product is already there. Inactive products cannot be added.
func (s *Service) Add(ctx context.Context, userID, productID uint64) error {
	if productID == 0 {
		return fmt.Errorf("%w: не указан ID товара", errs.ErrValidation)
	}

	productRepo := s.uow.GetProductRepository(ctx)
	if _, err := productRepo.GetActiveByID(ctx, productID); err != nil {
		return err
	}

	cartRepo := s.uow.GetCartRepository(ctx)
	if err := cartRepo.AddItem(ctx, userID, productID, 1); err != nil {
		return err
	}

	s.logger.Debug("Product added to cart", map[string]any{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

// Items returns the cart contents with live prices and line totals
func (s *Service) Items(ctx context.Context, userID uint64) (*Contents, error) {
	cartRepo := s.uow.GetCartRepository(ctx)
	lines, err := cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	contents := &Contents{Lines: make([]Line, 0, len(lines))}
	var total int64
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		lineTotal := line.Product.Price * int64(line.Item.Quantity)
		total += lineTotal
		contents.Lines = append(contents.Lines, Line{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.FormattedPrice(),
			Quantity:  line.Item.Quantity,
			LineTotal: entity.FormatAmount(lineTotal),
		})
	}
	contents.Total = entity.FormatAmount(total)
	return contents, nil
}

// SetQuantity updates a line's quantity; zero removes the line
func (s *Service) SetQuantity(ctx context.Context, userID, productID uint64, quantity uint32) error {
	if productID == 0 {
		return fmt.Errorf("%w: не указан ID товара", errs.ErrValidation)
	}
	cartRepo := s.uow.GetCartRepository(ctx)
	return cartRepo.SetQuantity(ctx, userID, productID, quantity)
}

// Remove deletes a line from the cart
func (s *Service) Remove(ctx context.Context, userID, productID uint64) error {
	if productID == 0 {
		return fmt.Errorf("%w: не указан ID товара", errs.ErrValidation)
	}
	cartRepo := s.uow.GetCartRepository(ctx)
	return cartRepo.RemoveItem(ctx, userID, productID)
}
