package user

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
)

// NextTierInfo describes the next loyalty bracket for UI progress displays
type NextTierInfo struct {
	Name        string
	MinSpend    string
	RatePercent float64
}

// Profile aggregates the account view shown in the mini-app: balance, loyalty
// standing and recent orders
type Profile struct {
	User         *entity.User
	LoyaltyLevel string
	LoyaltyRate  float64 // percent
	NextTier     *NextTierInfo
	Orders       []*entity.Order
}

// recentOrdersLimit caps the order history returned with the profile
const recentOrdersLimit = 10

// GetProfile builds the profile view for an account. The loyalty standing is
// derived from the persisted cumulative spend; the next-tier block is absent
// at the terminal tier.
func (s *Service) GetProfile(ctx context.Context, telegramID int64, resolver *loyalty.Resolver) (*Profile, error) {
	userRepo := s.uow.GetUserRepository(ctx)
	orderRepo := s.uow.GetOrderRepository(ctx)

	user, err := userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	tier := resolver.Resolve(user.TotalSpent)

	var next *NextTierInfo
	if n := resolver.Next(tier); n != nil {
		next = &NextTierInfo{
			Name:        n.Name,
			MinSpend:    entity.FormatAmount(n.MinSpend),
			RatePercent: n.RatePercent(),
		}
	}

	orders, err := orderRepo.ListByUser(ctx, user.ID, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:         user,
		LoyaltyLevel: tier.Name,
		LoyaltyRate:  tier.RatePercent(),
		NextTier:     next,
		Orders:       orders,
	}, nil
}
