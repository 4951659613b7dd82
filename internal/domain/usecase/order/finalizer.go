package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
	"github.com/podmarket/shop-backend/internal/domain/usecase/ledger"
	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
)

// FinalizeRequest is the input for converting a user's cart into an order
type FinalizeRequest struct {
	UserID          uint64
	IdempotencyKey  string
	CustomerName    string
	CustomerPhone   string
	DeliveryType    string
	DeliveryCity    string
	PickupLocationID uint64
	DeliveryAddress string
	UseBalance      bool
}

// FinalizeResult is the outcome of a committed (or replayed) finalization
type FinalizeResult struct {
	Order        *entity.Order
	LoyaltyLevel string
	LoyaltyRate  float64 // percent
	Replayed     bool    // true when the idempotency key matched an earlier commit
}

// Finalizer orchestrates the cart-to-order transition: cart snapshot, pricing,
// balance check/debit, cashback credit, order insert and cart clear, all as
// one unit of work. Pricing reads and the commit share the same transaction
// snapshot, and the user row is locked for the duration, so two concurrent
// finalizations for the same user serialize.
type Finalizer struct {
	uow          persistence.UnitOfWork
	accounts     *ledger.Ledger
	loyalty      *loyalty.Resolver
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewFinalizer creates a new order finalizer
func NewFinalizer(
	uow persistence.UnitOfWork,
	accounts *ledger.Ledger,
	loyaltyResolver *loyalty.Resolver,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Finalizer {
	return &Finalizer{
		uow:          uow,
		accounts:     accounts,
		loyalty:      loyaltyResolver,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Finalize runs the full finalization state machine. Checks are re-evaluated
// inside the transaction, never from earlier reads. On any commit-phase
// failure the whole transaction rolls back and the cart and balance are left
// exactly as they were.
func (f *Finalizer) Finalize(ctx context.Context, req FinalizeRequest) (*FinalizeResult, error) {
	txCtx, err := f.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrOrderCommitFailed, err.Error())
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := f.uow.Rollback(txCtx); rbErr != nil {
				f.logger.Error("Failed to roll back finalization transaction", map[string]any{
					"user_id": req.UserID,
					"error":   rbErr.Error(),
				})
			}
		}
	}()

	userRepo := f.uow.GetUserRepository(txCtx)
	orderRepo := f.uow.GetOrderRepository(txCtx)
	cartRepo := f.uow.GetCartRepository(txCtx)
	locationRepo := f.uow.GetLocationRepository(txCtx)

	// Lock the account row first; everything after this is serialized against
	// other finalizations for the same user.
	user, err := userRepo.GetByIDForUpdate(txCtx, req.UserID)
	if err != nil {
		return nil, err
	}

	// A retried request replays the earlier commit instead of re-running it.
	// The lookup is scoped to this user, so a key copied from someone else's
	// request is just an unused key here. The replayed tier is reconstructed
	// from the stored order, not from the current cumulative spend, which may
	// have moved past a boundary since the commit.
	if req.IdempotencyKey != "" {
		existing, err := orderRepo.GetByIdempotencyKey(txCtx, req.UserID, req.IdempotencyKey)
		if err == nil {
			tier := f.loyalty.Resolve(user.TotalSpent)
			if recorded := f.loyalty.TierForCashback(existing.TotalAmount, existing.CashbackEarned); recorded != nil {
				tier = *recorded
			}
			f.logger.Info("Replaying finalization for idempotency key", map[string]any{
				"user_id":         req.UserID,
				"order_id":        existing.ID,
				"idempotency_key": req.IdempotencyKey,
			})
			return &FinalizeResult{
				Order:        existing,
				LoyaltyLevel: tier.Name,
				LoyaltyRate:  tier.RatePercent(),
				Replayed:     true,
			}, nil
		}
		if !errors.Is(err, errs.ErrOrderNotFound) {
			return nil, err
		}
	}

	if !user.IsVerified {
		f.logger.Warn("Unverified account attempted to order", map[string]any{
			"user_id": req.UserID,
		})
		return nil, errs.ErrNotVerified
	}

	// Re-check the cart inside the transaction; a concurrent removal or a
	// parallel finalization may have emptied it
	lines, err := cartRepo.ListByUser(txCtx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.ErrCartEmpty
	}

	// Price from the live catalog. A removed or deactivated product fails the
	// whole order rather than silently dropping lines.
	var itemsTotal int64
	for _, line := range lines {
		if line.Product == nil {
			return nil, fmt.Errorf("%w: product %d no longer exists", errs.ErrProductUnavailable, line.Item.ProductID)
		}
		if !line.Product.IsActive {
			return nil, fmt.Errorf("%w: %s", errs.ErrProductUnavailable, line.Product.Name)
		}
		itemsTotal += line.Product.Price * int64(line.Item.Quantity)
	}

	deliveryPrice, deliveryInfo, err := f.resolveDelivery(txCtx, locationRepo, req)
	if err != nil {
		return nil, err
	}

	total := itemsTotal + deliveryPrice

	// Advisory balance check; the authoritative guard is the conditional
	// update in the ledger debit below
	if req.UseBalance && !user.CanDeduct(total) {
		return nil, errs.NewInsufficientFundsError(req.UserID, entity.FormatAmount(total), user.FormattedBalance())
	}

	tier := f.loyalty.Resolve(user.TotalSpent + total)
	cashback := f.loyalty.Cashback(total, tier)

	order := &entity.Order{
		UserID:          req.UserID,
		IdempotencyKey:  req.IdempotencyKey,
		TotalAmount:     total,
		CashbackEarned:  cashback,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		PickupLocation:  deliveryInfo,
		DeliveryType:    entity.DeliveryType(req.DeliveryType),
		DeliveryCity:    req.DeliveryCity,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPrice:   deliveryPrice,
		Status:          entity.OrderStatusPending,
		CreatedAt:       f.timeProvider.Now(),
	}

	// Commit phase: order insert, optional debit, cashback credit with
	// counters, cart clear. One transaction, all or nothing.
	if err := orderRepo.Create(txCtx, order); err != nil {
		if errors.Is(err, errs.ErrDuplicateOrder) {
			return nil, err
		}
		return nil, f.commitFailed(req, total, "order insert failed", err)
	}

	if req.UseBalance {
		if err := f.accounts.Debit(txCtx, req.UserID, total); err != nil {
			if errs.IsInsufficientFundsError(err) {
				return nil, err
			}
			return nil, f.commitFailed(req, total, "balance debit failed", err)
		}
	}

	if err := f.accounts.CreditOrder(txCtx, req.UserID, cashback, total); err != nil {
		return nil, f.commitFailed(req, total, "cashback credit failed", err)
	}

	if err := cartRepo.ClearForUser(txCtx, req.UserID); err != nil {
		return nil, f.commitFailed(req, total, "cart clear failed", err)
	}

	if err := f.uow.Commit(txCtx); err != nil {
		return nil, f.commitFailed(req, total, "transaction commit failed", err)
	}
	committed = true

	f.logger.Info("Order finalized", map[string]any{
		"user_id":       req.UserID,
		"order_id":      order.ID,
		"total":         order.FormattedTotal(),
		"cashback":      order.FormattedCashback(),
		"loyalty_level": tier.Name,
		"use_balance":   req.UseBalance,
	})

	return &FinalizeResult{
		Order:        order,
		LoyaltyLevel: tier.Name,
		LoyaltyRate:  tier.RatePercent(),
	}, nil
}

// resolveDelivery computes the delivery price and the human-readable snapshot
// stored on the order. Pickup is always free; courier delivery requires a
// configured zone for the destination city.
func (f *Finalizer) resolveDelivery(
	ctx context.Context,
	locationRepo persistence.LocationRepository,
	req FinalizeRequest,
) (int64, string, error) {
	switch entity.DeliveryType(req.DeliveryType) {
	case entity.DeliveryPickup:
		if req.PickupLocationID != 0 {
			location, err := locationRepo.GetPickupByID(ctx, req.PickupLocationID)
			if err == nil {
				return 0, fmt.Sprintf("%s - %s", location.Name, location.Address), nil
			}
			if !errs.IsNotFoundError(err) {
				return 0, "", err
			}
		}
		return 0, "Самовывоз", nil

	case entity.DeliveryCourier:
		zone, err := locationRepo.GetDeliveryForCity(ctx, req.DeliveryCity)
		if err != nil {
			return 0, "", err
		}
		info := fmt.Sprintf("Доставка в %s - %s", req.DeliveryCity, req.DeliveryAddress)
		return zone.DeliveryPrice, info, nil

	default:
		return 0, "", fmt.Errorf("%w: unknown delivery type %q", errs.ErrValidation, req.DeliveryType)
	}
}

func (f *Finalizer) commitFailed(req FinalizeRequest, total int64, reason string, err error) error {
	f.logger.Error("Order commit failed, rolling back", map[string]any{
		"user_id": req.UserID,
		"total":   entity.FormatAmount(total),
		"reason":  reason,
		"error":   err.Error(),
	})
	return errs.NewOrderError(req.UserID, req.IdempotencyKey, entity.FormatAmount(total), reason,
		fmt.Errorf("%w: %s", errs.ErrOrderCommitFailed, err.Error()))
}
