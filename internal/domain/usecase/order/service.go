package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/notify"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
	"github.com/podmarket/shop-backend/internal/domain/usecase/ledger"
	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
)

// CreateOrderResponse is the service-level outcome handed to the API layer.
// The mixed status convention of the public API is produced here: recoverable
// validation failures ride a 200 with success=false, the verification gate is
// a 403 and commit failures are a 500.
type CreateOrderResponse struct {
	Success        bool
	StatusCode     int
	OrderID        uint64
	TotalAmount    string
	CashbackEarned string
	LoyaltyLevel   string
	LoyaltyRate    float64
	Message        string
	ErrorMessage   string
}

// Service ties together validation, finalization and post-commit notification
type Service struct {
	finalizer  *Finalizer
	validator  *Validator
	uow        persistence.UnitOfWork
	dispatcher notify.Dispatcher
	logger     coreport.Logger
}

// NewService creates the order service
func NewService(
	uow persistence.UnitOfWork,
	accounts *ledger.Ledger,
	loyaltyResolver *loyalty.Resolver,
	dispatcher notify.Dispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		finalizer:  NewFinalizer(uow, accounts, loyaltyResolver, timeProvider, logger),
		validator:  NewValidator(),
		uow:        uow,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateOrder validates and finalizes an order, then dispatches notifications.
// Everything before the commit is side-effect-free and retried freely by
// callers; the notification runs strictly after commit and its failure is
// logged but never surfaced as an order failure.
func (s *Service) CreateOrder(ctx context.Context, req FinalizeRequest) (*CreateOrderResponse, error) {
	if err := s.validator.ValidateFinalizeRequest(req); err != nil {
		return &CreateOrderResponse{
			Success:      false,
			StatusCode:   http.StatusOK,
			ErrorMessage: err.Error(),
		}, err
	}

	result, err := s.finalizer.Finalize(ctx, req)
	if err != nil {
		return s.errorResponse(req, err), err
	}

	if !result.Replayed {
		s.dispatchNotification(ctx, req, result)
	}

	return &CreateOrderResponse{
		Success:        true,
		StatusCode:     http.StatusOK,
		OrderID:        result.Order.ID,
		TotalAmount:    result.Order.FormattedTotal(),
		CashbackEarned: result.Order.FormattedCashback(),
		LoyaltyLevel:   result.LoyaltyLevel,
		LoyaltyRate:    result.LoyaltyRate,
		Message:        fmt.Sprintf("Заказ #%d успешно оформлен!", result.Order.ID),
	}, nil
}

// errorResponse maps finalization errors to the public status convention
func (s *Service) errorResponse(req FinalizeRequest, err error) *CreateOrderResponse {
	statusCode := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errs.IsNotVerifiedError(err):
		statusCode = http.StatusForbidden
		message = "Вы не верифицированы. Обратитесь к администратору"

	case errors.Is(err, errs.ErrCartEmpty):
		statusCode = http.StatusOK
		message = "Корзина пуста"

	case errors.Is(err, errs.ErrProductUnavailable):
		statusCode = http.StatusOK

	case errors.Is(err, errs.ErrDeliveryUnavailable):
		statusCode = http.StatusOK
		message = "Доставка в этот город недоступна"

	case errs.IsInsufficientFundsError(err):
		statusCode = http.StatusOK
		message = "Недостаточно средств на балансе"

	case errs.IsUserNotFoundError(err):
		statusCode = http.StatusOK
		message = "Пользователь не найден"

	case errors.Is(err, errs.ErrValidation):
		statusCode = http.StatusOK
	}

	s.logger.Error("Order creation failed", map[string]any{
		"user_id":     req.UserID,
		"status_code": statusCode,
		"error":       err.Error(),
	})

	return &CreateOrderResponse{
		Success:      false,
		StatusCode:   statusCode,
		ErrorMessage: message,
	}
}

// dispatchNotification informs the outside world about a committed order.
// Money has already moved, so failures here are warnings, never rollbacks.
func (s *Service) dispatchNotification(ctx context.Context, req FinalizeRequest, result *FinalizeResult) {
	var username string
	if user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, req.UserID); err == nil {
		username = user.Username
	}

	facts := notify.OrderFacts{
		OrderID:       result.Order.ID,
		CustomerName:  result.Order.CustomerName,
		CustomerPhone: result.Order.CustomerPhone,
		Username:      username,
		TotalAmount:   result.Order.FormattedTotal(),
		Cashback:      result.Order.FormattedCashback(),
		LoyaltyLevel:  result.LoyaltyLevel,
		DeliveryType:  string(result.Order.DeliveryType),
		DeliveryInfo:  result.Order.PickupLocation,
	}

	if err := s.dispatcher.DispatchOrderCreated(ctx, facts); err != nil {
		s.logger.Warn("Order notification dispatch failed", map[string]any{
			"order_id": result.Order.ID,
			"error":    err.Error(),
		})
	}
}

// UpdateStatus applies an externally driven status transition to an order.
// The write is conditional on the status the transition was validated
// against, so two concurrent admin transitions cannot both pass the guard:
// whichever lands second fails the condition.
func (s *Service) UpdateStatus(ctx context.Context, orderID uint64, status string) error {
	if !entity.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", errs.ErrValidation, status)
	}

	orderRepo := s.uow.GetOrderRepository(ctx)
	existing, err := orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	prior := existing.Status
	if err := existing.TransitionStatus(entity.OrderStatus(status)); err != nil {
		return err
	}
	return orderRepo.UpdateStatus(ctx, orderID, prior, existing.Status)
}
