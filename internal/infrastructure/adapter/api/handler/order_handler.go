package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	orderUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/order"
	userUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/user"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/middleware"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *orderUseCase.Service
	userService  *userUseCase.Service
	logger       coreport.Logger
}

// NewOrderHandler creates a new order handler instance
func NewOrderHandler(
	orderService *orderUseCase.Service,
	userService *userUseCase.Service,
	logger coreport.Logger,
) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		userService:  userService,
		logger:       logger,
	}
}

// Create handles POST /api/order/create: the cart-to-order transition. The
// response keeps the shop's historical status convention: recoverable
// rejections ride a 200 with success=false, the verification gate is a 403,
// commit failures a 500.
func (h *OrderHandler) Create(c *gin.Context) {
	tgUser, ok := middleware.TelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Failure("Некорректный запрос"))
		return
	}

	user, err := h.userService.GetByTelegramID(c.Request.Context(), tgUser.ID)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			c.JSON(http.StatusOK, dto.Failure("Пользователь не найден"))
			return
		}
		h.logger.Error("Account resolution failed", map[string]any{
			"telegram_id": tgUser.ID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
		return
	}

	finalizeReq := orderUseCase.FinalizeRequest{
		UserID:           user.ID,
		IdempotencyKey:   req.IdempotencyKey,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		DeliveryType:     req.DeliveryType,
		DeliveryCity:     req.DeliveryCity,
		PickupLocationID: req.PickupLocationID,
		DeliveryAddress:  req.DeliveryAddress,
		UseBalance:       req.UseBalance,
	}

	result, _ := h.orderService.CreateOrder(c.Request.Context(), finalizeReq)

	if !result.Success {
		c.JSON(result.StatusCode, dto.Failure(result.ErrorMessage))
		return
	}

	c.JSON(result.StatusCode, dto.CreateOrderResponse{
		Success:        true,
		OrderID:        result.OrderID,
		TotalAmount:    result.TotalAmount,
		CashbackEarned: result.CashbackEarned,
		LoyaltyLevel:   result.LoyaltyLevel,
		LoyaltyRate:    result.LoyaltyRate,
		Message:        result.Message,
	})
}

// UpdateStatus handles POST /api/admin/order-status (API-key gated)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == 0 || req.Status == "" {
		c.JSON(http.StatusOK, dto.Failure("Не указаны параметры"))
		return
	}

	err := h.orderService.UpdateStatus(c.Request.Context(), req.OrderID, req.Status)
	if err != nil {
		switch {
		case errs.IsNotFoundError(err):
			c.JSON(http.StatusNotFound, dto.Failure("Заказ не найден"))
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusOK, dto.Failure(err.Error()))
		default:
			h.logger.Error("Order status update failed", map[string]any{
				"order_id": req.OrderID,
				"error":    err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.AdminActionResponse{Success: true, Message: "Статус заказа обновлен"})
}
