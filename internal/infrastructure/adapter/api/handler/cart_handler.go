package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	cartUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/cart"
	userUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/user"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/middleware"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *cartUseCase.Service
	userService *userUseCase.Service
	logger      coreport.Logger
}

// NewCartHandler creates a new cart handler instance
func NewCartHandler(
	cartService *cartUseCase.Service,
	userService *userUseCase.Service,
	logger coreport.Logger,
) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		userService: userService,
		logger:      logger,
	}
}

// Add handles POST /api/cart/add. First contact through the cart creates the
// account on the fly, the same as /api/init does.
func (h *CartHandler) Add(c *gin.Context) {
	tgUser, ok := middleware.TelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		c.JSON(http.StatusOK, dto.Failure("Не указан ID товара"))
		return
	}

	user, err := h.userService.GetOrCreate(c.Request.Context(), tgUser, "")
	if err != nil {
		h.internalError(c, "Account resolution failed", err)
		return
	}

	if err := h.cartService.Add(c.Request.Context(), user.ID, req.ProductID); err != nil {
		switch {
		case errors.Is(err, errs.ErrProductNotFound), errors.Is(err, errs.ErrProductUnavailable):
			c.JSON(http.StatusOK, dto.Failure("Товар не найден"))
		default:
			h.internalError(c, "Cart add failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.CartMutationResponse{Success: true, Message: "Товар добавлен в корзину"})
}

// Items handles GET /api/cart/items. An unknown account simply has an empty
// cart.
func (h *CartHandler) Items(c *gin.Context) {
	tgUser, ok := middleware.TelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	user, err := h.userService.GetByTelegramID(c.Request.Context(), tgUser.ID)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			c.JSON(http.StatusOK, dto.CartItemsResponse{Items: []dto.CartItemDTO{}, Total: "0.00"})
			return
		}
		h.internalError(c, "Account resolution failed", err)
		return
	}

	contents, err := h.cartService.Items(c.Request.Context(), user.ID)
	if err != nil {
		h.internalError(c, "Cart read failed", err)
		return
	}

	resp := dto.CartItemsResponse{
		Items: make([]dto.CartItemDTO, 0, len(contents.Lines)),
		Total: contents.Total,
	}
	for _, line := range contents.Lines {
		resp.Items = append(resp.Items, dto.CartItemDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles POST /api/cart/update: set a line's quantity, zero removes
func (h *CartHandler) Update(c *gin.Context) {
	tgUser, ok := middleware.TelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	var req dto.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 || req.Quantity == nil {
		c.JSON(http.StatusOK, dto.Failure("Не указаны параметры"))
		return
	}

	user, err := h.userService.GetByTelegramID(c.Request.Context(), tgUser.ID)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			c.JSON(http.StatusOK, dto.Failure("Пользователь не найден"))
			return
		}
		h.internalError(c, "Account resolution failed", err)
		return
	}

	if err := h.cartService.SetQuantity(c.Request.Context(), user.ID, req.ProductID, *req.Quantity); err != nil {
		if errors.Is(err, errs.ErrCartItemNotFound) {
			c.JSON(http.StatusOK, dto.Failure("Товар не найден в корзине"))
			return
		}
		h.internalError(c, "Cart update failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.CartMutationResponse{Success: true})
}

// Remove handles POST /api/cart/remove
func (h *CartHandler) Remove(c *gin.Context) {
	tgUser, ok := middleware.TelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	var req dto.CartRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		c.JSON(http.StatusOK, dto.Failure("Не указан ID товара"))
		return
	}

	user, err := h.userService.GetByTelegramID(c.Request.Context(), tgUser.ID)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			c.JSON(http.StatusOK, dto.Failure("Пользователь не найден"))
			return
		}
		h.internalError(c, "Account resolution failed", err)
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), user.ID, req.ProductID); err != nil {
		if errors.Is(err, errs.ErrCartItemNotFound) {
			c.JSON(http.StatusOK, dto.Failure("Товар не найден в корзине"))
			return
		}
		h.internalError(c, "Cart remove failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.CartMutationResponse{Success: true})
}

func (h *CartHandler) internalError(c *gin.Context, message string, err error) {
	h.logger.Error(message, map[string]any{
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
}
