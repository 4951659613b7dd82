package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/identity"
	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
	userUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/user"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/middleware"
)

// UserHandler handles account bootstrap and profile requests
type UserHandler struct {
	userService     *userUseCase.Service
	verifier        identity.Verifier
	loyaltyResolver *loyalty.Resolver
	logger          coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userService *userUseCase.Service,
	verifier identity.Verifier,
	loyaltyResolver *loyalty.Resolver,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		verifier:        verifier,
		loyaltyResolver: loyaltyResolver,
		logger:          logger,
	}
}

// Init handles POST /api/init: get-or-create the account behind the mini-app
// identity, applying a referral code on first contact
func (h *UserHandler) Init(c *gin.Context) {
	var req dto.InitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure("Некорректный запрос"))
		return
	}

	tgUser, err := h.verifier.Verify(req.InitData)
	if err != nil {
		h.logger.Warn("Init rejected, invalid init data", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	user, err := h.userService.GetOrCreate(c.Request.Context(), tgUser, req.ReferralCode)
	if err != nil {
		h.logger.Error("Account bootstrap failed", map[string]any{
			"telegram_id": tgUser.ID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
		return
	}

	c.JSON(http.StatusOK, dto.InitResponse{
		Success: true,
		User: dto.UserInfo{
			ID:        user.TelegramID,
			FirstName: user.FirstName,
			Username:  user.Username,
			PhotoURL:  tgUser.PhotoURL,
		},
		Balance:      user.FormattedBalance(),
		IsVerified:   user.IsVerified,
		ReferralCode: user.ReferralCode,
		IsTelegram:   true,
	})
}

// Profile handles GET /api/user/profile: the account view with loyalty
// standing and recent orders. An unknown account gets the zero-value profile
// instead of an error, matching what the mini-app expects on first load.
func (h *UserHandler) Profile(c *gin.Context) {
	tgUser, ok := middleware.TelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), tgUser.ID, h.loyaltyResolver)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			c.JSON(http.StatusOK, h.emptyProfile(tgUser))
			return
		}
		h.logger.Error("Profile read failed", map[string]any{
			"telegram_id": tgUser.ID,
			"error":       err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
		return
	}

	resp := dto.ProfileResponse{
		Balance:      profile.User.FormattedBalance(),
		FirstName:    profile.User.FirstName,
		Username:     profile.User.Username,
		IsVerified:   profile.User.IsVerified,
		ReferralCode: profile.User.ReferralCode,
		TotalSpent:   entity.FormatAmount(profile.User.TotalSpent),
		TotalOrders:  profile.User.TotalOrders,
		TotalInvited: profile.User.TotalInvited,
		LoyaltyLevel: profile.LoyaltyLevel,
		LoyaltyRate:  profile.LoyaltyRate,
		Orders:       make([]dto.OrderSummary, 0, len(profile.Orders)),
	}
	if profile.NextTier != nil {
		resp.NextLevel = &dto.NextLevelInfo{
			Threshold: profile.NextTier.MinSpend,
			Percent:   profile.NextTier.RatePercent,
			Name:      profile.NextTier.Name,
		}
	}
	for _, order := range profile.Orders {
		resp.Orders = append(resp.Orders, dto.OrderSummary{
			ID:             order.ID,
			TotalAmount:    order.FormattedTotal(),
			CashbackEarned: order.FormattedCashback(),
			DeliveryType:   string(order.DeliveryType),
			Status:         string(order.Status),
			CreatedAt:      order.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// emptyProfile is what a never-registered identity sees: zero balance at the
// entry tier
func (h *UserHandler) emptyProfile(tgUser *identity.TelegramUser) dto.ProfileResponse {
	tier := h.loyaltyResolver.Resolve(0)
	resp := dto.ProfileResponse{
		Balance:      entity.FormatAmount(0),
		FirstName:    tgUser.FirstName,
		Username:     tgUser.Username,
		TotalSpent:   entity.FormatAmount(0),
		LoyaltyLevel: tier.Name,
		LoyaltyRate:  tier.RatePercent(),
		Orders:       []dto.OrderSummary{},
	}
	if next := h.loyaltyResolver.Next(tier); next != nil {
		resp.NextLevel = &dto.NextLevelInfo{
			Threshold: entity.FormatAmount(next.MinSpend),
			Percent:   next.RatePercent(),
			Name:      next.Name,
		}
	}
	return resp
}
