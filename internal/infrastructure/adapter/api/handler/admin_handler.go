package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	userUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/user"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
)

// AdminHandler handles the API-key gated verification endpoints
type AdminHandler struct {
	userService *userUseCase.Service
	logger      coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(userService *userUseCase.Service, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		logger:      logger,
	}
}

// VerifyUser handles POST /api/admin/verify-user: flip the ordering gate for
// an account addressed by Telegram id or username
func (h *AdminHandler) VerifyUser(c *gin.Context) {
	var req dto.VerifyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Failure("Некорректный запрос"))
		return
	}
	if req.UserID == 0 && req.Username == "" {
		c.JSON(http.StatusOK, dto.Failure("Не указан ID или username пользователя"))
		return
	}

	verified := req.Action != "unverify"

	_, err := h.userService.SetVerified(c.Request.Context(), req.UserID, req.Username, verified)
	if err != nil {
		switch {
		case errs.IsUserNotFoundError(err):
			c.JSON(http.StatusNotFound, dto.Failure("Пользователь не найден"))
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusOK, dto.Failure(err.Error()))
		default:
			h.logger.Error("User verification failed", map[string]any{
				"user_id":  req.UserID,
				"username": req.Username,
				"error":    err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
		}
		return
	}

	actionText := "верифицирован"
	if !verified {
		actionText = "деверифицирован"
	}
	c.JSON(http.StatusOK, dto.AdminActionResponse{
		Success: true,
		Message: "Пользователь успешно " + actionText,
	})
}

// CheckVerification handles POST /api/admin/check-verification
func (h *AdminHandler) CheckVerification(c *gin.Context) {
	var req dto.CheckVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.Failure("Некорректный запрос"))
		return
	}
	if req.UserID == 0 && req.Username == "" {
		c.JSON(http.StatusOK, dto.Failure("Не указан ID или username пользователя"))
		return
	}

	user, err := h.userService.Lookup(c.Request.Context(), req.UserID, req.Username)
	if err != nil {
		if errs.IsUserNotFoundError(err) {
			c.JSON(http.StatusNotFound, dto.Failure("Пользователь не найден"))
			return
		}
		h.logger.Error("Verification lookup failed", map[string]any{
			"user_id":  req.UserID,
			"username": req.Username,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.Failure("Внутренняя ошибка сервера"))
		return
	}

	c.JSON(http.StatusOK, dto.CheckVerificationResponse{
		Success: true,
		User: dto.VerificationStatus{
			ID:         user.ID,
			FirstName:  user.FirstName,
			Username:   user.Username,
			IsVerified: user.IsVerified,
		},
	})
}
