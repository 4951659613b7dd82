package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/identity"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
)

// telegramUserKey is the gin context key the authenticated identity lives under
const telegramUserKey = "telegram_user"

// TelegramAuth extracts and verifies the mini-app identity from the
// X-Telegram-Init-Data header (or the tgWebAppData query parameter the
// webview sometimes uses) and stores it in the request context
func TelegramAuth(verifier identity.Verifier, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		initData := c.GetHeader("X-Telegram-Init-Data")
		if initData == "" {
			initData = c.Query("tgWebAppData")
		}

		user, err := verifier.Verify(initData)
		if err != nil {
			logger.Warn("Rejected request with invalid init data", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Не удалось подтвердить данные Telegram"))
			return
		}

		c.Set(telegramUserKey, user)
		c.Next()
	}
}

// TelegramUserFromContext returns the identity stored by TelegramAuth
func TelegramUserFromContext(c *gin.Context) (*identity.TelegramUser, bool) {
	value, exists := c.Get(telegramUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*identity.TelegramUser)
	return user, ok
}
