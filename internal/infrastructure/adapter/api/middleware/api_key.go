package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
)

// APIKey guards the admin endpoints with the X-API-Key header. With no key
// configured the admin surface is disabled outright.
func APIKey(expectedKey string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedKey == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure("Административный доступ отключен"))
			return
		}

		provided := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1 {
			logger.Warn("Rejected admin request with bad API key", map[string]any{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure("Неверный API ключ"))
			return
		}

		c.Next()
	}
}
