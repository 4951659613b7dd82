package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/identity"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/handler"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	verifier identity.Verifier,
	adminAPIKey string,
	userHandler *handler.UserHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	locationHandler *handler.LocationHandler,
	adminHandler *handler.AdminHandler,
	logger coreport.Logger,
) {
	api := router.Group("/api")
	{
		// Bootstrap carries its init data in the body, everything else in
		// the auth header
		api.POST("/init", userHandler.Init)

		api.GET("/cities", locationHandler.Cities)
		api.GET("/pickup-locations", locationHandler.Locations)

		authed := api.Group("")
		authed.Use(middleware.TelegramAuth(verifier, logger))
		{
			authed.GET("/user/profile", userHandler.Profile)

			authed.POST("/cart/add", cartHandler.Add)
			authed.GET("/cart/items", cartHandler.Items)
			authed.POST("/cart/update", cartHandler.Update)
			authed.POST("/cart/remove", cartHandler.Remove)

			authed.POST("/order/create", orderHandler.Create)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.APIKey(adminAPIKey, logger))
		{
			admin.POST("/verify-user", adminHandler.VerifyUser)
			admin.POST("/check-verification", adminHandler.CheckVerification)
			admin.POST("/order-status", orderHandler.UpdateStatus)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
