package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	cartUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/cart"
	"github.com/podmarket/shop-backend/internal/domain/usecase/ledger"
	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
	orderUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/order"
	userUseCase "github.com/podmarket/shop-backend/internal/domain/usecase/user"

	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/handler"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/routes"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/database"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/database/migration"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/identity"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/logger"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/notify"
	timeProvider "github.com/podmarket/shop-backend/internal/infrastructure/adapter/time"
	"github.com/podmarket/shop-backend/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Database
	conn, err := database.NewConnection(&cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if cfg.Database.SeedDefaults {
		if err := migration.SeedDefaultLocations(conn.DB, appLogger); err != nil {
			appLogger.Error("Failed to seed delivery locations", map[string]any{
				"error": err.Error(),
			})
		}
	}

	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Loyalty table comes from configuration; defaults match production
	tiers, err := cfg.Shop.BuildLoyaltyTiers()
	if err != nil {
		appLogger.Error("Invalid loyalty tier configuration", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	loyaltyResolver, err := loyalty.NewResolver(tiers)
	if err != nil {
		appLogger.Error("Invalid loyalty tier table", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Domain services
	accounts := ledger.NewLedger(uow, tp, appLogger)
	userService := userUseCase.NewService(uow, accounts, tp, appLogger, cfg.Shop.ReferralBonusKopecks())
	cartService := cartUseCase.NewService(uow, appLogger)

	dispatcher := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID, tp, appLogger)
	orderService := orderUseCase.NewService(uow, accounts, loyaltyResolver, dispatcher, tp, appLogger)

	verifier := identity.NewTelegramVerifier(cfg.Telegram.BotToken, appLogger)

	// API handlers
	userHandler := handler.NewUserHandler(userService, verifier, loyaltyResolver, appLogger)
	cartHandler := handler.NewCartHandler(cartService, userService, appLogger)
	orderHandler := handler.NewOrderHandler(orderService, userService, appLogger)
	locationHandler := handler.NewLocationHandler(uow.GetLocationRepository(context.Background()), appLogger)
	adminHandler := handler.NewAdminHandler(userService, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(
		router,
		verifier,
		cfg.Telegram.AdminAPIKey,
		userHandler,
		cartHandler,
		orderHandler,
		locationHandler,
		adminHandler,
		appLogger,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
