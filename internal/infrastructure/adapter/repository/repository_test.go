package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/logger"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
	timeprovider "github.com/podmarket/shop-backend/internal/infrastructure/adapter/time"
)

// testContext bundles the raw handle used for seeding and verification with
// the request context the repositories expect
type testContext struct {
	db  *gorm.DB
	ctx context.Context
}

// newTestDB opens a throwaway sqlite database with the full schema. A single
// open connection keeps sqlite's writer happy under test parallelism.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shop_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.DeliveryLocation{},
		&model.ReferralBonus{},
	))

	return db
}

func testLogger() coreport.Logger {
	return logger.NewNoopLogger()
}

func testTimeProvider() coreport.TimeProvider {
	return timeprovider.NewRealTimeProvider()
}

func seedUser(t *testing.T, db *gorm.DB, telegramID int64, balance int64, verified bool) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		TelegramID:   telegramID,
		Username:     fmt.Sprintf("user%d", telegramID),
		FirstName:    "Иван",
		Balance:      balance,
		IsVerified:   verified,
		ReferralCode: fmt.Sprintf("ref_%d_abcd1234", telegramID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, active bool) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		Price:     price,
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedLocation(t *testing.T, db *gorm.DB, name, city, locationType string, price int64, active bool) *model.DeliveryLocation {
	t.Helper()

	location := &model.DeliveryLocation{
		Name:          name,
		Address:       "ул. Тестовая, 1",
		City:          city,
		LocationType:  locationType,
		DeliveryPrice: price,
		IsActive:      active,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

func userBalance(t *testing.T, db *gorm.DB, id uint64) int64 {
	t.Helper()

	var user model.User
	require.NoError(t, db.First(&user, id).Error)
	return user.Balance
}
