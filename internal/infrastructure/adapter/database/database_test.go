package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/database/migration"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/logger"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
	timeprovider "github.com/podmarket/shop-backend/internal/infrastructure/adapter/time"
)

// testEnv wires a migrated sqlite database behind the real connection layer
// and unit of work, the same stack production runs on the postgres driver
type testEnv struct {
	conn         *Connection
	uow          persistence.UnitOfWork
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	ctx          context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewNoopLogger()
	tp := timeprovider.NewRealTimeProvider()

	config := &Config{
		Driver:       DriverSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "shop_test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		QueryTimeout: 5 * time.Second,
		LogLevel:     "silent",
	}

	conn, err := NewConnection(config, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migration.NewMigrationManager(conn.DB, log).MigrateAll())

	return &testEnv{
		conn:         conn,
		uow:          NewUnitOfWork(conn.DB, log, tp),
		logger:       log,
		timeProvider: tp,
		ctx:          context.Background(),
	}
}

func (e *testEnv) seedUser(t *testing.T, telegramID int64, balance int64, verified bool) *model.User {
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
	require.NoError(t, e.conn.DB.Create(user).Error)
	return user
}

func (e *testEnv) seedProduct(t *testing.T, name string, price int64, active bool) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		Price:     price,
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, e.conn.DB.Create(product).Error)
	return product
}

func (e *testEnv) seedLocation(t *testing.T, name, city, locationType string, price int64) *model.DeliveryLocation {
	t.Helper()

	location := &model.DeliveryLocation{
		Name:          name,
		Address:       "ул. Тестовая, 1",
		City:          city,
		LocationType:  locationType,
		DeliveryPrice: price,
		IsActive:      true,
	}
	require.NoError(t, e.conn.DB.Create(location).Error)
	return location
}

func (e *testEnv) addToCart(t *testing.T, userID, productID uint64, quantity uint32) {
	t.Helper()
	require.NoError(t, e.uow.GetCartRepository(e.ctx).AddItem(e.ctx, userID, productID, quantity))
}

func (e *testEnv) loadUser(t *testing.T, id uint64) *model.User {
	t.Helper()

	var user model.User
	require.NoError(t, e.conn.DB.First(&user, id).Error)
	return &user
}

func (e *testEnv) countOrders(t *testing.T, userID uint64) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.conn.DB.Model(&model.Order{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func (e *testEnv) countCartLines(t *testing.T, userID uint64) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.conn.DB.Model(&model.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}
