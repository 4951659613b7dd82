package migration

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/logger"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
)

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shop_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, NewMigrationManager(db, logger.NewNoopLogger()).MigrateAll())
	return db
}

func TestMigrateAll(t *testing.T) {
	db := newMigratedDB(t)

	for _, table := range []string{"users", "products", "cart_items", "orders", "delivery_locations", "referral_bonuses"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	t.Run("Running twice is harmless", func(t *testing.T) {
		assert.NoError(t, NewMigrationManager(db, logger.NewNoopLogger()).MigrateAll())
	})
}

func TestSeedDefaultLocations(t *testing.T) {
	db := newMigratedDB(t)
	log := logger.NewNoopLogger()

	require.NoError(t, SeedDefaultLocations(db, log))

	var count int64
	require.NoError(t, db.Model(&model.DeliveryLocation{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)

	var pickups, zones int64
	require.NoError(t, db.Model(&model.DeliveryLocation{}).Where("location_type = ?", "pickup").Count(&pickups).Error)
	require.NoError(t, db.Model(&model.DeliveryLocation{}).Where("location_type = ?", "delivery").Count(&zones).Error)
	assert.Equal(t, int64(3), pickups)
	assert.Equal(t, int64(3), zones)

	var moscow model.DeliveryLocation
	require.NoError(t, db.Where("city = ? AND location_type = ?", "Москва", "delivery").First(&moscow).Error)
	assert.Equal(t, int64(30000), moscow.DeliveryPrice)

	t.Run("Seeding again does not duplicate", func(t *testing.T) {
		require.NoError(t, SeedDefaultLocations(db, log))

		require.NoError(t, db.Model(&model.DeliveryLocation{}).Count(&count).Error)
		assert.Equal(t, int64(6), count)
	})

	t.Run("A non-empty table is left alone", func(t *testing.T) {
		fresh := newMigratedDB(t)
		require.NoError(t, fresh.Create(&model.DeliveryLocation{
			Name: "Свой пункт", Address: "ул. Своя, 1", City: "Казань", LocationType: "pickup", IsActive: true,
		}).Error)

		require.NoError(t, SeedDefaultLocations(fresh, log))

		require.NoError(t, fresh.Model(&model.DeliveryLocation{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
