package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

func newLocationRepo(t *testing.T) (*LocationRepository, *testContext) {
	t.Helper()
	db := newTestDB(t)
	return NewLocationRepository(db, testLogger()), &testContext{db: db, ctx: context.Background()}
}

func TestLocationRepositoryGetPickupByID(t *testing.T) {
	repo, tc := newLocationRepo(t)

	pickup := seedLocation(t, tc.db, "Пункт выдачи 1", "Москва", "pickup", 0, true)
	inactive := seedLocation(t, tc.db, "Закрытый пункт", "Москва", "pickup", 0, false)
	zone := seedLocation(t, tc.db, "Доставка по городу", "Москва", "delivery", 30000, true)

	t.Run("Active pickup point", func(t *testing.T) {
		location, err := repo.GetPickupByID(tc.ctx, pickup.ID)
		require.NoError(t, err)
		assert.Equal(t, "Пункт выдачи 1", location.Name)
		assert.Equal(t, entity.LocationPickup, location.LocationType)
		assert.Zero(t, location.DeliveryPrice)
	})

	t.Run("Inactive pickup point is invisible", func(t *testing.T) {
		_, err := repo.GetPickupByID(tc.ctx, inactive.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Delivery zones are not pickup points", func(t *testing.T) {
		_, err := repo.GetPickupByID(tc.ctx, zone.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestLocationRepositoryGetDeliveryForCity(t *testing.T) {
	repo, tc := newLocationRepo(t)

	seedLocation(t, tc.db, "Доставка по городу", "Москва", "delivery", 30000, true)
	seedLocation(t, tc.db, "Отключённая зона", "Казань", "delivery", 20000, false)

	t.Run("Configured city", func(t *testing.T) {
		zone, err := repo.GetDeliveryForCity(tc.ctx, "Москва")
		require.NoError(t, err)
		assert.Equal(t, int64(30000), zone.DeliveryPrice)
	})

	t.Run("Unconfigured city", func(t *testing.T) {
		_, err := repo.GetDeliveryForCity(tc.ctx, "Владивосток")
		assert.ErrorIs(t, err, errs.ErrDeliveryUnavailable)
	})

	t.Run("Inactive zone does not count", func(t *testing.T) {
		_, err := repo.GetDeliveryForCity(tc.ctx, "Казань")
		assert.ErrorIs(t, err, errs.ErrDeliveryUnavailable)
	})
}

func TestLocationRepositoryListCities(t *testing.T) {
	repo, tc := newLocationRepo(t)

	seedLocation(t, tc.db, "Зона 1", "Москва", "delivery", 30000, true)
	seedLocation(t, tc.db, "Зона 2", "Москва", "delivery", 35000, true)
	seedLocation(t, tc.db, "Зона 3", "Казань", "delivery", 20000, true)
	seedLocation(t, tc.db, "Пункт выдачи", "Новосибирск", "pickup", 0, true)

	cities, err := repo.ListCities(tc.ctx)
	require.NoError(t, err)

	// Distinct, sorted, delivery zones only
	assert.Equal(t, []string{"Казань", "Москва"}, cities)
}

func TestLocationRepositoryListByType(t *testing.T) {
	repo, tc := newLocationRepo(t)

	seedLocation(t, tc.db, "Пункт выдачи 1", "Москва", "pickup", 0, true)
	seedLocation(t, tc.db, "Пункт выдачи 2", "Санкт-Петербург", "pickup", 0, true)
	seedLocation(t, tc.db, "Закрытый пункт", "Москва", "pickup", 0, false)
	seedLocation(t, tc.db, "Зона доставки", "Москва", "delivery", 30000, true)

	t.Run("All active pickups", func(t *testing.T) {
		locations, err := repo.ListByType(tc.ctx, entity.LocationPickup, "")
		require.NoError(t, err)
		require.Len(t, locations, 2)
		for _, location := range locations {
			assert.Equal(t, entity.LocationPickup, location.LocationType)
		}
	})

	t.Run("Filtered by city", func(t *testing.T) {
		locations, err := repo.ListByType(tc.ctx, entity.LocationPickup, "Москва")
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, "Пункт выдачи 1", locations[0].Name)
	})

	t.Run("Delivery zones", func(t *testing.T) {
		locations, err := repo.ListByType(tc.ctx, entity.LocationDelivery, "")
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, int64(30000), locations[0].DeliveryPrice)
	})
}

func TestProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db, testLogger())
	ctx := context.Background()

	active := seedProduct(t, db, "Активный", 250000, true)
	inactive := seedProduct(t, db, "Снятый", 100000, false)

	t.Run("GetByID ignores active status", func(t *testing.T) {
		product, err := repo.GetByID(ctx, inactive.ID)
		require.NoError(t, err)
		assert.False(t, product.IsActive)
		assert.Equal(t, "1000.00", product.FormattedPrice())
	})

	t.Run("GetByID miss", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, errs.ErrProductNotFound)
	})

	t.Run("GetActiveByID returns active products", func(t *testing.T) {
		product, err := repo.GetActiveByID(ctx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(250000), product.Price)
	})

	t.Run("GetActiveByID rejects deactivated products", func(t *testing.T) {
		_, err := repo.GetActiveByID(ctx, inactive.ID)
		assert.ErrorIs(t, err, errs.ErrProductUnavailable)
	})
}

func TestReferralBonusRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewReferralBonusRepository(db, testTimeProvider(), testLogger())
	ctx := context.Background()

	referrer := seedUser(t, db, 111, 0, true)
	referred := seedUser(t, db, 222, 0, false)

	t.Run("First grant inserts the audit row", func(t *testing.T) {
		bonus := &entity.ReferralBonus{
			ReferrerID: referrer.ID,
			ReferredID: referred.ID,
			Amount:     10000,
			CreatedAt:  testTimeProvider().Now(),
		}
		require.NoError(t, repo.Create(ctx, bonus))
		assert.NotZero(t, bonus.ID)

		exists, err := repo.ExistsForPair(ctx, referrer.ID, referred.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Second grant for the same pair is rejected", func(t *testing.T) {
		bonus := &entity.ReferralBonus{
			ReferrerID: referrer.ID,
			ReferredID: referred.ID,
			Amount:     10000,
			CreatedAt:  testTimeProvider().Now(),
		}
		assert.ErrorIs(t, repo.Create(ctx, bonus), errs.ErrDuplicateReferralBonus)
	})

	t.Run("Unknown pair does not exist", func(t *testing.T) {
		exists, err := repo.ExistsForPair(ctx, referred.ID, referrer.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
