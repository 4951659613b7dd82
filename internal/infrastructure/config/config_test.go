package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
)

func TestReferralBonusKopecks(t *testing.T) {
	testCases := []struct {
		description string
		value       string
		expected    int64
	}{
		{"Production default", "100.00", 10000},
		{"Whole currency units", "50", 5000},
		{"Empty falls back", "", 0},
		{"Garbage falls back", "a lot", 0},
		{"Negative falls back", "-5.00", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			shop := ShopConfig{ReferralBonus: tc.value}
			assert.Equal(t, tc.expected, shop.ReferralBonusKopecks())
		})
	}
}

func TestBuildLoyaltyTiers(t *testing.T) {
	t.Run("Empty configuration yields the default table", func(t *testing.T) {
		tiers, err := ShopConfig{}.BuildLoyaltyTiers()
		require.NoError(t, err)
		assert.Equal(t, loyalty.DefaultTiers(), tiers)
	})

	t.Run("Configured brackets chain into half-open intervals", func(t *testing.T) {
		shop := ShopConfig{
			LoyaltyTiers: []TierConfig{
				{MinSpend: "0.00", Rate: "0.005", Name: "Новичок"},
				{MinSpend: "10000.00", Rate: "0.01", Name: "Лояльный"},
				{MinSpend: "20000.00", Rate: "0.02", Name: "Постоянный"},
			},
		}

		tiers, err := shop.BuildLoyaltyTiers()
		require.NoError(t, err)
		require.Len(t, tiers, 3)

		assert.Equal(t, int64(0), tiers[0].MinSpend)
		assert.Equal(t, int64(1_000_000), tiers[0].MaxSpend)
		assert.Equal(t, int64(1_000_000), tiers[1].MinSpend)
		assert.Equal(t, int64(2_000_000), tiers[1].MaxSpend)
		assert.Equal(t, loyalty.Unbounded, tiers[2].MaxSpend)

		// The produced table satisfies the resolver invariants
		_, err = loyalty.NewResolver(tiers)
		assert.NoError(t, err)
	})

	t.Run("Bad amounts and rates are rejected", func(t *testing.T) {
		_, err := ShopConfig{LoyaltyTiers: []TierConfig{
			{MinSpend: "zero", Rate: "0.005", Name: "A"},
		}}.BuildLoyaltyTiers()
		assert.Error(t, err)

		_, err = ShopConfig{LoyaltyTiers: []TierConfig{
			{MinSpend: "0.00", Rate: "half a percent", Name: "A"},
		}}.BuildLoyaltyTiers()
		assert.Error(t, err)
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SHOP_ENV", "")
	t.Setenv("SHOP_TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("SHOP_DATABASE_DRIVER", "sqlite")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, config.Environment)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 15*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, config.Server.ShutdownTimeout)

	assert.Equal(t, "sqlite", config.Database.Driver)
	assert.Equal(t, 5*time.Minute, config.Database.ConnMaxLifetime)
	assert.Equal(t, 10*time.Second, config.Database.QueryTimeout)

	assert.Equal(t, "test-token", config.Telegram.BotToken)
	assert.Equal(t, "100.00", config.Shop.ReferralBonus)
	assert.Equal(t, int64(10000), config.Shop.ReferralBonusKopecks())
}

func TestGetEnvironment(t *testing.T) {
	testCases := []struct {
		value    string
		expected string
	}{
		{"production", Production},
		{"test", Test},
		{"development", Development},
		{"", Development},
		{"staging", Development},
	}

	for _, tc := range testCases {
		t.Run("SHOP_ENV="+tc.value, func(t *testing.T) {
			t.Setenv("SHOP_ENV", tc.value)
			assert.Equal(t, tc.expected, getEnvironment())
		})
	}
}
