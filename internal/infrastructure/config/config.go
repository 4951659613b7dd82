package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	"github.com/podmarket/shop-backend/internal/domain/usecase/loyalty"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/database"
)

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    database.Config `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Telegram    TelegramConfig  `mapstructure:"telegram"`
	Shop        ShopConfig      `mapstructure:"shop"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelegramConfig contains the bot credentials and admin surface settings.
// Empty values degrade gracefully: no signature checks, no notifications,
// admin endpoints disabled.
type TelegramConfig struct {
	BotToken    string `mapstructure:"botToken"`
	AdminChatID string `mapstructure:"adminChatId"`
	AdminAPIKey string `mapstructure:"adminApiKey"`
}

// TierConfig is one loyalty bracket in configuration. Amounts are
// two-decimal strings in currency units; the rate is a decimal fraction.
type TierConfig struct {
	MinSpend string `mapstructure:"minSpend"`
	Rate     string `mapstructure:"rate"`
	Name     string `mapstructure:"name"`
}

// ShopConfig contains the business constants that are tunable per deployment
type ShopConfig struct {
	ReferralBonus string       `mapstructure:"referralBonus"`
	LoyaltyTiers  []TierConfig `mapstructure:"loyaltyTiers"`
}

// ReferralBonusKopecks parses the configured referral bonus. Empty or
// unparsable values fall back to the production default.
func (s ShopConfig) ReferralBonusKopecks() int64 {
	if s.ReferralBonus == "" {
		return 0
	}
	kopecks, err := entity.ParseAmount(s.ReferralBonus)
	if err != nil {
		return 0
	}
	return kopecks
}

// BuildLoyaltyTiers converts the configured brackets into a resolver table.
// An empty configuration yields the default production table.
func (s ShopConfig) BuildLoyaltyTiers() ([]loyalty.Tier, error) {
	if len(s.LoyaltyTiers) == 0 {
		return loyalty.DefaultTiers(), nil
	}

	tiers := make([]loyalty.Tier, 0, len(s.LoyaltyTiers))
	for i, tc := range s.LoyaltyTiers {
		minSpend, err := entity.ParseAmount(tc.MinSpend)
		if err != nil {
			return nil, fmt.Errorf("loyalty tier %d: bad minSpend %q: %w", i, tc.MinSpend, err)
		}
		rate, err := decimal.NewFromString(tc.Rate)
		if err != nil {
			return nil, fmt.Errorf("loyalty tier %d: bad rate %q: %w", i, tc.Rate, err)
		}
		tiers = append(tiers, loyalty.Tier{
			MinSpend: minSpend,
			Rate:     rate,
			Name:     tc.Name,
		})
	}

	// Brackets are half-open; each one's ceiling is the next one's floor
	for i := 0; i < len(tiers)-1; i++ {
		tiers[i].MaxSpend = tiers[i+1].MinSpend
	}
	tiers[len(tiers)-1].MaxSpend = loyalty.Unbounded

	return tiers, nil
}
