package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../../.env",
}

// LoadConfig loads configuration for the current environment: yaml file,
// then SHOP_* environment variables on top
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults plus env cover everything
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("no .env file found in search paths")
}

// getEnvironment resolves the active environment name
func getEnvironment() string {
	env := os.Getenv("SHOP_ENV")
	switch env {
	case Production, Test, Development:
		return env
	default:
		return Development
	}
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.sqlite_path", "shop.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 5)  // minutes
	v.SetDefault("database.conn_max_idle_time", 5) // minutes
	v.SetDefault("database.query_timeout", 10)     // seconds
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.seed_defaults", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("shop.referralBonus", "100.00")
}

// processEnvOverrides wires the sensitive values that only ever come from the
// environment
func processEnvOverrides(v *viper.Viper) {
	if botToken := os.Getenv("SHOP_TELEGRAM_BOT_TOKEN"); botToken != "" {
		v.Set("telegram.botToken", botToken)
	}
	if chatID := os.Getenv("SHOP_TELEGRAM_ADMIN_CHAT_ID"); chatID != "" {
		v.Set("telegram.adminChatId", chatID)
	}
	if apiKey := os.Getenv("SHOP_TELEGRAM_ADMIN_API_KEY"); apiKey != "" {
		v.Set("telegram.adminApiKey", apiKey)
	}
	if password := os.Getenv("SHOP_DATABASE_PASSWORD"); password != "" {
		v.Set("database.password", password)
	}
	if username := os.Getenv("SHOP_DATABASE_USERNAME"); username != "" {
		v.Set("database.username", username)
	}
	if host := os.Getenv("SHOP_DATABASE_HOST"); host != "" {
		v.Set("database.host", host)
	}
	if name := os.Getenv("SHOP_DATABASE_NAME"); name != "" {
		v.Set("database.name", name)
	}
	if driver := os.Getenv("SHOP_DATABASE_DRIVER"); driver != "" {
		v.Set("database.driver", driver)
	}
}

// processDurations converts the raw numeric durations into time.Duration
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
}
