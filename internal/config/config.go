// Package config loads runtime configuration from the environment, an
// optional .env file and built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"port"`

	DBDriver    string `mapstructure:"db_driver"` // postgres, sqlite
	DatabaseURL string `mapstructure:"database_url"`

	RedisURL          string        `mapstructure:"redis_url"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	CacheWarmSchedule string        `mapstructure:"cache_warm_schedule"`

	JWTSecret        string        `mapstructure:"jwt_secret_key"`
	JWTTTL           time.Duration `mapstructure:"jwt_ttl"`
	ClerkSecretKey   string        `mapstructure:"clerk_secret_key"`
	WebhookSecretKey string        `mapstructure:"webhook_secret_key"`
	CloudinaryURL    string        `mapstructure:"cloudinary_url"`

	CORSOrigins     string `mapstructure:"cors_origins"`
	LoginRatePerMin int    `mapstructure:"login_rate_per_min"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // console, json

	PageSize          int    `mapstructure:"page_size"`
	JobLocationsExtra string `mapstructure:"job_locations_extra"`
	APIURL            string `mapstructure:"api_url"`
}

var keys = []string{
	"port", "db_driver", "database_url", "redis_url", "cache_ttl", "cache_warm_schedule",
	"jwt_secret_key", "jwt_ttl", "clerk_secret_key", "webhook_secret_key", "cloudinary_url",
	"cors_origins", "login_rate_per_min", "log_level", "log_format", "page_size",
	"job_locations_extra", "api_url",
}

// Load reads the environment (after an optional .env file) into a Config.
// It does not check required values; call Validate for that.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "5000")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("cache_warm_schedule", "@every 5m")
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("jwt_ttl", "168h")
	v.SetDefault("clerk_secret_key", "")
	v.SetDefault("webhook_secret_key", "")
	v.SetDefault("cloudinary_url", "")
	v.SetDefault("cors_origins", "")
	v.SetDefault("login_rate_per_min", 20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("page_size", 6)
	v.SetDefault("job_locations_extra", "")
	v.SetDefault("api_url", "http://localhost:5000/api")

	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values the API server cannot start without.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be at least 1")
	}
	return nil
}

// ValidateDatabase checks only the database settings, for commands that do
// not serve requests.
func (c *Config) ValidateDatabase() error {
	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case "sqlite":
		if c.DatabaseURL == "" {
			c.DatabaseURL = "jobboard.db"
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want postgres or sqlite)", c.DBDriver)
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS; an empty result means any origin.
func (c *Config) AllowedOrigins() []string { return splitList(c.CORSOrigins) }

func (c *Config) ExtraLocations() []string { return splitList(c.JobLocationsExtra) }

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
