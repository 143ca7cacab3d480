package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, "@every 5m", cfg.CacheWarmSchedule)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "/tmp/jobs.db")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("PAGE_SIZE", "9")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("JOB_LOCATIONS_EXTRA", "Berlin,Lagos")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/jobs.db", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 9, cfg.PageSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, []string{"Berlin", "Lagos"}, cfg.ExtraLocations())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{DBDriver: "postgres", DatabaseURL: "postgres://x", JWTSecret: "k", JWTTTL: time.Hour, PageSize: 6}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, false},
		{"sqlite defaults path", func(c *Config) { c.DBDriver = "sqlite"; c.DatabaseURL = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongo" }, false},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, false},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateDatabase_IgnoresServerSettings(t *testing.T) {
	c := &Config{DBDriver: "sqlite"}
	require.NoError(t, c.ValidateDatabase())
	assert.Equal(t, "jobboard.db", c.DatabaseURL)
	assert.Error(t, c.Validate(), "serve still needs a JWT secret")
}
