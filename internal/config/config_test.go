package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/constants"
)

func validConfig() Config {
	return Config{
		AppEnv:        "development",
		GinMode:       "debug",
		DBDriver:      "sqlite",
		SessionStore:  "cookie",
		SessionSecret: defaultSessionSecret,
		PageSize:      10,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.CacheEnabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, true},
		{"unknown session store", func(c *Config) { c.SessionStore = "memcached" }, true},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"largest page size", func(c *Config) { c.PageSize = constants.MaxPageSize }, false},
		{"page size above maximum", func(c *Config) { c.PageSize = constants.MaxPageSize + 1 }, true},
		{"empty secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"production with default secret", func(c *Config) { c.AppEnv = "production" }, true},
		{"release mode with default secret", func(c *Config) { c.GinMode = "release" }, true},
		{"production with custom secret", func(c *Config) {
			c.AppEnv = "production"
			c.SessionSecret = "a-much-longer-and-unique-secret-value"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
