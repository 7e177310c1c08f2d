package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joho/godotenv"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	AppEnv  string `mapstructure:"APP_ENV"`
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	SessionStore  string `mapstructure:"SESSION_STORE"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	CacheEnabled  bool   `mapstructure:"CACHE_ENABLED"`

	PageSize  int    `mapstructure:"PAGE_SIZE"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "forumuser")
	v.SetDefault("DB_PASSWORD", "forumpassword")
	v.SetDefault("DB_NAME", "qa_forum")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "forum.db")
	v.SetDefault("SESSION_STORE", "cookie")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"mysql", "postgres", "sqlite"}, c.DBDriver) {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if !slices.Contains([]string{"cookie", "redis"}, c.SessionStore) {
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}
	if c.PageSize < constants.MinPageSize || c.PageSize > constants.MaxPageSize {
		return fmt.Errorf("PAGE_SIZE must be between %d and %d", constants.MinPageSize, constants.MaxPageSize)
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed from the default value in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.GinMode == "release"
}

// RedisAddr returns host:port for the redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
