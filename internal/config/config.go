package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	JWT     JWTConfig
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Env  string `validate:"required,oneof=development production test"`
}

// CatalogConfig describes how the console reaches the catalog API
type CatalogConfig struct {
	APIURL  string `validate:"required,url"`
	Token   string
	Timeout time.Duration `validate:"gte=0"` // 0 disables it
}

type JWTConfig struct {
	Secret       string
	AccessExpiry int `validate:"gt=0"` // in minutes
}

// AccessTTL returns the lifetime of issued access tokens
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessExpiry) * time.Minute
}

// Load reads .env from dir (when present) and the environment, applies
// defaults and validates the result.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("CATALOG_API_URL", "http://localhost:8080")
	v.SetDefault("CATALOG_TOKEN", "")
	v.SetDefault("CATALOG_TIMEOUT", "0s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_EXPIRY", 15)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Env:  v.GetString("SERVER_ENV"),
		},
		Catalog: CatalogConfig{
			APIURL:  strings.TrimSpace(v.GetString("CATALOG_API_URL")),
			Token:   strings.TrimSpace(v.GetString("CATALOG_TOKEN")),
			Timeout: v.GetDuration("CATALOG_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: v.GetInt("JWT_ACCESS_EXPIRY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every section of the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
