// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	BackendURL     string `mapstructure:"BACKEND_URL"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	SnapshotPath   string `mapstructure:"SNAPSHOT_PATH"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	RequestTimeout int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	PerPage        int    `mapstructure:"PER_PAGE"`
	Env            string `mapstructure:"APP_ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath(defaultConfigDir())
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("BACKEND_URL", "http://localhost:3001")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("SNAPSHOT_PATH", filepath.Join(defaultConfigDir(), "session.db"))
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PER_PAGE", 6)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and usable.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("BACKEND_URL is required")
	}
	parsed, err := url.Parse(c.BackendURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL, got %q", c.BackendURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.PerPage <= 0 {
		return errors.New("PER_PAGE must be positive")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction && parsed.Scheme != "https" {
		return errors.New("BACKEND_URL must use https in production")
	}

	return nil
}

// defaultConfigDir returns the per-user directory for config and session state.
func defaultConfigDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "gitwise")
	}
	return "."
}

// TrimmedBackendURL returns the backend URL without a trailing slash,
// so endpoint paths can always be joined with a leading slash.
func (c *Config) TrimmedBackendURL() string {
	return strings.TrimRight(c.BackendURL, "/")
}
