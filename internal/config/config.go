// Package config loads the application settings from an optional .env file,
// an optional config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all settings of the MercPrd tool.
type Config struct {
	DatabaseDSN  string `mapstructure:"DATABASE_DSN" validate:"required"`
	LogLevel     string `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	LogFile      string `mapstructure:"LOG_FILE"`
	PasswordCost int    `mapstructure:"PASSWORD_COST" validate:"min=4,max=31"`
}

// Load reads the configuration. Environment variables (including those from
// a .env file in the working directory, if present) win over the config file
// at path (if any), which wins over the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("DATABASE_DSN", "mercprd.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "mercprd.log")
	v.SetDefault("PASSWORD_COST", bcrypt.DefaultCost)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fmt.Errorf("invalid config: field '%s' failed on the '%s' tag", ve[0].Field(), ve[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
