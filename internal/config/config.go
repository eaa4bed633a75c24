package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	LayoutFile     string        `mapstructure:"LAYOUT_FILE"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	VisitTempMin   float64       `mapstructure:"VISIT_TEMP_MIN"`
	VisitTempMax   float64       `mapstructure:"VISIT_TEMP_MAX"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("VISIT_TEMP_MIN", 25.0)
	v.SetDefault("VISIT_TEMP_MAX", 45.0)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("LAYOUT_FILE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("REQUEST_TIMEOUT")
	v.BindEnv("VISIT_TEMP_MIN")
	v.BindEnv("VISIT_TEMP_MAX")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. A layout file
// is required: the registry cannot start with no rooms because patient
// registration depends on the primary waiting room.
func (c *Config) Validate() error {
	if c.LayoutFile == "" {
		return fmt.Errorf("LAYOUT_FILE is required")
	}
	if c.VisitTempMin >= c.VisitTempMax {
		return fmt.Errorf("VISIT_TEMP_MIN (%g) must be below VISIT_TEMP_MAX (%g)",
			c.VisitTempMin, c.VisitTempMax)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
