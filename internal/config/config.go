// Package config loads grid settings from the environment and column
// layouts from YAML.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/magpierre/datagrid/datatable"
)

// Config holds the process-wide grid defaults.
type Config struct {
	PageSize    int           `env:"DATAGRID_PAGE_SIZE" envDefault:"10"`
	Pagination  bool          `env:"DATAGRID_PAGINATION" envDefault:"true"`
	Selectable  bool          `env:"DATAGRID_SELECTABLE" envDefault:"true"`
	MultiSelect bool          `env:"DATAGRID_MULTI_SELECT" envDefault:"true"`
	Theme       string        `env:"DATAGRID_THEME" envDefault:"system"`
	Locale      string        `env:"DATAGRID_LOCALE" envDefault:"en"`
	APITimeout  time.Duration `env:"DATAGRID_API_TIMEOUT" envDefault:"60s"`
	LogLevel    string        `env:"DATAGRID_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GridConfig converts the settings to engine configuration.
func (c Config) GridConfig() datatable.Config {
	gc := datatable.DefaultConfig()
	gc.Pagination = c.Pagination && c.PageSize > 0
	gc.PageSize = c.PageSize
	gc.Selectable = c.Selectable
	gc.MultiSelect = c.MultiSelect
	return gc
}
