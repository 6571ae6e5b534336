package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/crimson-sun/wmsprobe/internal/wms"
)

// Version is the wmsprobe release version.
const Version = "0.1.0"

// Config holds all wmsprobe configuration.
type Config struct {
	WMS WMSConfig
	Map MapConfig
	Web WebConfig
	Log LogConfig
}

// WMSConfig holds the upstream map server settings.
type WMSConfig struct {
	Endpoint string        `env:"WMSPROBE_ENDPOINT" envDefault:"http://localhost:8080/ncWMS2/wms"`
	Timeout  time.Duration `env:"WMSPROBE_TIMEOUT" envDefault:"30s"`
	Dataset  string        `env:"WMSPROBE_DATASET"` // empty = all datasets
}

// MapConfig holds the parts of the GetMap template that may be tuned.
type MapConfig struct {
	Version string `env:"WMSPROBE_WMS_VERSION" envDefault:"1.3.0"`
	Width   int    `env:"WMSPROBE_MAP_WIDTH" envDefault:"1024"`
	Height  int    `env:"WMSPROBE_MAP_HEIGHT" envDefault:"512"`
}

// WebConfig holds demo page settings.
type WebConfig struct {
	Listen     string `env:"WMSPROBE_LISTEN" envDefault:"127.0.0.1:8090"`
	SamplesDir string `env:"WMSPROBE_SAMPLES_DIR" envDefault:"samples"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `env:"WMSPROBE_LOG_LEVEL" envDefault:"info"` // "debug", "info", "warn", "error"
	JSON  bool   `env:"WMSPROBE_LOG_JSON" envDefault:"false"`
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// MapRequest returns the GetMap template for this configuration.
func (c Config) MapRequest() wms.MapRequest {
	r := wms.DefaultMapRequest()
	r.Version = c.Map.Version
	r.Width = c.Map.Width
	r.Height = c.Map.Height
	if r.Version == "1.1.1" {
		r.CRS = "EPSG:4326"
	}
	return r
}

// Validate checks configuration values for correctness.
// Returns all validation errors joined, not just the first.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.WMS.Endpoint)
	switch {
	case c.WMS.Endpoint == "":
		errs = append(errs, errors.New("config: WMSPROBE_ENDPOINT must not be empty"))
	case err != nil:
		errs = append(errs, fmt.Errorf("config: WMSPROBE_ENDPOINT: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("config: WMSPROBE_ENDPOINT must be an http(s) URL, got %q", c.WMS.Endpoint))
	}

	if c.WMS.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config: WMSPROBE_TIMEOUT must not be negative, got %v", c.WMS.Timeout))
	}

	if err := c.MapRequest().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}

	return errors.Join(errs...)
}
