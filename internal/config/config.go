package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultBackendURL is used when BACKEND_CALL_API is unset or empty.
const DefaultBackendURL = "http://localhost:4000"

// BackendConfig holds settings for the outbound call to the backend root endpoint.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_CALL_API" envDefault:"http://localhost:4000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"0s"`
}

// PageConfig controls how the home page renders.
type PageConfig struct {
	// ShowFailure renders a failure message instead of the loading text
	// once the backend call has failed.
	ShowFailure bool `env:"SHOW_FETCH_ERRORS" envDefault:"false"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// StubConfig holds settings for the local backend stub.
type StubConfig struct {
	Port string `env:"STUB_PORT" envDefault:"4000"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	AppHost string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port    string `env:"PORT" envDefault:"8080"`
	Backend BackendConfig
	Page    PageConfig
	Log     LogConfig
	Stub    StubConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from vars instead of the process environment.
func LoadFrom(vars map[string]string) (*AppConfig, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// An explicitly empty variable falls back to the default as well.
	cfg.Backend.BaseURL = strings.TrimSpace(cfg.Backend.BaseURL)
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBackendURL
	}
	if cfg.Backend.Timeout < 0 {
		return nil, errors.New("parse env: BACKEND_TIMEOUT must not be negative")
	}
	return cfg, nil
}
