package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Store      StoreConfig       `yaml:"store"`
	LiveReload LiveReloadConfig  `yaml:"live_reload"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.LiveReload.Validate(); err != nil {
		return fmt.Errorf("live_reload: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
//
// In production drafts are hidden and the posts directory is not watched.
type ApplicationConfig struct {
	LogLevel   slog.Level `yaml:"log_level"`
	Production bool       `yaml:"production"`
	HTTP       HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StoreConfig holds the path to the posts directory.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// LiveReloadConfig tunes the change notifications sent outside production.
type LiveReloadConfig struct {
	CatalogThrottle time.Duration `yaml:"catalog_throttle"`
}

// Validate validates the live reload configuration.
func (c *LiveReloadConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CatalogThrottle, validation.Min(100*time.Millisecond), validation.Max(time.Minute)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Store: StoreConfig{
			Path: "./posts",
		},
		LiveReload: LiveReloadConfig{
			CatalogThrottle: 2 * time.Second,
		},
	}
}
