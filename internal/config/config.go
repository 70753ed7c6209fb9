// Package config provides configuration management using the Singleton pattern.
// It loads configuration from flags, environment variables, an optional .env
// file and config.yaml using Viper.
package config

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/hpn/ai-gateway-client/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Gateway configuration used by the client
	Gateway GatewayConfig `json:"gateway" mapstructure:"gateway"`

	// APIKeys maps provider name to credential. Kept for the caller, never sent.
	APIKeys map[string]string `json:"-" mapstructure:"api_keys"`

	// Stub gateway server configuration
	Stub StubConfig `json:"stub" mapstructure:"stub"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// GatewayConfig holds client-side gateway settings.
type GatewayConfig struct {
	// BaseURL is the gateway endpoint, trailing slashes stripped.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// ChatTimeout bounds POST /api/chat.
	ChatTimeout time.Duration `json:"chat_timeout" mapstructure:"chat_timeout"`

	// ModelsTimeout bounds GET /api/models.
	ModelsTimeout time.Duration `json:"models_timeout" mapstructure:"models_timeout"`

	// HealthTimeout bounds GET /api/health.
	HealthTimeout time.Duration `json:"health_timeout" mapstructure:"health_timeout"`

	// DefaultTemperature is sent when a chat call does not choose one.
	DefaultTemperature float64 `json:"default_temperature" mapstructure:"default_temperature"`
}

// StubConfig holds settings for the local stub gateway.
type StubConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeoutSeconds is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`

	// Version is reported by /api/health.
	Version string `json:"version" mapstructure:"version"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default search paths.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(LoadOptions{})
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance with a custom config path.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(LoadOptions{ConfigPath: configPath})
	})
	return configInstance, configErr
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if any field is unusable.
func (c *Configuration) Validate() error {
	var validationErrors []string

	// Gateway
	if c.Gateway.BaseURL == "" {
		validationErrors = append(validationErrors, "gateway.base_url is required")
	} else if u, err := url.Parse(c.Gateway.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"gateway.base_url '%s' is invalid, must be an absolute http(s) URL",
			c.Gateway.BaseURL,
		))
	}

	if c.Gateway.ChatTimeout <= 0 {
		validationErrors = append(validationErrors, "gateway.chat_timeout must be positive")
	}
	if c.Gateway.ModelsTimeout <= 0 {
		validationErrors = append(validationErrors, "gateway.models_timeout must be positive")
	}
	if c.Gateway.HealthTimeout <= 0 {
		validationErrors = append(validationErrors, "gateway.health_timeout must be positive")
	}

	if c.Gateway.DefaultTemperature < 0 || c.Gateway.DefaultTemperature > 1 {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"gateway.default_temperature %v is out of range [0.0, 1.0]",
			c.Gateway.DefaultTemperature,
		))
	}

	// Stub server
	if c.Stub.Port <= 0 || c.Stub.Port > 65535 {
		validationErrors = append(validationErrors, "stub.port must be between 1 and 65535")
	}

	// Logging
	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format '%s' is invalid, must be one of: json, text",
			c.Logging.Format,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// Credentials returns the configured API keys as an immutable credential set.
func (c *Configuration) Credentials() domain.Credentials {
	return domain.NewCredentials(c.APIKeys)
}
