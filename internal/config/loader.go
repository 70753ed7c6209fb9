// Package config provides configuration management using the Singleton pattern.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hpn/ai-gateway-client/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "AI_GATEWAY"

	// DefaultEnvFile is the dotenv file loaded when present.
	DefaultEnvFile = ".env"

	// EnvGatewayURL is the plain environment variable for the gateway URL.
	// It takes priority over AI_GATEWAY_GATEWAY_BASE_URL and the config file.
	EnvGatewayURL = "GATEWAY_URL"

	// legacyKeyPrefix is the per-provider key format AI_GATEWAY_API_KEY_<PROVIDER>.
	legacyKeyPrefix = envPrefix + "_API_KEY_"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigPath is an explicit config file. Empty searches the default paths.
	ConfigPath string

	// EnvFile is the dotenv file to load. Empty means DefaultEnvFile.
	// A missing file is not an error.
	EnvFile string
}

// Load reads configuration into a fresh Viper instance.
func Load(opts LoadOptions) (*Configuration, error) {
	return LoadWithViper(viper.New(), opts)
}

// loadConfig backs the singleton accessors.
func loadConfig(opts LoadOptions) (*Configuration, error) {
	return Load(opts)
}

// LoadWithViper reads configuration using v, which may already carry bound flags.
// Priority order (highest to lowest):
// 1. Flags bound on v
// 2. GATEWAY_URL and provider key variables (GEMINI_API_KEY, ...)
// 3. Environment variables prefixed with AI_GATEWAY_
// 4. .env file (never overrides variables already set)
// 5. config.yaml
// 6. Default values
func LoadWithViper(v *viper.Viper, opts LoadOptions) (*Configuration, error) {
	if err := loadDotEnv(opts.EnvFile); err != nil {
		return nil, &ConfigError{
			Op:  "dotenv",
			Err: err,
		}
	}

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if opts.ConfigPath != "" {
		v.SetConfigFile(opts.ConfigPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.ai-gateway")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// GATEWAY_URL is the conventional name; the prefixed form still works.
	if err := v.BindEnv("gateway.base_url", EnvGatewayURL, envPrefix+"_GATEWAY_BASE_URL"); err != nil {
		return nil, &ConfigError{Op: "bind_env", Err: err}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	cfg.Gateway.BaseURL = strings.TrimRight(cfg.Gateway.BaseURL, "/")

	if cfg.APIKeys == nil {
		cfg.APIKeys = make(map[string]string)
	}
	loadAPIKeysFromLegacyEnv(&cfg)
	loadAPIKeysFromProviderEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Gateway defaults
	v.SetDefault("gateway.base_url", "http://localhost:3000")
	v.SetDefault("gateway.chat_timeout", "30s")
	v.SetDefault("gateway.models_timeout", "10s")
	v.SetDefault("gateway.health_timeout", "5s")
	v.SetDefault("gateway.default_temperature", 0.7)

	// Stub gateway defaults
	v.SetDefault("stub.host", "127.0.0.1")
	v.SetDefault("stub.port", 3000)
	v.SetDefault("stub.read_timeout_seconds", 30)
	v.SetDefault("stub.write_timeout_seconds", 30)
	v.SetDefault("stub.shutdown_timeout_seconds", 15)
	v.SetDefault("stub.version", "1.0.0")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// loadDotEnv loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set win.
func loadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadAPIKeysFromProviderEnv reads the conventional per-provider variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, GROQ_API_KEY,
// HF_API_KEY, OLLAMA_URL). They override file and legacy values.
func loadAPIKeysFromProviderEnv(cfg *Configuration) {
	for _, provider := range domain.KnownProviders {
		value := os.Getenv(provider.CredentialEnv())
		if value == "" {
			continue
		}
		cfg.APIKeys[string(provider)] = value
	}
}

// loadAPIKeysFromLegacyEnv loads keys from AI_GATEWAY_API_KEY_<PROVIDER>.
// This is kept for deployments that namespace every variable.
func loadAPIKeysFromLegacyEnv(cfg *Configuration) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, legacyKeyPrefix) {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}

		providerName := strings.ToLower(strings.TrimPrefix(parts[0], legacyKeyPrefix))
		if providerName == "" {
			continue
		}

		provider := domain.ProviderType(providerName).Normalize()
		cfg.APIKeys[string(provider)] = parts[1]
	}
}
