package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpn/ai-gateway-client/internal/domain"
	"github.com/spf13/viper"
)

// clearEnv blanks every variable the loader looks at.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvGatewayURL, "")
	t.Setenv("AI_GATEWAY_GATEWAY_BASE_URL", "")
	t.Setenv("AI_GATEWAY_LOGGING_LEVEL", "")
	for _, p := range domain.KnownProviders {
		t.Setenv(p.CredentialEnv(), "")
	}
}

// noDotEnv returns a dotenv path that does not exist.
func noDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(LoadOptions{EnvFile: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %s, want http://localhost:3000", cfg.Gateway.BaseURL)
	}
	if cfg.Gateway.ChatTimeout != 30*time.Second {
		t.Errorf("ChatTimeout = %v, want 30s", cfg.Gateway.ChatTimeout)
	}
	if cfg.Gateway.ModelsTimeout != 10*time.Second {
		t.Errorf("ModelsTimeout = %v, want 10s", cfg.Gateway.ModelsTimeout)
	}
	if cfg.Gateway.HealthTimeout != 5*time.Second {
		t.Errorf("HealthTimeout = %v, want 5s", cfg.Gateway.HealthTimeout)
	}
	if cfg.Gateway.DefaultTemperature != 0.7 {
		t.Errorf("DefaultTemperature = %v, want 0.7", cfg.Gateway.DefaultTemperature)
	}
	if cfg.Stub.Port != 3000 {
		t.Errorf("Stub.Port = %d, want 3000", cfg.Stub.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if len(cfg.APIKeys) != 0 {
		t.Errorf("APIKeys = %v, want empty", cfg.APIKeys)
	}
}

func TestLoad_BaseURLPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "gateway:\n  base_url: http://from-file:1/\n")

	cfg, err := Load(LoadOptions{ConfigPath: cfgPath, EnvFile: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://from-file:1" {
		t.Errorf("BaseURL = %s, want file value with slash stripped", cfg.Gateway.BaseURL)
	}

	t.Setenv(EnvGatewayURL, "http://from-env:2/")
	cfg, err = Load(LoadOptions{ConfigPath: cfgPath, EnvFile: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://from-env:2" {
		t.Errorf("BaseURL = %s, want GATEWAY_URL value", cfg.Gateway.BaseURL)
	}

	v := viper.New()
	v.Set("gateway.base_url", "http://explicit:3")
	cfg, err = LoadWithViper(v, LoadOptions{ConfigPath: cfgPath, EnvFile: noDotEnv(t)})
	if err != nil {
		t.Fatalf("LoadWithViper() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://explicit:3" {
		t.Errorf("BaseURL = %s, want explicit value", cfg.Gateway.BaseURL)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "GATEWAY_URL=http://dotenv:4\nAI_GATEWAY_TEST_DOTENV_MARKER=1\n")
	t.Cleanup(func() {
		os.Unsetenv("AI_GATEWAY_TEST_DOTENV_MARKER")
	})

	// .env only fills variables that are unset.
	os.Unsetenv(EnvGatewayURL)

	cfg, err := Load(LoadOptions{EnvFile: envPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://dotenv:4" {
		t.Errorf("BaseURL = %s, want value from .env", cfg.Gateway.BaseURL)
	}

	t.Setenv(EnvGatewayURL, "http://process:5")
	cfg, err = Load(LoadOptions{EnvFile: envPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://process:5" {
		t.Errorf("BaseURL = %s, want process env to win over .env", cfg.Gateway.BaseURL)
	}
}

func TestLoad_APIKeys(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "api_keys:\n  gemini: file-gemini\n  groq: file-groq\n")

	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("AI_GATEWAY_API_KEY_HF", "legacy-hf")
	t.Setenv("ANTHROPIC_API_KEY", "env-claude")

	cfg, err := Load(LoadOptions{ConfigPath: cfgPath, EnvFile: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]string{
		"gemini":      "env-gemini",
		"groq":        "file-groq",
		"huggingface": "legacy-hf",
		"claude":      "env-claude",
	}
	for provider, key := range want {
		if cfg.APIKeys[provider] != key {
			t.Errorf("APIKeys[%s] = %q, want %q", provider, cfg.APIKeys[provider], key)
		}
	}

	creds := cfg.Credentials()
	if !creds.Has(domain.ProviderHuggingFace) || creds.Len() != 4 {
		t.Errorf("Credentials() = %v", creds.Providers())
	}
}

func TestLoad_Timeouts(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "gateway:\n  chat_timeout: 45s\n  health_timeout: 2s\n")

	cfg, err := Load(LoadOptions{ConfigPath: cfgPath, EnvFile: noDotEnv(t)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gateway.ChatTimeout != 45*time.Second || cfg.Gateway.HealthTimeout != 2*time.Second {
		t.Errorf("timeouts = %+v", cfg.Gateway)
	}
	if cfg.Gateway.ModelsTimeout != 10*time.Second {
		t.Errorf("ModelsTimeout = %v, want default 10s", cfg.Gateway.ModelsTimeout)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "gateway:\n  base_url: not-a-url\n  default_temperature: 3\nlogging:\n  level: loud\n")

	_, err := Load(LoadOptions{ConfigPath: cfgPath, EnvFile: noDotEnv(t)})
	if !IsValidationError(err) {
		t.Fatalf("Load() error = %v, want ValidationError", err)
	}

	verr := err.(*ValidationError)
	for _, field := range []string{"gateway.base_url", "gateway.default_temperature", "logging.level"} {
		if !verr.HasError(field) {
			t.Errorf("ValidationError missing %s: %v", field, verr)
		}
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"), EnvFile: noDotEnv(t)})
	if !IsConfigError(err) {
		t.Fatalf("Load() error = %v, want ConfigError", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	single := &ValidationError{Errors: []string{"a is required"}}
	if single.Error() != "configuration validation failed: a is required" {
		t.Errorf("Error() = %q", single.Error())
	}

	multi := &ValidationError{Errors: []string{"a", "b"}}
	want := "configuration validation failed with 2 errors:\n  - a\n  - b"
	if multi.Error() != want {
		t.Errorf("Error() = %q, want %q", multi.Error(), want)
	}
}

func TestGetConfig_Singleton(t *testing.T) {
	clearEnv(t)
	ResetConfig()
	t.Cleanup(ResetConfig)

	a, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	b, _ := GetConfig()
	if a != b {
		t.Error("GetConfig() returned different instances")
	}
}

func TestGetConfigWithPath(t *testing.T) {
	clearEnv(t)
	ResetConfig()
	t.Cleanup(ResetConfig)

	path := writeFile(t, t.TempDir(), "custom.yaml", "gateway:\n  base_url: http://gw.internal:8080/\n")

	cfg, err := GetConfigWithPath(path)
	if err != nil {
		t.Fatalf("GetConfigWithPath() error = %v", err)
	}
	if cfg.Gateway.BaseURL != "http://gw.internal:8080" {
		t.Errorf("BaseURL = %q, want http://gw.internal:8080", cfg.Gateway.BaseURL)
	}

	again, _ := GetConfig()
	if again != cfg {
		t.Error("GetConfig() after GetConfigWithPath() returned a different instance")
	}
}
