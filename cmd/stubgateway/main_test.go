package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hpn/ai-gateway-client/internal/config"
	"github.com/hpn/ai-gateway-client/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func loadTestConfig(t *testing.T) *config.Configuration {
	t.Helper()

	t.Setenv("GATEWAY_URL", "")
	for _, p := range domain.KnownProviders {
		t.Setenv(p.CredentialEnv(), "")
	}
	t.Setenv("GEMINI_API_KEY", "AIza-stub-test-key")
	t.Setenv("AI_GATEWAY_STUB_PORT", "3999")
	t.Setenv("AI_GATEWAY_STUB_VERSION", "0.0.1-test")

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: writeConfig(t),
		EnvFile:    filepath.Join(t.TempDir(), "missing.env"),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "stub:\n  host: 127.0.0.1\n  read_timeout_seconds: 7\n"
	if err := writeFile(path, content); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewServer_Settings(t *testing.T) {
	cfg := loadTestConfig(t)
	srv := newServer(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	if srv.Addr != "127.0.0.1:3999" {
		t.Errorf("Addr = %q, want 127.0.0.1:3999", srv.Addr)
	}
	if srv.ReadTimeout != 7*time.Second {
		t.Errorf("ReadTimeout = %v, want 7s", srv.ReadTimeout)
	}
	if srv.WriteTimeout != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want 30s", srv.WriteTimeout)
	}
}

func TestNewServer_Health(t *testing.T) {
	cfg := loadTestConfig(t)
	srv := newServer(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status    string `json:"status"`
		Version   string `json:"version"`
		Providers []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"providers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Status != "ok" || body.Version != "0.0.1-test" {
		t.Errorf("body = %+v", body)
	}
	for _, p := range body.Providers {
		want := "not-configured"
		if p.Name == "Gemini" {
			want = "configured"
		}
		if p.Status != want {
			t.Errorf("%s status = %s, want %s", p.Name, p.Status, want)
		}
	}
}

func TestNewServer_ChatRoundTrip(t *testing.T) {
	cfg := loadTestConfig(t)
	srv := newServer(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/chat", "application/json",
		strings.NewReader(`{"provider":"ollama","message":"hello"}`))
	if err != nil {
		t.Fatalf("POST /api/chat error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "[ollama/mistral] hello" {
		t.Errorf("message = %v", body["message"])
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestParseFlags(t *testing.T) {
	path, err := parseFlags([]string{"--config", "/etc/gw.yaml"})
	if err != nil || path != "/etc/gw.yaml" {
		t.Errorf("parseFlags(--config) = %q, %v", path, err)
	}

	path, err = parseFlags(nil)
	if err != nil || path != "" {
		t.Errorf("parseFlags() = %q, %v, want empty path", path, err)
	}

	if _, err := parseFlags([]string{"--port", "1"}); err == nil {
		t.Error("parseFlags(--port) succeeded, want unknown flag error")
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	t.Setenv("GATEWAY_URL", "")
	for _, p := range domain.KnownProviders {
		t.Setenv(p.CredentialEnv(), "")
	}
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	path := filepath.Join(t.TempDir(), "gw.yaml")
	if err := writeFile(path, "stub:\n  port: 4242\n  version: 3.1.4\n"); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Stub.Port != 4242 || cfg.Stub.Version != "3.1.4" {
		t.Errorf("Stub = %+v, want port 4242 version 3.1.4", cfg.Stub)
	}
}
