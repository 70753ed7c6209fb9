package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hpn/ai-gateway-client/internal/client"
	"github.com/hpn/ai-gateway-client/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestMaskKeyShort(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "***"},
		{"sk-1234567890abcdef", "sk-1...cdef"},
	}
	for _, tt := range tests {
		if got := maskKeyShort(tt.key); got != tt.want {
			t.Errorf("maskKeyShort(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestPrintHealth(t *testing.T) {
	var buf bytes.Buffer
	PrintHealth(&buf, client.HealthResponse{
		Status:    "ok",
		Version:   "1.0.0",
		Providers: json.RawMessage(`[{"name":"Gemini","status":"configured"},{"name":"Groq","status":"not-configured"}]`),
	})

	out := buf.String()
	for _, want := range []string{"OK", "v1.0.0", "Gemini", "configured", "Groq", "not-configured"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintHealth_UnknownProviderShape(t *testing.T) {
	var buf bytes.Buffer
	PrintHealth(&buf, client.HealthResponse{
		Status:    "degraded",
		Providers: json.RawMessage(`{"gemini":true}`),
	})

	out := buf.String()
	if !strings.Contains(out, "[DEGRADED]") || !strings.Contains(out, `{"gemini":true}`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintModels(t *testing.T) {
	var buf bytes.Buffer
	PrintModels(&buf, client.ModelsResponse{
		Provider: "ollama",
		Models:   []json.RawMessage{json.RawMessage(`"llama2"`), json.RawMessage(`{"id":"mistral"}`)},
	})

	out := buf.String()
	if !strings.Contains(out, "ollama") || !strings.Contains(out, "• llama2") || !strings.Contains(out, "• mistral") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintChat(t *testing.T) {
	var buf bytes.Buffer
	PrintChat(&buf, client.ChatResponse{
		Provider: "openai",
		Model:    "gpt-4",
		Message:  "Hello!",
		Usage:    json.RawMessage(`{"inputTokens":1}`),
	})

	out := buf.String()
	for _, want := range []string{"openai", "(gpt-4)", "Hello!", `usage: {"inputTokens":1}`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, "health", client.ErrorResult{
		Error: "Cannot connect to http://localhost:3000. Is the gateway running?",
		Kind:  client.ErrorKindUnreachable,
	})

	out := buf.String()
	if !strings.Contains(out, "health: Cannot connect to http://localhost:3000") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "hint:") {
		t.Errorf("unreachable error should carry a hint:\n%s", out)
	}

	buf.Reset()
	PrintError(&buf, "chat", client.ErrorResult{Error: "HTTP 500: Internal Server Error", Kind: client.ErrorKindHTTP})
	if strings.Contains(buf.String(), "hint:") {
		t.Errorf("http error should not carry a hint:\n%s", buf.String())
	}
}

func TestPrintCredentials(t *testing.T) {
	var buf bytes.Buffer
	PrintCredentials(&buf, domain.NewCredentials(map[string]string{
		"openai": "sk-1234567890abcdef",
	}))

	out := buf.String()
	if strings.Contains(out, "1234567890") {
		t.Errorf("key leaked:\n%s", out)
	}
	if !strings.Contains(out, "OpenAI") || !strings.Contains(out, "sk-1...cdef") {
		t.Errorf("unexpected output:\n%s", out)
	}

	buf.Reset()
	PrintCredentials(&buf, domain.Credentials{})
	if !strings.Contains(buf.String(), "none configured") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "2.0.0")
	if !strings.Contains(buf.String(), "v2.0.0") {
		t.Errorf("banner missing version:\n%s", buf.String())
	}
}
