// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and shared by the client, the stub
// gateway and the CLI.
package domain

import "strings"

// ProviderType names a backend AI service selected per request (e.g. "gemini").
// The set is open: the gateway decides which names it accepts.
type ProviderType string

const (
	ProviderGemini      ProviderType = "gemini"
	ProviderOpenAI      ProviderType = "openai"
	ProviderClaude      ProviderType = "claude"
	ProviderGroq        ProviderType = "groq"
	ProviderOllama      ProviderType = "ollama"
	ProviderHuggingFace ProviderType = "huggingface"
)

// KnownProviders lists the providers the gateway ships with, in the order
// the gateway reports them.
var KnownProviders = []ProviderType{
	ProviderGemini,
	ProviderOpenAI,
	ProviderClaude,
	ProviderGroq,
	ProviderOllama,
	ProviderHuggingFace,
}

// providerAliases maps alternate spellings accepted by the gateway.
var providerAliases = map[string]ProviderType{
	"anthropic": ProviderClaude,
	"local":     ProviderOllama,
	"hf":        ProviderHuggingFace,
}

// String returns the wire name of the provider.
func (p ProviderType) String() string {
	return string(p)
}

// Normalize lowercases the provider name and resolves aliases.
func (p ProviderType) Normalize() ProviderType {
	name := strings.ToLower(strings.TrimSpace(string(p)))
	if canonical, ok := providerAliases[name]; ok {
		return canonical
	}
	return ProviderType(name)
}

// IsKnown reports whether the provider (after normalization) is one of KnownProviders.
func (p ProviderType) IsKnown() bool {
	n := p.Normalize()
	for _, k := range KnownProviders {
		if k == n {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable provider name used in health reports.
func (p ProviderType) DisplayName() string {
	switch p.Normalize() {
	case ProviderGemini:
		return "Gemini"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderClaude:
		return "Claude"
	case ProviderGroq:
		return "Groq"
	case ProviderOllama:
		return "Ollama"
	case ProviderHuggingFace:
		return "HuggingFace"
	default:
		return string(p)
	}
}

// CredentialEnv returns the environment variable holding the provider credential.
// Ollama is configured with a URL rather than a key.
func (p ProviderType) CredentialEnv() string {
	switch p.Normalize() {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	case ProviderGroq:
		return "GROQ_API_KEY"
	case ProviderOllama:
		return "OLLAMA_URL"
	case ProviderHuggingFace:
		return "HF_API_KEY"
	default:
		return ""
	}
}
