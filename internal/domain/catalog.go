package domain

// Catalog holds the ordered model list of each provider.
type Catalog map[ProviderType][]string

// DefaultCatalog is the model catalog the gateway advertises.
var DefaultCatalog = Catalog{
	ProviderGemini: {
		"gemini-1.5-pro",
		"gemini-1.5-flash",
		"gemini-1.0-pro",
		"gemini-1.0-pro-vision",
	},
	ProviderOpenAI: {
		"gpt-4-turbo",
		"gpt-4",
		"gpt-3.5-turbo",
		"gpt-4-vision",
	},
	ProviderClaude: {
		"claude-3-opus",
		"claude-3-sonnet",
		"claude-3-haiku",
		"claude-2.1",
		"claude-instant-1.2",
	},
	ProviderGroq: {
		"mixtral-8x7b-32768",
		"llama2-70b-4096",
		"gemma-7b-it",
	},
	ProviderOllama: {
		"llama2",
		"mistral",
		"neural-chat",
	},
	ProviderHuggingFace: {
		"meta-llama/Llama-2-7b-hf",
		"meta-llama/Llama-2-13b-hf",
		"meta-llama/Llama-2-70b-hf",
		"mistralai/Mistral-7B-Instruct-v0.1",
	},
}

// Models returns a copy of the provider's models and whether the provider exists.
func (c Catalog) Models(provider ProviderType) ([]string, bool) {
	models, ok := c[provider.Normalize()]
	if !ok {
		return nil, false
	}
	out := make([]string, len(models))
	copy(out, models)
	return out, true
}

// defaultModels is the model the gateway picks when a chat names none.
var defaultModels = map[ProviderType]string{
	ProviderGemini:      "gemini-1.5-pro",
	ProviderOpenAI:      "gpt-4-turbo",
	ProviderClaude:      "claude-3-sonnet",
	ProviderGroq:        "mixtral-8x7b-32768",
	ProviderOllama:      "mistral",
	ProviderHuggingFace: "meta-llama/Llama-2-7b-hf",
}

// DefaultModel returns the gateway's preferred model for the provider when the
// catalog lists it, otherwise the first catalog model, or "" if none.
func (c Catalog) DefaultModel(provider ProviderType) string {
	provider = provider.Normalize()
	models := c[provider]
	if len(models) == 0 {
		return ""
	}
	if preferred, ok := defaultModels[provider]; ok {
		for _, m := range models {
			if m == preferred {
				return m
			}
		}
	}
	return models[0]
}
