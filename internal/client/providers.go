package client

import (
	"context"

	"github.com/hpn/ai-gateway-client/internal/domain"
)

// ChatGemini chats with Gemini (Google).
func (c *GatewayClient) ChatGemini(ctx context.Context, message string, opts ...ChatOption) Result[ChatResponse] {
	return c.Chat(ctx, domain.ProviderGemini, message, opts...)
}

// ChatOpenAI chats with OpenAI.
func (c *GatewayClient) ChatOpenAI(ctx context.Context, message string, opts ...ChatOption) Result[ChatResponse] {
	return c.Chat(ctx, domain.ProviderOpenAI, message, opts...)
}

// ChatClaude chats with Claude (Anthropic).
func (c *GatewayClient) ChatClaude(ctx context.Context, message string, opts ...ChatOption) Result[ChatResponse] {
	return c.Chat(ctx, domain.ProviderClaude, message, opts...)
}

// ChatGroq chats with Groq.
func (c *GatewayClient) ChatGroq(ctx context.Context, message string, opts ...ChatOption) Result[ChatResponse] {
	return c.Chat(ctx, domain.ProviderGroq, message, opts...)
}

// ChatOllama chats with a local Ollama.
func (c *GatewayClient) ChatOllama(ctx context.Context, message string, opts ...ChatOption) Result[ChatResponse] {
	return c.Chat(ctx, domain.ProviderOllama, message, opts...)
}

// ChatHuggingFace chats with HuggingFace.
func (c *GatewayClient) ChatHuggingFace(ctx context.Context, message string, opts ...ChatOption) Result[ChatResponse] {
	return c.Chat(ctx, domain.ProviderHuggingFace, message, opts...)
}
