// Package provider implements the model.Provider interface for the LLM
// vendors quotebot can talk to: OpenAI (default), Anthropic and a local
// Ollama server. The chat engine stays provider-agnostic; this package owns
// every conversion between quotebot's core types and each vendor's SDK
// types, including the tool schema formats.
//
// All providers pin temperature to zero so tool selection is deterministic
// for a given transcript and tool schema.
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
	// OpenRouter is OpenAI-compatible; the factory maps it onto the OpenAI
	// provider with a different base URL.
	ProviderTypeOpenRouter ProviderType = "openrouter"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}
