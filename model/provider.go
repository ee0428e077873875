package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/ollama"
)

// Provider abstracts LLM provider implementations (OpenAI, Anthropic, Ollama)
// using provider-agnostic types from the model layer.
//
// The interface lives in the model package (not provider) to avoid import
// cycles: provider implementations import model, and the chat engine can use
// the Provider interface without importing the provider package.
type Provider interface {
	// Chat sends messages and streams responses back via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages with available tools and streams responses.
	// Tool selections reported by the remote model arrive through the callback.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error

	// ListModels returns available models for this provider.
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each chunk of streamed response. A nonempty
// chunk carries incremental assistant text; a non-nil toolCalls slice carries
// the model's tool selection with parsed arguments.
type StreamCallback func(chunk string, toolCalls []ToolCall) error

// ToolCall is a provider-agnostic tool selection made by the model.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}
