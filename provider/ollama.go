package provider

import (
	"context"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"

	"quotebot/config"
	"quotebot/model"
	"quotebot/ollama"
)

// OllamaProvider wraps the local ollama.Client to implement the Provider
// interface, converting between quotebot types and the Ollama API types.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a provider backed by a local Ollama server.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// Chat implements Provider.Chat by delegating to ChatWithTools with no tools.
func (p *OllamaProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return p.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements Provider.ChatWithTools with type conversions on
// both sides of the stream.
func (p *OllamaProvider) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	ollamaMessages := ConvertToOllamaMessages(messages)
	ollamaTools := ollamaToolsFor(p.client.GetModel(), tools)

	return p.client.ChatWithTools(ctx, ollamaMessages, ollamaTools, func(chunk string, toolCalls []api.ToolCall) error {
		if callback == nil {
			return nil
		}
		return callback(chunk, ConvertFromOllamaToolCalls(toolCalls))
	})
}

// ollamaToolsFor converts tool schemas for the named model. Model families
// without tool-calling support reject requests that carry tool definitions,
// so the tool list is dropped for them and the turn degrades to plain text.
func ollamaToolsFor(modelName string, tools []mcptypes.Tool) []api.Tool {
	if len(tools) == 0 {
		return nil
	}
	if !ollama.ModelSupportsToolCalling(modelName) {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[provider] model %s does not support tool calling, sending without tools", modelName)
		}
		return nil
	}
	return ConvertToolsToOllamaFormat(tools)
}

// ListModels implements Provider.ListModels.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return p.client.ListModels(ctx)
}

func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

func (p *OllamaProvider) SetModel(model string) {
	p.client.SetModel(model)
}

// Ping implements Provider.Ping.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
