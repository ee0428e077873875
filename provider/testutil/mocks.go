// Package testutil provides mock providers for testing the chat engine
// without a live LLM endpoint.
package testutil

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/model"
	"quotebot/ollama"
)

// MockProvider implements model.Provider for testing. Behavior is
// configurable per test through the function fields.
type MockProvider struct {
	ChatFunc          func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error
	ChatWithToolsFunc func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error
	ListModelsFunc    func(ctx context.Context) ([]ollama.ModelInfo, error)
	PingFunc          func(ctx context.Context) error

	// Calls counts ChatWithTools invocations, letting tests assert the
	// provider was bypassed.
	Calls int

	currentModel string
}

// NewMockProvider creates a mock with default implementations: a single
// "Mock response" chunk and no tool calls.
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{currentModel: modelName}
	mock.ChatWithToolsFunc = mock.defaultChatWithTools
	mock.ListModelsFunc = mock.defaultListModels
	return mock
}

// StreamText configures the mock to stream the given chunks as plain text.
func (m *MockProvider) StreamText(chunks ...string) {
	m.ChatWithToolsFunc = func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
		for _, chunk := range chunks {
			if err := callback(chunk, nil); err != nil {
				return err
			}
		}
		return nil
	}
}

// SelectTool configures the mock to emit one tool selection.
func (m *MockProvider) SelectTool(name string, args map[string]any) {
	m.ChatWithToolsFunc = func(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
		return callback("", []model.ToolCall{{Name: name, Arguments: args}})
	}
}

func (m *MockProvider) defaultChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	return callback("Mock response", nil)
}

func (m *MockProvider) defaultListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return []ollama.ModelInfo{
		{Name: "mock-model-1", InternalName: "mock-model-1", Provider: "mock"},
	}, nil
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages, callback)
	}
	return m.ChatWithTools(ctx, messages, nil, callback)
}

func (m *MockProvider) ChatWithTools(ctx context.Context, messages []model.Message, tools []mcptypes.Tool, callback model.StreamCallback) error {
	m.Calls++
	return m.ChatWithToolsFunc(ctx, messages, tools, callback)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func (m *MockProvider) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
