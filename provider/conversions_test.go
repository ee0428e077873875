package provider

import (
	"testing"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"

	"quotebot/model"
)

var sampleTools = []mcptypes.Tool{
	{
		Name:        "get_crypto_price",
		Description: "Get the current price of a given cryptocurrency.",
		InputSchema: mcptypes.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"symbol": map[string]any{
					"type":        "string",
					"description": "The name or symbol of the cryptocurrency.",
				},
			},
			Required: []string{"symbol"},
		},
	},
	{
		Name:        "get_microsoft_stock",
		Description: "Get the current stock price of Microsoft.",
		InputSchema: mcptypes.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"symbol": map[string]any{
					"type":    "string",
					"default": "MSFT",
				},
			},
		},
	},
}

func TestConvertToOllamaMessages(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "price of btc?"},
		{Role: "assistant", Content: "[Price of BTC = 69000]", Name: "get_crypto_price"},
	}

	result := ConvertToOllamaMessages(messages)
	if len(result) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(result))
	}
	if result[0].Role != "system" || result[0].Content != "prompt" {
		t.Errorf("unexpected system message: %+v", result[0])
	}
	if result[2].Role != "assistant" || result[2].Content != "[Price of BTC = 69000]" {
		t.Errorf("tool summaries must travel as plain assistant text, got %+v", result[2])
	}
}

func TestConvertToAnthropicMessagesExtractsSystem(t *testing.T) {
	messages := []model.Message{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	}

	anthropicMsgs, systemBlocks := convertToAnthropicMessages(messages)

	if len(systemBlocks) != 1 || systemBlocks[0].Text != "prompt" {
		t.Errorf("expected one system block with the prompt, got %+v", systemBlocks)
	}
	if len(anthropicMsgs) != 2 {
		t.Fatalf("expected 2 conversation messages, got %d", len(anthropicMsgs))
	}
	if anthropicMsgs[0].Role != "user" {
		t.Errorf("expected user message first, got %q", anthropicMsgs[0].Role)
	}
	if anthropicMsgs[1].Role != "assistant" {
		t.Errorf("expected assistant message second, got %q", anthropicMsgs[1].Role)
	}
}

func TestParseToolArguments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(t *testing.T, args map[string]any)
	}{
		{
			name:  "valid arguments",
			input: `{"symbol":"BTC"}`,
			validate: func(t *testing.T, args map[string]any) {
				if args["symbol"] != "BTC" {
					t.Errorf("expected symbol BTC, got %v", args["symbol"])
				}
			},
		},
		{
			name:  "malformed arguments degrade to empty map",
			input: `{"symbol":`,
			validate: func(t *testing.T, args map[string]any) {
				if args == nil {
					t.Fatal("expected non-nil map")
				}
				if len(args) != 0 {
					t.Errorf("expected empty map, got %v", args)
				}
			},
		},
		{
			name:  "empty string",
			input: "",
			validate: func(t *testing.T, args map[string]any) {
				if len(args) != 0 {
					t.Errorf("expected empty map, got %v", args)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, ParseToolArguments(tt.input))
		})
	}
}

func TestConvertToolsToOpenAIFormat(t *testing.T) {
	result := ConvertToolsToOpenAIFormat(sampleTools)
	if len(result) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result))
	}

	if result[0].OfFunction == nil {
		t.Fatal("expected a function tool")
	}
	fn := result[0].OfFunction.Function
	if fn.Name != "get_crypto_price" {
		t.Errorf("expected name get_crypto_price, got %q", fn.Name)
	}
	params := fn.Parameters
	if params["type"] != "object" {
		t.Errorf("expected object schema, got %v", params["type"])
	}
	if _, ok := params["required"]; !ok {
		t.Error("expected required in first tool schema")
	}

	// Second tool has no required fields; the key must be absent.
	fn2 := result[1].OfFunction.Function
	if _, ok := fn2.Parameters["required"]; ok {
		t.Error("expected no required key for a tool without required fields")
	}

	if ConvertToolsToOpenAIFormat(nil) != nil {
		t.Error("expected nil for empty tool list")
	}
}

func TestConvertToolsToAnthropicFormat(t *testing.T) {
	result := ConvertToolsToAnthropicFormat(sampleTools)
	if len(result) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result))
	}

	tool := result[0].OfTool
	if tool == nil {
		t.Fatal("expected a tool param")
	}
	if tool.Name != "get_crypto_price" {
		t.Errorf("expected name get_crypto_price, got %q", tool.Name)
	}
	if len(tool.InputSchema.Required) != 1 {
		t.Errorf("expected 1 required field, got %v", tool.InputSchema.Required)
	}
}

func TestConvertToolsToOllamaFormat(t *testing.T) {
	result := ConvertToolsToOllamaFormat(sampleTools)
	if len(result) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result))
	}

	if result[0].Type != "function" {
		t.Errorf("expected type function, got %q", result[0].Type)
	}
	if result[0].Function.Name != "get_crypto_price" {
		t.Errorf("expected name get_crypto_price, got %q", result[0].Function.Name)
	}
	prop, ok := result[0].Function.Parameters.Properties["symbol"]
	if !ok {
		t.Fatal("expected symbol property")
	}
	if len(prop.Type) != 1 || prop.Type[0] != "string" {
		t.Errorf("expected string property type, got %v", prop.Type)
	}
}

func TestConvertFromOllamaToolCalls(t *testing.T) {
	calls := []api.ToolCall{
		{
			Function: api.ToolCallFunction{
				Name:      "get_crypto_price",
				Arguments: api.ToolCallFunctionArguments{"symbol": "BTC"},
			},
		},
	}

	result := ConvertFromOllamaToolCalls(calls)
	if len(result) != 1 {
		t.Fatalf("expected 1 call, got %d", len(result))
	}
	if result[0].Name != "get_crypto_price" {
		t.Errorf("expected name get_crypto_price, got %q", result[0].Name)
	}
	if result[0].Arguments["symbol"] != "BTC" {
		t.Errorf("expected symbol argument, got %v", result[0].Arguments)
	}

	if ConvertFromOllamaToolCalls(nil) != nil {
		t.Error("expected nil for empty call list")
	}
}
