package ollama

import "testing"

func TestModelSupportsToolCalling(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"llama3.1:8b", true},
		{"llama3.2:latest", true},
		{"qwen2.5:14b", true},
		{"mistral:7b", true},
		{"Llama3.1:8b", true}, // case-insensitive

		{"llama3:8b", false}, // original llama3 predates tool calling
		{"llama3-gradient:8b", false},
		{"phi3:mini", false},
		{"gemma2:9b", false},
		{"codellama:13b", false},
		{"unknown-model", false},
	}

	for _, tt := range tests {
		if got := ModelSupportsToolCalling(tt.model); got != tt.want {
			t.Errorf("ModelSupportsToolCalling(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
