package tools

import (
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// validateArgs checks raw arguments against a tool input schema: required
// fields must be present and typed properties must hold the declared
// primitive type. Properties carrying a "default" value are filled in when
// absent, so handlers always see a complete argument map.
func validateArgs(args map[string]any, schema mcptypes.ToolInputSchema) error {
	for name, prop := range schema.Properties {
		propMap, ok := prop.(map[string]any)
		if !ok {
			continue
		}
		if _, present := args[name]; !present {
			if def, hasDefault := propMap["default"]; hasDefault {
				args[name] = def
			}
		}
	}

	for _, field := range schema.Required {
		if _, exists := args[field]; !exists {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	for key, value := range args {
		prop, ok := schema.Properties[key]
		if !ok {
			continue
		}
		propMap, ok := prop.(map[string]any)
		if !ok {
			continue
		}
		expected, ok := propMap["type"].(string)
		if !ok {
			continue
		}
		if err := checkType(value, expected); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}

	return nil
}

func checkType(value any, expected string) error {
	switch expected {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number":
		switch value.(type) {
		case float64, float32, int, int64:
		default:
			return fmt.Errorf("expected number, got %T", value)
		}
	case "integer":
		switch v := value.(type) {
		case int, int64:
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("expected array, got %T", value)
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	}
	return nil
}
