package tools

import (
	"context"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/config"
	"quotebot/model"
)

// Registry keeps the mapping between tool names and definitions. It is built
// once at startup from the configured enabled-tool set and read-only after
// that, so no locking is needed.
type Registry struct {
	order []string
	tools map[string]ToolDefinition
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]ToolDefinition),
	}
}

// Register inserts a tool when its name is not in use.
func (r *Registry) Register(def ToolDefinition) error {
	name := def.Tool.Name
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %s has no handler", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}

	r.order = append(r.order, name)
	r.tools[name] = def
	return nil
}

// List returns the advertised tool schemas in registration order.
func (r *Registry) List() []mcptypes.Tool {
	result := make([]mcptypes.Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name].Tool)
	}
	return result
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Dispatch validates args against the named tool's input schema and invokes
// its handler. Exactly one handler runs per call; validation failures are
// reported before any handler side effect.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any, emit model.EmitFunc) (Result, error) {
	def, exists := r.tools[name]
	if !exists {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if args == nil {
		args = make(map[string]any)
	}
	if err := validateArgs(args, def.Tool.InputSchema); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrInvalidArguments, name, err)
	}

	if emit == nil {
		emit = func(model.Render) {}
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[tools] dispatching %s with args %v", name, args)
	}

	return def.Handler(ctx, args, emit)
}
