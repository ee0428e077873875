// Package tools implements the fixed tool registry advertised to the LLM
// provider and dispatched by the chat engine. Tool schemas are expressed as
// MCP tool definitions so the provider layer can convert them to each
// vendor's wire format with one code path.
package tools

import (
	"context"
	"errors"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/model"
)

var (
	// ErrUnknownTool is returned by Dispatch when the named tool is not
	// registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidArguments is returned by Dispatch when the raw arguments do
	// not satisfy the tool's input schema.
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// Result is the outcome of one tool invocation. Summary is nonempty only on
// success; it is the short bracketed text (e.g. "[Price of BTC = 69000]")
// appended to the transcript in place of the render, and is what the LLM
// sees on future turns. Failed invocations carry an error render and an
// empty summary, leaving the transcript untouched.
type Result struct {
	Render  model.Render
	Summary string
}

// HandlerFunc executes one tool invocation. Implementations may emit zero or
// more interim renders (e.g. a loading placeholder) before returning the
// final render. Upstream failures are converted to error renders, never
// returned as errors; the returned error is reserved for caller misuse and
// context cancellation.
type HandlerFunc func(ctx context.Context, args map[string]any, emit model.EmitFunc) (Result, error)

// ToolDefinition pairs an advertised tool schema with its local handler.
// Definitions are constructed once at startup and immutable thereafter.
type ToolDefinition struct {
	Tool    mcptypes.Tool
	Handler HandlerFunc
}

// LookupRecorder receives one record per successful tool fetch. Implemented
// by storage.HistoryStore; a nil recorder disables recording.
type LookupRecorder interface {
	Record(tool, key, value string) error
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
