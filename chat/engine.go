package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"quotebot/config"
	"quotebot/model"
	"quotebot/tools"
)

// bookCommandPrefix is the reserved command prefix that bypasses the LLM
// provider and dispatches the book-stock tool directly.
const bookCommandPrefix = "/book "

// Engine is the orchestration loop: it converts one user utterance plus the
// full transcript into exactly one appended assistant turn, forwarding
// interim renders to the caller while tool work is in flight.
type Engine struct {
	provider model.Provider
	registry *tools.Registry
	session  *Session
}

func NewEngine(provider model.Provider, registry *tools.Registry, session *Session) *Engine {
	return &Engine{
		provider: provider,
		registry: registry,
		session:  session,
	}
}

func (e *Engine) Session() *Session {
	return e.session
}

// SendMessage processes one user turn. The user message is appended to the
// transcript, the provider is invoked with the synthesized system prompt,
// the transcript and the registry's tool schemas, and the resulting render
// stream is forwarded through emit in emission order. The returned turn
// carries the terminal render, which supersedes every interim emission.
//
// No failure aborts the turn: provider and tool errors are converted to
// error renders and the conversation continues on the next turn.
func (e *Engine) SendMessage(ctx context.Context, text string, emit model.EmitFunc) (model.Turn, error) {
	if emit == nil {
		emit = func(model.Render) {}
	}

	e.session.Append(model.Message{Role: "user", Content: text})

	var final model.Render
	if isbn, ok := parseBookCommand(text); ok {
		final = e.runTool(ctx, model.ToolCall{
			Name:      "get_book_stock",
			Arguments: map[string]any{"isbn": isbn},
		}, emit)
	} else {
		final = e.runModel(ctx, emit)
	}

	emit(final)

	return model.Turn{
		ID:     uuid.New().String(),
		Role:   "assistant",
		Render: final,
	}, nil
}

// runModel sends the transcript to the provider and follows whichever branch
// the model takes: streamed plain text or a tool selection.
func (e *Engine) runModel(ctx context.Context, emit model.EmitFunc) model.Render {
	systemPrompt := buildSystemPrompt(e.registry.Names())
	messages := buildProviderMessages(systemPrompt, e.session.Messages())

	var content strings.Builder
	var selected *model.ToolCall

	err := e.provider.ChatWithTools(ctx, messages, e.registry.List(), func(chunk string, toolCalls []model.ToolCall) error {
		// First reported tool call wins: a single tool runs per turn.
		if len(toolCalls) > 0 && selected == nil {
			tc := toolCalls[0]
			selected = &tc
			return nil
		}
		if chunk != "" && selected == nil {
			content.WriteString(chunk)
			emit(model.TextRender(content.String()))
		}
		return nil
	})
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[chat] provider call failed: %v", err)
		}
		return model.ErrorRender("There was an error talking to the assistant. Please try again.")
	}

	if selected != nil {
		return e.runTool(ctx, *selected, emit)
	}

	full := content.String()
	e.session.Append(model.Message{Role: "assistant", Content: full})
	return model.TextRender(full)
}

// runTool dispatches one tool invocation and folds its outcome back into the
// transcript. A nonempty summary is the handler's success signal; failed
// invocations already carry an error render and leave the transcript with no
// assistant append.
func (e *Engine) runTool(ctx context.Context, call model.ToolCall, emit model.EmitFunc) model.Render {
	result, err := e.registry.Dispatch(ctx, call.Name, call.Arguments, emit)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[chat] dispatch %s failed: %v", call.Name, err)
		}
		return model.ErrorRender("I could not run that tool. Please try again.")
	}

	if result.Summary != "" {
		e.session.Append(model.Message{
			Role:    "assistant",
			Name:    call.Name,
			Content: result.Summary,
		})
	}

	return result.Render
}

// parseBookCommand recognizes the "/book <isbn>" bypass.
func parseBookCommand(text string) (isbn string, ok bool) {
	if !strings.HasPrefix(text, bookCommandPrefix) {
		return "", false
	}
	isbn = strings.TrimSpace(strings.TrimPrefix(text, bookCommandPrefix))
	if isbn == "" {
		return "", false
	}
	return isbn, true
}
