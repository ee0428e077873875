package tools

import (
	"context"
	"errors"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/config"
	"quotebot/model"
	"quotebot/realtime"
)

// NewBookStockTool fetches live book stock over the realtime messaging
// service. The lookup owns its connection for a single request/response
// cycle; the realtime client guarantees it is closed on every path.
func NewBookStockTool(books BookStocker, recorder LookupRecorder) ToolDefinition {
	return ToolDefinition{
		Tool: mcptypes.Tool{
			Name:        "get_book_stock",
			Description: "Get the current stock of a specific book. Use this to show the availability of a book to the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"isbn": map[string]any{
						"type":        "string",
						"description": "The ISBN of the book to query.",
					},
				},
				Required: []string{"isbn"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any, emit model.EmitFunc) (Result, error) {
			isbn := stringArg(args, "isbn")

			emit(model.LoadingRender(fmt.Sprintf("Checking stock for ISBN %s...", isbn)))

			stock, err := books.BookStock(ctx, isbn)
			if err != nil {
				if errors.Is(err, realtime.ErrNoData) {
					return Result{Render: model.TextRender(fmt.Sprintf("No stock data available for ISBN %s", isbn))}, nil
				}
				if config.DebugLog != nil {
					config.DebugLog.Printf("[tools] book stock %s failed: %v", isbn, err)
				}
				return Result{Render: model.ErrorRender("Error fetching book stock data")}, nil
			}

			if recorder != nil {
				_ = recorder.Record("get_book_stock", isbn, stock)
			}

			return Result{
				Render: model.Render{
					Kind: model.RenderBookStockCard,
					Book: &model.BookStockCard{ISBN: isbn, Stock: stock},
				},
				Summary: fmt.Sprintf("[Stock of ISBN %s = %s]", isbn, stock),
			}, nil
		},
	}
}
