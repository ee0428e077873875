package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/config"
	"quotebot/model"
)

// NewStockPriceTool fetches the most recent intraday closing price for a
// stock symbol. The tool keeps its original wire name; the symbol argument
// defaults to MSFT when the model omits it.
func NewStockPriceTool(quoter StockQuoter, recorder LookupRecorder) ToolDefinition {
	return ToolDefinition{
		Tool: mcptypes.Tool{
			Name:        "get_microsoft_stock",
			Description: "Get the current stock price of Microsoft. Use this to show the price to the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"symbol": map[string]any{
						"type":        "string",
						"default":     "MSFT",
						"description": "The stock symbol for Microsoft, e.g., MSFT.",
					},
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any, emit model.EmitFunc) (Result, error) {
			symbol := strings.ToUpper(stringArg(args, "symbol"))
			if symbol == "" {
				symbol = "MSFT"
			}

			emit(model.LoadingRender(fmt.Sprintf("Fetching stock price of %s...", symbol)))

			priceStr, ok, err := quoter.IntradayClose(ctx, symbol)
			if err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[tools] stock quote %s failed: %v", symbol, err)
				}
				return Result{Render: model.ErrorRender("There was an error fetching the stock data.")}, nil
			}
			if !ok {
				// Absent time series is a defined no-data outcome: render a
				// notice, append nothing.
				return Result{Render: model.TextRender(fmt.Sprintf("No stock data available for %s.", symbol))}, nil
			}

			price, perr := strconv.ParseFloat(priceStr, 64)
			if perr != nil {
				return Result{Render: model.ErrorRender("There was an error fetching the stock data.")}, nil
			}

			if recorder != nil {
				_ = recorder.Record("get_microsoft_stock", symbol, priceStr)
			}

			return Result{
				Render: model.Render{
					Kind:  model.RenderPriceCard,
					Price: &model.PriceCard{Symbol: symbol, Price: price},
				},
				Summary: fmt.Sprintf("[Price of %s = %s]", symbol, priceStr),
			}, nil
		},
	}
}
