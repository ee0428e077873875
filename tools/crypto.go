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

// NewCryptoPriceTool fetches the current spot price of a cryptocurrency from
// the exchange's 24h ticker endpoint.
func NewCryptoPriceTool(ticker CryptoTicker, recorder LookupRecorder) ToolDefinition {
	return ToolDefinition{
		Tool: mcptypes.Tool{
			Name:        "get_crypto_price",
			Description: "Get the current price of a given cryptocurrency. Use this to show the price to the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"symbol": map[string]any{
						"type":        "string",
						"description": "The name or symbol of the cryptocurrency. e.g. BTC/ETH/SOL.",
					},
				},
				Required: []string{"symbol"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any, emit model.EmitFunc) (Result, error) {
			symbol := strings.ToUpper(stringArg(args, "symbol"))

			emit(model.LoadingRender(fmt.Sprintf("Fetching price of %s...", symbol)))

			stats, err := ticker.Ticker24h(ctx, symbol+"USDT")
			if err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[tools] crypto price %s failed: %v", symbol, err)
				}
				return Result{Render: model.ErrorRender(fmt.Sprintf("Could not fetch the price of %s.", symbol))}, nil
			}

			price, perr := strconv.ParseFloat(stats.LastPrice, 64)
			if perr != nil {
				return Result{Render: model.ErrorRender(fmt.Sprintf("Could not fetch the price of %s.", symbol))}, nil
			}
			delta, _ := strconv.ParseFloat(stats.PriceChange, 64)

			if recorder != nil {
				_ = recorder.Record("get_crypto_price", symbol, stats.LastPrice)
			}

			return Result{
				Render: model.Render{
					Kind:  model.RenderPriceCard,
					Price: &model.PriceCard{Symbol: symbol, Price: price, Delta: delta},
				},
				Summary: fmt.Sprintf("[Price of %s = %s]", symbol, formatPrice(price)),
			}, nil
		},
	}
}

// formatPrice prints a price without trailing zeros so summaries replayed to
// the model stay compact ("69000", not "69000.000000").
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
