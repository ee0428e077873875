package tools

import (
	"context"
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/config"
	"quotebot/model"
)

// NewCryptoStatsTool fetches market statistics (capitalization, volume,
// dominance) for a cryptocurrency from the market-data detail endpoint.
func NewCryptoStatsTool(detail CryptoDetail, recorder LookupRecorder) ToolDefinition {
	return ToolDefinition{
		Tool: mcptypes.Tool{
			Name:        "get_crypto_stats",
			Description: "Get the current stats of a given cryptocurrency. Use this to show the stats to the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"slug": map[string]any{
						"type":        "string",
						"description": "The full name of the cryptocurrency in lowercase. e.g. bitcoin/ethereum/solana.",
					},
				},
				Required: []string{"slug"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any, emit model.EmitFunc) (Result, error) {
			slug := strings.ToLower(stringArg(args, "slug"))

			emit(model.LoadingRender(fmt.Sprintf("Fetching stats of %s...", slug)))

			stats, err := detail.Detail(ctx, slug)
			if err != nil {
				if config.DebugLog != nil {
					config.DebugLog.Printf("[tools] crypto stats %s failed: %v", slug, err)
				}
				return Result{Render: model.ErrorRender("Crypto not found!")}, nil
			}
			if stats == nil {
				return Result{Render: model.ErrorRender("Crypto not found!")}, nil
			}

			if recorder != nil {
				_ = recorder.Record("get_crypto_stats", slug, fmt.Sprintf("marketCap=%.0f", stats.MarketCap))
			}

			return Result{
				Render: model.Render{
					Kind: model.RenderStatsCard,
					Stats: &model.StatsCard{
						Name:              slug,
						Rank:              stats.Rank,
						Price:             stats.Price,
						MarketCap:         stats.MarketCap,
						Dominance:         stats.MarketCapDominance,
						Volume:            stats.Volume,
						VolumeChange24h:   stats.VolumeChangePercentage24h,
						TotalSupply:       stats.TotalSupply,
						CirculatingSupply: stats.CirculatingSupply,
					},
				},
				Summary: fmt.Sprintf("[Stats of %s]", slug),
			}, nil
		},
	}
}
