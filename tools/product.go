package tools

import (
	"context"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"quotebot/model"
)

// NewProductDetailsTool serves mocked product details. No upstream call is
// made; the card is synthesized from the requested product name.
func NewProductDetailsTool() ToolDefinition {
	return ToolDefinition{
		Tool: mcptypes.Tool{
			Name:        "get_microsoft_product_details",
			Description: "Get the details of a specific Microsoft product. Use this to show the product details to the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"product": map[string]any{
						"type":        "string",
						"description": "The name of the Microsoft product.",
					},
				},
				Required: []string{"product"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any, emit model.EmitFunc) (Result, error) {
			product := stringArg(args, "product")

			emit(model.LoadingRender(fmt.Sprintf("Fetching details of %s...", product)))

			return Result{
				Render: model.Render{
					Kind: model.RenderProductCard,
					Product: &model.ProductCard{
						Name:        product,
						Description: fmt.Sprintf("The latest product from Microsoft - %s.", product),
						Price:       "$499",
						ReleaseDate: "2024-01-01",
						Features:    []string{"Feature 1", "Feature 2", "Feature 3"},
					},
				},
				Summary: fmt.Sprintf("[Details of %s]", product),
			}, nil
		},
	}
}
