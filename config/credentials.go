package config

import (
	"fmt"
	"os"
	"strings"
)

// Credentials is the full credential surface read from the environment at
// startup. Credentials are never persisted to disk and never embedded in
// code; a missing credential for an enabled tool or the selected provider
// aborts startup.
type Credentials struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string

	BinanceAPIKey    string
	BinanceAPISecret string
	CMCAPIKey        string
	AlphaVantageKey  string

	RealtimeAPIKey      string
	RealtimeProjectID   string
	RealtimeOrgID       string
	RealtimeBearerToken string
}

// LoadCredentials reads every known credential variable. Validation against
// the enabled feature set happens separately in Validate.
func LoadCredentials() *Credentials {
	return &Credentials{
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		BinanceAPIKey:       os.Getenv("BINANCE_API_KEY"),
		BinanceAPISecret:    os.Getenv("BINANCE_API_SECRET"),
		CMCAPIKey:           os.Getenv("CMC_API_KEY"),
		AlphaVantageKey:     os.Getenv("AV_API_KEY"),
		RealtimeAPIKey:      os.Getenv("AI12Z_API_KEY"),
		RealtimeProjectID:   os.Getenv("AI12Z_PROJECT_ID"),
		RealtimeOrgID:       os.Getenv("AI12Z_ORG_ID"),
		RealtimeBearerToken: os.Getenv("AI12Z_BEARER_TOKEN"),
	}
}

// requirement maps one credential field to the env var naming it and the
// feature that needs it.
type requirement struct {
	envVar  string
	value   string
	feature string
}

// Validate fails fast when any credential required by the selected provider
// or an enabled tool is missing. The error names every missing variable at
// once so the user fixes the environment in one pass.
func (c *Credentials) Validate(cfg *Config) error {
	var required []requirement

	switch cfg.ProviderType {
	case "openai", "openrouter":
		required = append(required, requirement{"OPENAI_API_KEY", c.OpenAIAPIKey, "the OpenAI provider"})
	case "anthropic":
		required = append(required, requirement{"ANTHROPIC_API_KEY", c.AnthropicAPIKey, "the Anthropic provider"})
	case "ollama":
		// Local provider, no credential.
	default:
		return fmt.Errorf("unknown provider type: %s", cfg.ProviderType)
	}

	if cfg.ToolEnabled("get_crypto_price") {
		required = append(required,
			requirement{"BINANCE_API_KEY", c.BinanceAPIKey, "the crypto price tool"},
			requirement{"BINANCE_API_SECRET", c.BinanceAPISecret, "the crypto price tool"},
		)
	}
	if cfg.ToolEnabled("get_crypto_stats") {
		required = append(required, requirement{"CMC_API_KEY", c.CMCAPIKey, "the crypto stats tool"})
	}
	if cfg.ToolEnabled("get_microsoft_stock") {
		required = append(required, requirement{"AV_API_KEY", c.AlphaVantageKey, "the stock quote tool"})
	}
	if cfg.ToolEnabled("get_book_stock") {
		required = append(required,
			requirement{"AI12Z_API_KEY", c.RealtimeAPIKey, "the book stock tool"},
			requirement{"AI12Z_PROJECT_ID", c.RealtimeProjectID, "the book stock tool"},
			requirement{"AI12Z_ORG_ID", c.RealtimeOrgID, "the book stock tool"},
			requirement{"AI12Z_BEARER_TOKEN", c.RealtimeBearerToken, "the book stock tool"},
		)
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, fmt.Sprintf("%s (needed by %s)", r.envVar, r.feature))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required credentials:\n  %s", strings.Join(missing, "\n  "))
	}

	return nil
}
