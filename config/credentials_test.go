package config

import (
	"strings"
	"testing"
)

func fullCredentials() *Credentials {
	return &Credentials{
		OpenAIAPIKey:        "openai",
		AnthropicAPIKey:     "anthropic",
		BinanceAPIKey:       "binance",
		BinanceAPISecret:    "binance-secret",
		CMCAPIKey:           "cmc",
		AlphaVantageKey:     "av",
		RealtimeAPIKey:      "rt",
		RealtimeProjectID:   "rt-project",
		RealtimeOrgID:       "rt-org",
		RealtimeBearerToken: "rt-token",
	}
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Credentials)
		cfg         *Config
		wantMissing []string
	}{
		{
			name: "all present",
			cfg:  &Config{ProviderType: "openai", EnabledTools: DefaultTools},
		},
		{
			name:   "missing provider key",
			mutate: func(c *Credentials) { c.OpenAIAPIKey = "" },
			cfg:    &Config{ProviderType: "openai", EnabledTools: nil},
			wantMissing: []string{
				"OPENAI_API_KEY",
			},
		},
		{
			name: "all missing variables reported at once",
			mutate: func(c *Credentials) {
				c.BinanceAPIKey = ""
				c.BinanceAPISecret = ""
				c.CMCAPIKey = ""
			},
			cfg: &Config{ProviderType: "openai", EnabledTools: DefaultTools},
			wantMissing: []string{
				"BINANCE_API_KEY",
				"BINANCE_API_SECRET",
				"CMC_API_KEY",
			},
		},
		{
			name:   "disabled tool needs no credential",
			mutate: func(c *Credentials) { c.CMCAPIKey = "" },
			cfg: &Config{
				ProviderType: "openai",
				EnabledTools: []string{"get_crypto_price", "get_microsoft_product_details"},
			},
		},
		{
			name:   "ollama needs no provider key",
			mutate: func(c *Credentials) { c.OpenAIAPIKey = "" },
			cfg:    &Config{ProviderType: "ollama", EnabledTools: nil},
		},
		{
			name:   "anthropic provider checks anthropic key",
			mutate: func(c *Credentials) { c.AnthropicAPIKey = "" },
			cfg:    &Config{ProviderType: "anthropic", EnabledTools: nil},
			wantMissing: []string{
				"ANTHROPIC_API_KEY",
			},
		},
		{
			name: "book tool needs the full realtime credential set",
			mutate: func(c *Credentials) {
				c.RealtimeProjectID = ""
				c.RealtimeBearerToken = ""
			},
			cfg: &Config{ProviderType: "openai", EnabledTools: []string{"get_book_stock"}},
			wantMissing: []string{
				"AI12Z_PROJECT_ID",
				"AI12Z_BEARER_TOKEN",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := fullCredentials()
			if tt.mutate != nil {
				tt.mutate(creds)
			}

			err := creds.Validate(tt.cfg)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("expected valid credentials, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected an error for missing credentials")
			}
			for _, name := range tt.wantMissing {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("expected error to name %s, got: %v", name, err)
				}
			}
		})
	}
}

func TestCredentialsValidateUnknownProvider(t *testing.T) {
	creds := fullCredentials()
	err := creds.Validate(&Config{ProviderType: "mystery"})
	if err == nil {
		t.Fatal("expected an error for an unknown provider type")
	}
}

func TestToolEnabled(t *testing.T) {
	cfg := &Config{EnabledTools: []string{"get_crypto_price", "get_book_stock"}}

	if !cfg.ToolEnabled("get_crypto_price") {
		t.Error("expected get_crypto_price enabled")
	}
	if cfg.ToolEnabled("get_microsoft_stock") {
		t.Error("expected get_microsoft_stock disabled")
	}
}
