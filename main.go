package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quotebot/chat"
	"quotebot/config"
	"quotebot/market"
	"quotebot/model"
	"quotebot/provider"
	"quotebot/realtime"
	"quotebot/storage"
	"quotebot/tools"
	"quotebot/ui"
)

const Version = "v0.01.00"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	// Fail fast on credentials: every missing variable for the selected
	// provider and enabled tools is reported in one pass.
	creds := config.LoadCredentials()
	if err := creds.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	historyStore, err := storage.NewHistoryStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize lookup history: %v\n", err)
		os.Exit(1)
	}
	defer historyStore.Close()

	registry, err := buildRegistry(cfg, creds, historyStore)
	if err != nil {
		fmt.Printf("Failed to build tool registry: %v\n", err)
		os.Exit(1)
	}

	llm, err := provider.NewProvider(provider.Config{
		Type:    provider.MapProviderIDToType(cfg.ProviderType),
		BaseURL: providerBaseURL(cfg),
		Model:   cfg.Model,
		APIKey:  providerAPIKey(cfg, creds),
	})
	if err != nil {
		fmt.Printf("Failed to initialize provider: %v\n", err)
		os.Exit(1)
	}

	if err := pingProvider(llm); err != nil {
		fmt.Fprintf(os.Stderr, "Provider %s is not reachable: %v\n", cfg.ProviderType, err)
		os.Exit(1)
	}

	// Providers normalize an empty model name to their default; reflect that
	// in the title bar and session metadata.
	cfg.Model = llm.GetModel()

	session := chat.NewSession("New Session")
	if last, err := sessionStorage.LoadLast(); err == nil && last != nil {
		session.ID = last.ID
		session.Name = last.Name
		session.CreatedAt = last.CreatedAt
		session.Restore(archivedMessages(last))
	}

	engine := chat.NewEngine(llm, registry, session)

	p := tea.NewProgram(
		ui.NewAppView(cfg, engine, sessionStorage),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running quotebot: %v\n", err)
		os.Exit(1)
	}
}

// buildRegistry wires the enabled tools to their upstream clients.
func buildRegistry(cfg *config.Config, creds *config.Credentials, recorder tools.LookupRecorder) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	binance := market.NewBinanceClient("", creds.BinanceAPIKey, creds.BinanceAPISecret)
	cmc := market.NewCoinMarketCapClient("", creds.CMCAPIKey)
	av := market.NewAlphaVantageClient("", creds.AlphaVantageKey)
	books := realtime.NewClient(cfg.RealtimeURL, realtime.Credentials{
		APIKey:         creds.RealtimeAPIKey,
		ProjectID:      creds.RealtimeProjectID,
		OrganizationID: creds.RealtimeOrgID,
		BearerToken:    creds.RealtimeBearerToken,
	}, cfg.RealtimeWait)

	available := map[string]tools.ToolDefinition{
		"get_crypto_price":              tools.NewCryptoPriceTool(binance, recorder),
		"get_crypto_stats":              tools.NewCryptoStatsTool(cmc, recorder),
		"get_microsoft_stock":           tools.NewStockPriceTool(av, recorder),
		"get_microsoft_product_details": tools.NewProductDetailsTool(),
		"get_book_stock":                tools.NewBookStockTool(books, recorder),
	}

	for _, name := range cfg.EnabledTools {
		def, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool in config: %s", name)
		}
		if err := registry.Register(def); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// pingProvider verifies the configured provider is reachable before the TUI
// takes over the terminal, so connection problems surface as a plain error.
func pingProvider(p model.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return p.Ping(ctx)
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.ProviderType == "ollama" {
		return cfg.OllamaHost
	}
	return cfg.BaseURL
}

func providerAPIKey(cfg *config.Config, creds *config.Credentials) string {
	switch cfg.ProviderType {
	case "anthropic":
		return creds.AnthropicAPIKey
	default:
		return creds.OpenAIAPIKey
	}
}

func archivedMessages(archived *storage.Session) []model.Message {
	msgs := make([]model.Message, 0, len(archived.Messages))
	for _, m := range archived.Messages {
		msgs = append(msgs, model.Message{
			Role:      m.Role,
			Name:      m.Name,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return msgs
}
