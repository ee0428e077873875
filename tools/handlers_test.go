package tools

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"quotebot/market"
	"quotebot/model"
	"quotebot/realtime"
)

type stubTicker struct {
	stats *market.TickerStats
	err   error
	calls []string
}

func (s *stubTicker) Ticker24h(ctx context.Context, symbol string) (*market.TickerStats, error) {
	s.calls = append(s.calls, symbol)
	return s.stats, s.err
}

type stubDetail struct {
	stats *market.Statistics
	err   error
}

func (s *stubDetail) Detail(ctx context.Context, slug string) (*market.Statistics, error) {
	return s.stats, s.err
}

type stubQuoter struct {
	price string
	ok    bool
	err   error
}

func (s *stubQuoter) IntradayClose(ctx context.Context, symbol string) (string, bool, error) {
	return s.price, s.ok, s.err
}

type stubBooks struct {
	stock string
	err   error
}

func (s *stubBooks) BookStock(ctx context.Context, isbn string) (string, error) {
	return s.stock, s.err
}

type memRecorder struct {
	records []string
}

func (m *memRecorder) Record(tool, key, value string) error {
	m.records = append(m.records, fmt.Sprintf("%s:%s=%s", tool, key, value))
	return nil
}

func collectEmits() (model.EmitFunc, *[]model.Render) {
	var renders []model.Render
	return func(r model.Render) {
		renders = append(renders, r)
	}, &renders
}

func TestCryptoPriceTool(t *testing.T) {
	tests := []struct {
		name     string
		ticker   *stubTicker
		args     map[string]any
		validate func(t *testing.T, ticker *stubTicker, recorder *memRecorder, result Result, renders []model.Render)
	}{
		{
			name: "successful lookup",
			ticker: &stubTicker{
				stats: &market.TickerStats{Symbol: "BTCUSDT", LastPrice: "69000.00000000", PriceChange: "-1200.50000000"},
			},
			args: map[string]any{"symbol": "btc"},
			validate: func(t *testing.T, ticker *stubTicker, recorder *memRecorder, result Result, renders []model.Render) {
				if len(ticker.calls) != 1 || ticker.calls[0] != "BTCUSDT" {
					t.Errorf("expected one call with BTCUSDT, got %v", ticker.calls)
				}
				if result.Summary != "[Price of BTC = 69000]" {
					t.Errorf("expected summary [Price of BTC = 69000], got %q", result.Summary)
				}
				if result.Render.Kind != model.RenderPriceCard {
					t.Fatalf("expected price card render, got kind %d", result.Render.Kind)
				}
				if result.Render.Price.Price != 69000 {
					t.Errorf("expected price 69000, got %v", result.Render.Price.Price)
				}
				if result.Render.Price.Delta != -1200.5 {
					t.Errorf("expected delta -1200.5, got %v", result.Render.Price.Delta)
				}
				if len(renders) == 0 || renders[0].Kind != model.RenderLoading {
					t.Error("expected a loading render before the result")
				}
				if len(recorder.records) != 1 {
					t.Errorf("expected one recorded lookup, got %v", recorder.records)
				}
			},
		},
		{
			name:   "upstream failure renders error without summary",
			ticker: &stubTicker{err: errors.New("status 451")},
			args:   map[string]any{"symbol": "BTC"},
			validate: func(t *testing.T, ticker *stubTicker, recorder *memRecorder, result Result, renders []model.Render) {
				if result.Summary != "" {
					t.Errorf("expected empty summary, got %q", result.Summary)
				}
				if result.Render.Kind != model.RenderError {
					t.Errorf("expected error render, got kind %d", result.Render.Kind)
				}
				if len(recorder.records) != 0 {
					t.Errorf("expected no recorded lookups, got %v", recorder.records)
				}
			},
		},
		{
			name:   "unparseable price renders error",
			ticker: &stubTicker{stats: &market.TickerStats{LastPrice: "not-a-number"}},
			args:   map[string]any{"symbol": "BTC"},
			validate: func(t *testing.T, ticker *stubTicker, recorder *memRecorder, result Result, renders []model.Render) {
				if result.Render.Kind != model.RenderError {
					t.Errorf("expected error render, got kind %d", result.Render.Kind)
				}
				if result.Summary != "" {
					t.Errorf("expected empty summary, got %q", result.Summary)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &memRecorder{}
			def := NewCryptoPriceTool(tt.ticker, recorder)
			emit, renders := collectEmits()

			result, err := def.Handler(context.Background(), tt.args, emit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, tt.ticker, recorder, result, *renders)
		})
	}
}

func TestCryptoStatsTool(t *testing.T) {
	tests := []struct {
		name     string
		detail   *stubDetail
		validate func(t *testing.T, result Result)
	}{
		{
			name: "successful lookup",
			detail: &stubDetail{
				stats: &market.Statistics{
					Rank:      1,
					Price:     69000,
					MarketCap: 1.3e12,
				},
			},
			validate: func(t *testing.T, result Result) {
				if result.Summary != "[Stats of bitcoin]" {
					t.Errorf("expected summary [Stats of bitcoin], got %q", result.Summary)
				}
				if result.Render.Kind != model.RenderStatsCard {
					t.Fatalf("expected stats card, got kind %d", result.Render.Kind)
				}
				if result.Render.Stats.Rank != 1 {
					t.Errorf("expected rank 1, got %d", result.Render.Stats.Rank)
				}
			},
		},
		{
			name:   "upstream failure",
			detail: &stubDetail{err: errors.New("boom")},
			validate: func(t *testing.T, result Result) {
				if result.Render.Kind != model.RenderError {
					t.Fatalf("expected error render, got kind %d", result.Render.Kind)
				}
				if result.Render.Text != "Crypto not found!" {
					t.Errorf("expected %q, got %q", "Crypto not found!", result.Render.Text)
				}
				if result.Summary != "" {
					t.Errorf("expected empty summary, got %q", result.Summary)
				}
			},
		},
		{
			name:   "unknown slug returns nil statistics",
			detail: &stubDetail{},
			validate: func(t *testing.T, result Result) {
				if result.Render.Kind != model.RenderError {
					t.Fatalf("expected error render, got kind %d", result.Render.Kind)
				}
				if result.Render.Text != "Crypto not found!" {
					t.Errorf("expected %q, got %q", "Crypto not found!", result.Render.Text)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := NewCryptoStatsTool(tt.detail, nil)
			emit, _ := collectEmits()

			result, err := def.Handler(context.Background(), map[string]any{"slug": "Bitcoin"}, emit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, result)
		})
	}
}

func TestStockPriceTool(t *testing.T) {
	tests := []struct {
		name     string
		quoter   *stubQuoter
		args     map[string]any
		validate func(t *testing.T, result Result)
	}{
		{
			name:   "successful quote",
			quoter: &stubQuoter{price: "427.5600", ok: true},
			args:   map[string]any{"symbol": "MSFT"},
			validate: func(t *testing.T, result Result) {
				if result.Summary != "[Price of MSFT = 427.5600]" {
					t.Errorf("expected summary with raw price string, got %q", result.Summary)
				}
				if result.Render.Kind != model.RenderPriceCard {
					t.Fatalf("expected price card, got kind %d", result.Render.Kind)
				}
				if result.Render.Price.Price != 427.56 {
					t.Errorf("expected price 427.56, got %v", result.Render.Price.Price)
				}
			},
		},
		{
			name:   "symbol defaults to MSFT",
			quoter: &stubQuoter{price: "427.5600", ok: true},
			args:   map[string]any{},
			validate: func(t *testing.T, result Result) {
				if result.Render.Price.Symbol != "MSFT" {
					t.Errorf("expected symbol MSFT, got %q", result.Render.Price.Symbol)
				}
			},
		},
		{
			name:   "no data available renders notice without summary",
			quoter: &stubQuoter{ok: false},
			args:   map[string]any{"symbol": "MSFT"},
			validate: func(t *testing.T, result Result) {
				if result.Summary != "" {
					t.Errorf("expected empty summary, got %q", result.Summary)
				}
				if result.Render.Kind != model.RenderText {
					t.Fatalf("expected text render, got kind %d", result.Render.Kind)
				}
				if result.Render.Text != "No stock data available for MSFT." {
					t.Errorf("unexpected notice text: %q", result.Render.Text)
				}
			},
		},
		{
			name:   "upstream failure renders error",
			quoter: &stubQuoter{err: errors.New("rate limited")},
			args:   map[string]any{"symbol": "MSFT"},
			validate: func(t *testing.T, result Result) {
				if result.Render.Kind != model.RenderError {
					t.Fatalf("expected error render, got kind %d", result.Render.Kind)
				}
				if result.Render.Text != "There was an error fetching the stock data." {
					t.Errorf("unexpected error text: %q", result.Render.Text)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := NewStockPriceTool(tt.quoter, nil)
			emit, _ := collectEmits()

			result, err := def.Handler(context.Background(), tt.args, emit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, result)
		})
	}
}

func TestProductDetailsTool(t *testing.T) {
	def := NewProductDetailsTool()
	emit, renders := collectEmits()

	result, err := def.Handler(context.Background(), map[string]any{"product": "Surface Pro"}, emit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary != "[Details of Surface Pro]" {
		t.Errorf("expected summary [Details of Surface Pro], got %q", result.Summary)
	}
	if result.Render.Kind != model.RenderProductCard {
		t.Fatalf("expected product card, got kind %d", result.Render.Kind)
	}
	card := result.Render.Product
	if card.Name != "Surface Pro" {
		t.Errorf("expected name Surface Pro, got %q", card.Name)
	}
	if card.Price != "$499" || card.ReleaseDate != "2024-01-01" {
		t.Errorf("unexpected card fields: price %q, release %q", card.Price, card.ReleaseDate)
	}
	if len(card.Features) != 3 {
		t.Errorf("expected 3 features, got %d", len(card.Features))
	}
	if len(*renders) == 0 || (*renders)[0].Kind != model.RenderLoading {
		t.Error("expected a loading render before the result")
	}
}

func TestBookStockTool(t *testing.T) {
	tests := []struct {
		name     string
		books    *stubBooks
		validate func(t *testing.T, result Result)
	}{
		{
			name:  "successful lookup",
			books: &stubBooks{stock: "50"},
			validate: func(t *testing.T, result Result) {
				if result.Summary != "[Stock of ISBN 9780143127741 = 50]" {
					t.Errorf("unexpected summary: %q", result.Summary)
				}
				if result.Render.Kind != model.RenderBookStockCard {
					t.Fatalf("expected book stock card, got kind %d", result.Render.Kind)
				}
				if result.Render.Book.Stock != "50" {
					t.Errorf("expected stock 50, got %q", result.Render.Book.Stock)
				}
			},
		},
		{
			name:  "no data within wait bound",
			books: &stubBooks{err: realtime.ErrNoData},
			validate: func(t *testing.T, result Result) {
				if result.Summary != "" {
					t.Errorf("expected empty summary, got %q", result.Summary)
				}
				if result.Render.Kind != model.RenderText {
					t.Fatalf("expected text render, got kind %d", result.Render.Kind)
				}
				if result.Render.Text != "No stock data available for ISBN 9780143127741" {
					t.Errorf("unexpected notice text: %q", result.Render.Text)
				}
			},
		},
		{
			name:  "connection failure renders error",
			books: &stubBooks{err: errors.New("dial tcp: connection refused")},
			validate: func(t *testing.T, result Result) {
				if result.Render.Kind != model.RenderError {
					t.Fatalf("expected error render, got kind %d", result.Render.Kind)
				}
				if result.Render.Text != "Error fetching book stock data" {
					t.Errorf("unexpected error text: %q", result.Render.Text)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := NewBookStockTool(tt.books, nil)
			emit, _ := collectEmits()

			result, err := def.Handler(context.Background(), map[string]any{"isbn": "9780143127741"}, emit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, result)
		})
	}
}
