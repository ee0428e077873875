// Package market implements the REST clients behind the lookup tools:
// Binance 24h ticker stats, CoinMarketCap cryptocurrency detail and
// AlphaVantage intraday stock quotes.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"quotebot/config"
)

const defaultTimeout = 20 * time.Second

// TickerStats is the subset of Binance's 24hr ticker response the price tool
// consumes. Prices arrive as decimal strings on the wire.
type TickerStats struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	PriceChange string `json:"priceChange"`
}

// BinanceClient fetches 24-hour ticker statistics from the exchange REST API.
type BinanceClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewBinanceClient creates a client for the public exchange API. baseURL
// overrides the production endpoint for tests; pass "" for the default.
func NewBinanceClient(baseURL, apiKey, apiSecret string) *BinanceClient {
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	return &BinanceClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Ticker24h fetches 24-hour change statistics for a trading pair symbol
// such as "BTCUSDT".
func (c *BinanceClient) Ticker24h(ctx context.Context, symbol string) (*TickerStats, error) {
	u := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ticker request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if config.DebugLog != nil {
			config.DebugLog.Printf("[market] binance %s -> %d: %s", symbol, resp.StatusCode, body)
		}
		return nil, fmt.Errorf("ticker request returned status %d", resp.StatusCode)
	}

	var stats TickerStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode ticker response: %w", err)
	}

	return &stats, nil
}
