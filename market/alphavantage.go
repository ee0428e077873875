package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"quotebot/config"
)

// AlphaVantageClient fetches intraday stock quotes from the stock-quote
// REST API.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(baseURL, apiKey string) *AlphaVantageClient {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	return &AlphaVantageClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// IntradayClose returns the most recent 5-minute closing price for a stock
// symbol. A response without the "Time Series (5min)" key is the defined
// no-data outcome and returns ok=false with a nil error.
func (c *AlphaVantageClient) IntradayClose(ctx context.Context, symbol string) (price string, ok bool, err error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", "5min")
	q.Set("apikey", c.apiKey)
	u := fmt.Sprintf("%s/query?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[market] alphavantage %s -> %d", symbol, resp.StatusCode)
		}
		return "", false, fmt.Errorf("quote request returned status %d", resp.StatusCode)
	}

	var payload struct {
		TimeSeries map[string]struct {
			Close string `json:"4. close"`
		} `json:"Time Series (5min)"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if len(payload.TimeSeries) == 0 {
		return "", false, nil
	}

	// Timestamps are "2006-01-02 15:04:05" strings; lexicographic order is
	// chronological, so the latest entry has the greatest key.
	timestamps := make([]string, 0, len(payload.TimeSeries))
	for ts := range payload.TimeSeries {
		timestamps = append(timestamps, ts)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(timestamps)))

	return payload.TimeSeries[timestamps[0]].Close, true, nil
}
