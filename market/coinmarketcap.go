package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"quotebot/config"
)

// Statistics is the statistics object returned by the market-data detail
// endpoint, forwarded near-verbatim to the stats card.
type Statistics struct {
	Rank                      int     `json:"rank"`
	Price                     float64 `json:"price"`
	MarketCap                 float64 `json:"marketCap"`
	MarketCapDominance        float64 `json:"marketCapDominance"`
	Volume                    float64 `json:"volume"`
	VolumeChangePercentage24h float64 `json:"volumeChangePercentage24h"`
	TotalSupply               float64 `json:"totalSupply"`
	CirculatingSupply         float64 `json:"circulatingSupply"`
	PriceChangePercentage24h  float64 `json:"priceChangePercentage24h"`
	FullyDilutedMarketCap     float64 `json:"fullyDilutedMarketCap"`
}

type detailResponse struct {
	Data struct {
		Statistics *Statistics `json:"statistics"`
	} `json:"data"`
}

// CoinMarketCapClient fetches cryptocurrency detail from the market-data
// REST API.
type CoinMarketCapClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewCoinMarketCapClient(baseURL, apiKey string) *CoinMarketCapClient {
	if baseURL == "" {
		baseURL = "https://api.coinmarketcap.com"
	}
	return &CoinMarketCapClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Detail fetches the statistics block for a cryptocurrency identified by its
// lowercase slug ("bitcoin", "ethereum"). A well-formed response without a
// statistics object yields (nil, nil): that is the defined no-data outcome,
// not an error.
func (c *CoinMarketCapClient) Detail(ctx context.Context, slug string) (*Statistics, error) {
	q := url.Values{}
	q.Set("slug", slug)
	q.Set("limit", "1")
	q.Set("sortBy", "market_cap")
	u := fmt.Sprintf("%s/data-api/v3/cryptocurrency/detail?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build detail request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if config.DebugLog != nil {
			config.DebugLog.Printf("[market] coinmarketcap %s -> %d: %s", slug, resp.StatusCode, body)
		}
		return nil, fmt.Errorf("detail request returned status %d", resp.StatusCode)
	}

	var detail detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode detail response: %w", err)
	}

	return detail.Data.Statistics, nil
}
