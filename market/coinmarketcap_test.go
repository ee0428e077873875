package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCoinMarketCapDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data-api/v3/cryptocurrency/detail" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("slug") != "bitcoin" || q.Get("limit") != "1" || q.Get("sortBy") != "market_cap" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-CMC_PRO_API_KEY") != "test-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-CMC_PRO_API_KEY"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"statistics":{
			"rank":1,
			"price":69000.12,
			"marketCap":1360000000000,
			"marketCapDominance":52.3,
			"volume":31000000000,
			"volumeChangePercentage24h":-4.2,
			"totalSupply":21000000,
			"circulatingSupply":19700000
		}}}`))
	}))
	defer server.Close()

	client := NewCoinMarketCapClient(server.URL, "test-key")
	stats, err := client.Detail(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats == nil {
		t.Fatal("expected statistics, got nil")
	}

	if stats.Rank != 1 {
		t.Errorf("expected rank 1, got %d", stats.Rank)
	}
	if stats.Price != 69000.12 {
		t.Errorf("expected price 69000.12, got %v", stats.Price)
	}
	if stats.MarketCapDominance != 52.3 {
		t.Errorf("expected dominance 52.3, got %v", stats.MarketCapDominance)
	}
}

func TestCoinMarketCapDetailNoStatistics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := NewCoinMarketCapClient(server.URL, "")
	stats, err := client.Detail(context.Background(), "not-a-coin")
	if err != nil {
		t.Fatalf("missing statistics is not an error, got %v", err)
	}
	if stats != nil {
		t.Errorf("expected nil statistics, got %+v", stats)
	}
}

func TestCoinMarketCapDetailUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCoinMarketCapClient(server.URL, "")
	if _, err := client.Detail(context.Background(), "bitcoin"); err == nil {
		t.Fatal("expected an error for non-200 status")
	}
}
