package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBinanceTicker24h(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/24hr" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "BTCUSDT" {
			t.Errorf("expected symbol BTCUSDT, got %q", r.URL.Query().Get("symbol"))
		}
		if r.Header.Get("X-MBX-APIKEY") != "test-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-MBX-APIKEY"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol":"BTCUSDT","lastPrice":"69000.00000000","priceChange":"-1200.50000000"}`))
	}))
	defer server.Close()

	client := NewBinanceClient(server.URL, "test-key", "test-secret")
	stats, err := client.Ticker24h(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Symbol != "BTCUSDT" {
		t.Errorf("expected symbol BTCUSDT, got %q", stats.Symbol)
	}
	if stats.LastPrice != "69000.00000000" {
		t.Errorf("expected last price string, got %q", stats.LastPrice)
	}
	if stats.PriceChange != "-1200.50000000" {
		t.Errorf("expected price change string, got %q", stats.PriceChange)
	}
}

func TestBinanceTicker24hUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewBinanceClient(server.URL, "", "")
	if _, err := client.Ticker24h(context.Background(), "NOPEUSDT"); err == nil {
		t.Fatal("expected an error for non-200 status")
	}
}
