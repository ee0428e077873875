package tools

import (
	"context"

	"quotebot/market"
)

// The handler constructors accept these narrow interfaces instead of the
// concrete clients in quotebot/market and quotebot/realtime so tests can
// substitute stubs.

// CryptoTicker fetches 24-hour change statistics for a trading pair.
type CryptoTicker interface {
	Ticker24h(ctx context.Context, symbol string) (*market.TickerStats, error)
}

// CryptoDetail fetches the statistics block for a cryptocurrency slug.
type CryptoDetail interface {
	Detail(ctx context.Context, slug string) (*market.Statistics, error)
}

// StockQuoter fetches the most recent intraday closing price for a symbol.
type StockQuoter interface {
	IntradayClose(ctx context.Context, symbol string) (price string, ok bool, err error)
}

// BookStocker fetches live book stock over the realtime service.
type BookStocker interface {
	BookStock(ctx context.Context, isbn string) (string, error)
}
