package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceCache is a batch get/set store with per-entry TTL. Both operations
// take the full key set in one call; implementations must not degrade to one
// round trip per key.
type PriceCache interface {
	// MGet returns the unexpired entries for the given keys. Missing or
	// expired keys are simply absent from the result.
	MGet(ctx context.Context, keys []string) (map[string]string, error)
	// MSet writes all entries with the given TTL.
	MSet(ctx context.Context, entries map[string]string, ttl time.Duration) error
}

// PricingAPI is the external batch pricing source. Asset ids the source does
// not recognize are absent from the result, not an error.
type PricingAPI interface {
	GetUSDPrices(ctx context.Context, assetIDs []string) (map[string]decimal.Decimal, error)
}

// PriceResolver returns USD unit prices for a set of asset ids. It never
// fails: a pricing outage degrades to a partial (possibly empty) map, so
// callers fall back to zero-priced assets instead of aborting.
type PriceResolver interface {
	GetPrices(ctx context.Context, assetIDs []string) map[string]decimal.Decimal
}
