package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/pkg/metrics"
)

const (
	// priceCacheTTL bounds how stale a served price can be.
	priceCacheTTL  = 60 * time.Second
	priceKeyPrefix = "price:"
)

// PriceResolver fronts the external pricing API with a cache-aside strategy:
// batch-read the cache, batch-fetch the misses, write the fetched prices
// back with a fixed TTL. A pricing outage degrades to whatever the cache
// still holds; the resolver never fails.
type PriceResolver struct {
	cache  port.PriceCache
	api    port.PricingAPI
	logger *zap.Logger
}

// NewPriceResolver creates a resolver over the given cache and pricing API.
func NewPriceResolver(cache port.PriceCache, api port.PricingAPI, logger *zap.Logger) *PriceResolver {
	return &PriceResolver{
		cache:  cache,
		api:    api,
		logger: logger.Named("PriceResolver"),
	}
}

// GetPrices returns USD unit prices for the given asset ids. Ids unknown to
// both the cache and the upstream source are absent from the result. Empty
// input returns an empty map without any I/O.
func (r *PriceResolver) GetPrices(ctx context.Context, assetIDs []string) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(assetIDs))
	if len(assetIDs) == 0 {
		return prices
	}

	keys := make([]string, len(assetIDs))
	for i, id := range assetIDs {
		keys[i] = priceKeyPrefix + id
	}

	cached, err := r.cache.MGet(ctx, keys)
	if err != nil {
		r.logger.Warn("price cache read failed, treating all ids as misses", zap.Error(err))
		cached = map[string]string{}
	}

	var missing []string
	for i, id := range assetIDs {
		raw, ok := cached[keys[i]]
		if !ok {
			metrics.PriceCacheMisses.Inc()
			missing = append(missing, id)
			continue
		}
		price, perr := decimal.NewFromString(raw)
		if perr != nil {
			r.logger.Warn("discarding unparseable cached price",
				zap.String("assetId", id), zap.String("raw", raw), zap.Error(perr))
			metrics.PriceCacheMisses.Inc()
			missing = append(missing, id)
			continue
		}
		metrics.PriceCacheHits.Inc()
		prices[id] = price
	}

	if len(missing) == 0 {
		return prices
	}

	r.logger.Debug("price cache miss, fetching from API", zap.Strings("assetIds", missing))
	metrics.PricingAPICalls.Inc()
	fetched, err := r.api.GetUSDPrices(ctx, missing)
	if err != nil {
		// Availability over completeness: serve what the cache had and let
		// the caller fall back to zero-priced assets.
		metrics.PricingAPIFailures.Inc()
		r.logger.Error("pricing API request failed, serving cached prices only",
			zap.Int("missingCount", len(missing)), zap.Error(err))
		return prices
	}

	writeback := make(map[string]string, len(fetched))
	for _, id := range missing {
		price, ok := fetched[id]
		if !ok {
			// Upstream does not know this id. Not an error.
			continue
		}
		prices[id] = price
		writeback[priceKeyPrefix+id] = price.String()
	}

	if len(writeback) > 0 {
		if err := r.cache.MSet(ctx, writeback, priceCacheTTL); err != nil {
			r.logger.Warn("price cache write failed", zap.Error(err))
		}
	}
	return prices
}
