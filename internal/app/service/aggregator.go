package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/pkg/metrics"
	"portfolio_aggregator/internal/pkg/money"
)

const warningMessage = "A balance fetch failed."

// Aggregator orchestrates the portfolio pipeline: load wallets, fan out
// balance queries across connectors, settle every operation, price the
// distinct assets and fold the result into a chain-grouped portfolio.
type Aggregator struct {
	wallets  port.WalletStore
	registry port.ConnectorRegistry
	prices   port.PriceResolver
	logger   *zap.Logger
}

// NewAggregator creates an aggregator over the given collaborators.
func NewAggregator(wallets port.WalletStore, registry port.ConnectorRegistry, prices port.PriceResolver, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		wallets:  wallets,
		registry: registry,
		prices:   prices,
		logger:   logger.Named("PortfolioAggregator"),
	}
}

// balanceResult is the settled outcome of one scheduled balance operation:
// either a batch of normalized assets or the failure that produced no data.
type balanceResult struct {
	assets []entity.Asset
	err    error
}

// Aggregate builds the priced, chain-grouped portfolio for one user. Only
// the wallet lookup can fail the whole call; every downstream failure
// degrades to a Warning or a zero price.
func (a *Aggregator) Aggregate(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error) {
	started := time.Now()
	defer func() {
		metrics.AggregationDuration.Observe(time.Since(started).Seconds())
	}()

	wallets, err := a.wallets.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wallets")
	}

	results := a.fetchAllBalances(ctx, wallets)

	// Settle in scheduling order so warnings are deterministic.
	allAssets := make([]entity.Asset, 0)
	warnings := make([]entity.Warning, 0)
	for _, res := range results {
		if res.err != nil {
			metrics.BalanceFetchFailures.Inc()
			warnings = append(warnings, entity.Warning{Message: warningMessage, Reason: res.err.Error()})
			continue
		}
		allAssets = append(allAssets, res.assets...)
	}

	// Malformed-data defense: an asset without a chain cannot be grouped.
	assets := make([]entity.Asset, 0, len(allAssets))
	for _, asset := range allAssets {
		if asset.ChainID == "" {
			a.logger.Warn("dropping malformed asset without chainId",
				zap.String("assetId", asset.AssetID), zap.String("symbol", asset.Symbol))
			continue
		}
		assets = append(assets, asset)
	}

	priceMap := a.prices.GetPrices(ctx, distinctAssetIDs(assets))

	totalValue := decimal.Zero
	var chainOrder []string
	groups := make(map[string]*entity.ChainGroup)
	subtotals := make(map[string]decimal.Decimal)

	for i := range assets {
		asset := &assets[i]

		price, ok := priceMap[asset.AssetID]
		if !ok {
			price = decimal.Zero
		}
		balance, perr := money.Parse(asset.Balance)
		if perr != nil {
			a.logger.Warn("dropping asset with unparseable balance",
				zap.String("assetId", asset.AssetID), zap.String("balance", asset.Balance), zap.Error(perr))
			continue
		}
		value := money.Mul(balance, price)

		priceStr := price.String()
		valueStr := value.String()
		asset.Price = &priceStr
		asset.Value = &valueStr
		totalValue = totalValue.Add(value)

		group, exists := groups[asset.ChainID]
		if !exists {
			chainOrder = append(chainOrder, asset.ChainID)
			group = &entity.ChainGroup{
				ChainID:   asset.ChainID,
				ChainName: chainDisplayName(asset.ChainID),
				Assets:    make([]entity.Asset, 0, 1),
			}
			groups[asset.ChainID] = group
			subtotals[asset.ChainID] = decimal.Zero
		}
		group.Assets = append(group.Assets, *asset)
		subtotals[asset.ChainID] = subtotals[asset.ChainID].Add(value)
	}

	chains := make([]entity.ChainGroup, 0, len(chainOrder))
	for _, chainID := range chainOrder {
		group := groups[chainID]
		group.TotalValue = subtotals[chainID].String()
		chains = append(chains, *group)
	}

	return &entity.Portfolio{
		TotalValue:  money.DisplayFixed(totalValue, 2),
		Currency:    "USD",
		LastUpdated: time.Now().UTC(),
		Chains:      chains,
		Warnings:    warnings,
	}, nil
}

// fetchAllBalances schedules both balance operations for every wallet and
// waits for all of them to settle. Nothing short-circuits: one wallet's
// failure never blocks or cancels another's operations. The returned slice
// is in scheduling order. A connector lookup failure occupies one slot for
// its wallet since neither operation could be scheduled.
func (a *Aggregator) fetchAllBalances(ctx context.Context, wallets []entity.Wallet) []balanceResult {
	type operation struct {
		conn    port.Connector
		address string
		tokens  bool
	}

	var ops []operation
	var results []balanceResult
	for _, wallet := range wallets {
		conn, err := a.registry.GetConnector(wallet.ChainID)
		if err != nil {
			a.logger.Warn("connector lookup failed for wallet",
				zap.String("chainId", wallet.ChainID), zap.String("address", wallet.Address), zap.Error(err))
			ops = append(ops, operation{})
			results = append(results, balanceResult{err: err})
			continue
		}
		ops = append(ops, operation{conn: conn, address: wallet.Address, tokens: false})
		ops = append(ops, operation{conn: conn, address: wallet.Address, tokens: true})
		results = append(results, balanceResult{}, balanceResult{})
	}

	var wg sync.WaitGroup
	for i, op := range ops {
		if op.conn == nil {
			continue // pre-failed slot
		}
		wg.Add(1)
		go func(slot int, op operation) {
			defer wg.Done()
			if op.tokens {
				assets, err := op.conn.GetTokenBalances(ctx, op.address)
				results[slot] = balanceResult{assets: assets, err: err}
				return
			}
			asset, err := op.conn.GetNativeBalance(ctx, op.address)
			if err != nil {
				results[slot] = balanceResult{err: err}
				return
			}
			results[slot] = balanceResult{assets: []entity.Asset{asset}}
		}(i, op)
	}
	wg.Wait()

	return results
}

func distinctAssetIDs(assets []entity.Asset) []string {
	seen := make(map[string]struct{}, len(assets))
	ids := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset.AssetID == "" {
			continue
		}
		if _, ok := seen[asset.AssetID]; ok {
			continue
		}
		seen[asset.AssetID] = struct{}{}
		ids = append(ids, asset.AssetID)
	}
	return ids
}

// chainDisplayName derives a human name from the chain identifier the same
// way the output contract expects: "ethereum" -> "Ethereum".
func chainDisplayName(chainID string) string {
	if chainID == "" {
		return chainID
	}
	return strings.ToUpper(chainID[:1]) + chainID[1:]
}
