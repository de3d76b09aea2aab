package port

import (
	"context"

	"portfolio_aggregator/internal/domain/entity"
)

// Connector is the capability set every chain family implements: fetch the
// native-unit balance and the tracked-token balances of one address,
// normalized into the common Asset shape.
//
// Both operations validate the address before touching the network and are
// read-only. Per-token sub-query failures inside GetTokenBalances are logged
// and absorbed; they never fail the whole call.
type Connector interface {
	GetNativeBalance(ctx context.Context, address string) (entity.Asset, error)
	GetTokenBalances(ctx context.Context, address string) ([]entity.Asset, error)
}

// ConnectorRegistry hands out connectors by chain identifier. The registry
// owns connector lifetime: a connector is constructed at most once per chain
// and every subsequent lookup returns the identical instance.
type ConnectorRegistry interface {
	GetConnector(chainID string) (Connector, error)
}
