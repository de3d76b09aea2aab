package connector

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

type stubConnector struct{ chainID string }

func (s *stubConnector) GetNativeBalance(_ context.Context, _ string) (entity.Asset, error) {
	return entity.Asset{ChainID: s.chainID}, nil
}

func (s *stubConnector) GetTokenBalances(_ context.Context, _ string) ([]entity.Asset, error) {
	return nil, nil
}

func testRegistry(chains []entity.ChainConfig, built *int) *Registry {
	builders := map[entity.ConnectorKind]builderFunc{
		entity.ConnectorEVM: func(cfg entity.ChainConfig, _ *zap.Logger) (port.Connector, error) {
			if built != nil {
				*built++
			}
			return &stubConnector{chainID: cfg.ChainID}, nil
		},
	}
	return newRegistry(chains, builders, zap.NewNop())
}

func TestGetConnectorMemoizes(t *testing.T) {
	built := 0
	registry := testRegistry([]entity.ChainConfig{
		{ChainID: "ethereum", Connector: entity.ConnectorEVM},
	}, &built)

	first, err := registry.GetConnector("ethereum")
	require.NoError(t, err)
	second, err := registry.GetConnector("ethereum")
	require.NoError(t, err)

	assert.Same(t, first, second, "every lookup must return the identical instance")
	assert.Equal(t, 1, built)
}

func TestGetConnectorUnsupportedChain(t *testing.T) {
	registry := testRegistry(nil, nil)

	_, err := registry.GetConnector("dogecoin")
	var unsupported *entity.UnsupportedChainError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "dogecoin", unsupported.ChainID)
}

func TestGetConnectorNotImplementedKind(t *testing.T) {
	registry := testRegistry([]entity.ChainConfig{
		{ChainID: "bitcoin", Connector: entity.ConnectorKind("utxo")},
	}, nil)

	_, err := registry.GetConnector("bitcoin")
	var notImpl *entity.NotImplementedError
	require.ErrorAs(t, err, &notImpl)
	assert.Equal(t, "bitcoin", notImpl.ChainID)
	assert.Equal(t, entity.ConnectorKind("utxo"), notImpl.Kind)
}

func TestGetConnectorConcurrentFirstLookup(t *testing.T) {
	built := 0
	registry := testRegistry([]entity.ChainConfig{
		{ChainID: "ethereum", Connector: entity.ConnectorEVM},
	}, &built)

	var wg sync.WaitGroup
	conns := make([]port.Connector, 8)
	for i := range conns {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			conn, err := registry.GetConnector("ethereum")
			assert.NoError(t, err)
			conns[slot] = conn
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, built, "concurrent first lookups must not double-construct")
	for _, conn := range conns {
		assert.Same(t, conns[0], conn)
	}
}

func TestSupported(t *testing.T) {
	registry := testRegistry([]entity.ChainConfig{
		{ChainID: "ethereum", Connector: entity.ConnectorEVM},
	}, nil)

	assert.True(t, registry.Supported("ethereum"))
	assert.False(t, registry.Supported("dogecoin"))
}
