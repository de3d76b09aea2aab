package connector

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

// builderFunc constructs a connector for one configured chain.
type builderFunc func(cfg entity.ChainConfig, logger *zap.Logger) (port.Connector, error)

// Registry is the memoized connector factory. It maps chain identifiers to
// singleton connector instances and is the only component allowed to
// construct one, since construction may open persistent network resources.
type Registry struct {
	configs  map[string]entity.ChainConfig
	builders map[entity.ConnectorKind]builderFunc
	logger   *zap.Logger

	mu        sync.Mutex
	instances map[string]port.Connector
}

// NewRegistry builds a registry over the configured chain table with the
// standard connector implementations.
func NewRegistry(chains []entity.ChainConfig, logger *zap.Logger) *Registry {
	builders := map[entity.ConnectorKind]builderFunc{
		entity.ConnectorEVM: func(cfg entity.ChainConfig, l *zap.Logger) (port.Connector, error) {
			return NewEVMConnector(cfg, l)
		},
		entity.ConnectorSolana: func(cfg entity.ChainConfig, l *zap.Logger) (port.Connector, error) {
			return NewSolanaConnector(cfg, l)
		},
	}
	return newRegistry(chains, builders, logger)
}

func newRegistry(chains []entity.ChainConfig, builders map[entity.ConnectorKind]builderFunc, logger *zap.Logger) *Registry {
	configs := make(map[string]entity.ChainConfig, len(chains))
	for _, cfg := range chains {
		configs[cfg.ChainID] = cfg
	}
	return &Registry{
		configs:   configs,
		builders:  builders,
		logger:    logger.Named("ConnectorRegistry"),
		instances: make(map[string]port.Connector),
	}
}

// GetConnector returns the memoized connector for the chain, constructing it
// on first request. Construction is serialized under the registry lock, so
// concurrent first requests for the same chain cannot double-construct.
func (r *Registry) GetConnector(chainID string) (port.Connector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.instances[chainID]; ok {
		return conn, nil
	}

	cfg, ok := r.configs[chainID]
	if !ok {
		return nil, &entity.UnsupportedChainError{ChainID: chainID}
	}
	build, ok := r.builders[cfg.Connector]
	if !ok {
		return nil, &entity.NotImplementedError{ChainID: chainID, Kind: cfg.Connector}
	}

	conn, err := build(cfg, r.logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct %s connector for chain %s", cfg.Connector, chainID)
	}

	r.instances[chainID] = conn
	r.logger.Info("connector constructed",
		zap.String("chainId", chainID),
		zap.String("kind", string(cfg.Connector)))
	return conn, nil
}

// Supported reports whether a chain identifier has a registry entry. Used by
// the API layer to reject wallet registrations for unknown chains before
// they reach the aggregation path.
func (r *Registry) Supported(chainID string) bool {
	_, ok := r.configs[chainID]
	return ok
}
