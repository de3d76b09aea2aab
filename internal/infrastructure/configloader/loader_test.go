package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_aggregator/internal/domain/entity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  dsn: "postgres://localhost/test"
auth:
  jwtSecret: "s3cret"
  tokenTtlMinutes: 15
logging:
  level: debug
coingecko:
  baseUrl: "https://example.com/api/v3"
  requestsPerSecond: 2
chains:
  - chainId: ethereum
    connector: evm
    rpcUrl: "https://rpc.example.com"
    native:
      assetId: ethereum
      symbol: ETH
      name: Ethereum
      decimals: 18
    tokens:
      - assetId: usd-coin
        symbol: USDC
        name: USD Coin
        contractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
        decimals: 6
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/test", cfg.Database.DSN)
	assert.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://example.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.Equal(t, 2.0, cfg.CoinGecko.RequestsPerSecond)

	require.Len(t, cfg.Chains, 1)
	chain := cfg.Chains[0]
	assert.Equal(t, "ethereum", chain.ChainID)
	assert.Equal(t, entity.ConnectorEVM, chain.Connector)
	assert.Equal(t, uint8(18), chain.Native.Decimals)
	require.Len(t, chain.Tokens, 1)
	assert.Equal(t, uint8(6), chain.Tokens[0].Decimals)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "postgres://localhost/test"
auth:
  jwtSecret: "s3cret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.NotEmpty(t, cfg.Chains, "missing chain table falls back to the built-in registry")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultChainsAreWellFormed(t *testing.T) {
	chains := DefaultChains()
	require.NotEmpty(t, chains)

	seen := make(map[string]bool)
	for _, chain := range chains {
		assert.False(t, seen[chain.ChainID], "duplicate chain id %s", chain.ChainID)
		seen[chain.ChainID] = true
		assert.NotEmpty(t, chain.RPCURL)
		assert.NotEmpty(t, chain.Native.AssetID)
		assert.NotZero(t, chain.Native.Decimals)
		for _, token := range chain.Tokens {
			assert.NotEmpty(t, token.AssetID)
			assert.NotEmpty(t, token.ContractAddress)
		}
	}
}
