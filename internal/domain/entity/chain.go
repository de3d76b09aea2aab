package entity

// ConnectorKind selects which connector implementation serves a chain.
type ConnectorKind string

const (
	// ConnectorEVM serves account-model chains speaking the Ethereum JSON-RPC.
	ConnectorEVM ConnectorKind = "evm"
	// ConnectorSolana serves token-program chains speaking the Solana JSON-RPC.
	ConnectorSolana ConnectorKind = "solana"
)

// NativeAssetInfo holds the metadata a connector stamps onto the native
// balance it returns.
type NativeAssetInfo struct {
	AssetID  string `yaml:"assetId"`
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Decimals uint8  `yaml:"decimals"`
	LogoURI  string `yaml:"logoUri"`
}

// ChainConfig is one static registry entry. It carries everything needed to
// construct the connector for a chain: which implementation, where to reach
// the chain, and what assets to look for once connected.
type ChainConfig struct {
	ChainID   string          `yaml:"chainId"`
	Connector ConnectorKind   `yaml:"connector"`
	RPCURL    string          `yaml:"rpcUrl"`
	Native    NativeAssetInfo `yaml:"native"`
	Tokens    []TokenInfo     `yaml:"tokens"`
}
