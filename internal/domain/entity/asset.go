package entity

// AssetKind classifies how an asset lives on its chain.
type AssetKind string

const (
	// KindNative is the chain's native unit (ETH, SOL).
	KindNative AssetKind = "native"
	// KindEVMFungible is an ERC-20 style contract token on an account-model chain.
	KindEVMFungible AssetKind = "evm-fungible"
	// KindProgramFungible is an SPL style token owned through a token program.
	KindProgramFungible AssetKind = "program-fungible"
)

// Asset is one position held by a user on one chain. Every connector
// normalizes its chain-specific query results into this shape.
//
// Balance, Price and Value are decimal strings, never floats. Price and
// Value stay nil until the pricing step fills them in. ContractAddress is
// nil exactly when Kind is KindNative.
type Asset struct {
	AssetID         string    `json:"assetId"`
	Symbol          string    `json:"symbol"`
	Name            string    `json:"name"`
	Balance         string    `json:"balance"`
	LogoURI         string    `json:"logoUri"`
	Kind            AssetKind `json:"kind"`
	ChainID         string    `json:"chainId"`
	ContractAddress *string   `json:"contractAddress"`
	Price           *string   `json:"price"`
	Value           *string   `json:"value"`
}

// TokenInfo describes one entry of a connector's tracked-token whitelist.
// For EVM chains ContractAddress is the ERC-20 contract, for Solana it is
// the mint address.
type TokenInfo struct {
	AssetID         string `yaml:"assetId" json:"assetId"`
	Symbol          string `yaml:"symbol" json:"symbol"`
	Name            string `yaml:"name" json:"name"`
	Decimals        uint8  `yaml:"decimals" json:"decimals"`
	LogoURI         string `yaml:"logoUri" json:"logoUri"`
	ContractAddress string `yaml:"contractAddress" json:"contractAddress"`
}
