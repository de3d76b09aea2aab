package configloader

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"portfolio_aggregator/internal/domain/entity"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port                 int `yaml:"port"`
	ReadTimeoutSeconds   int `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds  int `yaml:"writeTimeoutSeconds"`
	ShutdownGraceSeconds int `yaml:"shutdownGraceSeconds"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret       string `yaml:"jwtSecret"`
	TokenTTLMinutes int    `yaml:"tokenTtlMinutes"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CoinGeckoConfig holds pricing upstream settings.
type CoinGeckoConfig struct {
	BaseURL              string  `yaml:"baseUrl"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int     `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig         `yaml:"server"`
	Database  DatabaseConfig       `yaml:"database"`
	Auth      AuthConfig           `yaml:"auth"`
	Logging   LoggingConfig        `yaml:"logging"`
	CoinGecko CoinGeckoConfig      `yaml:"coingecko"`
	Chains    []entity.ChainConfig `yaml:"chains"`
}

// Load reads and parses the YAML config at path, filling defaults for
// anything the file leaves out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.ShutdownGraceSeconds == 0 {
		cfg.Server.ShutdownGraceSeconds = 10
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.CoinGecko.RequestTimeoutMillis == 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	if cfg.CoinGecko.RequestsPerSecond == 0 {
		cfg.CoinGecko.RequestsPerSecond = 0.5
	}
	if len(cfg.Chains) == 0 {
		cfg.Chains = DefaultChains()
	}
}

// DefaultChains returns the built-in chain registry used when the config
// file does not define one.
func DefaultChains() []entity.ChainConfig {
	return []entity.ChainConfig{
		{
			ChainID:   "ethereum",
			Connector: entity.ConnectorEVM,
			RPCURL:    "https://eth.llamarpc.com",
			Native: entity.NativeAssetInfo{
				AssetID:  "ethereum",
				Symbol:   "ETH",
				Name:     "Ethereum",
				Decimals: 18,
				LogoURI:  "https://assets.coingecko.com/coins/images/279/small/ethereum.png",
			},
			Tokens: []entity.TokenInfo{
				{
					AssetID:         "usd-coin",
					Symbol:          "USDC",
					Name:            "USD Coin",
					ContractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
					Decimals:        6,
					LogoURI:         "https://assets.coingecko.com/coins/images/6319/small/usdc.png",
				},
				{
					AssetID:         "tether",
					Symbol:          "USDT",
					Name:            "Tether",
					ContractAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
					Decimals:        6,
					LogoURI:         "https://assets.coingecko.com/coins/images/325/small/Tether.png",
				},
				{
					AssetID:         "chainlink",
					Symbol:          "LINK",
					Name:            "Chainlink",
					ContractAddress: "0x514910771AF9Ca656af840dff83E8264EcF986CA",
					Decimals:        18,
					LogoURI:         "https://assets.coingecko.com/coins/images/877/small/chainlink-new-logo.png",
				},
				{
					AssetID:         "dai",
					Symbol:          "DAI",
					Name:            "Dai",
					ContractAddress: "0x6B175474E89094C44Da98b954EedeAC495271d0F",
					Decimals:        18,
					LogoURI:         "https://assets.coingecko.com/coins/images/9956/small/Badge_Dai.png",
				},
			},
		},
		{
			ChainID:   "solana",
			Connector: entity.ConnectorSolana,
			RPCURL:    "https://api.mainnet-beta.solana.com",
			Native: entity.NativeAssetInfo{
				AssetID:  "solana",
				Symbol:   "SOL",
				Name:     "Solana",
				Decimals: 9,
				LogoURI:  "https://assets.coingecko.com/coins/images/4128/small/solana.png",
			},
			Tokens: []entity.TokenInfo{
				{
					AssetID:         "usd-coin",
					Symbol:          "USDC",
					Name:            "USD Coin",
					ContractAddress: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
					Decimals:        6,
					LogoURI:         "https://assets.coingecko.com/coins/images/6319/small/usdc.png",
				},
				{
					AssetID:         "tether",
					Symbol:          "USDT",
					Name:            "Tether",
					ContractAddress: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
					Decimals:        6,
					LogoURI:         "https://assets.coingecko.com/coins/images/325/small/Tether.png",
				},
				{
					AssetID:         "bonk",
					Symbol:          "BONK",
					Name:            "Bonk",
					ContractAddress: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
					Decimals:        5,
					LogoURI:         "https://assets.coingecko.com/coins/images/28600/small/bonk.jpg",
				},
			},
		},
	}
}
