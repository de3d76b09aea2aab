package connector

import (
	"context"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/pkg/metrics"
	"portfolio_aggregator/internal/pkg/money"
)

// SolanaConnector serves token-program chains over the Solana JSON-RPC. It
// runs one bulk ownership query for tokens and filters the result against
// the configured whitelist.
type SolanaConnector struct {
	client       *rpc.Client
	cfg          entity.ChainConfig
	tokensByMint map[string]entity.TokenInfo
	logger       *zap.Logger
}

// NewSolanaConnector builds an RPC client for the configured endpoint. The
// whitelist is indexed by mint address up front so the bulk query result can
// be filtered without scanning the list per account.
func NewSolanaConnector(cfg entity.ChainConfig, logger *zap.Logger) (*SolanaConnector, error) {
	byMint := make(map[string]entity.TokenInfo, len(cfg.Tokens))
	for _, t := range cfg.Tokens {
		byMint[t.ContractAddress] = t
	}

	return &SolanaConnector{
		client:       rpc.New(cfg.RPCURL),
		cfg:          cfg,
		tokensByMint: byMint,
		logger:       logger.Named("SolanaConnector").With(zap.String("chainId", cfg.ChainID)),
	}, nil
}

// GetNativeBalance fetches the lamport balance of the address and normalizes
// it into an Asset at the chain's native precision.
func (c *SolanaConnector) GetNativeBalance(ctx context.Context, address string) (entity.Asset, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return entity.Asset{}, &entity.InvalidAddressError{ChainID: c.cfg.ChainID, Address: address}
	}

	out, err := c.client.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		return entity.Asset{}, &entity.UpstreamFetchError{Op: "getBalance", Err: err}
	}

	lamports := new(big.Int).SetUint64(out.Value)
	native := c.cfg.Native
	return entity.Asset{
		AssetID:         native.AssetID,
		Symbol:          native.Symbol,
		Name:            native.Name,
		Balance:         money.FromBigInt(lamports, native.Decimals).String(),
		LogoURI:         native.LogoURI,
		Kind:            entity.KindNative,
		ChainID:         c.cfg.ChainID,
		ContractAddress: nil,
	}, nil
}

// GetTokenBalances asks for every token account owned by the address in one
// RPC call, decodes each account, and keeps only whitelisted mints with a
// balance strictly greater than zero. Accounts that fail to decode are
// logged and skipped. The result follows whitelist order.
func (c *SolanaConnector) GetTokenBalances(ctx context.Context, address string) ([]entity.Asset, error) {
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, &entity.InvalidAddressError{ChainID: c.cfg.ChainID, Address: address}
	}

	out, err := c.client.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: solana.TokenProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingBase64},
	)
	if err != nil {
		return nil, &entity.UpstreamFetchError{Op: "getTokenAccountsByOwner", Err: err}
	}

	// An owner can hold several accounts for the same mint; sum them.
	amountByMint := make(map[string]*big.Int)
	for _, keyed := range out.Value {
		var account token.Account
		if err := bin.NewBinDecoder(keyed.Account.Data.GetBinary()).Decode(&account); err != nil {
			metrics.TokenQueryFailures.Inc()
			c.logger.Warn("failed to decode token account, skipping",
				zap.String("wallet", address),
				zap.String("account", keyed.Pubkey.String()),
				zap.Error(err))
			continue
		}

		mint := account.Mint.String()
		if _, tracked := c.tokensByMint[mint]; !tracked {
			continue
		}
		amount := new(big.Int).SetUint64(account.Amount)
		if total, ok := amountByMint[mint]; ok {
			total.Add(total, amount)
		} else {
			amountByMint[mint] = amount
		}
	}

	assets := make([]entity.Asset, 0, len(amountByMint))
	for _, info := range c.cfg.Tokens {
		amount, ok := amountByMint[info.ContractAddress]
		if !ok || amount.Sign() <= 0 {
			continue
		}
		mint := info.ContractAddress
		assets = append(assets, entity.Asset{
			AssetID:         info.AssetID,
			Symbol:          info.Symbol,
			Name:            info.Name,
			Balance:         money.FromBigInt(amount, info.Decimals).String(),
			LogoURI:         info.LogoURI,
			Kind:            entity.KindProgramFungible,
			ChainID:         c.cfg.ChainID,
			ContractAddress: &mint,
		})
	}
	return assets, nil
}
