package connector

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/pkg/metrics"
	"portfolio_aggregator/internal/pkg/money"
)

// Minimal ERC-20 ABI, balanceOf only.
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

// maxConcurrentTokenQueries bounds the per-call fan-out so a long whitelist
// does not flood the RPC endpoint.
const maxConcurrentTokenQueries = 8

var (
	parsedERC20Once sync.Once
	parsedERC20ABI  abi.ABI
	erc20BalanceOf  []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		method, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20BalanceOf = method.ID
	})
}

// EVMConnector serves account-model chains over the Ethereum JSON-RPC. One
// instance per configured chain, constructed only by the registry.
type EVMConnector struct {
	client *ethclient.Client
	cfg    entity.ChainConfig
	logger *zap.Logger
}

// NewEVMConnector dials the chain's RPC endpoint and wraps it in the common
// connector capability.
func NewEVMConnector(cfg entity.ChainConfig, logger *zap.Logger) (*EVMConnector, error) {
	initParsedERC20ABI()

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial EVM RPC %s", cfg.RPCURL)
	}

	return &EVMConnector{
		client: client,
		cfg:    cfg,
		logger: logger.Named("EVMConnector").With(zap.String("chainId", cfg.ChainID)),
	}, nil
}

// GetNativeBalance fetches the native-unit balance of the address and
// normalizes it into an Asset at the chain's canonical precision.
func (c *EVMConnector) GetNativeBalance(ctx context.Context, address string) (entity.Asset, error) {
	if !common.IsHexAddress(address) {
		return entity.Asset{}, &entity.InvalidAddressError{ChainID: c.cfg.ChainID, Address: address}
	}

	wei, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return entity.Asset{}, &entity.UpstreamFetchError{Op: "eth_getBalance", Err: err}
	}

	native := c.cfg.Native
	return entity.Asset{
		AssetID:         native.AssetID,
		Symbol:          native.Symbol,
		Name:            native.Name,
		Balance:         money.FromBigInt(wei, native.Decimals).String(),
		LogoURI:         native.LogoURI,
		Kind:            entity.KindNative,
		ChainID:         c.cfg.ChainID,
		ContractAddress: nil,
	}, nil
}

// GetTokenBalances queries every whitelisted ERC-20 contract concurrently.
// A failed single-token query contributes no asset and is never conflated
// with a zero balance; zero balances are filtered out. Whitelist order is
// preserved in the result.
func (c *EVMConnector) GetTokenBalances(ctx context.Context, address string) ([]entity.Asset, error) {
	if !common.IsHexAddress(address) {
		return nil, &entity.InvalidAddressError{ChainID: c.cfg.ChainID, Address: address}
	}
	owner := common.HexToAddress(address)

	slots := make([]*entity.Asset, len(c.cfg.Tokens))
	sem := semaphore.NewWeighted(maxConcurrentTokenQueries)
	var wg sync.WaitGroup

	for i, token := range c.cfg.Tokens {
		if err := sem.Acquire(ctx, 1); err != nil {
			c.logger.Warn("token balance fan-out interrupted",
				zap.String("wallet", address), zap.Error(err))
			break
		}
		wg.Add(1)
		go func(slot int, token entity.TokenInfo) {
			defer wg.Done()
			defer sem.Release(1)

			raw, err := c.tokenBalance(ctx, token, owner)
			if err != nil {
				metrics.TokenQueryFailures.Inc()
				c.logger.Warn("token balance query failed, skipping token",
					zap.String("wallet", address),
					zap.String("symbol", token.Symbol),
					zap.String("contract", token.ContractAddress),
					zap.Error(err))
				return
			}
			if raw.Sign() <= 0 {
				return
			}

			contract := token.ContractAddress
			slots[slot] = &entity.Asset{
				AssetID:         token.AssetID,
				Symbol:          token.Symbol,
				Name:            token.Name,
				Balance:         money.FromBigInt(raw, token.Decimals).String(),
				LogoURI:         token.LogoURI,
				Kind:            entity.KindEVMFungible,
				ChainID:         c.cfg.ChainID,
				ContractAddress: &contract,
			}
		}(i, token)
	}
	wg.Wait()

	assets := make([]entity.Asset, 0, len(slots))
	for _, asset := range slots {
		if asset != nil {
			assets = append(assets, *asset)
		}
	}
	return assets, nil
}

func (c *EVMConnector) tokenBalance(ctx context.Context, token entity.TokenInfo, owner common.Address) (*big.Int, error) {
	callData := make([]byte, 0, len(erc20BalanceOf)+32)
	callData = append(callData, erc20BalanceOf...)
	callData = append(callData, common.LeftPadBytes(owner.Bytes(), 32)...)

	contract := common.HexToAddress(token.ContractAddress)
	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: callData}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "eth_call balanceOf %s", token.ContractAddress)
	}
	if len(out) == 0 {
		return big.NewInt(0), nil
	}

	unpacked, err := parsedERC20ABI.Unpack("balanceOf", out)
	if err != nil {
		return nil, errors.Wrapf(err, "unpack balanceOf result for %s", token.Symbol)
	}
	if len(unpacked) == 0 {
		return nil, errors.Errorf("balanceOf unpack returned no data for %s", token.Symbol)
	}
	balance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected balanceOf result type %T for %s", unpacked[0], token.Symbol)
	}
	return balance, nil
}
