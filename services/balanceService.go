package services

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"wallet-engine/model"
	"wallet-engine/registry"
	"wallet-engine/utility"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
)

//BalanceService object. Aggregates native and fungible-token balances across
//every registered network, tolerating per-network failures.
type BalanceService struct {
	Registry *registry.Service
	Indexer  IIndexerService
	Chain    IChainService
	Price    IPriceService
}

// NewBalanceService ... Creates a balance aggregation service instance
func NewBalanceService(networks *registry.Service, indexer IIndexerService, chain IChainService, price IPriceService) *BalanceService {
	return &BalanceService{
		Registry: networks,
		Indexer:  indexer,
		Chain:    chain,
		Price:    price,
	}
}

// GetBalances ... Fans out across all networks and reduces to a single list
// ranked by USD value plus the total. A network that fails is logged and
// excluded; the call errors only when every network fails.
func (service *BalanceService) GetBalances(ctx context.Context, address string) ([]model.TokenBalance, float64, error) {
	networks := service.Registry.All()

	var waitGroup sync.WaitGroup
	var mutex sync.Mutex
	tokens := []model.TokenBalance{}
	failedNetworks := 0

	for _, network := range networks {
		waitGroup.Add(1)
		go func(network model.Network) {
			defer waitGroup.Done()
			networkTokens, err := service.networkBalances(ctx, network, address)
			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				failedNetworks++
				logger.Warning("Excluding %s from balance aggregation : %s", network.ID, err)
				return
			}
			tokens = append(tokens, networkTokens...)
		}(network)
	}
	waitGroup.Wait()

	if failedNetworks == len(networks) {
		return nil, 0, appError.New(http.StatusInternalServerError, errorcode.FETCH_TOKENS_FAILED, errors.New(errorcode.ALL_NETWORKS_FAILED))
	}

	total := decimal.Zero
	for _, token := range tokens {
		total = total.Add(decimal.NewFromFloat(token.USDValue))
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].USDValue != tokens[j].USDValue {
			return tokens[i].USDValue > tokens[j].USDValue
		}
		if tokens[i].Network != tokens[j].Network {
			return tokens[i].Network < tokens[j].Network
		}
		return tokens[i].Symbol < tokens[j].Symbol
	})

	totalUSD, _ := total.Float64()
	return tokens, totalUSD, nil
}

func (service *BalanceService) networkBalances(ctx context.Context, network model.Network, address string) ([]model.TokenBalance, error) {
	var tokens []model.TokenBalance

	nativeBalance, err := service.Chain.NativeBalance(ctx, network, address)
	if err != nil {
		return nil, err
	}
	if nativeBalance.Sign() > 0 {
		quote := service.Price.Resolve(ctx, network, nil)
		tokens = append(tokens, buildBalance(network, nil, network.NativeSymbol, network.NativeName, nativeBalance, network.NativeDecimals, quote))
	}

	entries, err := service.Indexer.TokenBalances(ctx, network, address)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		rawBalance := utility.ParseHexBig(entry.TokenBalance)
		if rawBalance.Sign() <= 0 {
			continue
		}

		// Token-balance endpoints report NFT contracts too; probe and drop
		// them. A failed probe counts as fungible so a flaky NFT indexer
		// cannot hide real token balances.
		isNFT, probeErr := service.Indexer.IsNFTContract(ctx, network, entry.ContractAddress)
		if probeErr != nil {
			logger.Warning("NFT probe failed for %s on %s, treating as fungible : %s", entry.ContractAddress, network.ID, probeErr)
		} else if isNFT {
			continue
		}

		contract := entry.ContractAddress
		quote := service.Price.Resolve(ctx, network, &contract)
		symbol, name, decimals := service.tokenIdentity(ctx, network, contract, quote)
		tokens = append(tokens, buildBalance(network, &contract, symbol, name, rawBalance, decimals, quote))
	}

	return tokens, nil
}

// tokenIdentity fills symbol/name/decimals from the quote, falling back to
// indexer token metadata, then to safe defaults.
func (service *BalanceService) tokenIdentity(ctx context.Context, network model.Network, contract string, quote model.AssetQuote) (string, string, int) {
	symbol := quote.Symbol
	name := quote.Name
	decimals := quote.Decimals

	if symbol == "" || decimals == 0 {
		metadata, err := service.Indexer.TokenMetadata(ctx, network, contract)
		if err != nil {
			logger.Warning("Token metadata lookup failed for %s on %s : %s", contract, network.ID, err)
		} else {
			if symbol == "" {
				symbol = metadata.Symbol
			}
			if name == "" {
				name = metadata.Name
			}
			if decimals == 0 && metadata.Decimals != nil {
				decimals = *metadata.Decimals
			}
		}
	}
	if symbol == "" {
		symbol = "UNKNOWN"
	}
	if name == "" {
		name = symbol
	}
	if decimals == 0 {
		decimals = 18
	}
	return symbol, name, decimals
}

func buildBalance(network model.Network, contract *string, symbol, name string, raw *big.Int, decimals int, quote model.AssetQuote) model.TokenBalance {
	formatted := utility.FormatUnits(raw, decimals)
	price := decimal.NewFromFloat(quote.USDPrice)
	usdValue, _ := formatted.Mul(price).Float64()

	return model.TokenBalance{
		Symbol:          symbol,
		Name:            name,
		RawAmount:       raw.String(),
		Decimals:        decimals,
		FormattedAmount: formatted.String(),
		USDPrice:        quote.USDPrice,
		USDValue:        usdValue,
		ContractAddress: contract,
		Network:         network.ID,
		IconURL:         quote.IconURL,
	}
}
