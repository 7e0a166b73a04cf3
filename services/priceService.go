package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	Config "wallet-engine/config"
	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/utility/apiClient"
	"wallet-engine/utility/cache"
	"wallet-engine/utility/logger"
)

const priceReadAttempts = 2

//PriceService object. Resolves USD quotes through an ordered oracle chain:
//native simple-price oracle, contract metadata-and-price oracle, then a
//liquidity-pool oracle. Total failure yields a zero quote, never an error.
type PriceService struct {
	Cache  *cache.Memory
	Config Config.Data
}

// NewPriceService ... Creates a price service instance
func NewPriceService(memory *cache.Memory, config Config.Data) *PriceService {
	return &PriceService{
		Cache:  memory,
		Config: config,
	}
}

// Resolve ... Resolves a USD quote for the network's native asset (nil
// contract) or a token contract. A zero quote means "unknown", callers must
// not read it as "worthless".
func (service *PriceService) Resolve(ctx context.Context, network model.Network, contract *string) model.AssetQuote {
	cacheKey := service.cacheKey(network, contract)
	if cached := service.Cache.Get(cacheKey); cached != nil {
		if quote, ok := cached.(model.AssetQuote); ok {
			return quote
		}
	}

	var quote model.AssetQuote
	if contract == nil {
		quote = service.resolveNative(ctx, network)
	} else {
		quote = service.resolveContract(ctx, network, *contract)
		if quote.IsZero() {
			quote = service.resolveDexPair(ctx, network, *contract)
		}
	}

	if quote.IsZero() {
		logger.Warning("No oracle produced a quote for %s on %s", service.assetKey(contract), network.ID)
		return model.AssetQuote{}
	}
	service.Cache.Set(cacheKey, quote, true)
	return quote
}

// WarmNative ... Pre-resolves the native quote so hot reads rarely miss.
func (service *PriceService) WarmNative(ctx context.Context, network model.Network) {
	service.Resolve(ctx, network, nil)
}

func (service *PriceService) resolveNative(ctx context.Context, network model.Network) model.AssetQuote {
	metaData := GetRequestMetaData("simplePrice", service.Config)
	responseData := dto.SimplePriceResponse{}
	endpoint := fmt.Sprintf("%s%s", metaData.Endpoint, fmt.Sprintf(metaData.Action, url.QueryEscape(network.NativeCoinID)))

	if err := service.oracleCall(ctx, metaData.Type, endpoint, &responseData); err != nil {
		logger.Warning("Native price oracle failed for %s : %s", network.NativeCoinID, err)
		return model.AssetQuote{}
	}
	entry, ok := responseData[network.NativeCoinID]
	if !ok || entry.USD == 0 {
		return model.AssetQuote{}
	}
	return model.AssetQuote{
		USDPrice: entry.USD,
		Name:     network.NativeName,
		Symbol:   network.NativeSymbol,
		Decimals: network.NativeDecimals,
	}
}

func (service *PriceService) resolveContract(ctx context.Context, network model.Network, contract string) model.AssetQuote {
	metaData := GetRequestMetaData("contractPrice", service.Config)
	responseData := dto.ContractPriceResponse{}
	endpoint := fmt.Sprintf("%s%s", metaData.Endpoint, fmt.Sprintf(metaData.Action, network.PricePlatform, strings.ToLower(contract)))

	if err := service.oracleCall(ctx, metaData.Type, endpoint, &responseData); err != nil {
		logger.Warning("Contract price oracle failed for %s on %s : %s", contract, network.PricePlatform, err)
		return model.AssetQuote{}
	}

	quote := model.AssetQuote{
		USDPrice: responseData.MarketData.CurrentPrice["usd"],
		Name:     responseData.Name,
		Symbol:   strings.ToUpper(responseData.Symbol),
		IconURL:  responseData.Image.Small,
	}
	if platform, ok := responseData.DetailPlatforms[network.PricePlatform]; ok && platform.DecimalPlace != nil {
		quote.Decimals = *platform.DecimalPlace
	}
	if quote.USDPrice == 0 && quote.Name == "" {
		return model.AssetQuote{}
	}
	return quote
}

// resolveDexPair asks the liquidity-pool oracle, accepting only pairs on the
// requested network's venue and preferring the deepest pool.
func (service *PriceService) resolveDexPair(ctx context.Context, network model.Network, contract string) model.AssetQuote {
	metaData := GetRequestMetaData("dexPairs", service.Config)
	responseData := dto.DexPairsResponse{}
	endpoint := fmt.Sprintf("%s%s", metaData.Endpoint, fmt.Sprintf(metaData.Action, strings.ToLower(contract)))

	if err := service.oracleCall(ctx, metaData.Type, endpoint, &responseData); err != nil {
		logger.Warning("Dex pair oracle failed for %s : %s", contract, err)
		return model.AssetQuote{}
	}

	var best *dto.DexPair
	for i := range responseData.Pairs {
		pair := &responseData.Pairs[i]
		if !strings.EqualFold(pair.ChainID, network.DexPlatform) {
			continue
		}
		if !strings.EqualFold(pair.BaseToken.Address, contract) {
			continue
		}
		if best == nil || pair.Liquidity.USD > best.Liquidity.USD {
			best = pair
		}
	}
	if best == nil {
		return model.AssetQuote{}
	}
	price, err := strconv.ParseFloat(best.PriceUSD, 64)
	if err != nil || price == 0 {
		return model.AssetQuote{}
	}
	return model.AssetQuote{
		USDPrice: price,
		Name:     best.BaseToken.Name,
		Symbol:   strings.ToUpper(best.BaseToken.Symbol),
		IconURL:  best.Info.ImageURL,
	}
}

func (service *PriceService) oracleCall(ctx context.Context, method, endpoint string, responseData interface{}) error {
	APIClient := apiClient.New(nil, endpoint).WithRetries(priceReadAttempts)
	APIRequest, err := APIClient.NewRequest(ctx, method, "", nil)
	if err != nil {
		return err
	}
	if service.Config.PriceOracleAPIKey != "" {
		APIClient.AddHeader(APIRequest, map[string]string{
			"x-cg-demo-api-key": service.Config.PriceOracleAPIKey,
		})
	}
	_, err = APIClient.Do(APIRequest, responseData)
	return err
}

func (service *PriceService) cacheKey(network model.Network, contract *string) string {
	return fmt.Sprintf("price|%s|%s", network.ID, service.assetKey(contract))
}

func (service *PriceService) assetKey(contract *string) string {
	if contract == nil {
		return "native"
	}
	return strings.ToLower(*contract)
}
