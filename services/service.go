package services

import (
	"context"
	"math/big"
	"net/http"

	Config "wallet-engine/config"
	"wallet-engine/dto"
	"wallet-engine/model"
)

// ICustodyService abstracts the custody API so callers and tests can
// substitute a fake without process-global state.
type ICustodyService interface {
	CreateAccount(ctx context.Context, name string) (dto.CustodyAccount, error)
	GetAccount(ctx context.Context, name string) (dto.CustodyAccount, error)
	Transfer(ctx context.Context, name string, request dto.CustodyTransferRequest) (dto.CustodyTransferResponse, error)
	ExportKey(ctx context.Context, name string) (string, error)
}

// IIndexerService abstracts per-network enriched chain queries.
type IIndexerService interface {
	TokenBalances(ctx context.Context, network model.Network, address string) ([]dto.TokenBalanceEntry, error)
	TokenMetadata(ctx context.Context, network model.Network, contract string) (dto.TokenMetadataResult, error)
	AssetTransfers(ctx context.Context, network model.Network, params dto.AssetTransferParams) ([]dto.AssetTransfer, error)
	OwnedNFTs(ctx context.Context, network model.Network, owner string) ([]dto.OwnedNFT, error)
	IsNFTContract(ctx context.Context, network model.Network, contract string) (bool, error)
}

// IPriceService resolves USD quotes; it never fails, a zero quote means the
// price is unknown.
type IPriceService interface {
	Resolve(ctx context.Context, network model.Network, contract *string) model.AssetQuote
}

// IChainService reads raw chain state over RPC.
type IChainService interface {
	NativeBalance(ctx context.Context, network model.Network, address string) (*big.Int, error)
}

// ILocalSigner constructs, signs and broadcasts transactions directly
// against a network RPC. SendNFT blocks until the transaction is mined.
type ILocalSigner interface {
	SendNative(ctx context.Context, network model.Network, keyHex string, to string, amount *big.Int) (string, string, error)
	SendToken(ctx context.Context, network model.Network, keyHex string, contract string, to string, amount *big.Int) (string, string, error)
	SendNFT(ctx context.Context, network model.Network, keyHex string, contract string, to string, tokenID *big.Int) (string, string, error)
}

// MetaData describes one upstream endpoint.
type MetaData struct {
	Type, Endpoint, Action string
}

// GetRequestMetaData maps a request flag to its upstream endpoint.
func GetRequestMetaData(request string, config Config.Data) MetaData {
	switch request {
	case "createAccount":
		return MetaData{
			Type:     http.MethodPost,
			Endpoint: config.CustodyServiceURL,
			Action:   "/v1/accounts",
		}
	case "getAccount":
		return MetaData{
			Type:     http.MethodGet,
			Endpoint: config.CustodyServiceURL,
			Action:   "/v1/accounts/%s",
		}
	case "custodyTransfer":
		return MetaData{
			Type:     http.MethodPost,
			Endpoint: config.CustodyServiceURL,
			Action:   "/v1/accounts/%s/transfers",
		}
	case "exportKey":
		return MetaData{
			Type:     http.MethodPost,
			Endpoint: config.CustodyServiceURL,
			Action:   "/v1/accounts/%s/key",
		}
	case "simplePrice":
		return MetaData{
			Type:     http.MethodGet,
			Endpoint: config.PriceOracleURL,
			Action:   "/simple/price?ids=%s&vs_currencies=usd",
		}
	case "contractPrice":
		return MetaData{
			Type:     http.MethodGet,
			Endpoint: config.PriceOracleURL,
			Action:   "/coins/%s/contract/%s",
		}
	case "dexPairs":
		return MetaData{
			Type:     http.MethodGet,
			Endpoint: config.DexOracleURL,
			Action:   "/latest/dex/tokens/%s",
		}
	default:
		return MetaData{}
	}
}
