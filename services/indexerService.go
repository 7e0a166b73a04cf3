package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	Config "wallet-engine/config"
	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/utility/apiClient"
)

const (
	indexerReadAttempts = 3
	nftPageLimit        = 3
)

//IndexerService object. Wraps the per-network enriched-query indexer
//(token balances, transfer logs, NFT ownership).
type IndexerService struct {
	Config Config.Data
}

// NewIndexerService ... Creates an indexer service instance
func NewIndexerService(config Config.Data) *IndexerService {
	return &IndexerService{Config: config}
}

// TokenBalances ... Fetches the fungible-token balance list for an address.
// Entries with per-contract read errors are dropped here.
func (service *IndexerService) TokenBalances(ctx context.Context, network model.Network, address string) ([]dto.TokenBalanceEntry, error) {
	result := dto.TokenBalancesResult{}
	if err := service.rpcCall(ctx, network, "alchemy_getTokenBalances", []interface{}{address, "erc20"}, &result); err != nil {
		return nil, err
	}
	entries := make([]dto.TokenBalanceEntry, 0, len(result.TokenBalances))
	for _, entry := range result.TokenBalances {
		if entry.Error != "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TokenMetadata ... Fetches name/symbol/decimals for a token contract.
func (service *IndexerService) TokenMetadata(ctx context.Context, network model.Network, contract string) (dto.TokenMetadataResult, error) {
	result := dto.TokenMetadataResult{}
	err := service.rpcCall(ctx, network, "alchemy_getTokenMetadata", []interface{}{contract}, &result)
	return result, err
}

// AssetTransfers ... Fetches asset-transfer logs matching the given filter.
func (service *IndexerService) AssetTransfers(ctx context.Context, network model.Network, params dto.AssetTransferParams) ([]dto.AssetTransfer, error) {
	result := dto.AssetTransfersResult{}
	if err := service.rpcCall(ctx, network, "alchemy_getAssetTransfers", []interface{}{params}, &result); err != nil {
		return nil, err
	}
	return result.Transfers, nil
}

// OwnedNFTs ... Fetches the NFTs owned by an address, with metadata, paging
// through the indexer up to a bounded number of pages.
func (service *IndexerService) OwnedNFTs(ctx context.Context, network model.Network, owner string) ([]dto.OwnedNFT, error) {
	var owned []dto.OwnedNFT
	pageKey := ""
	for page := 0; page < nftPageLimit; page++ {
		action := fmt.Sprintf("/getNFTs?owner=%s&withMetadata=true", url.QueryEscape(owner))
		if pageKey != "" {
			action += "&pageKey=" + url.QueryEscape(pageKey)
		}
		response := dto.OwnedNFTsResponse{}
		if err := service.restCall(ctx, network, action, &response); err != nil {
			return nil, err
		}
		owned = append(owned, response.OwnedNFTs...)
		if response.PageKey == "" {
			break
		}
		pageKey = response.PageKey
	}
	return owned, nil
}

// IsNFTContract ... Probes whether a contract address is NFT-typed. Balance
// endpoints do not reliably distinguish fungible from non-fungible contracts,
// so this asks the NFT indexer for the contract's tokens directly.
func (service *IndexerService) IsNFTContract(ctx context.Context, network model.Network, contract string) (bool, error) {
	action := fmt.Sprintf("/getNFTsForContract?contractAddress=%s&limit=1", url.QueryEscape(contract))
	response := dto.ContractNFTsResponse{}
	if err := service.restCall(ctx, network, action, &response); err != nil {
		return false, err
	}
	return len(response.NFTs) > 0, nil
}

func (service *IndexerService) rpcCall(ctx context.Context, network model.Network, method string, params []interface{}, result interface{}) error {
	requestData := dto.RPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}
	responseData := dto.RPCResponse{}

	APIClient := apiClient.New(nil, network.IndexerURL).WithRetries(indexerReadAttempts)
	APIRequest, err := APIClient.NewRequest(ctx, http.MethodPost, "", requestData)
	if err != nil {
		return err
	}
	if _, err := APIClient.Do(APIRequest, &responseData); err != nil {
		return err
	}
	if responseData.Error != nil {
		return fmt.Errorf("indexer %s error %d: %s", method, responseData.Error.Code, responseData.Error.Message)
	}
	if len(responseData.Result) == 0 {
		return errors.New("indexer returned an empty result")
	}
	return json.Unmarshal(responseData.Result, result)
}

func (service *IndexerService) restCall(ctx context.Context, network model.Network, action string, result interface{}) error {
	APIClient := apiClient.New(nil, fmt.Sprintf("%s%s", network.NFTIndexerURL, action)).WithRetries(indexerReadAttempts)
	APIRequest, err := APIClient.NewRequest(ctx, http.MethodGet, "", nil)
	if err != nil {
		return err
	}
	_, err = APIClient.Do(APIRequest, result)
	return err
}
