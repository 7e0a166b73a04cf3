package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/registry"
	"wallet-engine/utility"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
)

const (
	ipfsGateway    = "https://ipfs.io/ipfs/"
	arweaveGateway = "https://arweave.net/"
)

//NFTService object. Aggregates NFT holdings across networks, normalizing
//metadata into a single shape.
type NFTService struct {
	Registry *registry.Service
	Indexer  IIndexerService
}

// NewNFTService ... Creates an NFT aggregation service instance
func NewNFTService(networks *registry.Service, indexer IIndexerService) *NFTService {
	return &NFTService{
		Registry: networks,
		Indexer:  indexer,
	}
}

// GetNFTs ... Fans out across all networks and lists the NFTs owned by an
// address. Per-network failures are logged and skipped; the call errors only
// when every network fails.
func (service *NFTService) GetNFTs(ctx context.Context, address string) ([]model.NFTHolding, error) {
	networks := service.Registry.All()

	var waitGroup sync.WaitGroup
	var mutex sync.Mutex
	holdings := []model.NFTHolding{}
	failedNetworks := 0

	for _, network := range networks {
		waitGroup.Add(1)
		go func(network model.Network) {
			defer waitGroup.Done()
			owned, err := service.Indexer.OwnedNFTs(ctx, network, address)
			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				failedNetworks++
				logger.Warning("Excluding %s from NFT aggregation : %s", network.ID, err)
				return
			}
			for _, nft := range owned {
				holdings = append(holdings, normalizeNFT(network, nft))
			}
		}(network)
	}
	waitGroup.Wait()

	if failedNetworks == len(networks) {
		return nil, appError.New(http.StatusInternalServerError, errorcode.FETCH_NFTS_FAILED, errors.New(errorcode.ALL_NETWORKS_FAILED))
	}
	return holdings, nil
}

func normalizeNFT(network model.Network, nft dto.OwnedNFT) model.NFTHolding {
	tokenID := normalizeTokenID(nft.ID.TokenID)
	collection := nft.ContractMetadata.OpenSea.CollectionName
	if collection == "" {
		collection = nft.ContractMetadata.Name
	}

	name := nft.Title
	if name == "" {
		name = nft.Metadata.Name
	}
	if name == "" {
		if collection != "" {
			name = fmt.Sprintf("%s #%s", collection, tokenID)
		} else {
			name = fmt.Sprintf("#%s", tokenID)
		}
	}

	tokenType := strings.ToUpper(nft.ID.TokenMetadata.TokenType)
	if tokenType == "" {
		tokenType = "ERC721"
	}

	holding := model.NFTHolding{
		Network:         network.ID,
		ContractAddress: nft.Contract.Address,
		TokenID:         tokenID,
		Name:            name,
		Description:     nft.Description,
		ImageURL:        rewriteContentURI(pickImage(nft)),
		CollectionName:  collection,
		TokenType:       tokenType,
	}
	if tokenType == "ERC1155" {
		holding.Quantity = nft.Balance
	}
	for _, attribute := range nft.Metadata.Attributes {
		holding.Attributes = append(holding.Attributes, model.NFTAttribute{
			TraitType: attribute.TraitType,
			Value:     attribute.Value,
		})
	}
	return holding
}

// pickImage applies the preference order: embedded metadata image, cached
// gateway rendition, original URL, thumbnail.
func pickImage(nft dto.OwnedNFT) string {
	if nft.Metadata.Image != "" {
		return nft.Metadata.Image
	}
	for _, media := range nft.Media {
		if media.Gateway != "" {
			return media.Gateway
		}
	}
	for _, media := range nft.Media {
		if media.Raw != "" {
			return media.Raw
		}
	}
	for _, media := range nft.Media {
		if media.Thumbnail != "" {
			return media.Thumbnail
		}
	}
	return ""
}

// rewriteContentURI maps content-addressed URI schemes to HTTP gateways so
// clients can render images directly.
func rewriteContentURI(uri string) string {
	switch {
	case strings.HasPrefix(uri, "ipfs://ipfs/"):
		return ipfsGateway + strings.TrimPrefix(uri, "ipfs://ipfs/")
	case strings.HasPrefix(uri, "ipfs://"):
		return ipfsGateway + strings.TrimPrefix(uri, "ipfs://")
	case strings.HasPrefix(uri, "ar://"):
		return arweaveGateway + strings.TrimPrefix(uri, "ar://")
	default:
		return uri
	}
}

// normalizeTokenID renders hex token ids as decimal strings.
func normalizeTokenID(tokenID string) string {
	if strings.HasPrefix(tokenID, "0x") {
		return utility.ParseHexBig(tokenID).String()
	}
	return tokenID
}
