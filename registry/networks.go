package registry

import (
	"fmt"

	Config "wallet-engine/config"
	"wallet-engine/model"
)

// Service holds the static table of supported networks, built once at
// startup. Descriptors are never mutated afterwards.
type Service struct {
	networks map[string]model.Network
	ordered  []model.Network
}

// New builds the registry, templating indexer API keys and applying any
// per-network URL overrides from config.
func New(config Config.Data) *Service {
	descriptors := []model.Network{
		{
			ID:              "base",
			Name:            "Base",
			ChainID:         8453,
			NativeSymbol:    "ETH",
			NativeName:      "Ethereum",
			NativeDecimals:  18,
			NativeCoinID:    "ethereum",
			RPCURL:          firstNonEmpty(config.BaseRPCURL, "https://mainnet.base.org"),
			IndexerURL:      firstNonEmpty(config.BaseIndexerURL, fmt.Sprintf("https://base-mainnet.g.alchemy.com/v2/%s", config.IndexerAPIKey)),
			NFTIndexerURL:   firstNonEmpty(config.BaseIndexerURL, fmt.Sprintf("https://base-mainnet.g.alchemy.com/nft/v2/%s", config.IndexerAPIKey)),
			ExplorerBaseURL: "https://basescan.org",
			PricePlatform:   "base",
			DexPlatform:     "base",
		},
		{
			ID:              "ethereum",
			Name:            "Ethereum",
			ChainID:         1,
			NativeSymbol:    "ETH",
			NativeName:      "Ethereum",
			NativeDecimals:  18,
			NativeCoinID:    "ethereum",
			RPCURL:          firstNonEmpty(config.EthereumRPCURL, "https://eth.llamarpc.com"),
			IndexerURL:      firstNonEmpty(config.EthIndexerURL, fmt.Sprintf("https://eth-mainnet.g.alchemy.com/v2/%s", config.IndexerAPIKey)),
			NFTIndexerURL:   firstNonEmpty(config.EthIndexerURL, fmt.Sprintf("https://eth-mainnet.g.alchemy.com/nft/v2/%s", config.IndexerAPIKey)),
			ExplorerBaseURL: "https://etherscan.io",
			PricePlatform:   "ethereum",
			DexPlatform:     "ethereum",
		},
		{
			ID:              "polygon",
			Name:            "Polygon PoS",
			ChainID:         137,
			NativeSymbol:    "POL",
			NativeName:      "Polygon",
			NativeDecimals:  18,
			NativeCoinID:    "matic-network",
			RPCURL:          firstNonEmpty(config.PolygonRPCURL, "https://polygon-rpc.com"),
			IndexerURL:      firstNonEmpty(config.PolygonIndexerURL, fmt.Sprintf("https://polygon-mainnet.g.alchemy.com/v2/%s", config.IndexerAPIKey)),
			NFTIndexerURL:   firstNonEmpty(config.PolygonIndexerURL, fmt.Sprintf("https://polygon-mainnet.g.alchemy.com/nft/v2/%s", config.IndexerAPIKey)),
			ExplorerBaseURL: "https://polygonscan.com",
			PricePlatform:   "polygon-pos",
			DexPlatform:     "polygon",
		},
	}

	service := &Service{networks: make(map[string]model.Network, len(descriptors))}
	for _, descriptor := range descriptors {
		service.networks[descriptor.ID] = descriptor
		service.ordered = append(service.ordered, descriptor)
	}
	return service
}

// All returns every supported network in registration order.
func (service *Service) All() []model.Network {
	out := make([]model.Network, len(service.ordered))
	copy(out, service.ordered)
	return out
}

// Get resolves a network by id.
func (service *Service) Get(id string) (model.Network, error) {
	network, ok := service.networks[id]
	if !ok {
		return model.Network{}, fmt.Errorf("unsupported network %q", id)
	}
	return network, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
