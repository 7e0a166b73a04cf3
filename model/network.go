package model

// Network describes one supported chain. Descriptors are immutable after
// startup; see registry for the static table.
type Network struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ChainID        int64  `json:"chainId"`
	NativeSymbol   string `json:"nativeSymbol"`
	NativeName     string `json:"nativeName"`
	NativeDecimals int    `json:"nativeDecimals"`
	// NativeCoinID is the price-oracle identifier of the native asset.
	NativeCoinID string `json:"nativeCoinId"`
	RPCURL       string `json:"rpcUrl"`
	// IndexerURL serves JSON-RPC enhanced queries (token balances, transfers).
	IndexerURL string `json:"indexerUrl"`
	// NFTIndexerURL serves the REST NFT API (owned tokens, contract probe).
	NFTIndexerURL   string `json:"nftIndexerUrl"`
	ExplorerBaseURL string `json:"explorerBaseUrl"`
	// PricePlatform keys the contract-price oracle for this network.
	PricePlatform string `json:"pricePlatform"`
	// DexPlatform keys the liquidity-pool fallback oracle for this network.
	DexPlatform string `json:"dexPlatform"`
}
