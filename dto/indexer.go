package dto

import "encoding/json"

// RPCRequest ... JSON-RPC 2.0 request envelope for indexer calls
type RPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// RPCError ... JSON-RPC error object
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCResponse ... JSON-RPC 2.0 response envelope
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// TokenBalanceEntry ... One entry of alchemy_getTokenBalances. TokenBalance
// is a 0x hex quantity; Error is set per entry when the contract read failed.
type TokenBalanceEntry struct {
	ContractAddress string `json:"contractAddress"`
	TokenBalance    string `json:"tokenBalance"`
	Error           string `json:"error,omitempty"`
}

// TokenBalancesResult ... Result of alchemy_getTokenBalances
type TokenBalancesResult struct {
	Address       string              `json:"address"`
	TokenBalances []TokenBalanceEntry `json:"tokenBalances"`
}

// TokenMetadataResult ... Result of alchemy_getTokenMetadata
type TokenMetadataResult struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals *int   `json:"decimals"`
	Logo     string `json:"logo"`
}

// AssetTransferParams ... Filter object of alchemy_getAssetTransfers
type AssetTransferParams struct {
	FromBlock    string   `json:"fromBlock,omitempty"`
	ToBlock      string   `json:"toBlock,omitempty"`
	FromAddress  string   `json:"fromAddress,omitempty"`
	ToAddress    string   `json:"toAddress,omitempty"`
	Category     []string `json:"category"`
	Order        string   `json:"order,omitempty"`
	MaxCount     string   `json:"maxCount,omitempty"`
	WithMetadata bool     `json:"withMetadata"`
}

// AssetTransfer ... One transfer log entry
type AssetTransfer struct {
	Hash     string   `json:"hash"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Value    *float64 `json:"value"`
	Asset    string   `json:"asset"`
	Category string   `json:"category"`
	BlockNum string   `json:"blockNum"`
	Metadata struct {
		BlockTimestamp string `json:"blockTimestamp"`
	} `json:"metadata"`
}

// AssetTransfersResult ... Result of alchemy_getAssetTransfers
type AssetTransfersResult struct {
	Transfers []AssetTransfer `json:"transfers"`
	PageKey   string          `json:"pageKey,omitempty"`
}

// NFTMedia ... One media rendition of an owned NFT
type NFTMedia struct {
	Gateway   string `json:"gateway"`
	Raw       string `json:"raw"`
	Thumbnail string `json:"thumbnail"`
}

// OwnedNFT ... One entry of the NFT indexer getNFTs response
type OwnedNFT struct {
	Contract struct {
		Address string `json:"address"`
	} `json:"contract"`
	ID struct {
		TokenID       string `json:"tokenId"`
		TokenMetadata struct {
			TokenType string `json:"tokenType"`
		} `json:"tokenMetadata"`
	} `json:"id"`
	Balance     string     `json:"balance"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Media       []NFTMedia `json:"media"`
	Metadata    struct {
		Name       string `json:"name"`
		Image      string `json:"image"`
		Attributes []struct {
			TraitType string      `json:"trait_type"`
			Value     interface{} `json:"value"`
		} `json:"attributes"`
	} `json:"metadata"`
	ContractMetadata struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		OpenSea struct {
			CollectionName string `json:"collectionName"`
		} `json:"openSea"`
	} `json:"contractMetadata"`
}

// OwnedNFTsResponse ... Response of the NFT indexer getNFTs endpoint
type OwnedNFTsResponse struct {
	OwnedNFTs  []OwnedNFT `json:"ownedNfts"`
	PageKey    string     `json:"pageKey,omitempty"`
	TotalCount int        `json:"totalCount"`
}

// ContractNFTsResponse ... Response of the getNFTsForContract probe used to
// tell NFT contracts apart from fungible ones.
type ContractNFTsResponse struct {
	NFTs []struct {
		ID struct {
			TokenID string `json:"tokenId"`
		} `json:"id"`
	} `json:"nfts"`
}
