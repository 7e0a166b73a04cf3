package model

// NFTAttribute is one metadata trait attached to an NFT.
type NFTAttribute struct {
	TraitType string      `json:"traitType"`
	Value     interface{} `json:"value"`
}

// NFTHolding is one owned NFT, normalized across networks and indexers.
type NFTHolding struct {
	Network         string         `json:"network"`
	ContractAddress string         `json:"contractAddress"`
	TokenID         string         `json:"tokenId"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	CollectionName  string         `json:"collectionName,omitempty"`
	TokenType       string         `json:"tokenType"`
	Quantity        string         `json:"quantity,omitempty"`
	Attributes      []NFTAttribute `json:"attributes,omitempty"`
}
