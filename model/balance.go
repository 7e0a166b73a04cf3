package model

// AssetQuote is the result of price resolution for one asset. A zero USDPrice
// means the price is unknown, not that the asset is worthless.
type AssetQuote struct {
	USDPrice float64
	Name     string
	Symbol   string
	Decimals int
	IconURL  string
}

// IsZero reports whether resolution produced no usable quote.
func (q AssetQuote) IsZero() bool {
	return q.USDPrice == 0 && q.Symbol == "" && q.Name == ""
}

// TokenBalance is one fungible (or native) position held by an address.
// ContractAddress is nil for the network's native asset.
type TokenBalance struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	RawAmount       string  `json:"rawAmount"`
	Decimals        int     `json:"decimals"`
	FormattedAmount string  `json:"formattedAmount"`
	USDPrice        float64 `json:"usdPrice"`
	USDValue        float64 `json:"usdValue"`
	ContractAddress *string `json:"contractAddress"`
	Network         string  `json:"network"`
	IconURL         string  `json:"iconUrl,omitempty"`
}
