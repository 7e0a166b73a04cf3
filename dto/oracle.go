package dto

// SimplePriceResponse ... Native-asset oracle response, keyed by coin id.
type SimplePriceResponse map[string]struct {
	USD float64 `json:"usd"`
}

// ContractPriceResponse ... Primary metadata-and-price oracle response for a
// (platform, contract) pair.
type ContractPriceResponse struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Image  struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
	} `json:"image"`
	DetailPlatforms map[string]struct {
		DecimalPlace *int `json:"decimal_place"`
	} `json:"detail_platforms"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
	} `json:"market_data"`
}

// DexPair ... One liquidity pair of the secondary oracle.
type DexPair struct {
	ChainID   string `json:"chainId"`
	PriceUSD  string `json:"priceUsd"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Info struct {
		ImageURL string `json:"imageUrl"`
	} `json:"info"`
}

// DexPairsResponse ... Secondary liquidity-pool oracle response.
type DexPairsResponse struct {
	Pairs []DexPair `json:"pairs"`
}
