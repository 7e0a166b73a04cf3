package model

// TransferRecord is one asset-transfer log entry. Records are immutable once
// fetched; the aggregate history is ordered by TimestampMs descending.
type TransferRecord struct {
	Network     string  `json:"network"`
	Hash        string  `json:"hash"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Value       float64 `json:"value"`
	AssetSymbol string  `json:"assetSymbol"`
	Category    string  `json:"category"`
	TimestampMs int64   `json:"timestampMs"`
	BlockNumber uint64  `json:"blockNumber"`
	ExplorerURL string  `json:"explorerUrl"`
}
