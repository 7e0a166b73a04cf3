package model

import "math/big"

// Execution path names reported in TransferResult.Method.
const (
	TransferMethodPrimary  = "primary"
	TransferMethodFallback = "fallback"
)

// TransferRequest is a fungible (or native) transfer resolved and validated
// by the controller layer. Amount is in the asset's smallest unit.
type TransferRequest struct {
	AccountName string
	Network     Network
	To          string
	Asset       AssetRef
	Amount      *big.Int
}

// NFTTransferRequest is an ERC-721 transfer. It always executes through the
// local signing path.
type NFTTransferRequest struct {
	AccountName     string
	Network         Network
	To              string
	ContractAddress string
	TokenID         *big.Int
}

// TransferResult reports the broadcast hash and which execution path served
// the transfer.
type TransferResult struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	Method          string `json:"method"`
}
