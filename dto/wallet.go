package dto

import "wallet-engine/model"

// CreateWalletRequest ... Body of POST /wallet
type CreateWalletRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateWalletResponse ... Data payload of POST /wallet
type CreateWalletResponse struct {
	Address     string `json:"address"`
	AccountName string `json:"accountName"`
}

// TokensResponse ... Data payload of GET /wallet/tokens/{name}
type TokensResponse struct {
	Tokens        []model.TokenBalance `json:"tokens"`
	TotalUSDValue float64              `json:"totalUsdValue"`
	Address       string               `json:"address"`
}

// NFTsResponse ... Data payload of GET /wallet/nfts/{name}
type NFTsResponse struct {
	NFTs    []model.NFTHolding `json:"nfts"`
	Address string             `json:"address"`
}

// HistoryResponse ... Data payload of GET /wallet/history/{name}
type HistoryResponse struct {
	Transactions []model.TransferRecord `json:"transactions"`
	Address      string                 `json:"address"`
}

// SendRequest ... Body of POST /wallet/send. Amount is a decimal string in
// the asset's smallest unit.
type SendRequest struct {
	Name    string `json:"name" validate:"required"`
	Network string `json:"network" validate:"required"`
	To      string `json:"to" validate:"required"`
	Token   string `json:"token" validate:"required"`
	Amount  string `json:"amount" validate:"required"`
}

// SendResponse ... Data payload of POST /wallet/send
type SendResponse struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Amount          string `json:"amount"`
	Token           string `json:"token"`
	Network         string `json:"network"`
	Method          string `json:"method"`
}

// SendNFTRequest ... Body of POST /wallet/send-nft
type SendNFTRequest struct {
	Name            string `json:"name" validate:"required"`
	Network         string `json:"network" validate:"required"`
	To              string `json:"to" validate:"required"`
	ContractAddress string `json:"contractAddress" validate:"required"`
	TokenID         string `json:"tokenId" validate:"required"`
}

// SendNFTResponse ... Data payload of POST /wallet/send-nft
type SendNFTResponse struct {
	TransactionHash string `json:"transactionHash"`
	From            string `json:"from"`
	To              string `json:"to"`
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
	Network         string `json:"network"`
}
