package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	validation "gopkg.in/go-playground/validator.v9"

	Config "wallet-engine/config"
	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/registry"
	"wallet-engine/utility"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
	"wallet-engine/utility/response"
)

//WalletController : wallet controller struct
type WalletController struct {
	Controller
	Registry *registry.Service
	Account  accountProvisioner
	Balance  balanceAggregator
	NFT      nftAggregator
	History  historyAggregator
	Transfer transferExecutor
}

// NewWalletController ... Creates a wallet controller instance
func NewWalletController(configData Config.Data, validator *validation.Validate, networks *registry.Service,
	account accountProvisioner, balance balanceAggregator, nft nftAggregator, history historyAggregator, transfer transferExecutor) *WalletController {
	controller := &WalletController{}
	controller.Config = configData
	controller.Validator = validator
	controller.Registry = networks
	controller.Account = account
	controller.Balance = balance
	controller.NFT = nft
	controller.History = history
	controller.Transfer = transfer
	return controller
}

// CreateWallet ... Provisions (or resolves) the custody account for a name
func (controller *WalletController) CreateWallet(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	requestData := dto.CreateWalletRequest{}

	if !controller.decodeAndValidate(responseWriter, requestReader, &requestData, "CreateWallet") {
		return
	}

	account, err := controller.Account.Provision(requestReader.Context(), requestData.Name)
	if err != nil {
		ReturnServiceError(responseWriter, "CreateWallet", err, errorcode.SERVICE_UNAVAILABLE)
		return
	}

	logger.Info("Outgoing response to CreateWallet request %+v", http.StatusOK)
	Respond(responseWriter, http.StatusOK, apiResponse.Successful(dto.CreateWalletResponse{
		Address:     account.Address,
		AccountName: account.Name,
	}))
}

// GetTokens ... Aggregates token balances across all networks for a name
func (controller *WalletController) GetTokens(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	name := mux.Vars(requestReader)["name"]

	account, err := controller.Account.Provision(requestReader.Context(), name)
	if err != nil {
		ReturnServiceError(responseWriter, "GetTokens", err, errorcode.SERVICE_UNAVAILABLE)
		return
	}

	tokens, totalUSDValue, err := controller.Balance.GetBalances(requestReader.Context(), account.Address)
	if err != nil {
		ReturnServiceError(responseWriter, "GetTokens", err, errorcode.FETCH_TOKENS_FAILED)
		return
	}

	Respond(responseWriter, http.StatusOK, apiResponse.Successful(dto.TokensResponse{
		Tokens:        tokens,
		TotalUSDValue: totalUSDValue,
		Address:       account.Address,
	}))
}

// GetNFTs ... Aggregates NFT holdings across all networks for a name
func (controller *WalletController) GetNFTs(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	name := mux.Vars(requestReader)["name"]

	account, err := controller.Account.Provision(requestReader.Context(), name)
	if err != nil {
		ReturnServiceError(responseWriter, "GetNFTs", err, errorcode.SERVICE_UNAVAILABLE)
		return
	}

	nfts, err := controller.NFT.GetNFTs(requestReader.Context(), account.Address)
	if err != nil {
		ReturnServiceError(responseWriter, "GetNFTs", err, errorcode.FETCH_NFTS_FAILED)
		return
	}

	Respond(responseWriter, http.StatusOK, apiResponse.Successful(dto.NFTsResponse{
		NFTs:    nfts,
		Address: account.Address,
	}))
}

// GetHistory ... Aggregates transfer history across all networks for a name
func (controller *WalletController) GetHistory(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	name := mux.Vars(requestReader)["name"]

	account, err := controller.Account.Provision(requestReader.Context(), name)
	if err != nil {
		ReturnServiceError(responseWriter, "GetHistory", err, errorcode.SERVICE_UNAVAILABLE)
		return
	}

	transactions, err := controller.History.GetHistory(requestReader.Context(), account.Address)
	if err != nil {
		ReturnServiceError(responseWriter, "GetHistory", err, errorcode.FETCH_HISTORY_FAILED)
		return
	}

	Respond(responseWriter, http.StatusOK, apiResponse.Successful(dto.HistoryResponse{
		Transactions: transactions,
		Address:      account.Address,
	}))
}

// SendToken ... Executes a native or fungible-token transfer
func (controller *WalletController) SendToken(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	requestData := dto.SendRequest{}

	if !controller.decodeAndValidate(responseWriter, requestReader, &requestData, "SendToken") {
		return
	}

	network, err := controller.Registry.Get(requestData.Network)
	if err != nil {
		ReturnError(responseWriter, "SendToken", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.UNKNOWN_NETWORK_ERR))
		return
	}
	if !model.IsHexAddress(requestData.To) {
		ReturnError(responseWriter, "SendToken", http.StatusBadRequest, errors.New(errorcode.INVALID_ADDRESS_ERR), apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.INVALID_ADDRESS_ERR))
		return
	}
	asset, err := model.ParseAssetRef(requestData.Token, network)
	if err != nil {
		ReturnError(responseWriter, "SendToken", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.INVALID_ASSET_ERR))
		return
	}
	amount, err := utility.ParseRawAmount(requestData.Amount)
	if err != nil {
		ReturnError(responseWriter, "SendToken", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.INVALID_AMOUNT_ERR))
		return
	}

	account, err := controller.Account.Provision(requestReader.Context(), requestData.Name)
	if err != nil {
		ReturnServiceError(responseWriter, "SendToken", err, errorcode.SERVICE_UNAVAILABLE)
		return
	}

	result, err := controller.Transfer.Transfer(requestReader.Context(), account, model.TransferRequest{
		AccountName: requestData.Name,
		Network:     network,
		To:          requestData.To,
		Asset:       asset,
		Amount:      amount,
	})
	if err != nil {
		ReturnServiceError(responseWriter, "SendToken", err, errorcode.SEND_FAILED)
		return
	}

	logger.Info("Transfer on %s served by %s path : %s", network.ID, result.Method, result.TransactionHash)
	Respond(responseWriter, http.StatusOK, apiResponse.Successful(dto.SendResponse{
		TransactionHash: result.TransactionHash,
		From:            result.From,
		To:              requestData.To,
		Amount:          requestData.Amount,
		Token:           requestData.Token,
		Network:         network.ID,
		Method:          result.Method,
	}))
}

// SendNFT ... Executes an ERC-721 transfer through the local signing path
func (controller *WalletController) SendNFT(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	requestData := dto.SendNFTRequest{}

	if !controller.decodeAndValidate(responseWriter, requestReader, &requestData, "SendNFT") {
		return
	}

	network, err := controller.Registry.Get(requestData.Network)
	if err != nil {
		ReturnError(responseWriter, "SendNFT", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.UNKNOWN_NETWORK_ERR))
		return
	}
	if !model.IsHexAddress(requestData.To) || !model.IsHexAddress(requestData.ContractAddress) {
		ReturnError(responseWriter, "SendNFT", http.StatusBadRequest, errors.New(errorcode.INVALID_ADDRESS_ERR), apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.INVALID_ADDRESS_ERR))
		return
	}
	tokenID, err := utility.ParseTokenID(requestData.TokenID)
	if err != nil {
		ReturnError(responseWriter, "SendNFT", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INVALID_REQUEST, "tokenId must be a non-negative integer string"))
		return
	}

	account, err := controller.Account.Provision(requestReader.Context(), requestData.Name)
	if err != nil {
		ReturnServiceError(responseWriter, "SendNFT", err, errorcode.SERVICE_UNAVAILABLE)
		return
	}

	result, err := controller.Transfer.TransferNFT(requestReader.Context(), account, model.NFTTransferRequest{
		AccountName:     requestData.Name,
		Network:         network,
		To:              requestData.To,
		ContractAddress: requestData.ContractAddress,
		TokenID:         tokenID,
	})
	if err != nil {
		ReturnServiceError(responseWriter, "SendNFT", err, errorcode.SEND_NFT_FAILED)
		return
	}

	Respond(responseWriter, http.StatusOK, apiResponse.Successful(dto.SendNFTResponse{
		TransactionHash: result.TransactionHash,
		From:            result.From,
		To:              requestData.To,
		ContractAddress: requestData.ContractAddress,
		TokenID:         requestData.TokenID,
		Network:         network.ID,
	}))
}

func (controller *WalletController) decodeAndValidate(responseWriter http.ResponseWriter, requestReader *http.Request, requestData interface{}, tag string) bool {
	apiResponse := response.New()

	if err := json.NewDecoder(requestReader.Body).Decode(requestData); err != nil {
		ReturnError(responseWriter, tag, http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INVALID_REQUEST, errorcode.INPUT_ERR))
		return false
	}
	if err := controller.Validator.Struct(requestData); err != nil {
		validationErrors := []map[string]string{}
		if fieldErrors, ok := err.(validation.ValidationErrors); ok {
			for _, fieldError := range fieldErrors {
				validationErrors = append(validationErrors, map[string]string{
					"field":   fieldError.Field(),
					"message": fmt.Sprintf("failed on the %q rule", fieldError.Tag()),
				})
			}
		}
		ReturnError(responseWriter, tag, http.StatusBadRequest, err, apiResponse.DetailedError(errorcode.INVALID_REQUEST, errorcode.VALIDATION_ERR, validationErrors))
		return false
	}
	return true
}
