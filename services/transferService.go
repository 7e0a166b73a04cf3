package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
)

//TransferService object. Executes transfers through an ordered strategy
//list: the custody service first, then local signing. Which strategy served
//the request is a first-class part of the result.
type TransferService struct {
	Custody ICustodyService
	Signer  ILocalSigner
}

// NewTransferService ... Creates a transfer service instance
func NewTransferService(custody ICustodyService, signer ILocalSigner) *TransferService {
	return &TransferService{
		Custody: custody,
		Signer:  signer,
	}
}

type transferStrategy struct {
	name string
	run  func(ctx context.Context) (model.TransferResult, error)
}

// Transfer ... Executes a native or fungible-token transfer. The custody
// service's transfer API does not cover every asset/network pair, so local
// signing runs as the second strategy; the engine never retries a strategy.
func (service *TransferService) Transfer(ctx context.Context, account model.Account, request model.TransferRequest) (model.TransferResult, error) {
	strategies := []transferStrategy{
		{
			name: model.TransferMethodPrimary,
			run: func(ctx context.Context) (model.TransferResult, error) {
				return service.custodyTransfer(ctx, account, request)
			},
		},
		{
			name: model.TransferMethodFallback,
			run: func(ctx context.Context) (model.TransferResult, error) {
				return service.localTransfer(ctx, account, request)
			},
		},
	}
	return service.execute(ctx, strategies, errorcode.SEND_FAILED)
}

// TransferNFT ... Executes an ERC-721 transfer. The custody service has no
// NFT transfer API, so this goes straight to local signing and blocks until
// the transaction is mined.
func (service *TransferService) TransferNFT(ctx context.Context, account model.Account, request model.NFTTransferRequest) (model.TransferResult, error) {
	strategies := []transferStrategy{
		{
			name: model.TransferMethodFallback,
			run: func(ctx context.Context) (model.TransferResult, error) {
				keyHex, err := service.Custody.ExportKey(ctx, account.Name)
				if err != nil {
					return model.TransferResult{}, err
				}
				hash, from, err := service.Signer.SendNFT(ctx, request.Network, keyHex, request.ContractAddress, request.To, request.TokenID)
				if err != nil {
					return model.TransferResult{}, err
				}
				return model.TransferResult{TransactionHash: hash, From: from}, nil
			},
		},
	}
	return service.execute(ctx, strategies, errorcode.SEND_NFT_FAILED)
}

func (service *TransferService) execute(ctx context.Context, strategies []transferStrategy, failureCode string) (model.TransferResult, error) {
	var attempted []string
	var failures []string

	for _, strategy := range strategies {
		result, err := strategy.run(ctx)
		attempted = append(attempted, strategy.name)
		if err == nil {
			result.Method = strategy.name
			return result, nil
		}
		logger.Warning("Transfer strategy %s failed : %s", strategy.name, err)
		failures = append(failures, fmt.Sprintf("%s: %s", strategy.name, err))
	}

	appErr := appError.New(http.StatusInternalServerError, failureCode, errors.New(errorcode.ALL_PATHS_FAILED))
	appErr.ErrData = map[string]interface{}{
		"attemptedPaths": attempted,
		"failures":       failures,
	}
	return model.TransferResult{}, appErr
}

func (service *TransferService) custodyTransfer(ctx context.Context, account model.Account, request model.TransferRequest) (model.TransferResult, error) {
	response, err := service.Custody.Transfer(ctx, account.Name, dto.CustodyTransferRequest{
		Network: request.Network.ID,
		To:      request.To,
		Asset:   custodyAssetIdentifier(request),
		Amount:  request.Amount.String(),
	})
	if err != nil {
		return model.TransferResult{}, err
	}
	if response.TransactionHash == "" {
		return model.TransferResult{}, errors.New("custody service returned no transaction hash")
	}
	return model.TransferResult{TransactionHash: response.TransactionHash, From: account.Address}, nil
}

func (service *TransferService) localTransfer(ctx context.Context, account model.Account, request model.TransferRequest) (model.TransferResult, error) {
	keyHex, err := service.Custody.ExportKey(ctx, account.Name)
	if err != nil {
		return model.TransferResult{}, err
	}

	var hash, from string
	if request.Asset.IsNative() {
		hash, from, err = service.Signer.SendNative(ctx, request.Network, keyHex, request.To, request.Amount)
	} else {
		hash, from, err = service.Signer.SendToken(ctx, request.Network, keyHex, request.Asset.Contract, request.To, request.Amount)
	}
	if err != nil {
		return model.TransferResult{}, err
	}
	return model.TransferResult{TransactionHash: hash, From: from}, nil
}

// custodyAssetIdentifier maps the asset variant to the custody wire field:
// the native symbol for native sends, the contract address otherwise.
func custodyAssetIdentifier(request model.TransferRequest) string {
	if request.Asset.IsNative() {
		return strings.ToLower(request.Network.NativeSymbol)
	}
	return request.Asset.Contract
}
