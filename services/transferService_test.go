package services

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet-engine/model"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
)

func testAccount() model.Account {
	return model.Account{Name: "user-42", Address: "0x" + repeatHex("0a", 20)}
}

func nativeTransferRequest(network model.Network) model.TransferRequest {
	return model.TransferRequest{
		AccountName: "user-42",
		Network:     network,
		To:          "0x" + repeatHex("0b", 20),
		Asset:       model.AssetRef{Kind: model.AssetNative},
		Amount:      big.NewInt(1_000_000_000_000_000),
	}
}

func baseNetwork(t *testing.T) model.Network {
	network, err := testRegistry().Get("base")
	require.NoError(t, err)
	return network
}

func TestTransferPrefersCustodyPath(t *testing.T) {
	custody := newFakeCustody()
	signer := newFakeSigner()
	service := NewTransferService(custody, signer)

	result, err := service.Transfer(context.Background(), testAccount(), nativeTransferRequest(baseNetwork(t)))
	require.NoError(t, err)
	require.Equal(t, model.TransferMethodPrimary, result.Method)
	require.Equal(t, custody.transferHash, result.TransactionHash)
	require.Equal(t, testAccount().Address, result.From)
	require.Zero(t, signer.nativeCalls)
}

func TestTransferFallsBackToLocalSigning(t *testing.T) {
	custody := newFakeCustody()
	custody.transferErr = appError.New(http.StatusBadGateway, errorcode.SERVICE_UNAVAILABLE, errors.New("unsupported asset"))
	signer := newFakeSigner()
	service := NewTransferService(custody, signer)

	result, err := service.Transfer(context.Background(), testAccount(), nativeTransferRequest(baseNetwork(t)))
	require.NoError(t, err)
	require.Equal(t, model.TransferMethodFallback, result.Method)
	require.Equal(t, signer.hash, result.TransactionHash)
	require.Equal(t, 1, signer.nativeCalls)
	require.Zero(t, signer.tokenCalls)
}

func TestTransferTokenUsesTokenSend(t *testing.T) {
	custody := newFakeCustody()
	custody.transferErr = errors.New("unsupported asset")
	signer := newFakeSigner()
	service := NewTransferService(custody, signer)

	request := nativeTransferRequest(baseNetwork(t))
	request.Asset = model.AssetRef{Kind: model.AssetFungible, Contract: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"}

	result, err := service.Transfer(context.Background(), testAccount(), request)
	require.NoError(t, err)
	require.Equal(t, model.TransferMethodFallback, result.Method)
	require.Equal(t, 1, signer.tokenCalls)
	require.Zero(t, signer.nativeCalls)
}

func TestTransferReportsAllPathsWhenBothFail(t *testing.T) {
	custody := newFakeCustody()
	custody.transferErr = errors.New("custody down")
	signer := newFakeSigner()
	signer.err = errors.New("rpc down")
	service := NewTransferService(custody, signer)

	_, err := service.Transfer(context.Background(), testAccount(), nativeTransferRequest(baseNetwork(t)))
	require.Error(t, err)
	require.Equal(t, errorcode.SEND_FAILED, appError.TypeOf(err, ""))
	require.Equal(t, http.StatusInternalServerError, appError.StatusOf(err))

	details, ok := appError.DataOf(err).(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, []string{model.TransferMethodPrimary, model.TransferMethodFallback}, details["attemptedPaths"])
	require.Len(t, details["failures"], 2)
}

func TestTransferFailsWhenKeyExportFails(t *testing.T) {
	custody := newFakeCustody()
	custody.transferErr = errors.New("custody down")
	custody.exportErr = errors.New("export denied")
	signer := newFakeSigner()
	service := NewTransferService(custody, signer)

	_, err := service.Transfer(context.Background(), testAccount(), nativeTransferRequest(baseNetwork(t)))
	require.Error(t, err)
	require.Zero(t, signer.nativeCalls)
}

func TestTransferNFTUsesLocalSigningOnly(t *testing.T) {
	custody := newFakeCustody()
	signer := newFakeSigner()
	service := NewTransferService(custody, signer)

	request := model.NFTTransferRequest{
		AccountName:     "user-42",
		Network:         baseNetwork(t),
		To:              "0x" + repeatHex("0b", 20),
		ContractAddress: "0x" + repeatHex("0c", 20),
		TokenID:         big.NewInt(42),
	}
	result, err := service.TransferNFT(context.Background(), testAccount(), request)
	require.NoError(t, err)
	require.Equal(t, model.TransferMethodFallback, result.Method)
	require.Equal(t, 1, signer.nftCalls)
	require.Zero(t, custody.transferCalls)
}

func TestTransferNFTFailureCode(t *testing.T) {
	custody := newFakeCustody()
	signer := newFakeSigner()
	signer.err = errors.New("revert")
	service := NewTransferService(custody, signer)

	request := model.NFTTransferRequest{
		AccountName:     "user-42",
		Network:         baseNetwork(t),
		To:              "0x" + repeatHex("0b", 20),
		ContractAddress: "0x" + repeatHex("0c", 20),
		TokenID:         big.NewInt(1),
	}
	_, err := service.TransferNFT(context.Background(), testAccount(), request)
	require.Error(t, err)
	require.Equal(t, errorcode.SEND_NFT_FAILED, appError.TypeOf(err, ""))
}
