package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	validation "gopkg.in/go-playground/validator.v9"

	Config "wallet-engine/config"
	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/registry"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/response"
)

const (
	stubAddress = "0x1111111111111111111111111111111111111111"
	stubHash    = "0x2222222222222222222222222222222222222222222222222222222222222222"
)

type stubAccount struct {
	err error
}

func (s *stubAccount) Provision(ctx context.Context, name string) (model.Account, error) {
	if s.err != nil {
		return model.Account{}, s.err
	}
	return model.Account{Name: name, Address: stubAddress}, nil
}

type stubBalance struct {
	tokens []model.TokenBalance
	total  float64
	err    error
}

func (s *stubBalance) GetBalances(ctx context.Context, address string) ([]model.TokenBalance, float64, error) {
	return s.tokens, s.total, s.err
}

type stubNFT struct {
	nfts []model.NFTHolding
	err  error
}

func (s *stubNFT) GetNFTs(ctx context.Context, address string) ([]model.NFTHolding, error) {
	return s.nfts, s.err
}

type stubHistory struct {
	records []model.TransferRecord
	err     error
}

func (s *stubHistory) GetHistory(ctx context.Context, address string) ([]model.TransferRecord, error) {
	return s.records, s.err
}

type stubTransfer struct {
	lastRequest    model.TransferRequest
	lastNFTRequest model.NFTTransferRequest
	result         model.TransferResult
	err            error
}

func (s *stubTransfer) Transfer(ctx context.Context, account model.Account, request model.TransferRequest) (model.TransferResult, error) {
	s.lastRequest = request
	if s.err != nil {
		return model.TransferResult{}, s.err
	}
	return s.result, nil
}

func (s *stubTransfer) TransferNFT(ctx context.Context, account model.Account, request model.NFTTransferRequest) (model.TransferResult, error) {
	s.lastNFTRequest = request
	if s.err != nil {
		return model.TransferResult{}, s.err
	}
	return s.result, nil
}

type testEnv struct {
	router   *mux.Router
	account  *stubAccount
	balance  *stubBalance
	nft      *stubNFT
	history  *stubHistory
	transfer *stubTransfer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		account:  &stubAccount{},
		balance:  &stubBalance{},
		nft:      &stubNFT{},
		history:  &stubHistory{},
		transfer: &stubTransfer{result: model.TransferResult{TransactionHash: stubHash, From: stubAddress, Method: model.TransferMethodPrimary}},
	}
	controller := NewWalletController(Config.Data{}, validation.New(), registry.New(Config.Data{}),
		env.account, env.balance, env.nft, env.history, env.transfer)

	env.router = mux.NewRouter()
	wallet := env.router.PathPrefix("/wallet").Subrouter()
	wallet.HandleFunc("", controller.CreateWallet).Methods(http.MethodPost)
	wallet.HandleFunc("/tokens/{name}", controller.GetTokens).Methods(http.MethodGet)
	wallet.HandleFunc("/nfts/{name}", controller.GetNFTs).Methods(http.MethodGet)
	wallet.HandleFunc("/history/{name}", controller.GetHistory).Methods(http.MethodGet)
	wallet.HandleFunc("/send", controller.SendToken).Methods(http.MethodPost)
	wallet.HandleFunc("/send-nft", controller.SendNFT).Methods(http.MethodPost)
	return env
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorBody `json:"error"`
}

func (env *testEnv) do(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, target, reader)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, request)

	decoded := envelope{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

func TestCreateWalletReturnsAccount(t *testing.T) {
	env := newTestEnv()
	recorder, body := env.do(t, http.MethodPost, "/wallet", dto.CreateWalletRequest{Name: "user-1"})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, body.Success)

	payload := dto.CreateWalletResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	require.Equal(t, stubAddress, payload.Address)
	require.Equal(t, "user-1", payload.AccountName)
}

func TestCreateWalletRejectsMissingName(t *testing.T) {
	env := newTestEnv()
	recorder, body := env.do(t, http.MethodPost, "/wallet", map[string]string{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.False(t, body.Success)
	require.Equal(t, errorcode.INVALID_REQUEST, body.Error.Code)
}

func TestCreateWalletMapsNotFoundToUnavailable(t *testing.T) {
	env := newTestEnv()
	env.account.err = appError.New(http.StatusNotFound, errorcode.SERVICE_UNAVAILABLE, errors.New(errorcode.ACCOUNT_NOT_FOUND))

	recorder, body := env.do(t, http.MethodPost, "/wallet", dto.CreateWalletRequest{Name: "user-1"})
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.Equal(t, errorcode.SERVICE_UNAVAILABLE, body.Error.Code)
}

func TestGetTokensReportsTotal(t *testing.T) {
	env := newTestEnv()
	usdc := "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	env.balance.tokens = []model.TokenBalance{
		{Symbol: "ETH", Network: "base", USDValue: 3000.25},
		{Symbol: "USDC", Network: "base", USDValue: 24.75, ContractAddress: &usdc},
	}
	env.balance.total = 3025.0

	recorder, body := env.do(t, http.MethodGet, "/wallet/tokens/user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := dto.TokensResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	require.Equal(t, stubAddress, payload.Address)
	require.Len(t, payload.Tokens, 2)

	sum := 0.0
	for _, token := range payload.Tokens {
		sum += token.USDValue
	}
	require.InDelta(t, payload.TotalUSDValue, sum, 1e-6)
}

func TestGetTokensPropagatesAggregateFailure(t *testing.T) {
	env := newTestEnv()
	env.balance.err = appError.New(http.StatusInternalServerError, errorcode.FETCH_TOKENS_FAILED, errors.New(errorcode.ALL_NETWORKS_FAILED))

	recorder, body := env.do(t, http.MethodGet, "/wallet/tokens/user-1", nil)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, errorcode.FETCH_TOKENS_FAILED, body.Error.Code)
}

func TestGetNFTs(t *testing.T) {
	env := newTestEnv()
	env.nft.nfts = []model.NFTHolding{{Network: "base", ContractAddress: "0xc1", TokenID: "42", Name: "Cool Cats #42", TokenType: "ERC721"}}

	recorder, body := env.do(t, http.MethodGet, "/wallet/nfts/user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := dto.NFTsResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	require.Len(t, payload.NFTs, 1)
	require.Equal(t, "Cool Cats #42", payload.NFTs[0].Name)
}

func TestGetHistory(t *testing.T) {
	env := newTestEnv()
	env.history.records = []model.TransferRecord{
		{Network: "base", Hash: "0xaaa", TimestampMs: 1709287200000},
		{Network: "ethereum", Hash: "0xbbb", TimestampMs: 1709200800000},
	}

	recorder, body := env.do(t, http.MethodGet, "/wallet/history/user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := dto.HistoryResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	require.Len(t, payload.Transactions, 2)
}

func validSendRequest() dto.SendRequest {
	return dto.SendRequest{
		Name:    "user-1",
		Network: "base",
		To:      "0x3333333333333333333333333333333333333333",
		Token:   "eth",
		Amount:  "1000000000000000",
	}
}

func TestSendTokenSuccess(t *testing.T) {
	env := newTestEnv()
	recorder, body := env.do(t, http.MethodPost, "/wallet/send", validSendRequest())
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := dto.SendResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	require.Len(t, payload.TransactionHash, 66)
	require.Equal(t, model.TransferMethodPrimary, payload.Method)
	require.Equal(t, "base", payload.Network)
	require.True(t, env.transfer.lastRequest.Asset.IsNative())
}

func TestSendTokenResolvesAlias(t *testing.T) {
	env := newTestEnv()
	request := validSendRequest()
	request.Token = "usdc"

	recorder, _ := env.do(t, http.MethodPost, "/wallet/send", request)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, model.AssetFungible, env.transfer.lastRequest.Asset.Kind)
	require.Equal(t, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", env.transfer.lastRequest.Asset.Contract)
}

func TestSendTokenRejectsUnknownNetwork(t *testing.T) {
	env := newTestEnv()
	request := validSendRequest()
	request.Network = "dogechain"

	recorder, body := env.do(t, http.MethodPost, "/wallet/send", request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, errorcode.INVALID_REQUEST, body.Error.Code)
	require.Equal(t, errorcode.UNKNOWN_NETWORK_ERR, body.Error.Message)
}

func TestSendTokenRejectsBadAddress(t *testing.T) {
	env := newTestEnv()
	request := validSendRequest()
	request.To = "vitalik.eth"

	recorder, body := env.do(t, http.MethodPost, "/wallet/send", request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, errorcode.INVALID_ADDRESS_ERR, body.Error.Message)
}

func TestSendTokenRejectsBadAmount(t *testing.T) {
	env := newTestEnv()
	for _, amount := range []string{"-5", "0", "1.5", "abc"} {
		request := validSendRequest()
		request.Amount = amount

		recorder, body := env.do(t, http.MethodPost, "/wallet/send", request)
		require.Equal(t, http.StatusBadRequest, recorder.Code, "amount %q", amount)
		require.Equal(t, errorcode.INVALID_AMOUNT_ERR, body.Error.Message, "amount %q", amount)
	}
}

func TestSendTokenValidationDetails(t *testing.T) {
	env := newTestEnv()
	recorder, body := env.do(t, http.MethodPost, "/wallet/send", map[string]string{"name": "user-1"})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, errorcode.VALIDATION_ERR, body.Error.Message)
	require.NotNil(t, body.Error.Details)
}

func TestSendTokenSurfacesTransferFailure(t *testing.T) {
	env := newTestEnv()
	failure := appError.New(http.StatusInternalServerError, errorcode.SEND_FAILED, errors.New(errorcode.ALL_PATHS_FAILED))
	failure.ErrData = map[string]interface{}{"attemptedPaths": []string{"primary", "fallback"}}
	env.transfer.err = failure

	recorder, body := env.do(t, http.MethodPost, "/wallet/send", validSendRequest())
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, errorcode.SEND_FAILED, body.Error.Code)
	require.NotNil(t, body.Error.Details)
}

func validSendNFTRequest() dto.SendNFTRequest {
	return dto.SendNFTRequest{
		Name:            "user-1",
		Network:         "base",
		To:              "0x3333333333333333333333333333333333333333",
		ContractAddress: "0x4444444444444444444444444444444444444444",
		TokenID:         "42",
	}
}

func TestSendNFTSuccess(t *testing.T) {
	env := newTestEnv()
	recorder, body := env.do(t, http.MethodPost, "/wallet/send-nft", validSendNFTRequest())
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := dto.SendNFTResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &payload))
	require.Equal(t, stubHash, payload.TransactionHash)
	require.Equal(t, "42", payload.TokenID)
	require.Equal(t, "42", env.transfer.lastNFTRequest.TokenID.String())
}

func TestSendNFTAcceptsTokenIDZero(t *testing.T) {
	env := newTestEnv()
	request := validSendNFTRequest()
	request.TokenID = "0"

	recorder, _ := env.do(t, http.MethodPost, "/wallet/send-nft", request)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "0", env.transfer.lastNFTRequest.TokenID.String())
}

func TestSendNFTRejectsBadTokenID(t *testing.T) {
	env := newTestEnv()
	request := validSendNFTRequest()
	request.TokenID = "not-a-number"

	recorder, body := env.do(t, http.MethodPost, "/wallet/send-nft", request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, errorcode.INVALID_REQUEST, body.Error.Code)
}

func TestSendNFTRejectsBadContract(t *testing.T) {
	env := newTestEnv()
	request := validSendNFTRequest()
	request.ContractAddress = "0x123"

	recorder, body := env.do(t, http.MethodPost, "/wallet/send-nft", request)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, errorcode.INVALID_ADDRESS_ERR, body.Error.Message)
}
