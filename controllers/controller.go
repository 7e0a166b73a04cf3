package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	validation "gopkg.in/go-playground/validator.v9"

	Config "wallet-engine/config"
	"wallet-engine/model"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/logger"
	"wallet-engine/utility/response"
)

type accountProvisioner interface {
	Provision(ctx context.Context, name string) (model.Account, error)
}

type balanceAggregator interface {
	GetBalances(ctx context.Context, address string) ([]model.TokenBalance, float64, error)
}

type nftAggregator interface {
	GetNFTs(ctx context.Context, address string) ([]model.NFTHolding, error)
}

type historyAggregator interface {
	GetHistory(ctx context.Context, address string) ([]model.TransferRecord, error)
}

type transferExecutor interface {
	Transfer(ctx context.Context, account model.Account, request model.TransferRequest) (model.TransferResult, error)
	TransferNFT(ctx context.Context, account model.Account, request model.NFTTransferRequest) (model.TransferResult, error)
}

//Controller : base controller struct
type Controller struct {
	Config    Config.Data
	Validator *validation.Validate
}

// Ping : health check
func (controller *Controller) Ping(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	logger.Info("Ping request successful! Server is up and listening")
	Respond(responseWriter, http.StatusOK, apiResponse.Successful(map[string]string{"status": "ok"}))
}

// Respond ... Writes a JSON response with the given status
func Respond(responseWriter http.ResponseWriter, status int, payload response.ResponseObj) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(status)
	_ = json.NewEncoder(responseWriter).Encode(payload)
}

// ReturnError ... Logs and writes an error response
func ReturnError(responseWriter http.ResponseWriter, tag string, status int, err error, payload response.ResponseObj) {
	logger.Error("Error response from %s : %s", tag, err)
	Respond(responseWriter, status, payload)
}

// ReturnServiceError ... Maps a service-layer error onto the envelope, using
// the error's own status/code when it carries them.
func ReturnServiceError(responseWriter http.ResponseWriter, tag string, err error, fallbackCode string) {
	apiResponse := response.New()
	status := appError.StatusOf(err)
	if status == http.StatusNotFound {
		status = http.StatusServiceUnavailable
	}
	code := appError.TypeOf(err, fallbackCode)
	if details := appError.DataOf(err); details != nil {
		ReturnError(responseWriter, tag, status, err, apiResponse.DetailedError(code, err.Error(), details))
		return
	}
	ReturnError(responseWriter, tag, status, err, apiResponse.PlainError(code, err.Error()))
}
