package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	Config "wallet-engine/config"
	"wallet-engine/dto"
	"wallet-engine/utility/apiClient"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/cache"
	"wallet-engine/utility/errorcode"
	"wallet-engine/utility/logger"
)

const custodyReadAttempts = 3

//CustodyService object. Talks to the external custody service that holds
//signing keys for logical account names.
type CustodyService struct {
	Cache  *cache.Memory
	Config Config.Data
}

// NewCustodyService ... Creates a custody service client instance
func NewCustodyService(memory *cache.Memory, config Config.Data) *CustodyService {
	return &CustodyService{
		Cache:  memory,
		Config: config,
	}
}

// CreateAccount ... Creates (or returns) the custody account for a logical
// name. The custody service is idempotent per name.
func (service *CustodyService) CreateAccount(ctx context.Context, name string) (dto.CustodyAccount, error) {
	if err := service.checkConfigured(); err != nil {
		return dto.CustodyAccount{}, err
	}
	requestData := dto.CreateAccountRequest{Name: name}
	responseData := dto.CustodyAccount{}
	metaData := GetRequestMetaData("createAccount", service.Config)

	APIClient := apiClient.New(nil, fmt.Sprintf("%s%s", metaData.Endpoint, metaData.Action)).WithRetries(custodyReadAttempts)
	APIRequest, err := APIClient.NewRequest(ctx, metaData.Type, "", requestData)
	if err != nil {
		return dto.CustodyAccount{}, err
	}
	service.authorize(APIClient, APIRequest)
	if _, err := APIClient.Do(APIRequest, &responseData); err != nil {
		return dto.CustodyAccount{}, service.coerceErr(err)
	}

	logger.Info("Custody account resolved for %s : %s", name, responseData.Address)
	return responseData, nil
}

// GetAccount ... Looks up the custody account for a logical name.
func (service *CustodyService) GetAccount(ctx context.Context, name string) (dto.CustodyAccount, error) {
	if err := service.checkConfigured(); err != nil {
		return dto.CustodyAccount{}, err
	}
	responseData := dto.CustodyAccount{}
	metaData := GetRequestMetaData("getAccount", service.Config)

	APIClient := apiClient.New(nil, fmt.Sprintf("%s%s", metaData.Endpoint, fmt.Sprintf(metaData.Action, name))).WithRetries(custodyReadAttempts)
	APIRequest, err := APIClient.NewRequest(ctx, metaData.Type, "", nil)
	if err != nil {
		return dto.CustodyAccount{}, err
	}
	service.authorize(APIClient, APIRequest)
	if resp, err := APIClient.Do(APIRequest, &responseData); err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return dto.CustodyAccount{}, appError.New(http.StatusNotFound, errorcode.SERVICE_UNAVAILABLE, errors.New(errorcode.ACCOUNT_NOT_FOUND))
		}
		return dto.CustodyAccount{}, service.coerceErr(err)
	}

	return responseData, nil
}

// Transfer ... Asks the custody service to sign and broadcast a transfer
// directly. Never retried: a replayed broadcast could double-spend.
func (service *CustodyService) Transfer(ctx context.Context, name string, requestData dto.CustodyTransferRequest) (dto.CustodyTransferResponse, error) {
	if err := service.checkConfigured(); err != nil {
		return dto.CustodyTransferResponse{}, err
	}
	responseData := dto.CustodyTransferResponse{}
	metaData := GetRequestMetaData("custodyTransfer", service.Config)

	APIClient := apiClient.New(nil, fmt.Sprintf("%s%s", metaData.Endpoint, fmt.Sprintf(metaData.Action, name)))
	APIRequest, err := APIClient.NewRequest(ctx, metaData.Type, "", requestData)
	if err != nil {
		return dto.CustodyTransferResponse{}, err
	}
	service.authorize(APIClient, APIRequest)
	if _, err := APIClient.Do(APIRequest, &responseData); err != nil {
		return dto.CustodyTransferResponse{}, service.coerceErr(err)
	}

	return responseData, nil
}

// ExportKey ... Fetches the account signing key for the local fallback path.
func (service *CustodyService) ExportKey(ctx context.Context, name string) (string, error) {
	if err := service.checkConfigured(); err != nil {
		return "", err
	}
	responseData := dto.ExportKeyResponse{}
	metaData := GetRequestMetaData("exportKey", service.Config)

	APIClient := apiClient.New(nil, fmt.Sprintf("%s%s", metaData.Endpoint, fmt.Sprintf(metaData.Action, name)))
	APIRequest, err := APIClient.NewRequest(ctx, metaData.Type, "", nil)
	if err != nil {
		return "", err
	}
	service.authorize(APIClient, APIRequest)
	if _, err := APIClient.Do(APIRequest, &responseData); err != nil {
		return "", service.coerceErr(err)
	}
	if strings.TrimSpace(responseData.PrivateKey) == "" {
		return "", appError.New(http.StatusBadGateway, errorcode.SERVICE_UNAVAILABLE, errors.New("custody service returned an empty signing key"))
	}

	return responseData.PrivateKey, nil
}

func (service *CustodyService) authorize(client *apiClient.Client, request *http.Request) {
	client.AddHeader(request, map[string]string{
		"X-Api-Key": service.Config.CustodyAPIKey,
	})
}

func (service *CustodyService) checkConfigured() error {
	if service.Config.CustodyServiceURL == "" || service.Config.CustodyAPIKey == "" {
		return appError.New(http.StatusServiceUnavailable, errorcode.SERVICE_UNAVAILABLE, errors.New(errorcode.CUSTODY_CONFIG_ERR))
	}
	return nil
}

// coerceErr surfaces the custody error message when the body carried its
// error envelope, otherwise wraps the raw failure.
func (service *CustodyService) coerceErr(err error) error {
	if _, ok := err.(appError.Err); ok {
		return err
	}
	custodyErr := dto.CustodyErr{}
	if unmarshalErr := json.Unmarshal([]byte(err.Error()), &custodyErr); unmarshalErr == nil && custodyErr.Message != "" {
		return appError.New(http.StatusServiceUnavailable, errorcode.SERVICE_UNAVAILABLE, errors.New(custodyErr.Message))
	}
	return appError.New(http.StatusServiceUnavailable, errorcode.SERVICE_UNAVAILABLE, err)
}
