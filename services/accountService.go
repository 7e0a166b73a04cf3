package services

import (
	"context"
	"net/http"

	Config "wallet-engine/config"
	"wallet-engine/model"
	"wallet-engine/utility/appError"
	"wallet-engine/utility/cache"
	"wallet-engine/utility/logger"
)

//AccountService object. Resolves logical account names to custody-managed
//addresses, creating them on first use.
type AccountService struct {
	Cache   *cache.Memory
	Config  Config.Data
	Custody ICustodyService
}

// NewAccountService ... Creates an account service instance
func NewAccountService(memory *cache.Memory, config Config.Data, custody ICustodyService) *AccountService {
	return &AccountService{
		Cache:   memory,
		Config:  config,
		Custody: custody,
	}
}

// Provision ... Returns the custody account for a logical name, creating it
// on first use. Safe to call repeatedly: the same name always yields the
// same address.
func (service *AccountService) Provision(ctx context.Context, name string) (model.Account, error) {
	existing, err := service.Custody.GetAccount(ctx, name)
	if err == nil {
		return model.Account{Name: name, Address: existing.Address}, nil
	}
	if appError.StatusOf(err) != http.StatusNotFound {
		return model.Account{}, err
	}

	created, err := service.Custody.CreateAccount(ctx, name)
	if err != nil {
		return model.Account{}, err
	}
	logger.Info("Provisioned custody account %s for %s", created.Address, name)
	return model.Account{Name: name, Address: created.Address}, nil
}
