package services

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	Config "wallet-engine/config"
	"wallet-engine/model"
)

const rpcCallTimeout = 15 * time.Second

//ChainService object. Raw JSON-RPC reads against each network's node.
type ChainService struct {
	Config Config.Data
}

// NewChainService ... Creates a chain service instance
func NewChainService(config Config.Data) *ChainService {
	return &ChainService{Config: config}
}

// NativeBalance ... Reads the native-asset balance of an address.
func (service *ChainService) NativeBalance(ctx context.Context, network model.Network, address string) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, rpcCallTimeout)
	defer cancel()

	client, err := ethclient.DialContext(callCtx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect %s rpc: %w", network.ID, err)
	}
	defer client.Close()

	balance, err := client.BalanceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("read %s native balance: %w", network.ID, err)
	}
	return balance, nil
}
