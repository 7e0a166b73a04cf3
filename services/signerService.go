package services

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	Config "wallet-engine/config"
	"wallet-engine/model"
	"wallet-engine/utility/logger"
)

const (
	signerGasMultiplier = 1.2
	mineWaitTimeout     = 2 * time.Minute
	minePollInterval    = 2 * time.Second
)

const erc20ABI = `[{"name":"transfer","type":"function","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}]`

const erc721ABI = `[{"name":"safeTransferFrom","type":"function","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]}]`

//SignerService object. Local transaction construction and signing, used when
//the custody transfer API cannot serve a request.
type SignerService struct {
	Config Config.Data
}

// NewSignerService ... Creates a signer service instance
func NewSignerService(config Config.Data) *SignerService {
	return &SignerService{Config: config}
}

// SendNative ... Signs and broadcasts a native value transfer. Returns the
// transaction hash and the sender address without waiting for inclusion.
func (service *SignerService) SendNative(ctx context.Context, network model.Network, keyHex string, to string, amount *big.Int) (string, string, error) {
	return service.send(ctx, network, keyHex, common.HexToAddress(to), amount, nil, false)
}

// SendToken ... Signs and broadcasts an ERC-20 transfer(to, amount) call.
func (service *SignerService) SendToken(ctx context.Context, network model.Network, keyHex string, contract string, to string, amount *big.Int) (string, string, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return "", "", err
	}
	data, err := parsed.Pack("transfer", common.HexToAddress(to), amount)
	if err != nil {
		return "", "", fmt.Errorf("encode erc20 transfer: %w", err)
	}
	return service.send(ctx, network, keyHex, common.HexToAddress(contract), new(big.Int), data, false)
}

// SendNFT ... Signs and broadcasts an ERC-721 safeTransferFrom, then blocks
// until the transaction is mined.
func (service *SignerService) SendNFT(ctx context.Context, network model.Network, keyHex string, contract string, to string, tokenID *big.Int) (string, string, error) {
	privateKey, from, err := parseSigningKey(keyHex)
	if err != nil {
		return "", "", err
	}
	parsed, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return "", "", err
	}
	data, err := parsed.Pack("safeTransferFrom", from, common.HexToAddress(to), tokenID)
	if err != nil {
		return "", "", fmt.Errorf("encode erc721 safeTransferFrom: %w", err)
	}
	return service.sendWithKey(ctx, network, privateKey, from, common.HexToAddress(contract), new(big.Int), data, true)
}

func (service *SignerService) send(ctx context.Context, network model.Network, keyHex string, target common.Address, value *big.Int, data []byte, waitMined bool) (string, string, error) {
	privateKey, from, err := parseSigningKey(keyHex)
	if err != nil {
		return "", "", err
	}
	return service.sendWithKey(ctx, network, privateKey, from, target, value, data, waitMined)
}

func (service *SignerService) sendWithKey(ctx context.Context, network model.Network, privateKey *ecdsa.PrivateKey, from common.Address, target common.Address, value *big.Int, data []byte, waitMined bool) (string, string, error) {
	dialCtx, cancel := context.WithTimeout(ctx, rpcCallTimeout)
	defer cancel()
	client, err := ethclient.DialContext(dialCtx, network.RPCURL)
	if err != nil {
		return "", "", fmt.Errorf("connect %s rpc: %w", network.ID, err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return "", "", fmt.Errorf("read chain id: %w", err)
	}

	msg := ethereum.CallMsg{From: from, To: &target, Value: value, Data: data}
	gasLimit, err := client.EstimateGas(ctx, msg)
	if err != nil {
		return "", "", fmt.Errorf("estimate gas: %w", err)
	}
	gasLimit = uint64(float64(gasLimit) * signerGasMultiplier)

	tipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		tipCap = big.NewInt(2_000_000_000) // 2 gwei floor
	}
	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("fetch latest header: %w", err)
	}
	baseFee := header.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(1_000_000_000)
	}
	feeCap := new(big.Int).Mul(baseFee, big.NewInt(2))
	feeCap.Add(feeCap, tipCap)

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", "", fmt.Errorf("fetch nonce: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        &target,
		Value:     value,
		Data:      data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), privateKey)
	if err != nil {
		return "", "", fmt.Errorf("sign transaction: %w", err)
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		return "", "", fmt.Errorf("broadcast transaction: %w", err)
	}

	hash := signed.Hash().Hex()
	logger.Info("Broadcast %s transaction %s from %s", network.ID, hash, from.Hex())

	if waitMined {
		if err := waitForReceipt(ctx, client, signed.Hash()); err != nil {
			return "", "", err
		}
	}
	return hash, from.Hex(), nil
}

func waitForReceipt(ctx context.Context, client *ethclient.Client, hash common.Hash) error {
	waitCtx, cancel := context.WithTimeout(ctx, mineWaitTimeout)
	defer cancel()
	ticker := time.NewTicker(minePollInterval)
	defer ticker.Stop()
	for {
		receipt, err := client.TransactionReceipt(waitCtx, hash)
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusSuccessful {
				return nil
			}
			return errors.New("transaction reverted on-chain")
		}
		select {
		case <-waitCtx.Done():
			return fmt.Errorf("timed out waiting for receipt of %s", hash.Hex())
		case <-ticker.C:
		}
	}
}

func parseSigningKey(keyHex string) (*ecdsa.PrivateKey, common.Address, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(keyHex), "0x")
	if clean == "" {
		return nil, common.Address{}, errors.New("empty signing key")
	}
	privateKey, err := crypto.HexToECDSA(clean)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("parse signing key: %w", err)
	}
	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, common.Address{}, errors.New("invalid ECDSA public key")
	}
	return privateKey, crypto.PubkeyToAddress(*publicKey), nil
}
