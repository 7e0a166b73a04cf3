package services

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"sync"

	"wallet-engine/dto"
	"wallet-engine/model"
	"wallet-engine/utility/appError"
)

func notFoundErr() error {
	return appError.New(http.StatusNotFound, "SERVICE_UNAVAILABLE", errors.New("account not found"))
}

// fakeCustody is an in-memory custody service.
type fakeCustody struct {
	mutex          sync.Mutex
	accounts       map[string]string
	createCalls    int
	transferCalls  int
	transferErr    error
	transferHash   string
	exportedKey    string
	exportErr      error
	getAccountErr  error
	createErr      error
}

func newFakeCustody() *fakeCustody {
	return &fakeCustody{
		accounts:     map[string]string{},
		transferHash: "0x" + repeatHex("ab", 32),
		exportedKey:  "0x4c0883a69102937d6231471b5dbb6204fe512961708279feb1be6ae5538da033",
	}
}

func (f *fakeCustody) CreateAccount(ctx context.Context, name string) (dto.CustodyAccount, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.createErr != nil {
		return dto.CustodyAccount{}, f.createErr
	}
	f.createCalls++
	address, ok := f.accounts[name]
	if !ok {
		address = "0x" + repeatHex("0a", 19) + hexByte(len(f.accounts))
		f.accounts[name] = address
	}
	return dto.CustodyAccount{Name: name, Address: address}, nil
}

func (f *fakeCustody) GetAccount(ctx context.Context, name string) (dto.CustodyAccount, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.getAccountErr != nil {
		return dto.CustodyAccount{}, f.getAccountErr
	}
	address, ok := f.accounts[name]
	if !ok {
		return dto.CustodyAccount{}, notFoundErr()
	}
	return dto.CustodyAccount{Name: name, Address: address}, nil
}

func (f *fakeCustody) Transfer(ctx context.Context, name string, request dto.CustodyTransferRequest) (dto.CustodyTransferResponse, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.transferCalls++
	if f.transferErr != nil {
		return dto.CustodyTransferResponse{}, f.transferErr
	}
	return dto.CustodyTransferResponse{TransactionHash: f.transferHash, Status: "broadcast"}, nil
}

func (f *fakeCustody) ExportKey(ctx context.Context, name string) (string, error) {
	if f.exportErr != nil {
		return "", f.exportErr
	}
	return f.exportedKey, nil
}

// fakeSigner records local signing calls.
type fakeSigner struct {
	nativeCalls int
	tokenCalls  int
	nftCalls    int
	hash        string
	from        string
	err         error
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{
		hash: "0x" + repeatHex("cd", 32),
		from: "0x" + repeatHex("0a", 20),
	}
}

func (f *fakeSigner) SendNative(ctx context.Context, network model.Network, keyHex string, to string, amount *big.Int) (string, string, error) {
	f.nativeCalls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.hash, f.from, nil
}

func (f *fakeSigner) SendToken(ctx context.Context, network model.Network, keyHex string, contract string, to string, amount *big.Int) (string, string, error) {
	f.tokenCalls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.hash, f.from, nil
}

func (f *fakeSigner) SendNFT(ctx context.Context, network model.Network, keyHex string, contract string, to string, tokenID *big.Int) (string, string, error) {
	f.nftCalls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.hash, f.from, nil
}

// fakeIndexer serves canned per-network responses.
type fakeIndexer struct {
	balances     map[string][]dto.TokenBalanceEntry
	balanceErrs  map[string]error
	metadata     map[string]dto.TokenMetadataResult
	transfers    map[string][]dto.AssetTransfer
	transferErrs map[string]error
	nfts         map[string][]dto.OwnedNFT
	nftErrs      map[string]error
	nftContracts map[string]bool
	probeErrs    map[string]error
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{
		balances:     map[string][]dto.TokenBalanceEntry{},
		balanceErrs:  map[string]error{},
		metadata:     map[string]dto.TokenMetadataResult{},
		transfers:    map[string][]dto.AssetTransfer{},
		transferErrs: map[string]error{},
		nfts:         map[string][]dto.OwnedNFT{},
		nftErrs:      map[string]error{},
		nftContracts: map[string]bool{},
		probeErrs:    map[string]error{},
	}
}

func (f *fakeIndexer) TokenBalances(ctx context.Context, network model.Network, address string) ([]dto.TokenBalanceEntry, error) {
	if err := f.balanceErrs[network.ID]; err != nil {
		return nil, err
	}
	return f.balances[network.ID], nil
}

func (f *fakeIndexer) TokenMetadata(ctx context.Context, network model.Network, contract string) (dto.TokenMetadataResult, error) {
	if meta, ok := f.metadata[contract]; ok {
		return meta, nil
	}
	return dto.TokenMetadataResult{}, errors.New("no metadata")
}

func (f *fakeIndexer) AssetTransfers(ctx context.Context, network model.Network, params dto.AssetTransferParams) ([]dto.AssetTransfer, error) {
	if err := f.transferErrs[network.ID]; err != nil {
		return nil, err
	}
	if params.FromAddress != "" {
		return f.transfers[network.ID+"|sent"], nil
	}
	return f.transfers[network.ID+"|received"], nil
}

func (f *fakeIndexer) OwnedNFTs(ctx context.Context, network model.Network, owner string) ([]dto.OwnedNFT, error) {
	if err := f.nftErrs[network.ID]; err != nil {
		return nil, err
	}
	return f.nfts[network.ID], nil
}

func (f *fakeIndexer) IsNFTContract(ctx context.Context, network model.Network, contract string) (bool, error) {
	if err := f.probeErrs[contract]; err != nil {
		return false, err
	}
	return f.nftContracts[contract], nil
}

// fakeChain serves native balances.
type fakeChain struct {
	balances map[string]*big.Int
	errs     map[string]error
}

func newFakeChain() *fakeChain {
	return &fakeChain{balances: map[string]*big.Int{}, errs: map[string]error{}}
}

func (f *fakeChain) NativeBalance(ctx context.Context, network model.Network, address string) (*big.Int, error) {
	if err := f.errs[network.ID]; err != nil {
		return nil, err
	}
	if balance, ok := f.balances[network.ID]; ok {
		return balance, nil
	}
	return new(big.Int), nil
}

// fakePrice serves quotes keyed by network|contract.
type fakePrice struct {
	quotes map[string]model.AssetQuote
}

func newFakePrice() *fakePrice {
	return &fakePrice{quotes: map[string]model.AssetQuote{}}
}

func (f *fakePrice) Resolve(ctx context.Context, network model.Network, contract *string) model.AssetQuote {
	key := network.ID + "|native"
	if contract != nil {
		key = network.ID + "|" + *contract
	}
	return f.quotes[key]
}

func repeatHex(pair string, count int) string {
	out := ""
	for i := 0; i < count; i++ {
		out += pair
	}
	return out
}

func hexByte(n int) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[(n>>4)&0xf], digits[n&0xf]})
}
