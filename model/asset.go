package model

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// AssetKind discriminates the closed set of transferable asset shapes.
type AssetKind int

const (
	AssetNative AssetKind = iota
	AssetFungible
	AssetNonFungible
)

// AssetRef identifies an asset on a specific network. Contract is empty for
// native assets; TokenID is set only for non-fungibles.
type AssetRef struct {
	Kind     AssetKind
	Contract string
	TokenID  *big.Int
}

func (a AssetRef) IsNative() bool {
	return a.Kind == AssetNative
}

func (a AssetRef) String() string {
	switch a.Kind {
	case AssetNative:
		return "native"
	case AssetNonFungible:
		return fmt.Sprintf("%s#%s", a.Contract, a.TokenID)
	default:
		return a.Contract
	}
}

var nativeMarkers = map[string]bool{
	"native": true,
	"eth":    true,
	"pol":    true,
	"matic":  true,
}

// wellKnownTokens maps per-network symbol aliases to contract addresses so
// callers can send "usdc" instead of the raw address.
var wellKnownTokens = map[string]map[string]string{
	"base": {
		"usdc": "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		"weth": "0x4200000000000000000000000000000000000006",
		"dai":  "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb",
	},
	"ethereum": {
		"usdc": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"weth": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		"dai":  "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		"usdt": "0xdAC17F958D2ee523a2206206994597C13D831ec7",
	},
	"polygon": {
		"usdc": "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
		"weth": "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619",
		"dai":  "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063",
		"usdt": "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
	},
}

// ParseAssetRef resolves the wire token field for a fungible send: the native
// marker, the network's own native symbol, a well-known alias, or a
// 0x-prefixed contract address.
func ParseAssetRef(token string, network Network) (AssetRef, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if normalized == "" {
		return AssetRef{}, errors.New("token is required")
	}
	if nativeMarkers[normalized] || normalized == strings.ToLower(network.NativeSymbol) {
		return AssetRef{Kind: AssetNative}, nil
	}
	if aliases, ok := wellKnownTokens[network.ID]; ok {
		if contract, ok := aliases[normalized]; ok {
			return AssetRef{Kind: AssetFungible, Contract: contract}, nil
		}
	}
	if isHexAddress(normalized) {
		return AssetRef{Kind: AssetFungible, Contract: token}, nil
	}
	return AssetRef{}, fmt.Errorf("unknown token %q for network %s", token, network.ID)
}

// NewNFTRef builds a non-fungible asset reference.
func NewNFTRef(contract string, tokenID *big.Int) AssetRef {
	return AssetRef{Kind: AssetNonFungible, Contract: contract, TokenID: tokenID}
}

func isHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) != 42 {
		return false
	}
	for _, r := range s[2:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// IsHexAddress reports whether s looks like a 20-byte 0x hex address.
func IsHexAddress(s string) bool {
	return isHexAddress(strings.ToLower(strings.TrimSpace(s)))
}
