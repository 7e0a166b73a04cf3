package utility

import (
	"errors"
	"math/big"
	"net"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUnits converts a raw integer amount to its display-unit decimal
// without passing through float64, so large balances keep full precision.
func FormatUnits(raw *big.Int, decimals int) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// ParseRawAmount parses a decimal string holding a positive integer amount
// in the asset's smallest unit.
func ParseRawAmount(amount string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok {
		return nil, errors.New("amount is not a base-10 integer")
	}
	if value.Sign() <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	return value, nil
}

// ParseTokenID parses a decimal or 0x-hex token id. Zero is a valid id.
func ParseTokenID(tokenID string) (*big.Int, error) {
	clean := strings.TrimSpace(tokenID)
	if strings.HasPrefix(clean, "0x") {
		value := ParseHexBig(clean)
		return value, nil
	}
	value, ok := new(big.Int).SetString(clean, 10)
	if !ok || value.Sign() < 0 {
		return nil, errors.New("token id is not a non-negative integer")
	}
	return value, nil
}

// ParseHexBig parses a 0x-prefixed hex quantity, tolerating empty values.
func ParseHexBig(quantity string) *big.Int {
	clean := strings.TrimPrefix(strings.TrimSpace(quantity), "0x")
	if clean == "" {
		return new(big.Int)
	}
	value, ok := new(big.Int).SetString(clean, 16)
	if !ok {
		return new(big.Int)
	}
	return value
}

// GetIPAddress returns the originating client IP of a request, preferring
// forwarding headers set by upstream proxies.
func GetIPAddress(requestReader *http.Request) string {
	for _, header := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(requestReader.Header.Get(header), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			realIP := net.ParseIP(ip)
			if realIP != nil && realIP.IsGlobalUnicast() {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(requestReader.RemoteAddr)
	if err != nil {
		return requestReader.RemoteAddr
	}
	return host
}
