// Package codec validates user input into proposal kinds, decodes proposal kinds
// indexed on chain and renders them as human readable descriptions.
package codec

import (
	"strings"

	"blockwatch.cc/tzgo/tezos"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// ValidateAddress accepts base58check encoded addresses of a known kind
// (tz1, tz2, tz3, tz4, KT1, sr1, txr1) and nothing else.
func ValidateAddress(address string) error {
	addr, err := tezos.ParseAddress(address)
	if err != nil || !addr.IsValid() {
		return models.NewValidationError(models.CodeInvalidAddress, "invalid address: %q", address)
	}
	return nil
}

// IsValidAddress is the boolean form of ValidateAddress
func IsValidAddress(address string) bool {
	return ValidateAddress(address) == nil
}

// ShortenAddress keeps the first and last five characters of an address
func ShortenAddress(address string) string {
	if len(address) <= 13 {
		return address
	}
	return address[:5] + "..." + address[len(address)-5:]
}

// AliasLookup returns the registered alias of an address
type AliasLookup func(address string) (string, bool)

// MapAliases adapts a plain alias map to an AliasLookup
func MapAliases(aliases map[string]string) AliasLookup {
	return func(address string) (string, bool) {
		alias, ok := aliases[address]
		if !ok || strings.TrimSpace(alias) == "" {
			return "", false
		}
		return alias, true
	}
}

// DisplayAddress prefers the alias of an address, falling back to its shortened form
func DisplayAddress(address string, aliases AliasLookup) string {
	if aliases != nil {
		if alias, ok := aliases(address); ok {
			return alias
		}
	}
	return ShortenAddress(address)
}
