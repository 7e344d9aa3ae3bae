package codec

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/representatives-dao/repms/internal/domain/models"
)

// MutezDecimals is the exponent between tez and mutez
const MutezDecimals = 6

// ToBaseUnits scales a display amount by 10^decimals and rounds half away from zero.
// Negative or unparsable amounts are rejected.
func ToBaseUnits(display string, decimals int32) (*big.Int, error) {
	d, err := parseDecimal(display)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, models.NewValidationError(models.CodeOutOfRange, "amount must not be negative: %s", display)
	}
	return d.Shift(decimals).Round(0).BigInt(), nil
}

// FromBaseUnits converts base units back to a display amount
func FromBaseUnits(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals)
}

// FormatAmount renders base units as a display amount without trailing zeros
func FormatAmount(amount *big.Int, decimals int32) string {
	return FromBaseUnits(amount, decimals).String()
}

// FormatTez renders a mutez amount in tez
func FormatTez(mutez *big.Int) string {
	return FormatAmount(mutez, MutezDecimals) + " ꜩ"
}

// RoundInteger parses a number and rounds it to the nearest integer
func RoundInteger(value string) (*big.Int, error) {
	d, err := parseDecimal(value)
	if err != nil {
		return nil, err
	}
	return d.Round(0).BigInt(), nil
}

func parseDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, models.NewValidationError(models.CodeOutOfRange, "not a number: %q", value)
	}
	return d, nil
}
