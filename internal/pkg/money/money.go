// Package money is the shared arithmetic context for all monetary values.
//
// Every balance, price and value in the system is a fixed-precision decimal
// carried as a string at the boundaries, never a binary float. Operations
// keep 18 fractional digits and round toward zero, so a computed total can
// never exceed the true sum of its parts.
package money

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FractionalDigits is the precision every intermediate result is truncated to.
const FractionalDigits = 18

func init() {
	decimal.DivisionPrecision = FractionalDigits
}

// Parse converts a decimal string into a decimal value.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse decimal %q", s)
	}
	return d, nil
}

// FromBigInt converts an integer amount in a chain's smallest unit into a
// decimal at the given precision, e.g. 1234500000000000000 wei at 18
// decimals becomes 1.2345.
func FromBigInt(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).Truncate(FractionalDigits)
}

// Mul multiplies two decimals and truncates the product to the context
// precision.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Truncate(FractionalDigits)
}

// DisplayFixed truncates a decimal to the given number of places and formats
// it with exactly that many fractional digits.
func DisplayFixed(d decimal.Decimal, places int32) string {
	return d.Truncate(places).StringFixed(places)
}
