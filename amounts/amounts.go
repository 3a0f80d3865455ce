// Package amounts converts between human-unit decimal strings and
// smallest-unit integer strings without precision loss. Token amounts exceed
// native numeric range, so everything stays in arbitrary-precision decimals.
package amounts

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a human-unit amount ("100") to a smallest-unit integer
// string ("100000000" for 6 decimals). Fails when the amount carries more
// fractional digits than the token supports.
func ToBaseUnits(amount string, decimals int) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", errors.Wrapf(err, "invalid amount %q", amount)
	}
	if d.IsNegative() {
		return "", errors.Errorf("amount %q is negative", amount)
	}

	shifted := d.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return "", errors.Errorf("amount %q exceeds %d decimal places", amount, decimals)
	}

	return shifted.Truncate(0).String(), nil
}

// FromBaseUnits converts a smallest-unit integer string to a human-unit
// decimal string with full precision preserved.
func FromBaseUnits(raw string, decimals int) (string, error) {
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "", errors.Errorf("amount %q is not an integer", raw)
	}
	if n.Sign() < 0 {
		return "", errors.Errorf("amount %q is negative", raw)
	}

	return decimal.NewFromBigInt(n, -int32(decimals)).String(), nil
}
