package decimal

import (
	"errors"
	"math/big"
)

// ErrNegativeShift is returned by ScaleUp/ScaleDown when asked to shift
// by a negative number of digits.
var ErrNegativeShift = errors.New("decimal: shift count must be nonnegative")

// ScaleUp multiplies c by 10^n. n must be nonnegative.
func ScaleUp(c *big.Int, n int) (*big.Int, error) {
	if n < 0 {
		return nil, ErrNegativeShift
	}
	return new(big.Int).Mul(c, pow10(n)), nil
}

// ScaleDown integer-divides c by 10^n, truncating toward zero. n must be
// nonnegative.
func ScaleDown(c *big.Int, n int) (*big.Int, error) {
	if n < 0 {
		return nil, ErrNegativeShift
	}
	if n == 0 {
		return new(big.Int).Set(c), nil
	}
	// big.Int.Quo truncates toward zero, matching the spec's requirement.
	return new(big.Int).Quo(c, pow10(n)), nil
}
