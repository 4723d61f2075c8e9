package decimal

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Mode names a rounding strategy. The string values double as the
// identifiers alignOperands accepts (§4.1, scenario 6: `'ceil'`).
type Mode string

const (
	HalfUp Mode = "half_up"
	Ceil   Mode = "ceil"
	Floor  Mode = "floor"
)

func (m Mode) rounder() (apd.Rounder, error) {
	switch m {
	case HalfUp, "":
		return apd.RoundHalfUp, nil
	case Ceil:
		return apd.RoundCeiling, nil
	case Floor:
		return apd.RoundFloor, nil
	default:
		return nil, fmt.Errorf("decimal: unknown rounding mode %q", m)
	}
}

// quantize re-expresses coefficient c (at curScale) with tgtScale
// fractional digits, rounding per mode. A tgtScale greater than curScale
// is always exact (it only appends trailing zeros).
func quantize(c *big.Int, curScale, tgtScale int, mode Mode) (*big.Int, error) {
	rounder, err := mode.rounder()
	if err != nil {
		return nil, err
	}

	src := apd.NewWithBigInt(c, int32(-curScale))

	ctx := apd.BaseContext
	ctx.Rounding = rounder
	// Enough working precision that Quantize itself never loses digits
	// beyond the requested exponent; the coefficient's own digit count
	// plus headroom for the scale change is always sufficient.
	ctx.Precision = uint32(numDigits(c)) + uint32(abs(tgtScale-curScale)) + 16

	var res apd.Decimal
	if _, err := ctx.Quantize(&res, src, int32(-tgtScale)); err != nil {
		return nil, fmt.Errorf("decimal: quantize: %w", err)
	}

	out := new(big.Int).Set(&res.Coeff)
	if res.Negative {
		out.Neg(out)
	}
	return out, nil
}

// RoundHalfUp rounds c (at curScale) to tgtScale fractional digits,
// half away from zero (so -1.25 -> -1.3 and 1.25 -> 1.3). When
// tgtScale > curScale this is an exact scale-up.
func RoundHalfUp(c *big.Int, curScale, tgtScale int) (*big.Int, error) {
	return quantize(c, curScale, tgtScale, HalfUp)
}

// CeilRound rounds c (at curScale) to tgtScale fractional digits toward
// +infinity; for negative values this rounds toward zero.
func CeilRound(c *big.Int, curScale, tgtScale int) (*big.Int, error) {
	return quantize(c, curScale, tgtScale, Ceil)
}

// FloorRound rounds c (at curScale) to tgtScale fractional digits toward
// -infinity; for negative values this rounds away from zero.
func FloorRound(c *big.Int, curScale, tgtScale int) (*big.Int, error) {
	return quantize(c, curScale, tgtScale, Floor)
}

func numDigits(c *big.Int) int {
	if c.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(c).Text(10))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
