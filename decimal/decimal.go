// Package decimal implements the fixed-precision decimal numeral used by
// IO's `decimal`/`bigint` numeric path: a coefficient (arbitrary-precision
// integer) and a nonnegative scale, denoting coefficient * 10^-scale.
//
// Storage and rounding are delegated to github.com/cockroachdb/apd/v3,
// the same decimal library cue-lang/cue uses for its numeric value type
// (cue/value.go, internal/core/adt/binop.go).
package decimal

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is coefficient * 10^-scale, with scale always >= 0.
type Decimal struct {
	v apd.Decimal
}

// New builds a Decimal from a signed coefficient and a nonnegative scale.
func New(coefficient *big.Int, scale int) (*Decimal, error) {
	if scale < 0 {
		return nil, fmt.Errorf("decimal: scale must be nonnegative, got %d", scale)
	}
	d := &Decimal{}
	d.v.Coeff.Abs(coefficient)
	d.v.Negative = coefficient.Sign() < 0
	d.v.Exponent = int32(-scale)
	return d, nil
}

// Parse reads a decimal literal (the text preceding an `m` suffix, or a
// plain numeric literal) into a Decimal.
func Parse(s string) (*Decimal, error) {
	v, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("decimal: invalid literal %q: %w", s, err)
	}
	d := &Decimal{v: *v}
	d.normalize()
	return d, nil
}

// normalize ensures Exponent <= 0, i.e. Scale() is always nonnegative,
// by folding any positive exponent into the coefficient.
func (d *Decimal) normalize() {
	if d.v.Exponent > 0 {
		mag := pow10(int(d.v.Exponent))
		d.v.Coeff.Mul(&d.v.Coeff, mag)
		d.v.Exponent = 0
	}
}

// Coefficient returns the signed coefficient.
func (d *Decimal) Coefficient() *big.Int {
	c := new(big.Int).Set(&d.v.Coeff)
	if d.v.Negative {
		c.Neg(c)
	}
	return c
}

// Scale returns the number of fractional digits (always >= 0).
func (d *Decimal) Scale() int {
	return int(-d.v.Exponent)
}

// String renders the canonical decimal text, per formatBigIntAsDecimal.
func (d *Decimal) String() string {
	return FormatBigIntAsDecimal(d.Coefficient(), d.Scale())
}

func pow10(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
