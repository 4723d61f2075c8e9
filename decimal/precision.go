package decimal

import (
	"fmt"
	"math/big"
)

// ValidatePrecisionScale reports whether a (precision, scale) pair is
// coherent: both nonnegative, and scale no larger than precision.
func ValidatePrecisionScale(precision, scale int) (valid bool, reason string) {
	if precision < 0 {
		return false, "precision must be nonnegative"
	}
	if scale < 0 {
		return false, "scale must be nonnegative"
	}
	if scale > precision {
		return false, "scale cannot exceed precision"
	}
	return true, ""
}

// FitToPrecision reduces c (at the given scale) to `precision`
// significant digits by rounding away from the decimal point (i.e. by
// shrinking the scale, never the integer part). It errors if the
// reduction would have to eat into the integer digits.
func FitToPrecision(c *big.Int, precision, scale int, mode Mode) (*big.Int, int, error) {
	nd := numDigits(c)
	if nd <= precision {
		return new(big.Int).Set(c), scale, nil
	}

	reduce := nd - precision
	newScale := scale - reduce
	if newScale < 0 {
		return nil, 0, fmt.Errorf("decimal: %d significant digits is not enough to hold the integer part (scale %d, %d digits)", precision, scale, nd)
	}

	rounded, err := quantize(c, scale, newScale, mode)
	if err != nil {
		return nil, 0, err
	}

	// Rounding can carry into an extra digit (e.g. 999 -> 1000); shave
	// the scale down further if that happens.
	if extra := numDigits(rounded) - precision; extra > 0 {
		newScale2 := newScale - extra
		if newScale2 < 0 {
			return nil, 0, fmt.Errorf("decimal: rounding carry overflowed %d significant digits", precision)
		}
		rounded, err = quantize(rounded, newScale, newScale2, mode)
		if err != nil {
			return nil, 0, err
		}
		newScale = newScale2
	}

	return rounded, newScale, nil
}

// AlignOperands brings two coefficients to a common scale: the larger of
// their two scales, capped at maxScale when provided. An operand whose
// scale exceeds the target is rounded to the target scale using mode; one whose scale
// is smaller is scaled up exactly (no rounding needed).
func AlignOperands(a *big.Int, sa int, b *big.Int, sb int, maxScale *int, mode Mode) (ra, rb *big.Int, targetScale int, err error) {
	targetScale = sa
	if sb > targetScale {
		targetScale = sb
	}
	if maxScale != nil && *maxScale < targetScale {
		targetScale = *maxScale
	}

	if ra, err = alignOne(a, sa, targetScale, mode); err != nil {
		return nil, nil, 0, err
	}
	if rb, err = alignOne(b, sb, targetScale, mode); err != nil {
		return nil, nil, 0, err
	}
	return ra, rb, targetScale, nil
}

func alignOne(c *big.Int, scale, targetScale int, mode Mode) (*big.Int, error) {
	switch {
	case scale == targetScale:
		return new(big.Int).Set(c), nil
	case scale < targetScale:
		return ScaleUp(c, targetScale-scale)
	default:
		return quantize(c, scale, targetScale, mode)
	}
}
