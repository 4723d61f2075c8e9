package decimal

import (
	"math/big"
	"strings"
)

// FormatBigIntAsDecimal renders coefficient c with exactly `scale`
// fractional digits, including the leading "0." and any leading zeros
// in the fraction. Scale 0 yields a plain integer. Sign is preserved.
func FormatBigIntAsDecimal(c *big.Int, scale int) string {
	neg := c.Sign() < 0
	digits := new(big.Int).Abs(c).Text(10)

	if scale == 0 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}

	intPart := digits[:len(digits)-scale]
	fracPart := digits[len(digits)-scale:]

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart)
	sb.WriteByte('.')
	sb.WriteString(fracPart)
	return sb.String()
}
