package decimal

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleUpDownRoundTrip(t *testing.T) {
	c := big.NewInt(12345)
	up, err := ScaleUp(c, 3)
	require.NoError(t, err)
	down, err := ScaleDown(up, 3)
	require.NoError(t, err)
	assert.Equal(t, c, down, "scaleDown(scaleUp(c, n), n) == c")
}

func TestScaleRejectsNegativeShift(t *testing.T) {
	_, err := ScaleUp(big.NewInt(1), -1)
	assert.ErrorIs(t, err, ErrNegativeShift)

	_, err = ScaleDown(big.NewInt(1), -1)
	assert.ErrorIs(t, err, ErrNegativeShift)
}

func TestRoundHalfUpAwayFromZero(t *testing.T) {
	// -1.25 -> -1.3
	got, err := RoundHalfUp(big.NewInt(-125), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "-13", got.String())

	// 1.25 -> 1.3
	got, err = RoundHalfUp(big.NewInt(125), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "13", got.String())
}

func TestCeilAndFloorRound(t *testing.T) {
	// ceil(-1.21) at scale 1 -> -1.2 (toward zero for negatives)
	got, err := CeilRound(big.NewInt(-121), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "-12", got.String())

	// floor(-1.21) at scale 1 -> -1.3 (away from zero for negatives)
	got, err = FloorRound(big.NewInt(-121), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "-13", got.String())
}

func TestFormatBigIntAsDecimal(t *testing.T) {
	assert.Equal(t, "1.50", FormatBigIntAsDecimal(big.NewInt(150), 2))
	assert.Equal(t, "0.05", FormatBigIntAsDecimal(big.NewInt(5), 2))
	assert.Equal(t, "-0.05", FormatBigIntAsDecimal(big.NewInt(-5), 2))
	assert.Equal(t, "42", FormatBigIntAsDecimal(big.NewInt(42), 0))
}

func TestFormatParseRoundTrip(t *testing.T) {
	d, err := New(big.NewInt(-12345), 2)
	require.NoError(t, err)
	s := d.String()
	assert.Equal(t, "-123.45", s)

	parsed, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, d.Coefficient(), parsed.Coefficient())
	assert.Equal(t, d.Scale(), parsed.Scale())
}

func TestValidatePrecisionScale(t *testing.T) {
	valid, _ := ValidatePrecisionScale(5, 2)
	assert.True(t, valid)

	valid, reason := ValidatePrecisionScale(-1, 2)
	assert.False(t, valid)
	assert.NotEmpty(t, reason)

	valid, reason = ValidatePrecisionScale(2, 5)
	assert.False(t, valid)
	assert.NotEmpty(t, reason)
}

func TestFitToPrecisionEncroachesError(t *testing.T) {
	// 12345 at scale 0 has 5 integer digits; asking for 3 significant
	// digits would have to eat into the integer part.
	_, _, err := FitToPrecision(big.NewInt(12345), 3, 0, HalfUp)
	assert.Error(t, err)
}

func TestFitToPrecisionReducesScale(t *testing.T) {
	// 123.45 (scale 2) fit to 4 significant digits -> 123.5 (scale 1)
	c, scale, err := FitToPrecision(big.NewInt(12345), 4, 2, HalfUp)
	require.NoError(t, err)
	assert.Equal(t, 1, scale)
	assert.Equal(t, "1235", c.String())
}

func TestAlignOperands(t *testing.T) {
	maxScale := 1
	ra, rb, targetScale, err := AlignOperands(big.NewInt(12345), 2, big.NewInt(6789), 2, &maxScale, Ceil)
	require.NoError(t, err)
	assert.Equal(t, 1, targetScale)
	assert.Equal(t, "1235", ra.String())
	assert.Equal(t, "679", rb.String())
}
