package numeric

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic_Path(t *testing.T) {
	testCases := []struct {
		name     string
		a        Arithmetic
		operands []float64
		want     Path
	}{
		{"small operands", Default, []float64{10, 999_999.99}, Native},
		{"threshold is inclusive", Default, []float64{1_000_000, -1_000_000}, Native},
		{"one large operand", Default, []float64{1, 1_000_000.01}, Decimal},
		{"large negative operand", Default, []float64{-2_000_000, 1}, Decimal},
		{"custom threshold", Arithmetic{Threshold: 100, Bounds: DefaultBounds}, []float64{101}, Decimal},
		{"precise with zeros", Precise, []float64{0, 0}, Native},
		{"precise", Precise, []float64{0.01}, Decimal},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Path(tc.operands...); got != tc.want {
				t.Errorf("Path(%v) = %v, want %v", tc.operands, got, tc.want)
			}
		})
	}
}

func TestArithmetic_NativeRoundsToCents(t *testing.T) {
	got, err := Default.Add(0.1, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.3, got)

	got, err = Default.Divide(10, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.33, got)
}

func TestArithmetic_DecimalKeepsPrecision(t *testing.T) {
	got, err := Default.Add(123_456_789.12, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 123_456_789.13, got)

	got, err = Default.Divide(10_000_000, 3)
	require.NoError(t, err)
	assert.InDelta(t, 3_333_333.333333333, got, 1e-6)

	got, err = Precise.Multiply(0.1, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.02, got)
}

func TestDivide_ByZeroReturnsFallback(t *testing.T) {
	for _, x := range []float64{0, 1, -5, 1e12} {
		for _, fb := range []float64{0, -1, 42} {
			if got := Divide(x, 0, fb); got != fb {
				t.Errorf("Divide(%v, 0, %v) = %v, want %v", x, fb, got, fb)
			}
			if got := SafeDivide(x, 0, fb); got != fb {
				t.Errorf("SafeDivide(%v, 0, %v) = %v, want %v", x, fb, got, fb)
			}
		}
	}
	_, err := Default.Divide(1, 0)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestBounds(t *testing.T) {
	_, err := Default.Multiply(1e10, 1e10)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 0.0, Multiply(1e10, 1e10))
	_, err = Default.Multiply(1e200, 1e200)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Precise.Divide(1, 1e9)
	assert.ErrorIs(t, err, ErrUnderflow)

	_, err = Default.Add(math.NaN(), 1)
	assert.ErrorIs(t, err, ErrNonFinite)
	_, err = Default.Add(math.Inf(1), 1)
	assert.ErrorIs(t, err, ErrNonFinite)

	assert.NoError(t, DefaultBounds.Check(0))
	assert.NoError(t, DefaultBounds.Check(1e15))
	assert.ErrorIs(t, DefaultBounds.Check(1.0000001e15), ErrOverflow)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 25.0, Percentage(25, 100))
	assert.Equal(t, 0.0, Percentage(25, 0))
	assert.Equal(t, 50.0, SafePercentage(5_000_000, 10_000_000))
}

func TestCompoundGrowth(t *testing.T) {
	testCases := []struct {
		initial, final, periods float64
		want                    float64
	}{
		{10000, 15000, 5, 8.4472},
		{10000, 8000, 3, -7.1682},
		{10000, 10000, 7, 0},
		{10000, 20000, 1, 100},
		{100, 0, 2, -100},
		{150_000_000, 300_000_000, 10, 7.1773},
	}
	for _, tc := range testCases {
		got := CompoundGrowth(tc.initial, tc.final, tc.periods)
		assert.InDelta(t, tc.want, got, 1e-3, "CompoundGrowth(%v, %v, %v)", tc.initial, tc.final, tc.periods)
	}

	_, err := Default.CompoundGrowth(0, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Default.CompoundGrowth(10, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 1e600 percent does not fit in a float64.
	_, err = Default.CompoundGrowth(1e-300, 1, 0.5)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestStatistics(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 4.0, Variance(values), 1e-12)
	assert.InDelta(t, 2.0, StdDev(values), 1e-12)

	large := []float64{2e6, 4e6, 4e6, 4e6, 5e6, 5e6, 7e6, 9e6}
	assert.Equal(t, Decimal, Default.Path(large...))
	assert.InDelta(t, 4e12, Variance(large), 1)
	assert.InDelta(t, 2e6, StdDev(large), 1e-6)

	assert.Equal(t, 0.0, Variance(nil))

	assert.InDelta(t, 2.5, WeightedAverage([]float64{1, 3}, []float64{1, 3}), 1e-12)
	assert.InDelta(t, 2.5e6, WeightedAverage([]float64{1e6, 3e6}, []float64{1, 3}), 1e-6)
	assert.Equal(t, 0.0, WeightedAverage([]float64{1, 2}, []float64{0, 0}))
	assert.Equal(t, 0.0, WeightedAverage([]float64{1, 2}, []float64{1}))
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "native", Native.String())
	assert.Equal(t, "decimal", Decimal.String())
}
