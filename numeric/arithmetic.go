package numeric

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

var hundred = decimal.NewFromInt(100)

// check validates a result against the bounds.
func (a Arithmetic) check(op string, x float64) (float64, error) {
	if err := a.Bounds.Check(x); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return x, nil
}

// settle converts a decimal result and validates it. A finite decimal too
// large for a float64 is an overflow.
func (a Arithmetic) settle(op string, d decimal.Decimal) (float64, error) {
	x := float(d)
	if math.IsInf(x, 0) {
		return 0, fmt.Errorf("%s: %w: beyond float64 range", op, ErrOverflow)
	}
	return a.check(op, x)
}

func (a Arithmetic) binary(op string, x, y float64,
	native func(x, y float64) float64,
	precise func(x, y decimal.Decimal) decimal.Decimal) (float64, error) {
	if err := finite(x, y); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if a.Path(x, y) == Native {
		return a.check(op, roundCents(native(x, y)))
	}
	return a.settle(op, precise(dec(x), dec(y)))
}

// Add returns x + y.
func (a Arithmetic) Add(x, y float64) (float64, error) {
	return a.binary("add", x, y, func(x, y float64) float64 { return x + y }, decimal.Decimal.Add)
}

// Subtract returns x - y.
func (a Arithmetic) Subtract(x, y float64) (float64, error) {
	return a.binary("subtract", x, y, func(x, y float64) float64 { return x - y }, decimal.Decimal.Sub)
}

// Multiply returns x * y.
func (a Arithmetic) Multiply(x, y float64) (float64, error) {
	return a.binary("multiply", x, y, func(x, y float64) float64 { return x * y }, decimal.Decimal.Mul)
}

// Divide returns x / y, or ErrDivisionByZero.
func (a Arithmetic) Divide(x, y float64) (float64, error) {
	if y == 0 {
		return 0, fmt.Errorf("divide %g: %w", x, ErrDivisionByZero)
	}
	return a.binary("divide", x, y,
		func(x, y float64) float64 { return x / y },
		func(x, y decimal.Decimal) decimal.Decimal { return x.DivRound(y, DivisionScale) })
}

// Percentage returns part as a percentage of total.
func (a Arithmetic) Percentage(part, total float64) (float64, error) {
	if total == 0 {
		return 0, fmt.Errorf("percentage of %g: %w", part, ErrDivisionByZero)
	}
	return a.binary("percentage", part, total,
		func(x, y float64) float64 { return x / y * 100 },
		func(x, y decimal.Decimal) decimal.Decimal { return x.DivRound(y, DivisionScale).Mul(hundred) })
}

// CompoundGrowth returns the compound growth rate per period, in percent, to
// go from initial to final in the given number of periods.
//
// It always uses the decimal path: the exponentiation is where float64 drifts.
func (a Arithmetic) CompoundGrowth(initial, final, periods float64) (float64, error) {
	const op = "compound growth"
	if err := finite(initial, final, periods); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if initial <= 0 || periods <= 0 || final < 0 {
		return 0, fmt.Errorf("%s: %w: initial=%g final=%g periods=%g", op, ErrInvalidInput, initial, final, periods)
	}
	if final == 0 {
		return -100, nil
	}
	if final == initial {
		return 0, nil
	}
	ratio := dec(final).DivRound(dec(initial), DivisionScale)
	exponent := decimal.NewFromInt(1).DivRound(dec(periods), DivisionScale)
	growth, err := ratio.PowWithPrecision(exponent, Precision)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, ErrInvalidInput, err)
	}
	return a.settle(op, growth.Sub(decimal.NewFromInt(1)).Mul(hundred))
}

// WeightedAverage returns Σ(values·weights) / Σweights.
func (a Arithmetic) WeightedAverage(values, weights []float64) (float64, error) {
	const op = "weighted average"
	if len(values) == 0 || len(values) != len(weights) {
		return 0, fmt.Errorf("%s: %w: %d values, %d weights", op, ErrInvalidInput, len(values), len(weights))
	}
	if err := finite(values...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := finite(weights...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if a.Path(values...) == Native && a.Path(weights...) == Native {
		var total float64
		for _, w := range weights {
			total += w
		}
		if total == 0 {
			return 0, fmt.Errorf("%s: %w", op, ErrDivisionByZero)
		}
		return a.check(op, stat.Mean(values, weights))
	}
	sum, total := decimal.Zero, decimal.Zero
	for i, v := range values {
		w := dec(weights[i])
		sum = sum.Add(dec(v).Mul(w))
		total = total.Add(w)
	}
	if total.IsZero() {
		return 0, fmt.Errorf("%s: %w", op, ErrDivisionByZero)
	}
	return a.settle(op, sum.DivRound(total, DivisionScale))
}

// Variance returns the population variance of values.
func (a Arithmetic) Variance(values []float64) (float64, error) {
	const op = "variance"
	if len(values) == 0 {
		return 0, fmt.Errorf("%s: %w: no values", op, ErrInvalidInput)
	}
	if err := finite(values...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if a.Path(values...) == Native {
		return a.check(op, stat.PopVariance(values, nil))
	}
	n := decimal.NewFromInt(int64(len(values)))
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(dec(v))
	}
	mean := sum.DivRound(n, DivisionScale)
	squares := decimal.Zero
	for _, v := range values {
		d := dec(v).Sub(mean)
		squares = squares.Add(d.Mul(d))
	}
	return a.settle(op, squares.DivRound(n, DivisionScale))
}

// StdDev returns the population standard deviation of values.
func (a Arithmetic) StdDev(values []float64) (float64, error) {
	v, err := a.Variance(values)
	if err != nil {
		return 0, fmt.Errorf("standard deviation: %w", err)
	}
	return a.check("standard deviation", math.Sqrt(v))
}

// fallback logs a rejected result and returns the fallback value.
func fallback(op string, value float64, err error, fb float64) float64 {
	if err == nil {
		return value
	}
	level := zerolog.WarnLevel
	if errors.Is(err, ErrDivisionByZero) {
		level = zerolog.DebugLevel
	}
	log.WithLevel(level).Err(err).Str("op", op).Float64("fallback", fb).Msg("numeric result rejected")
	return fb
}

// Add returns x + y, or 0 if the result is rejected.
func Add(x, y float64) float64 {
	v, err := Default.Add(x, y)
	return fallback("add", v, err, 0)
}

// Subtract returns x - y, or 0 if the result is rejected.
func Subtract(x, y float64) float64 {
	v, err := Default.Subtract(x, y)
	return fallback("subtract", v, err, 0)
}

// Multiply returns x * y, or 0 if the result is rejected.
func Multiply(x, y float64) float64 {
	v, err := Default.Multiply(x, y)
	return fallback("multiply", v, err, 0)
}

// Divide returns x / y, or fb if y is zero or the result is rejected.
func Divide(x, y, fb float64) float64 {
	v, err := Default.Divide(x, y)
	return fallback("divide", v, err, fb)
}

// Percentage returns part/total in percent, or 0 if total is zero.
func Percentage(part, total float64) float64 {
	v, err := Default.Percentage(part, total)
	return fallback("percentage", v, err, 0)
}

// CompoundGrowth returns the per-period growth rate in percent, or 0.
func CompoundGrowth(initial, final, periods float64) float64 {
	v, err := Default.CompoundGrowth(initial, final, periods)
	return fallback("compound growth", v, err, 0)
}

// WeightedAverage returns the weighted mean of values, or 0.
func WeightedAverage(values, weights []float64) float64 {
	v, err := Default.WeightedAverage(values, weights)
	return fallback("weighted average", v, err, 0)
}

// Variance returns the population variance of values, or 0.
func Variance(values []float64) float64 {
	v, err := Default.Variance(values)
	return fallback("variance", v, err, 0)
}

// StdDev returns the population standard deviation of values, or 0.
func StdDev(values []float64) float64 {
	v, err := Default.StdDev(values)
	return fallback("standard deviation", v, err, 0)
}

// SafeAdd is Add computed on the decimal path.
func SafeAdd(x, y float64) float64 {
	v, err := Precise.Add(x, y)
	return fallback("safe add", v, err, 0)
}

// SafeSubtract is Subtract computed on the decimal path.
func SafeSubtract(x, y float64) float64 {
	v, err := Precise.Subtract(x, y)
	return fallback("safe subtract", v, err, 0)
}

// SafeMultiply is Multiply computed on the decimal path.
func SafeMultiply(x, y float64) float64 {
	v, err := Precise.Multiply(x, y)
	return fallback("safe multiply", v, err, 0)
}

// SafeDivide is Divide computed on the decimal path.
func SafeDivide(x, y, fb float64) float64 {
	v, err := Precise.Divide(x, y)
	return fallback("safe divide", v, err, fb)
}

// SafePercentage is Percentage computed on the decimal path.
func SafePercentage(part, total float64) float64 {
	v, err := Precise.Percentage(part, total)
	return fallback("safe percentage", v, err, 0)
}
