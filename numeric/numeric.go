// Package numeric provides the arithmetic used by every calculator of the
// engine.
//
// Two paths are available. Small magnitudes use native float64 arithmetic,
// rounded to cents, which is fast and exact enough for amounts up to a
// million. Larger magnitudes go through arbitrary-precision decimals
// (github.com/shopspring/decimal) rounded to 28 significant digits, half away
// from zero. The choice is explicit: an [Arithmetic] value carries the
// threshold and the magnitude bounds, and [Arithmetic.Path] reports which path
// a set of operands takes.
//
// Every operation exists in two forms. Methods on [Arithmetic] return
// (float64, error) with one of the sentinel errors below. Package level
// functions use [Default], log rejected results and return a fallback, so they
// never fail.
package numeric

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// DefaultThreshold is the largest operand magnitude computed on the native path.
	DefaultThreshold = 1_000_000.0
	// Precision is the number of significant digits kept on the decimal path.
	Precision = 28
	// DivisionScale is the number of decimal places kept by decimal divisions.
	DivisionScale = 28
	// MaxMagnitude is the largest accepted result (one quadrillion).
	MaxMagnitude = 1e15
	// MinMagnitude is the smallest accepted non-zero result.
	MinMagnitude = 1e-8
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNonFinite      = errors.New("non-finite value")
	ErrOverflow       = errors.New("result above magnitude bound")
	ErrUnderflow      = errors.New("result below magnitude bound")
	ErrInvalidInput   = errors.New("invalid input")
)

// Path identifies how an operation is computed.
type Path int

const (
	// Native computes with float64 and rounds to cents.
	Native Path = iota
	// Decimal computes with arbitrary-precision decimals.
	Decimal
)

func (p Path) String() string {
	switch p {
	case Native:
		return "native"
	case Decimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// Bounds are the accepted magnitudes of a result.
type Bounds struct {
	Max float64 // results strictly above are overflows
	Min float64 // non-zero results strictly below are underflows
}

// DefaultBounds accepts results between 1e-8 and 1e15 in magnitude.
var DefaultBounds = Bounds{Max: MaxMagnitude, Min: MinMagnitude}

// Check returns nil if x is finite and within bounds.
func (b Bounds) Check(x float64) error {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return ErrNonFinite
	case math.Abs(x) > b.Max:
		return fmt.Errorf("%w: |%g| > %g", ErrOverflow, x, b.Max)
	case x != 0 && math.Abs(x) < b.Min:
		return fmt.Errorf("%w: |%g| < %g", ErrUnderflow, x, b.Min)
	}
	return nil
}

// Arithmetic is the strategy used to compute an operation.
type Arithmetic struct {
	// Threshold is the largest operand magnitude computed on the native path.
	Threshold float64
	Bounds    Bounds
}

var (
	// Default routes operands above one million to the decimal path.
	Default = Arithmetic{Threshold: DefaultThreshold, Bounds: DefaultBounds}
	// Precise always uses the decimal path for non-zero operands.
	Precise = Arithmetic{Threshold: 0, Bounds: DefaultBounds}
)

// Path returns the computation path taken for the given operands.
func (a Arithmetic) Path(operands ...float64) Path {
	for _, x := range operands {
		if math.Abs(x) > a.Threshold {
			return Decimal
		}
	}
	return Native
}

// finite returns ErrNonFinite if any value is NaN or infinite.
func finite(values ...float64) error {
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, x)
		}
	}
	return nil
}

// roundCents rounds half away from zero to two decimal places.
func roundCents(x float64) float64 { return math.Round(x*100) / 100 }

// roundSignificant rounds d to the given number of significant digits.
func roundSignificant(d decimal.Decimal, digits int) decimal.Decimal {
	n := d.NumDigits()
	if n <= digits {
		return d
	}
	places := -d.Exponent() - int32(n-digits)
	return d.Round(places)
}

// dec converts a finite float64 into a decimal.
func dec(x float64) decimal.Decimal { return decimal.NewFromFloat(x) }

// float converts a decimal path result back to float64.
func float(d decimal.Decimal) float64 { return roundSignificant(d, Precision).InexactFloat64() }
