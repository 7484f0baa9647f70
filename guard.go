package wealth

import (
	"errors"
	"fmt"

	"github.com/etnz/wealth/numeric"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNilCalculation is returned by Guard when there is nothing to run.
	ErrNilCalculation = errors.New("nil calculation")
	// ErrCalculationPanic is returned by Guard when the calculation panicked.
	ErrCalculationPanic = errors.New("calculation panicked")
)

// Outcome is the result of a guarded calculation.
// When Err is not nil, Value holds the fallback.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the calculation succeeded and passed every check.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// Guard runs calc, then every check on its result. If calc is nil, panics, or
// fails a check, the failure is logged under name and fallback is returned
// in place of the result.
func Guard[T any](name string, fallback T, calc func() T, checks ...func(T) error) (out Outcome[T]) {
	logger := log.With().Str("calculation", name).Logger()
	if calc == nil {
		err := fmt.Errorf("%s: %w", name, ErrNilCalculation)
		logger.Error().Err(err).Msg("calculation rejected, using fallback")
		return Outcome[T]{Value: fallback, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s: %w: %v", name, ErrCalculationPanic, r)
			logger.Error().Err(err).Msg("calculation failed, using fallback")
			out = Outcome[T]{Value: fallback, Err: err}
		}
	}()

	value := calc()
	for _, check := range checks {
		if err := check(value); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			logger.Warn().Err(err).Msg("calculation result rejected, using fallback")
			return Outcome[T]{Value: fallback, Err: err}
		}
	}
	return Outcome[T]{Value: value}
}

// GuardNumber is Guard for numeric results validated by ValidateNumber.
func GuardNumber(name string, fallback float64, calc func() float64) Outcome[float64] {
	return Guard(name, fallback, calc, ValidateNumber)
}

// ValidateNumber rejects non-finite values, magnitudes above 1e15 and non-zero
// magnitudes below 1e-8.
func ValidateNumber(x float64) error { return numeric.DefaultBounds.Check(x) }
