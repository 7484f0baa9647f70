package wealth

import (
	"errors"
	"fmt"
	"math"

	"github.com/etnz/wealth/date"
	"github.com/etnz/wealth/numeric"
	"github.com/rs/zerolog/log"
)

const (
	// MaxCAGR caps the magnitude of a growth rate, in percent.
	MaxCAGR = 1000.0
	// MinCompoundYears is the shortest period annualized by compounding.
	MinCompoundYears = 0.25
	// MinAnnualizedYears is the shortest period annualized at all.
	MinAnnualizedYears = 1.0 / 12
)

// GrowthMethod tells how a growth rate was computed.
type GrowthMethod int

const (
	// MethodNone is used when no rate could be computed.
	MethodNone GrowthMethod = iota
	// MethodSimple is the plain return over the period, not annualized.
	MethodSimple
	// MethodLinear is the simple return divided by the number of years.
	MethodLinear
	// MethodCompound is the compound annual growth rate.
	MethodCompound
)

func (m GrowthMethod) String() string {
	switch m {
	case MethodSimple:
		return "simple"
	case MethodLinear:
		return "linear"
	case MethodCompound:
		return "compound"
	default:
		return "none"
	}
}

func (m GrowthMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// CAGRResult is a growth rate with the way it was computed.
type CAGRResult struct {
	Rate     Percent      `json:"rate"`
	Method   GrowthMethod `json:"method"`
	Years    float64      `json:"years"`
	Capped   bool         `json:"capped,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// CAGR returns the compound annual growth rate, in percent, from initial to
// final over years. See CalculateCAGR for the edge cases.
func CAGR(initial, final, years float64) float64 {
	return float64(CalculateCAGR(initial, final, years).Rate)
}

// CAGRBetween is CalculateCAGR over the period between two dates.
func CAGRBetween(initial, final float64, from, to date.Date) CAGRResult {
	return CalculateCAGR(initial, final, date.Range{From: from, To: to}.Years())
}

// CalculateCAGR returns the annual growth rate from initial to final over
// years.
//
// Invalid inputs (non-finite values, initial ≤ 0, years ≤ 0) give 0, and a
// negative final value gives -100, a total loss. Periods shorter than a month
// give the simple return, periods shorter than a quarter the linearly
// annualized return, because compounding such short periods extrapolates
// noise. Rates are capped to ±MaxCAGR.
func CalculateCAGR(initial, final, years float64) CAGRResult {
	res := CAGRResult{Years: years}
	switch {
	case !valid(math.Abs(initial)) || !valid(math.Abs(final)) || !valid(math.Abs(years)):
		res.Warnings = append(res.Warnings, fmt.Sprintf("non-finite input: initial=%v final=%v years=%v", initial, final, years))
		return res
	case initial <= 0:
		res.Warnings = append(res.Warnings, fmt.Sprintf("initial value %v must be positive", initial))
		return res
	case years <= 0:
		res.Warnings = append(res.Warnings, fmt.Sprintf("period of %v years must be positive", years))
		return res
	case final < 0:
		res.Rate, res.Method = -100, MethodSimple
		res.Warnings = append(res.Warnings, "negative final value, counted as a total loss")
		return res
	}

	var rate float64
	switch {
	case years < MinAnnualizedYears:
		res.Method = MethodSimple
		rate = res.settle(numeric.Precise.Percentage(final-initial, initial))
	case years < MinCompoundYears:
		res.Method = MethodLinear
		rate = res.settle(numeric.Precise.Percentage(final-initial, initial)) / years
		res.Warnings = append(res.Warnings, fmt.Sprintf("high volatility: %.2f years is too short to compound, return annualized linearly", years))
	default:
		res.Method = MethodCompound
		rate = res.settle(numeric.Default.CompoundGrowth(initial, final, years))
	}

	if math.Abs(rate) > MaxCAGR {
		capped := math.Copysign(MaxCAGR, rate)
		log.Warn().Float64("initial", initial).Float64("final", final).Float64("years", years).
			Float64("rate", rate).Float64("capped", capped).Msg("growth rate capped")
		res.Warnings = append(res.Warnings, fmt.Sprintf("growth rate capped at %v%%", capped))
		res.Capped = true
		rate = capped
	}
	res.Rate = Percent(rate)
	return res
}

// settle turns a rejected rate into a value: overflows become +Inf, to be
// capped by the caller, underflows become 0, and other errors 0 with a warning.
func (res *CAGRResult) settle(rate float64, err error) float64 {
	switch {
	case err == nil:
		return rate
	case errors.Is(err, numeric.ErrOverflow):
		return math.Inf(1)
	case errors.Is(err, numeric.ErrUnderflow):
		return 0
	default:
		log.Warn().Err(err).Msg("growth rate rejected")
		res.Warnings = append(res.Warnings, err.Error())
		return 0
	}
}
