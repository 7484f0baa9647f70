package wealth

import (
	"fmt"
	"math"

	"github.com/etnz/wealth/numeric"
)

// EmergencyFundSettings are the emergency fund thresholds, in months of
// expenses.
type EmergencyFundSettings struct {
	MinMonths    float64 `json:"minMonths" toml:"min_months" yaml:"min_months"`
	TargetMonths float64 `json:"targetMonths" toml:"target_months" yaml:"target_months"`
}

// DefaultEmergencyFundSettings returns 3 months minimum, 6 months target.
func DefaultEmergencyFundSettings() EmergencyFundSettings {
	return EmergencyFundSettings{MinMonths: 3, TargetMonths: 6}
}

// FundStatus rates an emergency fund against its thresholds.
type FundStatus int

const (
	Insufficient FundStatus = iota
	Adequate
	Optimal
)

func (s FundStatus) String() string {
	switch s {
	case Adequate:
		return "adequate"
	case Optimal:
		return "optimal"
	default:
		return "insufficient"
	}
}

func (s FundStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// EmergencyFundResult tells how long cash covers expenses.
type EmergencyFundResult struct {
	Cash            float64    `json:"cash"`
	MonthlyExpenses float64    `json:"monthlyExpenses"`
	Months          float64    `json:"months"` // MaxMonths when there are no expenses
	Status          FundStatus `json:"status"`
	Target          float64    `json:"target"`
	Shortfall       float64    `json:"shortfall"`
	Warnings        []string   `json:"warnings,omitempty"`
}

// MaxMonths is the coverage reported when there are no expenses.
const MaxMonths = 999.0

// EmergencyFund rates how many months of expenses cash covers.
func EmergencyFund(cash, monthlyExpenses float64, s EmergencyFundSettings) EmergencyFundResult {
	var res EmergencyFundResult
	res.Cash = sanitize("cash", cash, &res.Warnings)
	res.MonthlyExpenses = sanitize("monthly expenses", monthlyExpenses, &res.Warnings)
	if s.TargetMonths < s.MinMonths {
		res.Warnings = append(res.Warnings, fmt.Sprintf("target of %v months below minimum of %v, using the minimum", s.TargetMonths, s.MinMonths))
		s.TargetMonths = s.MinMonths
	}

	if res.MonthlyExpenses == 0 {
		res.Months, res.Status = MaxMonths, Optimal
		res.Warnings = append(res.Warnings, "no expenses to cover")
		return res
	}
	if res.Cash >= MaxMonths*res.MonthlyExpenses {
		res.Months = MaxMonths
	} else {
		res.Months = numeric.SafeDivide(res.Cash, res.MonthlyExpenses, 0)
	}
	res.Target = numeric.Multiply(res.MonthlyExpenses, s.TargetMonths)
	res.Shortfall = math.Max(0, numeric.Subtract(res.Target, res.Cash))
	switch {
	case res.Months < s.MinMonths:
		res.Status = Insufficient
		res.Warnings = append(res.Warnings, fmt.Sprintf("cash covers %.1f months, below the %v months minimum", res.Months, s.MinMonths))
	case res.Months < s.TargetMonths:
		res.Status = Adequate
	default:
		res.Status = Optimal
	}
	return res
}
