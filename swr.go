package wealth

import (
	"fmt"
	"math"

	"github.com/etnz/wealth/numeric"
)

// RiskProfile classifies withdrawable assets by their share of investments.
type RiskProfile int

const (
	Moderate RiskProfile = iota
	Conservative
	Aggressive
)

func (p RiskProfile) String() string {
	switch p {
	case Conservative:
		return "conservative"
	case Aggressive:
		return "aggressive"
	default:
		return "moderate"
	}
}

func (p RiskProfile) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// SWRParams holds the heuristics of the withdrawal calculators. Rates and
// adjustments are in percentage points, shares are fractions.
type SWRParams struct {
	RiskyRate         Percent `json:"riskyRate" toml:"risky_rate" yaml:"risky_rate"`                      // warn above
	ConservativeRate  Percent `json:"conservativeRate" toml:"conservative_rate" yaml:"conservative_rate"` // warn below
	ConservativeShare float64 `json:"conservativeShare" toml:"conservative_share" yaml:"conservative_share"`
	AggressiveShare   float64 `json:"aggressiveShare" toml:"aggressive_share" yaml:"aggressive_share"`
	ConservativeNudge Percent `json:"conservativeNudge" toml:"conservative_nudge" yaml:"conservative_nudge"`
	AggressiveNudge   Percent `json:"aggressiveNudge" toml:"aggressive_nudge" yaml:"aggressive_nudge"`
	MaxYears          float64 `json:"maxYears" toml:"max_years" yaml:"max_years"`
	HighInflation     Percent `json:"highInflation" toml:"high_inflation" yaml:"high_inflation"`

	BaselineInflation   Percent `json:"baselineInflation" toml:"baseline_inflation" yaml:"baseline_inflation"`
	InflationPenalty    float64 `json:"inflationPenalty" toml:"inflation_penalty" yaml:"inflation_penalty"` // share of the excess inflation
	HighRiskScore       int     `json:"highRiskScore" toml:"high_risk_score" yaml:"high_risk_score"`
	LowRiskScore        int     `json:"lowRiskScore" toml:"low_risk_score" yaml:"low_risk_score"`
	HighRiskStep        Percent `json:"highRiskStep" toml:"high_risk_step" yaml:"high_risk_step"` // per score point above HighRiskScore
	MaxHighRiskPenalty  Percent `json:"maxHighRiskPenalty" toml:"max_high_risk_penalty" yaml:"max_high_risk_penalty"`
	LowRiskStep         Percent `json:"lowRiskStep" toml:"low_risk_step" yaml:"low_risk_step"` // per score point below LowRiskScore
	MaxLowRiskBonus     Percent `json:"maxLowRiskBonus" toml:"max_low_risk_bonus" yaml:"max_low_risk_bonus"`
	HighConfidenceRatio float64 `json:"highConfidenceRatio" toml:"high_confidence_ratio" yaml:"high_confidence_ratio"`
	LowConfidenceRatio  float64 `json:"lowConfidenceRatio" toml:"low_confidence_ratio" yaml:"low_confidence_ratio"`
	HighConfidenceRate  Percent `json:"highConfidenceRate" toml:"high_confidence_rate" yaml:"high_confidence_rate"`
	LowConfidenceRate   Percent `json:"lowConfidenceRate" toml:"low_confidence_rate" yaml:"low_confidence_rate"`
}

// DefaultSWRParams returns the Trinity study inspired defaults.
func DefaultSWRParams() SWRParams {
	return SWRParams{
		RiskyRate:         5,
		ConservativeRate:  2,
		ConservativeShare: 0.30,
		AggressiveShare:   0.70,
		ConservativeNudge: -0.5,
		AggressiveNudge:   0.5,
		MaxYears:          30,
		HighInflation:     5,

		BaselineInflation:   2,
		InflationPenalty:    0.5,
		HighRiskScore:       6,
		LowRiskScore:        4,
		HighRiskStep:        0.25,
		MaxHighRiskPenalty:  1,
		LowRiskStep:         0.125,
		MaxLowRiskBonus:     0.5,
		HighConfidenceRatio: 25,
		LowConfidenceRatio:  15,
		HighConfidenceRate:  4,
		LowConfidenceRate:   5,
	}
}

// SWRInput is the input of the basic withdrawal calculator.
type SWRInput struct {
	Allocation      Allocation `json:"allocation"`
	Rate            Percent    `json:"rate"`
	InflationRate   Percent    `json:"inflationRate"`
	MonthlyExpenses float64    `json:"monthlyExpenses"`
}

// SWRResult is the withdrawal capacity of a portfolio.
type SWRResult struct {
	WithdrawableAssets    float64     `json:"withdrawableAssets"`
	ExcludedAssets        float64     `json:"excludedAssets"` // real estate, pension funds and alternatives
	InvestmentShare       float64     `json:"investmentShare"`
	Profile               RiskProfile `json:"profile"`
	RequestedRate         Percent     `json:"requestedRate"`
	ProfileAdjustment     Percent     `json:"profileAdjustment"`
	Rate                  Percent     `json:"rate"`
	AnnualWithdrawal      float64     `json:"annualWithdrawal"`
	MonthlyWithdrawal     float64     `json:"monthlyWithdrawal"`
	RealMonthlyWithdrawal float64     `json:"realMonthlyWithdrawal"` // in today's money, after one year of inflation
	MonthlyExpenses       float64     `json:"monthlyExpenses"`
	CoversExpenses        bool        `json:"coversExpenses"`
	YearsOfSupport        float64     `json:"yearsOfSupport"`
	Warnings              []string    `json:"warnings,omitempty"`
}

// withdrawable returns the liquid part of an allocation, and warnings for what
// is excluded.
func withdrawable(a Allocation) (liquid, excluded float64, warnings []string) {
	warnings = a.Invalid()
	for _, b := range []Bucket{RealEstateBucket, PensionBucket, AlternativesBucket} {
		if amount := a.Bucket(b); amount > 0 {
			excluded = numeric.Add(excluded, amount)
			warnings = append(warnings, fmt.Sprintf("%s excluded from withdrawable assets: %.2f", b, amount))
		}
	}
	return a.Liquid(), excluded, warnings
}

// sanitize returns x, or 0 with a warning when x is negative or not finite.
func sanitize(name string, x float64, warnings *[]string) float64 {
	if valid(x) {
		return x
	}
	*warnings = append(*warnings, fmt.Sprintf("invalid %s %v, using 0", name, x))
	return 0
}

// CalculateSWR returns what can be withdrawn from the liquid part of a
// portfolio at the requested rate, nudged by the portfolio risk profile.
func CalculateSWR(in SWRInput, p SWRParams) SWRResult {
	res := SWRResult{RequestedRate: in.Rate}
	res.WithdrawableAssets, res.ExcludedAssets, res.Warnings = withdrawable(in.Allocation)
	res.MonthlyExpenses = sanitize("monthly expenses", in.MonthlyExpenses, &res.Warnings)
	inflation := float64(in.InflationRate)
	if math.IsNaN(inflation) || math.IsInf(inflation, 0) || inflation <= -100 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid inflation rate %v, using 0", inflation))
		inflation = 0
	}
	rate := float64(in.Rate)
	if !valid(rate) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid withdrawal rate %v, using 0", rate))
		rate = 0
	}

	if res.WithdrawableAssets <= 0 {
		res.Warnings = append(res.Warnings, "no liquid assets to withdraw from")
	} else {
		res.InvestmentShare = numeric.SafeDivide(in.Allocation.Bucket(InvestmentsBucket), res.WithdrawableAssets, 0)
		switch {
		case res.InvestmentShare < p.ConservativeShare:
			res.Profile, res.ProfileAdjustment = Conservative, p.ConservativeNudge
		case res.InvestmentShare > p.AggressiveShare:
			res.Profile, res.ProfileAdjustment = Aggressive, p.AggressiveNudge
		}
		if res.ProfileAdjustment != 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s profile (%.0f%% investments): rate adjusted by %s",
				res.Profile, res.InvestmentShare*100, res.ProfileAdjustment.SignedString()))
		}
	}
	res.Rate = Percent(clamp(rate+float64(res.ProfileAdjustment), 0, 100))

	switch {
	case res.Rate > p.RiskyRate:
		res.Warnings = append(res.Warnings, fmt.Sprintf("withdrawal rate %s above %s is risky", res.Rate, p.RiskyRate))
	case res.Rate < p.ConservativeRate:
		res.Warnings = append(res.Warnings, fmt.Sprintf("withdrawal rate %s below %s is very conservative", res.Rate, p.ConservativeRate))
	}
	if Percent(inflation) > p.HighInflation {
		res.Warnings = append(res.Warnings, fmt.Sprintf("inflation %s above %s erodes withdrawals quickly", Percent(inflation), p.HighInflation))
	}

	res.AnnualWithdrawal, res.MonthlyWithdrawal = withdrawals(res.WithdrawableAssets, res.Rate)
	res.RealMonthlyWithdrawal = numeric.Divide(res.MonthlyWithdrawal, 1+inflation/100, 0)

	res.CoversExpenses = res.MonthlyWithdrawal >= res.MonthlyExpenses
	if !res.CoversExpenses {
		res.Warnings = append(res.Warnings, fmt.Sprintf("monthly withdrawal %.2f is insufficient to cover expenses of %.2f",
			res.MonthlyWithdrawal, res.MonthlyExpenses))
	}
	res.YearsOfSupport = yearsOfSupport(res.WithdrawableAssets, numeric.Multiply(res.MonthlyExpenses, 12), inflation/100, p.MaxYears)
	return res
}

// withdrawals returns the annual and monthly amounts withdrawn from assets at
// rate.
func withdrawals(assets float64, rate Percent) (annual, monthly float64) {
	annual = numeric.Multiply(assets, rate.Fraction())
	return annual, numeric.Divide(annual, 12, 0)
}

// yearsOfSupport returns how many years assets pay for annual expenses that
// grow with inflation, capped at max: n such that Σₖ₌₀ⁿ⁻¹ expenses·(1+i)ᵏ = assets.
func yearsOfSupport(assets, expenses, inflation, max float64) float64 {
	if expenses <= 0 {
		return max
	}
	return GuardNumber("years of support", max, func() float64 {
		if math.Abs(inflation) < 1e-12 {
			return math.Min(max, numeric.SafeDivide(assets, expenses, max))
		}
		x := 1 + assets*inflation/expenses
		if x <= 0 {
			// Deflation outpaces spending: assets never run out.
			return max
		}
		return math.Min(max, math.Log(x)/math.Log1p(inflation))
	}).Value
}

// Confidence rates how sustainable a withdrawal is.
type Confidence int

const (
	MediumConfidence Confidence = iota
	HighConfidence
	LowConfidence
)

func (c Confidence) String() string {
	switch c {
	case HighConfidence:
		return "high"
	case LowConfidence:
		return "low"
	default:
		return "medium"
	}
}

func (c Confidence) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// AdvancedSWRInput is the input of the advanced withdrawal calculator.
type AdvancedSWRInput struct {
	Allocation      Allocation `json:"allocation"`
	BaseRate        Percent    `json:"baseRate"`
	InflationRate   Percent    `json:"inflationRate"`
	MonthlyExpenses float64    `json:"monthlyExpenses"`
}

// SWRCalculationResult is the withdrawal rate adjusted for inflation and risk.
// Each adjustment is reported separately.
type SWRCalculationResult struct {
	WithdrawableAssets  float64    `json:"withdrawableAssets"`
	BaseRate            Percent    `json:"baseRate"`
	InflationAdjustment Percent    `json:"inflationAdjustment"`
	RiskScore           int        `json:"riskScore"`
	RiskAdjustment      Percent    `json:"riskAdjustment"`
	FinalRate           Percent    `json:"finalRate"`
	AnnualWithdrawal    float64    `json:"annualWithdrawal"`
	MonthlyWithdrawal   float64    `json:"monthlyWithdrawal"`
	AssetToExpenseRatio float64    `json:"assetToExpenseRatio"` // withdrawable assets over annual expenses, 0 without expenses
	Confidence          Confidence `json:"confidence"`
	Warnings            []string   `json:"warnings,omitempty"`
}

// CalculateAdvancedSWR adjusts the base rate for inflation above the baseline
// and for the risk score of the whole allocation, then rates the confidence
// in the result.
func CalculateAdvancedSWR(in AdvancedSWRInput, p SWRParams) SWRCalculationResult {
	res := SWRCalculationResult{BaseRate: in.BaseRate}
	res.WithdrawableAssets, _, res.Warnings = withdrawable(in.Allocation)
	expenses := numeric.Multiply(sanitize("monthly expenses", in.MonthlyExpenses, &res.Warnings), 12)
	base := float64(in.BaseRate)
	if !valid(base) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid base rate %v, using 0", base))
		base = 0
	}
	inflation := float64(in.InflationRate)
	if math.IsNaN(inflation) || math.IsInf(inflation, 0) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid inflation rate %v, using 0", inflation))
		inflation = 0
	}

	if excess := inflation - float64(p.BaselineInflation); excess > 0 {
		res.InflationAdjustment = Percent(-excess * p.InflationPenalty)
		res.Warnings = append(res.Warnings, fmt.Sprintf("inflation %s above %s baseline: rate adjusted by %s",
			Percent(inflation), p.BaselineInflation, res.InflationAdjustment.SignedString()))
	}

	res.RiskScore = CalculatePortfolioRiskScore(in.Allocation)
	switch {
	case res.RiskScore > p.HighRiskScore:
		res.RiskAdjustment = -min(p.MaxHighRiskPenalty, Percent(res.RiskScore-p.HighRiskScore)*p.HighRiskStep)
		res.Warnings = append(res.Warnings, fmt.Sprintf("high risk score %d/10: rate adjusted by %s",
			res.RiskScore, res.RiskAdjustment.SignedString()))
	case res.RiskScore < p.LowRiskScore && in.Allocation.Total() > 0:
		res.RiskAdjustment = min(p.MaxLowRiskBonus, Percent(p.LowRiskScore-res.RiskScore)*p.LowRiskStep)
		res.Warnings = append(res.Warnings, fmt.Sprintf("low risk score %d/10: rate adjusted by %s",
			res.RiskScore, res.RiskAdjustment.SignedString()))
	}

	final := base + float64(res.InflationAdjustment) + float64(res.RiskAdjustment)
	if final < 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("adjusted rate %s is negative, using 0", Percent(final)))
		final = 0
	}
	res.FinalRate = Percent(final)
	res.AnnualWithdrawal, res.MonthlyWithdrawal = withdrawals(res.WithdrawableAssets, res.FinalRate)

	if res.WithdrawableAssets <= 0 {
		res.Warnings = append(res.Warnings, "no liquid assets to withdraw from")
	}
	if expenses > 0 {
		res.AssetToExpenseRatio = numeric.SafeDivide(res.WithdrawableAssets, expenses, 0)
	} else {
		res.Warnings = append(res.Warnings, "no expenses: confidence rated on the withdrawal rate only")
	}
	res.Confidence = confidence(res.AssetToExpenseRatio, expenses > 0, res.FinalRate, p)
	return res
}

func confidence(ratio float64, hasExpenses bool, rate Percent, p SWRParams) Confidence {
	switch {
	case rate > p.LowConfidenceRate || (hasExpenses && ratio < p.LowConfidenceRatio):
		return LowConfidence
	case (rate < p.HighConfidenceRate || rate.Equal(p.HighConfidenceRate)) && (!hasExpenses || ratio >= p.HighConfidenceRatio):
		return HighConfidence
	default:
		return MediumConfidence
	}
}
