package wealth

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/etnz/wealth/numeric"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings is the bundle of user supplied parameters of the calculators.
type Settings struct {
	Currency        string                `json:"currency" toml:"currency" yaml:"currency"`
	CostBasisMethod CostBasisMethod       `json:"costBasisMethod" toml:"cost_basis_method" yaml:"cost_basis_method"`
	Tax             TaxRates              `json:"tax" toml:"tax" yaml:"tax"`
	Withdrawal      WithdrawalSettings    `json:"withdrawal" toml:"withdrawal" yaml:"withdrawal"`
	Risk            RiskSettings          `json:"risk" toml:"risk" yaml:"risk"`
	EmergencyFund   EmergencyFundSettings `json:"emergencyFund" toml:"emergency_fund" yaml:"emergency_fund"`
	SWR             SWRParams             `json:"swr" toml:"swr" yaml:"swr"`
	Arithmetic      ArithmeticSettings    `json:"arithmetic" toml:"arithmetic" yaml:"arithmetic"`
}

// WithdrawalSettings are the defaults of the withdrawal calculators.
type WithdrawalSettings struct {
	Rate            Percent `json:"rate" toml:"rate" yaml:"rate"`
	InflationRate   Percent `json:"inflationRate" toml:"inflation_rate" yaml:"inflation_rate"`
	MonthlyExpenses float64 `json:"monthlyExpenses" toml:"monthly_expenses" yaml:"monthly_expenses"`
}

// RiskSettings are the defaults of the risk model.
type RiskSettings struct {
	RiskFreeRate float64 `json:"riskFreeRate" toml:"risk_free_rate" yaml:"risk_free_rate"` // fraction
	Regime       Regime  `json:"regime" toml:"regime" yaml:"regime"`
}

// ArithmeticSettings configure the numeric layer.
type ArithmeticSettings struct {
	Threshold    float64 `json:"threshold" toml:"threshold" yaml:"threshold"`
	MaxMagnitude float64 `json:"maxMagnitude" toml:"max_magnitude" yaml:"max_magnitude"`
	MinMagnitude float64 `json:"minMagnitude" toml:"min_magnitude" yaml:"min_magnitude"`
}

// Arithmetic returns the numeric strategy described by the settings.
func (a ArithmeticSettings) Arithmetic() numeric.Arithmetic {
	return numeric.Arithmetic{
		Threshold: a.Threshold,
		Bounds:    numeric.Bounds{Max: a.MaxMagnitude, Min: a.MinMagnitude},
	}
}

// DefaultSettings returns the settings used when none are supplied.
func DefaultSettings() Settings {
	return Settings{
		Currency:        "EUR",
		CostBasisMethod: FIFO,
		Tax:             DefaultTaxRates(),
		Withdrawal: WithdrawalSettings{
			Rate:          4,
			InflationRate: 2,
		},
		Risk:          RiskSettings{RiskFreeRate: 0.02, Regime: Normal},
		EmergencyFund: DefaultEmergencyFundSettings(),
		SWR:           DefaultSWRParams(),
		Arithmetic: ArithmeticSettings{
			Threshold:    numeric.DefaultThreshold,
			MaxMagnitude: numeric.MaxMagnitude,
			MinMagnitude: numeric.MinMagnitude,
		},
	}
}

// Format is the encoding of a settings document.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf returns the format of a settings file from its extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return TOML, fmt.Errorf("unknown settings format for %q, expecting .toml, .yaml or .yml", name)
	}
}

// ParseSettings decodes a settings document on top of DefaultSettings. Keys
// missing from the document keep their default value.
func ParseSettings(data []byte, format Format) (Settings, error) {
	s := DefaultSettings()
	var err error
	switch format {
	case TOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&s)
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&s); err != nil && len(bytes.TrimSpace(data)) == 0 {
			err = nil // an empty document is an empty configuration
		}
	default:
		err = fmt.Errorf("unknown format %d", int(format))
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse %s settings: %w", format, err)
	}
	return s, nil
}

// Normalize clamps every numeric setting into its valid range and returns a
// warning for each value it changed.
func (s *Settings) Normalize() []string {
	var warnings []string
	fix := func(name string, v *float64, lo, hi, def float64) {
		switch {
		case math.IsNaN(*v) || math.IsInf(*v, 0):
			warnings = append(warnings, fmt.Sprintf("%s: invalid value %v, using %v", name, *v, def))
			*v = def
		case *v < lo || *v > hi:
			c := clamp(*v, lo, hi)
			warnings = append(warnings, fmt.Sprintf("%s: %v out of [%v, %v], using %v", name, *v, lo, hi, c))
			*v = c
		}
	}
	percent := func(name string, p *Percent, lo, hi, def float64) {
		v := float64(*p)
		fix(name, &v, lo, hi, def)
		*p = Percent(v)
	}
	def := DefaultSettings()

	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if s.Currency == "" {
		s.Currency = def.Currency
	}

	var taxWarnings []string
	s.Tax, taxWarnings = s.Tax.clamp()
	warnings = append(warnings, taxWarnings...)

	percent("withdrawal.rate", &s.Withdrawal.Rate, 0, 100, float64(def.Withdrawal.Rate))
	percent("withdrawal.inflation_rate", &s.Withdrawal.InflationRate, -50, 100, float64(def.Withdrawal.InflationRate))
	fix("withdrawal.monthly_expenses", &s.Withdrawal.MonthlyExpenses, 0, numeric.MaxMagnitude, 0)
	fix("risk.risk_free_rate", &s.Risk.RiskFreeRate, -1, 1, def.Risk.RiskFreeRate)

	fix("emergency_fund.min_months", &s.EmergencyFund.MinMonths, 0, 120, def.EmergencyFund.MinMonths)
	fix("emergency_fund.target_months", &s.EmergencyFund.TargetMonths, s.EmergencyFund.MinMonths, 120, math.Max(s.EmergencyFund.MinMonths, def.EmergencyFund.TargetMonths))

	p, d := &s.SWR, def.SWR
	percent("swr.risky_rate", &p.RiskyRate, 0, 100, float64(d.RiskyRate))
	percent("swr.conservative_rate", &p.ConservativeRate, 0, float64(p.RiskyRate), math.Min(float64(d.ConservativeRate), float64(p.RiskyRate)))
	fix("swr.conservative_share", &p.ConservativeShare, 0, 1, d.ConservativeShare)
	fix("swr.aggressive_share", &p.AggressiveShare, p.ConservativeShare, 1, math.Max(d.AggressiveShare, p.ConservativeShare))
	percent("swr.conservative_nudge", &p.ConservativeNudge, -100, 100, float64(d.ConservativeNudge))
	percent("swr.aggressive_nudge", &p.AggressiveNudge, -100, 100, float64(d.AggressiveNudge))
	fix("swr.max_years", &p.MaxYears, 1, 100, d.MaxYears)
	percent("swr.high_inflation", &p.HighInflation, 0, 100, float64(d.HighInflation))
	percent("swr.baseline_inflation", &p.BaselineInflation, -50, 100, float64(d.BaselineInflation))
	fix("swr.inflation_penalty", &p.InflationPenalty, 0, 1, d.InflationPenalty)
	percent("swr.high_risk_step", &p.HighRiskStep, 0, 100, float64(d.HighRiskStep))
	percent("swr.max_high_risk_penalty", &p.MaxHighRiskPenalty, 0, 100, float64(d.MaxHighRiskPenalty))
	percent("swr.low_risk_step", &p.LowRiskStep, 0, 100, float64(d.LowRiskStep))
	percent("swr.max_low_risk_bonus", &p.MaxLowRiskBonus, 0, 100, float64(d.MaxLowRiskBonus))
	fix("swr.low_confidence_ratio", &p.LowConfidenceRatio, 0, 1000, d.LowConfidenceRatio)
	fix("swr.high_confidence_ratio", &p.HighConfidenceRatio, p.LowConfidenceRatio, 1000, math.Max(d.HighConfidenceRatio, p.LowConfidenceRatio))
	percent("swr.high_confidence_rate", &p.HighConfidenceRate, 0, 100, float64(d.HighConfidenceRate))
	percent("swr.low_confidence_rate", &p.LowConfidenceRate, float64(p.HighConfidenceRate), 100, math.Max(float64(d.LowConfidenceRate), float64(p.HighConfidenceRate)))
	if p.LowRiskScore < 0 || p.LowRiskScore > p.HighRiskScore || p.HighRiskScore > MaxRiskScore {
		warnings = append(warnings, fmt.Sprintf("swr risk scores %d and %d out of [0, %d], using %d and %d",
			p.LowRiskScore, p.HighRiskScore, MaxRiskScore, d.LowRiskScore, d.HighRiskScore))
		p.LowRiskScore, p.HighRiskScore = d.LowRiskScore, d.HighRiskScore
	}

	a, da := &s.Arithmetic, def.Arithmetic
	fix("arithmetic.threshold", &a.Threshold, 0, numeric.MaxMagnitude, da.Threshold)
	fix("arithmetic.max_magnitude", &a.MaxMagnitude, 1, math.MaxFloat64, da.MaxMagnitude)
	fix("arithmetic.min_magnitude", &a.MinMagnitude, 0, 1, da.MinMagnitude)
	return warnings
}
