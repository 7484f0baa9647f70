package wealth

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// Regime is a market regime of the risk tables.
type Regime int

const (
	Normal Regime = iota
	// Stress models a market downturn: higher volatility, higher correlations.
	Stress
	// Crisis models a market crash: risky assets move together.
	Crisis

	numRegimes = iota
)

func (r Regime) String() string {
	switch r {
	case Normal:
		return "normal"
	case Stress:
		return "stress"
	case Crisis:
		return "crisis"
	default:
		return "unknown"
	}
}

// ParseRegime parses a regime name, case insensitively.
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return Normal, nil
	case "stress":
		return Stress, nil
	case "crisis":
		return Crisis, nil
	default:
		return Normal, fmt.Errorf("unknown market regime: %q", s)
	}
}

func (r Regime) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Regime) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRegime(string(text))
	return err
}

const (
	// MaxSharpe bounds the magnitude of a Sharpe ratio.
	MaxSharpe = 10.0
	// ZeroVolatility is the volatility below which a portfolio is riskless.
	ZeroVolatility = 1e-9
	// NeutralExcess is the excess return below which a riskless portfolio is neutral.
	NeutralExcess = 1e-9
	// MaxRiskScore is the highest risk score.
	MaxRiskScore = 10
)

// Volatility returns the annualized volatility of an asset class, as a
// fraction.
func Volatility(c AssetClass, r Regime) float64 {
	if !c.known() || r < 0 || r >= numRegimes {
		return volatilities[Normal][Alternatives]
	}
	return volatilities[r][c]
}

// Correlation returns the correlation between two asset classes. It is
// symmetric and 1 for a class with itself.
func Correlation(a, b AssetClass, r Regime) float64 {
	if a == b {
		return 1
	}
	if !a.known() || !b.known() || r < 0 || r >= numRegimes {
		return 0
	}
	return correlations[r][a][b]
}

// ExpectedReturn returns the long term annual return of an asset class, as a
// fraction.
func ExpectedReturn(c AssetClass) float64 {
	if !c.known() {
		return 0
	}
	return expectedReturns[c]
}

func (c AssetClass) known() bool { return c >= 0 && c < numAssetClasses }

// covariance returns the covariance matrix of the asset classes.
func covariance(r Regime) *mat.SymDense {
	cov := mat.NewSymDense(numAssetClasses, nil)
	for i, a := range AssetClasses {
		for j := i; j < numAssetClasses; j++ {
			b := AssetClasses[j]
			cov.SetSym(i, j, Volatility(a, r)*Volatility(b, r)*Correlation(a, b, r))
		}
	}
	return cov
}

// weightVector returns the weights of the allocation ordered like AssetClasses.
func weightVector(a Allocation) *mat.VecDense {
	w := mat.NewVecDense(numAssetClasses, nil)
	weights := a.Weights()
	for i, c := range AssetClasses {
		w.SetVec(i, weights[c])
	}
	return w
}

// PortfolioVariance returns the variance of the allocation's annual return:
// Σwᵢ²σᵢ² + Σᵢ<ⱼ 2wᵢwⱼσᵢσⱼρᵢⱼ, computed as wᵀΣw.
func PortfolioVariance(a Allocation, r Regime) float64 {
	w := weightVector(a)
	return GuardNumber("portfolio variance", 0, func() float64 {
		return math.Max(0, mat.Inner(w, covariance(r), w))
	}).Value
}

// PortfolioVolatility returns the standard deviation of the allocation's
// annual return.
func PortfolioVolatility(a Allocation, r Regime) float64 {
	return math.Sqrt(PortfolioVariance(a, r))
}

// PortfolioExpectedReturn returns the weighted expected return of the
// allocation, as a fraction.
func PortfolioExpectedReturn(a Allocation) float64 {
	return a.Average(ExpectedReturn)
}

// riskWeight is the score of a bucket on a 0 to 10 scale.
func (b Bucket) riskWeight() float64 {
	switch b {
	case CashBucket:
		return 1
	case PensionBucket:
		return 3
	case RealEstateBucket:
		return 4
	case InvestmentsBucket:
		return 7
	default:
		return 9
	}
}

// CalculatePortfolioRiskScore returns a risk score from 0 (cash) to 10: the
// average of the bucket risk weights, weighted by amount, rounded. An empty
// allocation scores 0.
func CalculatePortfolioRiskScore(a Allocation) int {
	score := a.Average(func(c AssetClass) float64 { return c.Bucket().riskWeight() })
	return int(clamp(math.Round(score), 0, MaxRiskScore))
}

// SharpeRatio returns (expectedReturn - riskFree) / volatility clamped to
// ±MaxSharpe. A riskless portfolio scores 0 when its excess return is
// negligible, MaxSharpe when positive and -MaxSharpe when negative.
func SharpeRatio(expectedReturn, riskFree, volatility float64) float64 {
	if math.IsNaN(expectedReturn) || math.IsNaN(riskFree) || math.IsNaN(volatility) {
		log.Warn().Msg("sharpe ratio of NaN input")
		return 0
	}
	excess := expectedReturn - riskFree
	if volatility <= ZeroVolatility {
		switch {
		case math.Abs(excess) <= NeutralExcess || math.IsNaN(excess):
			return 0
		case excess > 0:
			return MaxSharpe
		default:
			return -MaxSharpe
		}
	}
	ratio := excess / volatility
	if math.IsNaN(ratio) {
		return 0
	}
	return clamp(ratio, -MaxSharpe, MaxSharpe)
}

// RiskMetrics describes the risk of an allocation.
type RiskMetrics struct {
	Regime         Regime                 `json:"regime"`
	Total          float64                `json:"total"`
	Weights        map[AssetClass]float64 `json:"weights"`
	ExpectedReturn float64                `json:"expectedReturn"` // fraction
	RiskFreeRate   float64                `json:"riskFreeRate"`   // fraction
	Variance       float64                `json:"variance"`
	Volatility     float64                `json:"volatility"` // fraction
	SharpeRatio    float64                `json:"sharpeRatio"`
	RiskScore      int                    `json:"riskScore"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// AnalyzeRisk computes the risk metrics of an allocation in a regime.
// riskFree is the risk free rate, as a fraction.
func AnalyzeRisk(a Allocation, riskFree float64, r Regime) RiskMetrics {
	m := RiskMetrics{Regime: r, RiskFreeRate: riskFree, Warnings: a.Invalid()}
	if r < 0 || r >= numRegimes {
		m.Warnings = append(m.Warnings, fmt.Sprintf("unknown regime %d, using normal", int(r)))
		m.Regime = Normal
	}
	if !valid(math.Abs(riskFree)) {
		m.Warnings = append(m.Warnings, fmt.Sprintf("invalid risk free rate %v, using 0", riskFree))
		m.RiskFreeRate = 0
	}
	m.Total = a.Total()
	if m.Total <= 0 {
		m.Warnings = append(m.Warnings, "empty allocation, no risk to measure")
		return m
	}
	m.Weights = a.Weights()
	m.ExpectedReturn = PortfolioExpectedReturn(a)
	m.Variance = PortfolioVariance(a, m.Regime)
	m.Volatility = math.Sqrt(m.Variance)
	m.SharpeRatio = SharpeRatio(m.ExpectedReturn, m.RiskFreeRate, m.Volatility)
	m.RiskScore = CalculatePortfolioRiskScore(a)
	if m.Volatility <= ZeroVolatility {
		m.Warnings = append(m.Warnings, fmt.Sprintf("riskless portfolio, sharpe ratio set to %v", m.SharpeRatio))
	}
	return m
}

// clamp returns x bounded to [lo, hi].
func clamp(x, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, x)) }
