package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/wealth"
)

// RiskMarkdown renders the risk metrics of an allocation.
func RiskMarkdown(m wealth.RiskMetrics, currency string) string {
	r := newReport(currency)

	r.Printf("# Portfolio Risk (%s regime)\n\n", m.Regime)
	r.Printf("| Metric | Value |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Total | %s |\n", r.money(m.Total))
	r.Printf("| Expected Return | %s |\n", fraction(m.ExpectedReturn))
	r.Printf("| Risk Free Rate | %s |\n", fraction(m.RiskFreeRate))
	r.Printf("| Volatility | %s |\n", fraction(m.Volatility))
	r.Printf("| Sharpe Ratio | %.2f |\n", m.SharpeRatio)
	r.Printf("| Risk Score | %d / %d |\n", m.RiskScore, wealth.MaxRiskScore)
	r.Printf("\n")

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprint(w, "## Allocation\n\n")
		fmt.Fprintln(w, "| Asset Class | Weight | Volatility |")
		fmt.Fprintln(w, "|:---|---:|---:|")
		n := 0
		for _, c := range wealth.AssetClasses {
			weight, ok := m.Weights[c]
			if !ok || weight == 0 {
				continue
			}
			n++
			fmt.Fprintf(w, "| %s | %s | %s |\n", c, fraction(weight), fraction(wealth.Volatility(c, m.Regime)))
		}
		fmt.Fprintln(w)
		return n > 0
	})

	r.warnings(m.Warnings)
	return r.String()
}
