package renderer

import (
	"fmt"

	"github.com/etnz/wealth"
)

// SWRMarkdown renders a safe withdrawal rate calculation.
func SWRMarkdown(res wealth.SWRResult, currency string) string {
	r := newReport(currency)

	r.Printf("# Safe Withdrawal Rate\n\n")
	r.Printf("| Metric | Value |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Withdrawable Assets | %s |\n", r.money(res.WithdrawableAssets))
	r.Printf("| Excluded Assets | %s |\n", r.money(res.ExcludedAssets))
	r.Printf("| Investment Share | %s |\n", fraction(res.InvestmentShare))
	r.Printf("| Profile | %s |\n", res.Profile)
	r.Printf("| Requested Rate | %s |\n", res.RequestedRate)
	r.Printf("| Profile Adjustment | %s |\n", res.ProfileAdjustment.SignedString())
	r.Printf("| **Rate** | **%s** |\n", res.Rate)
	r.Printf("\n")

	r.Printf("## Withdrawals\n\n")
	r.Printf("| Period | Amount |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Annual | %s |\n", r.money(res.AnnualWithdrawal))
	r.Printf("| Monthly | %s |\n", r.money(res.MonthlyWithdrawal))
	r.Printf("| Monthly (today's money) | %s |\n", r.money(res.RealMonthlyWithdrawal))
	if res.MonthlyExpenses > 0 {
		r.Printf("| Monthly Expenses | %s |\n", r.money(res.MonthlyExpenses))
	}
	r.Printf("\n")

	covered := "no"
	if res.CoversExpenses {
		covered = "yes"
	}
	r.Printf("Covers expenses: %s. Years of support: %s.\n\n", covered, years(res.YearsOfSupport))

	r.warnings(res.Warnings)
	return r.String()
}

// AdvancedSWRMarkdown renders the adjusted withdrawal rate, one row per adjustment.
func AdvancedSWRMarkdown(res wealth.SWRCalculationResult, currency string) string {
	r := newReport(currency)

	r.Printf("# Adjusted Safe Withdrawal Rate\n\n")
	r.Printf("| Step | Rate |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Base Rate | %s |\n", res.BaseRate)
	r.Printf("| Inflation Adjustment | %s |\n", res.InflationAdjustment.SignedString())
	r.Printf("| Risk Adjustment (score %d) | %s |\n", res.RiskScore, res.RiskAdjustment.SignedString())
	r.Printf("| **Final Rate** | **%s** |\n", res.FinalRate)
	r.Printf("\n")

	r.Printf("## Withdrawals\n\n")
	r.Printf("| Metric | Value |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Withdrawable Assets | %s |\n", r.money(res.WithdrawableAssets))
	r.Printf("| Annual | %s |\n", r.money(res.AnnualWithdrawal))
	r.Printf("| Monthly | %s |\n", r.money(res.MonthlyWithdrawal))
	if res.AssetToExpenseRatio > 0 {
		r.Printf("| Asset to Expense Ratio | %s |\n", fmt.Sprintf("%.1f", res.AssetToExpenseRatio))
	}
	r.Printf("| Confidence | %s |\n", res.Confidence)
	r.Printf("\n")

	r.warnings(res.Warnings)
	return r.String()
}

// EmergencyMarkdown renders the emergency fund coverage.
func EmergencyMarkdown(res wealth.EmergencyFundResult, currency string) string {
	r := newReport(currency)

	r.Printf("# Emergency Fund\n\n")
	r.Printf("| Metric | Value |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Cash | %s |\n", r.money(res.Cash))
	r.Printf("| Monthly Expenses | %s |\n", r.money(res.MonthlyExpenses))
	r.Printf("| Months Covered | %.1f |\n", res.Months)
	r.Printf("| Target | %s |\n", r.money(res.Target))
	r.Printf("| Status | %s |\n", res.Status)
	if res.Shortfall > 0 {
		r.Printf("| Shortfall | %s |\n", r.money(res.Shortfall))
	}
	r.Printf("\n")

	r.warnings(res.Warnings)
	return r.String()
}
