package renderer

import (
	"fmt"
	"io"
	"slices"

	"github.com/etnz/wealth"
)

// CostBasisMarkdown renders the holding of one instrument after its transactions.
func CostBasisMarkdown(res wealth.CostBasisResult, currency string) string {
	r := newReport(currency)

	fmt.Fprintf(r, "# Cost Basis of %s\n\n", res.Instrument)
	fmt.Fprintf(r, "Method: %s\n\n", res.Method)

	fmt.Fprintln(r, "| Metric | Value |")
	fmt.Fprintln(r, "|:---|---:|")
	fmt.Fprintf(r, "| Remaining Quantity | %s |\n", res.RemainingQuantity)
	fmt.Fprintf(r, "| Cost Basis | %s |\n", res.CostBasis.Format(r.currency))
	fmt.Fprintf(r, "| Unit Cost | %s |\n", res.UnitCost.Format(r.currency))
	fmt.Fprintf(r, "| Current Value | %s |\n", res.CurrentValue.Format(r.currency))
	fmt.Fprintf(r, "| Realized Gain | %s |\n", res.RealizedGainLoss.SignedString(r.currency))
	fmt.Fprintf(r, "| Unrealized Gain | %s |\n", res.UnrealizedGainLoss.SignedString(r.currency))
	fmt.Fprintf(r, "| Commissions | %s |\n", res.TotalCommissions.Format(r.currency))
	fmt.Fprintln(r)

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprint(w, "## Open Lots\n\n")
		fmt.Fprintln(w, "| Lot | Date | Quantity | Unit Price | Total Cost |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|")
		for _, l := range res.Lots {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				escape(l.ID), l.Date, l.Quantity, l.UnitPrice.Format(r.currency), l.TotalCost.Format(r.currency))
		}
		fmt.Fprintln(w)
		return len(res.Lots) > 0
	})

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprint(w, "## Sales\n\n")
		fmt.Fprintln(w, "| Date | Quantity | Price | Proceeds | Cost Basis | Realized |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|")
		for _, s := range res.Sales {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
				s.Date, s.Quantity, s.Price.Format(r.currency),
				s.Proceeds.Format(r.currency), s.CostBasis.Format(r.currency), s.RealizedGain.SignedString(r.currency))
		}
		fmt.Fprintln(w)
		return len(res.Sales) > 0
	})

	r.warnings(res.Warnings)
	return r.String()
}

// GainsMarkdown renders a capital gains tax report.
func GainsMarkdown(tax wealth.TaxReport, currency string) string {
	r := newReport(currency)

	fmt.Fprint(r, "# Capital Gains Report\n\n")
	fmt.Fprintf(r, "Method: %s\n\n", tax.Method)

	fmt.Fprint(r, "## Gains per Year\n\n")
	fmt.Fprintln(r, "| Year | Sales | Gains | Losses | Tax |")
	fmt.Fprintln(r, "|:---|---:|---:|---:|---:|")
	for _, y := range tax.ByYear {
		fmt.Fprintf(r, "| %d | %d | %s | %s | %s |\n",
			y.Year, y.Sales, y.Gains.SignedString(r.currency), y.Losses.SignedString(r.currency), y.Tax.Format(r.currency))
	}
	fmt.Fprintf(r, "| **%s** | | **%s** | | **%s** |\n",
		"Total",
		tax.TotalGains.SignedString(r.currency),
		tax.TotalTax.Format(r.currency),
	)
	fmt.Fprintln(r)

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprint(w, "## Gains per Asset Type\n\n")
		fmt.Fprintln(w, "| Asset Type | Rate | Sales | Gains | Tax |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|---:|")
		types := make([]wealth.AssetType, 0, len(tax.ByAssetType))
		for t := range tax.ByAssetType {
			types = append(types, t)
		}
		slices.Sort(types)
		for _, t := range types {
			s := tax.ByAssetType[t]
			fmt.Fprintf(w, "| %s | %s | %d | %s | %s |\n",
				t, fraction(tax.Rates.RateFor(t)), s.Sales, s.Gains.SignedString(r.currency), s.Tax.Format(r.currency))
		}
		fmt.Fprintln(w)
		return len(types) > 0
	})

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprint(w, "## Taxable Events\n\n")
		fmt.Fprintln(w, "| Date | Instrument | Quantity | Proceeds | Cost Basis | Gain | Tax |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|---:|")
		for _, s := range tax.Sales {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
				s.Date, escape(s.Instrument), s.Quantity,
				s.Proceeds.Format(r.currency), s.CostBasis.Format(r.currency),
				s.RealizedGain.SignedString(r.currency), s.Tax.Format(r.currency))
		}
		fmt.Fprintln(w)
		return len(tax.Sales) > 0
	})

	r.warnings(tax.Warnings)
	return r.String()
}
