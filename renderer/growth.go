package renderer

import "github.com/etnz/wealth"

// CAGRMarkdown renders a growth rate between two values.
func CAGRMarkdown(res wealth.CAGRResult, initial, final float64, currency string) string {
	r := newReport(currency)

	r.Printf("# Compound Annual Growth Rate\n\n")
	r.Printf("| Metric | Value |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Initial Value | %s |\n", r.money(initial))
	r.Printf("| Final Value | %s |\n", r.money(final))
	r.Printf("| Years | %s |\n", years(res.Years))
	r.Printf("| Method | %s |\n", res.Method)
	if res.Capped {
		r.Printf("| **Rate** | **%s** (capped) |\n", res.Rate.SignedString())
	} else {
		r.Printf("| **Rate** | **%s** |\n", res.Rate.SignedString())
	}
	r.Printf("\n")

	r.warnings(res.Warnings)
	return r.String()
}
