package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/wealth"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// report accumulates the markdown of a single result record.
type report struct {
	strings.Builder
	currency string
}

func newReport(currency string) *report {
	if currency == "" {
		currency = "EUR"
	}
	return &report{currency: currency}
}

// Printf formats according to a format specifier and writes to the report.
func (r *report) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// money formats an amount in the report currency.
func (r *report) money(v float64) string { return wealth.M(v).Format(r.currency) }

// warnings prints the warnings section, if there is any warning.
func (r *report) warnings(warnings []string) {
	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprint(w, "## Warnings\n\n")
		for _, msg := range warnings {
			fmt.Fprintf(w, "- %s\n", escape(msg))
		}
		fmt.Fprintln(w)
		return len(warnings) > 0
	})
}

// escape protects table cells from pipes in free text.
func escape(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// fraction formats a fraction as a percentage.
func fraction(x float64) string { return wealth.Percent(x * 100).String() }

// years formats a duration in years.
func years(y float64) string { return fmt.Sprintf("%.2f", y) }
