package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/date"
	"github.com/etnz/wealth/renderer"
	"github.com/google/subcommands"
)

type cagrCmd struct {
	initial float64
	final   float64
	years   float64
	from    string
	to      string
}

func (*cagrCmd) Name() string     { return "cagr" }
func (*cagrCmd) Synopsis() string { return "compound annual growth rate between two values" }
func (*cagrCmd) Usage() string {
	return `wcalc cagr -initial <value> -final <value> (-years <years> | -from <date> -to <date>)

  Computes the annualized growth rate from an initial to a final value.
  Periods shorter than three months are not annualized.
`
}

func (c *cagrCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.initial, "initial", 0, "Initial value.")
	f.Float64Var(&c.final, "final", 0, "Final value.")
	f.Float64Var(&c.years, "years", 0, "Duration in years.")
	f.StringVar(&c.from, "from", "", "Start date (YYYY-MM-DD). Used with -to instead of -years.")
	f.StringVar(&c.to, "to", "", "End date (YYYY-MM-DD).")
}

func (c *cagrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.from == "") != (c.to == "") {
		fmt.Fprintln(os.Stderr, "-from and -to must be used together")
		return subcommands.ExitUsageError
	}
	if c.from != "" && c.years != 0 {
		fmt.Fprintln(os.Stderr, "-years and -from/-to cannot be used together")
		return subcommands.ExitUsageError
	}

	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	var res wealth.CAGRResult
	if c.from != "" {
		from, err := date.Parse(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
		to, err := date.Parse(c.to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		res = wealth.CAGRBetween(c.initial, c.final, from, to)
	} else {
		res = wealth.CalculateCAGR(c.initial, c.final, c.years)
	}

	return emit(renderer.CAGRMarkdown(res, c.initial, c.final, settings.Currency), res)
}
