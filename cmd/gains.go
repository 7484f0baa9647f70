package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	input    string
	selector string
	method   string
	year     int
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized capital gains and their tax" }
func (*gainsCmd) Usage() string {
	return `wcalc gains -input <transactions.json> [-select <jsonpath>] [-method <method>] [-year <year>]

  Replays every instrument of the transactions, and reports the realized
  gains and the tax due per year and per asset type. Tax rates come from the
  settings.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "-", "Transactions JSON file, - for stdin.")
	f.StringVar(&c.selector, "select", "", "jsonpath expression selecting the transactions in the input.")
	f.StringVar(&c.method, "method", "", "Cost basis method (fifo, lifo, average). Defaults to the settings.")
	f.IntVar(&c.year, "year", 0, "Only report the sales of this calendar year.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	method, err := parseMethod(c.method, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cost basis method: %v\n", err)
		return subcommands.ExitUsageError
	}

	var txs []wealth.Transaction
	if err := decodeInput(c.input, c.selector, &txs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := wealth.CalculateCapitalGains(txs, method, settings.Tax)
	if c.year != 0 {
		report = report.Only(c.year)
	}
	return emit(renderer.GainsMarkdown(report, settings.Currency), report)
}
