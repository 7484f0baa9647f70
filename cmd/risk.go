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

type riskCmd struct {
	input    string
	selector string
	regime   string
	riskFree optionalFloat
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "volatility, Sharpe ratio and risk score of an allocation" }
func (*riskCmd) Usage() string {
	return `wcalc risk -input <allocation.json> [-select <jsonpath>] [-regime <normal|stress|crisis>] [-risk-free <fraction>]

  Estimates the expected return, volatility, Sharpe ratio and risk score of
  an allocation under a market regime.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "-", "Allocation JSON file, - for stdin.")
	f.StringVar(&c.selector, "select", "", "jsonpath expression selecting the allocation in the input.")
	f.StringVar(&c.regime, "regime", "", "Market regime (normal, stress, crisis). Defaults to the settings.")
	f.Var(&c.riskFree, "risk-free", "Risk free rate, as a fraction. Defaults to the settings.")
}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	regime := settings.Risk.Regime
	if c.regime != "" {
		if regime, err = wealth.ParseRegime(c.regime); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing regime: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var allocation wealth.Allocation
	if err := decodeInput(c.input, c.selector, &allocation); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	m := wealth.AnalyzeRisk(allocation, c.riskFree.or(settings.Risk.RiskFreeRate), regime)
	return emit(renderer.RiskMarkdown(m, settings.Currency), m)
}
