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

type swrCmd struct {
	input     string
	selector  string
	advanced  bool
	rate      optionalFloat
	inflation optionalFloat
	expenses  optionalFloat
}

func (*swrCmd) Name() string     { return "swr" }
func (*swrCmd) Synopsis() string { return "safe withdrawal rate of a portfolio" }
func (*swrCmd) Usage() string {
	return `wcalc swr -input <allocation.json> [-select <jsonpath>] [-advanced] [-rate <percent>] [-inflation <percent>] [-expenses <amount>]

  Computes what can be withdrawn every year from the liquid part of a
  portfolio. The input is a JSON object of amounts per asset class, like
  {"cash": 20000, "stocks": 150000, "realEstate": 300000}.

  The basic calculation nudges the rate by the portfolio profile. The
  advanced one adjusts it for inflation and risk, and rates the confidence
  in the result. Rates, inflation and expenses default to the settings.
`
}

func (c *swrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "-", "Allocation JSON file, - for stdin.")
	f.StringVar(&c.selector, "select", "", "jsonpath expression selecting the allocation in the input.")
	f.BoolVar(&c.advanced, "advanced", false, "Adjust the rate for inflation and risk.")
	f.Var(&c.rate, "rate", "Withdrawal rate, in percent.")
	f.Var(&c.inflation, "inflation", "Inflation rate, in percent.")
	f.Var(&c.expenses, "expenses", "Monthly expenses.")
}

func (c *swrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	var allocation wealth.Allocation
	if err := decodeInput(c.input, c.selector, &allocation); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rate := wealth.Percent(c.rate.or(float64(settings.Withdrawal.Rate)))
	inflation := wealth.Percent(c.inflation.or(float64(settings.Withdrawal.InflationRate)))
	expenses := c.expenses.or(settings.Withdrawal.MonthlyExpenses)

	if c.advanced {
		res := wealth.CalculateAdvancedSWR(wealth.AdvancedSWRInput{
			Allocation:      allocation,
			BaseRate:        rate,
			InflationRate:   inflation,
			MonthlyExpenses: expenses,
		}, settings.SWR)
		return emit(renderer.AdvancedSWRMarkdown(res, settings.Currency), res)
	}

	res := wealth.CalculateSWR(wealth.SWRInput{
		Allocation:      allocation,
		Rate:            rate,
		InflationRate:   inflation,
		MonthlyExpenses: expenses,
	}, settings.SWR)
	return emit(renderer.SWRMarkdown(res, settings.Currency), res)
}
