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

type emergencyCmd struct {
	input    string
	selector string
	cash     optionalFloat
	expenses optionalFloat
}

func (*emergencyCmd) Name() string     { return "emergency" }
func (*emergencyCmd) Synopsis() string { return "months of expenses covered by cash" }
func (*emergencyCmd) Usage() string {
	return `wcalc emergency (-cash <amount> | -input <allocation.json> [-select <jsonpath>]) [-expenses <amount>]

  Rates the emergency fund: how many months of expenses the cash covers,
  against the minimum and target months of the settings. With -input, the
  cash is the cash bucket of the allocation.
`
}

func (c *emergencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "", "Allocation JSON file, - for stdin.")
	f.StringVar(&c.selector, "select", "", "jsonpath expression selecting the allocation in the input.")
	f.Var(&c.cash, "cash", "Cash available.")
	f.Var(&c.expenses, "expenses", "Monthly expenses. Defaults to the settings.")
}

func (c *emergencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.cash.set == (c.input != "") {
		fmt.Fprintln(os.Stderr, "exactly one of -cash and -input is required")
		return subcommands.ExitUsageError
	}

	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	cash := c.cash.value
	if c.input != "" {
		var allocation wealth.Allocation
		if err := decodeInput(c.input, c.selector, &allocation); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		cash = allocation.Bucket(wealth.CashBucket)
	}

	res := wealth.EmergencyFund(cash, c.expenses.or(settings.Withdrawal.MonthlyExpenses), settings.EmergencyFund)
	return emit(renderer.EmergencyMarkdown(res, settings.Currency), res)
}
