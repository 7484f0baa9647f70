package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/date"
	"github.com/etnz/wealth/renderer"
	"github.com/google/subcommands"
)

type costBasisCmd struct {
	input    string
	selector string
	ticker   string
	method   string
	price    optionalFloat
}

func (*costBasisCmd) Name() string     { return "costbasis" }
func (*costBasisCmd) Synopsis() string { return "cost basis and gains of one instrument" }
func (*costBasisCmd) Usage() string {
	return `wcalc costbasis -input <transactions.json> [-select <jsonpath>] [-ticker <ticker>] [-method <method>] [-price <price>]

  Replays the purchases and sales of an instrument and reports its open lots,
  cost basis, and realized and unrealized gains at the current price.
  Without -ticker, the instrument of the first transaction is used.
`
}

func (c *costBasisCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "-", "Transactions JSON file, - for stdin.")
	f.StringVar(&c.selector, "select", "", "jsonpath expression selecting the transactions in the input.")
	f.StringVar(&c.ticker, "ticker", "", "Ticker or ISIN of the instrument.")
	f.StringVar(&c.method, "method", "", "Cost basis method (fifo, lifo, average). Defaults to the settings.")
	f.Var(&c.price, "price", "Current unit price. Defaults to the last transaction price.")
}

func (c *costBasisCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if c.ticker != "" {
		txs = byInstrument(txs, c.ticker)
		if len(txs) == 0 {
			fmt.Fprintf(os.Stderr, "No transaction for %q\n", c.ticker)
			return subcommands.ExitFailure
		}
	}

	price := lastPrice(txs)
	if c.price.set {
		price = wealth.M(c.price.value)
	}

	res := wealth.CalculateCostBasis(txs, method, price)
	return emit(renderer.CostBasisMarkdown(res, settings.Currency), res)
}

// parseMethod parses a cost basis method, defaulting to the settings.
func parseMethod(s string, settings wealth.Settings) (wealth.CostBasisMethod, error) {
	if s == "" {
		return settings.CostBasisMethod, nil
	}
	return wealth.ParseCostBasisMethod(s)
}

// byInstrument keeps the transactions of an instrument, matched by ticker or ISIN.
func byInstrument(txs []wealth.Transaction, key string) []wealth.Transaction {
	var kept []wealth.Transaction
	for _, tx := range txs {
		if strings.EqualFold(strings.TrimSpace(tx.Ticker), key) || strings.EqualFold(tx.ISIN, key) {
			kept = append(kept, tx)
		}
	}
	return kept
}

// lastPrice returns the price of the latest valid transaction, the last one
// in input order for ties.
func lastPrice(txs []wealth.Transaction) wealth.Money {
	var last date.Date
	var price wealth.Money
	for _, tx := range txs {
		on, err := date.Parse(tx.Date)
		if err != nil || !tx.Quantity.IsPositive() {
			continue
		}
		if !on.Before(last) {
			last, price = on, tx.Price()
		}
	}
	return price
}
