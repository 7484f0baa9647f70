package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/wealth"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type fmtCmd struct {
	input    string
	selector string
	write    bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats a transactions file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `wcalc fmt -input <transactions.json> [-select <jsonpath>] [-w]

  Validates the transactions, drops and reports the invalid ones, sorts the
  others in replay order (by date, purchases first on the same day) and
  prints them as a canonical JSON array. Use -w to rewrite the input file.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "input", "-", "Transactions JSON file, - for stdin.")
	f.StringVar(&p.selector, "select", "", "jsonpath expression selecting the transactions in the input.")
	f.BoolVar(&p.write, "w", false, "Write the result to the input file instead of stdout.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.write && (p.input == "-" || p.selector != "") {
		fmt.Fprintln(os.Stderr, "-w needs an input file and no -select")
		return subcommands.ExitUsageError
	}

	var txs []wealth.Transaction
	if err := decodeInput(p.input, p.selector, &txs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	sorted, warnings := wealth.Chronological(txs)
	for _, w := range warnings {
		log.Warn().Str("input", p.input).Msg(w)
	}

	var out io.Writer = os.Stdout
	if p.write {
		file, err := os.Create(p.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", p.input, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}
	if err := encodeTransactions(out, sorted); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(warnings) > 0 {
		fmt.Fprintf(os.Stderr, "%d invalid transaction(s) dropped\n", len(warnings))
	}
	return subcommands.ExitSuccess
}

// encodeTransactions writes transactions as a JSON array, one transaction per line.
func encodeTransactions(w io.Writer, txs []wealth.Transaction) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, tx := range txs {
		line, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("encoding transaction %q: %w", tx.ID, err)
		}
		sep := ",\n  "
		if i == 0 {
			sep = "\n  "
		}
		if _, err := fmt.Fprintf(w, "%s%s", sep, line); err != nil {
			return err
		}
	}
	if len(txs) > 0 {
		_, err := io.WriteString(w, "\n")
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
