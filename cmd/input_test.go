package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/wealth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfolioDoc = `{
	"owner": "sam",
	"allocation": {"cash": 10000, "stocks": 90000},
	"transactions": [
		{"id": "1", "ticker": "ACME", "date": "2024-01-15", "transactionType": "purchase", "quantity": 10, "amount": 1000},
		{"id": "2", "ticker": "BOND", "date": "2024-01-16", "transactionType": "purchase", "quantity": 5, "amount": 500},
		{"id": "3", "ticker": "ACME", "date": "2024-02-15", "transactionType": "sale", "quantity": 4, "amount": 480}
	]
}`

func TestDecodeJSON_Select(t *testing.T) {
	var a wealth.Allocation
	require.NoError(t, decodeJSON([]byte(portfolioDoc), "$.allocation", &a))
	assert.Equal(t, wealth.Allocation{wealth.Cash: 10000, wealth.Stocks: 90000}, a)

	var txs []wealth.Transaction
	require.NoError(t, decodeJSON([]byte(portfolioDoc), "$.transactions", &txs))
	require.Len(t, txs, 3)
	assert.Equal(t, wealth.Sale, txs[2].Type)
	assert.True(t, txs[2].Price().Equal(wealth.M(120)))
}

func TestDecodeJSON_Errors(t *testing.T) {
	var a wealth.Allocation
	assert.Error(t, decodeJSON([]byte(portfolioDoc), "", &a), "owner is not an asset class")
	assert.Error(t, decodeJSON([]byte(`{"cash": 1`), "", &a))
	assert.Error(t, decodeJSON([]byte(portfolioDoc), "$.missing", &a))

	var txs []wealth.Transaction
	assert.Error(t, decodeJSON([]byte(`[{"ticker": "ACME", "fee": 1}]`), "", &txs))
}

func TestDecodeInput(t *testing.T) {
	name := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(name, []byte(portfolioDoc), 0644))

	var a wealth.Allocation
	require.NoError(t, decodeInput(name, "$.allocation", &a))
	assert.Equal(t, 100000.0, a.Total())

	assert.Error(t, decodeInput(filepath.Join(t.TempDir(), "missing.json"), "", &a))
}

func TestOptionalFloat(t *testing.T) {
	var o optionalFloat
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&o, "rate", "")

	assert.Equal(t, 4.0, o.or(4))
	require.NoError(t, fs.Parse([]string{"-rate", "0"}))
	assert.True(t, o.set)
	assert.Equal(t, 0.0, o.or(4), "an explicit zero wins over the fallback")
	assert.Equal(t, "0", o.String())

	assert.Error(t, fs.Parse([]string{"-rate", "four"}))
}

func TestByInstrument(t *testing.T) {
	var txs []wealth.Transaction
	require.NoError(t, decodeJSON([]byte(portfolioDoc), "$.transactions", &txs))

	got := byInstrument(txs, "acme")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.True(t, lastPrice(txs).Equal(wealth.M(120)), "last price = %v", lastPrice(txs))
	assert.True(t, lastPrice(nil).IsZero())
}

func TestEncodeTransactions(t *testing.T) {
	var txs []wealth.Transaction
	require.NoError(t, decodeJSON([]byte(portfolioDoc), "$.transactions", &txs))

	var b strings.Builder
	require.NoError(t, encodeTransactions(&b, txs[:2]))
	lines := strings.Split(b.String(), "\n")
	require.Len(t, lines, 5, "%q", b.String())
	assert.Equal(t, "[", lines[0])
	assert.Equal(t, "]", lines[3])

	var back []wealth.Transaction
	require.NoError(t, decodeJSON([]byte(b.String()), "", &back))
	assert.Equal(t, "BOND", back[1].Ticker)
	assert.True(t, back[1].Amount.Equal(wealth.M(500)))

	b.Reset()
	require.NoError(t, encodeTransactions(&b, nil))
	assert.Equal(t, "[]\n", b.String())
}
