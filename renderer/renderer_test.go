package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/wealth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// table is a markdown table, cells as plain text.
type table struct {
	header []string
	rows   [][]string
}

// row returns the first row whose first cell is key.
func (t table) row(key string) []string {
	for _, r := range t.rows {
		if len(r) > 0 && r[0] == key {
			return r
		}
	}
	return nil
}

// document is the structure of a rendered markdown report.
type document struct {
	headings []string
	tables   []table
	items    []string
}

func (d document) hasHeading(h string) bool {
	for _, x := range d.headings {
		if x == h {
			return true
		}
	}
	return false
}

// parseMarkdown parses md with the GFM table extension.
func parseMarkdown(t *testing.T, md string) document {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plain(n, src))
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			doc.items = append(doc.items, plain(n, src))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var tb table
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				var cells []string
				for cell := c.FirstChild(); cell != nil; cell = cell.NextSibling() {
					cells = append(cells, plain(cell, src))
				}
				if _, ok := c.(*east.TableHeader); ok {
					tb.header = cells
				} else {
					tb.rows = append(tb.rows, cells)
				}
			}
			doc.tables = append(doc.tables, tb)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return doc
}

// plain returns the text of n without markup.
func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// ladder buys 100 units at 10, 20 and 30 then sells 150 units at 40.
func ladder() []wealth.Transaction {
	buy := func(id, on string, price float64) wealth.Transaction {
		return wealth.Transaction{ID: id, Ticker: "ACME", Date: on, Type: wealth.Purchase, Quantity: wealth.Q(100), Amount: wealth.M(100 * price)}
	}
	return []wealth.Transaction{
		buy("ACME-1", "2024-01-15", 10),
		buy("ACME-2", "2024-02-15", 20),
		buy("ACME-3", "2024-03-15", 30),
		{ID: "ACME-4", Ticker: "ACME", Date: "2024-04-15", Type: wealth.Sale, Quantity: wealth.Q(150), Amount: wealth.M(6000), UnitPrice: wealth.M(40)},
	}
}

func TestCostBasisMarkdown(t *testing.T) {
	res := wealth.CalculateCostBasis(ladder(), wealth.FIFO, wealth.M(40))
	doc := parseMarkdown(t, CostBasisMarkdown(res, "EUR"))

	assert.Equal(t, []string{"Cost Basis of ACME", "Open Lots", "Sales"}, doc.headings)
	require.Len(t, doc.tables, 3)

	summary := doc.tables[0]
	assert.Equal(t, []string{"Remaining Quantity", "150"}, summary.row("Remaining Quantity"))
	assert.Equal(t, []string{"Cost Basis", "€4,000.00"}, summary.row("Cost Basis"))
	assert.Equal(t, []string{"Realized Gain", "+€4,000.00"}, summary.row("Realized Gain"))
	assert.Equal(t, []string{"Unrealized Gain", "+€2,000.00"}, summary.row("Unrealized Gain"))

	lots := doc.tables[1]
	assert.Equal(t, []string{"Lot", "Date", "Quantity", "Unit Price", "Total Cost"}, lots.header)
	assert.Equal(t, [][]string{
		{"ACME-2", "2024-02-15", "50", "€20.00", "€1,000.00"},
		{"ACME-3", "2024-03-15", "100", "€30.00", "€3,000.00"},
	}, lots.rows)

	sales := doc.tables[2]
	assert.Equal(t, [][]string{
		{"2024-04-15", "150", "€40.00", "€6,000.00", "€2,000.00", "+€4,000.00"},
	}, sales.rows)
}

func TestGainsMarkdown(t *testing.T) {
	report := wealth.CalculateCapitalGains(ladder(), wealth.FIFO, wealth.DefaultTaxRates())
	doc := parseMarkdown(t, GainsMarkdown(report, "EUR"))

	assert.Equal(t, []string{"Capital Gains Report", "Gains per Year", "Gains per Asset Type", "Taxable Events"}, doc.headings)
	require.Len(t, doc.tables, 3)

	years := doc.tables[0]
	assert.Equal(t, []string{"2024", "1", "+€4,000.00", "-", "€1,040.00"}, years.row("2024"))
	assert.Equal(t, []string{"Total", "", "+€4,000.00", "", "€1,040.00"}, years.row("Total"))

	types := doc.tables[1]
	assert.Equal(t, []string{"stock", "26.00%", "1", "+€4,000.00", "€1,040.00"}, types.row("stock"))

	events := doc.tables[2]
	require.Len(t, events.rows, 1)
	assert.Equal(t, "ACME", events.rows[0][1])
}

func TestGainsMarkdown_Empty(t *testing.T) {
	report := wealth.CalculateCapitalGains(nil, wealth.FIFO, wealth.DefaultTaxRates())
	doc := parseMarkdown(t, GainsMarkdown(report, "EUR"))

	assert.Equal(t, []string{"Capital Gains Report", "Gains per Year"}, doc.headings)
	require.Len(t, doc.tables, 1)
	assert.Equal(t, [][]string{{"Total", "", "-", "", "€0.00"}}, doc.tables[0].rows)
}

func TestCAGRMarkdown(t *testing.T) {
	res := wealth.CalculateCAGR(10000, 15000, 5)
	doc := parseMarkdown(t, CAGRMarkdown(res, 10000, 15000, "EUR"))

	require.Len(t, doc.tables, 1)
	tb := doc.tables[0]
	assert.Equal(t, []string{"Initial Value", "€10,000.00"}, tb.row("Initial Value"))
	assert.Equal(t, []string{"Method", "compound"}, tb.row("Method"))
	assert.Equal(t, []string{"Rate", "+8.45%"}, tb.row("Rate"))
	assert.False(t, doc.hasHeading("Warnings"))
}

func TestSWRMarkdown(t *testing.T) {
	in := wealth.SWRInput{
		Allocation:      wealth.Allocation{wealth.Cash: 100000, wealth.Stocks: 300000, wealth.RealEstate: 200000},
		Rate:            4,
		InflationRate:   2,
		MonthlyExpenses: 1000,
	}
	res := wealth.CalculateSWR(in, wealth.DefaultSWRParams())
	doc := parseMarkdown(t, SWRMarkdown(res, "USD"))

	require.Len(t, doc.tables, 2)
	assert.Equal(t, []string{"Profile", "aggressive"}, doc.tables[0].row("Profile"))
	assert.Equal(t, []string{"Rate", "4.50%"}, doc.tables[0].row("Rate"))
	assert.Equal(t, []string{"Annual", "$18,000.00"}, doc.tables[1].row("Annual"))
	assert.Equal(t, []string{"Monthly", "$1,500.00"}, doc.tables[1].row("Monthly"))

	assert.True(t, doc.hasHeading("Warnings"))
	assert.Len(t, doc.items, len(res.Warnings))
}

func TestAdvancedSWRMarkdown(t *testing.T) {
	in := wealth.AdvancedSWRInput{
		Allocation: wealth.Allocation{wealth.Cash: 500000},
		BaseRate:   4,
	}
	res := wealth.CalculateAdvancedSWR(in, wealth.DefaultSWRParams())
	doc := parseMarkdown(t, AdvancedSWRMarkdown(res, "EUR"))

	require.Len(t, doc.tables, 2)
	steps := doc.tables[0]
	assert.Equal(t, []string{"Step", "Rate"}, steps.header)
	assert.Len(t, steps.rows, 4)
	assert.Equal(t, res.FinalRate.String(), steps.row("Final Rate")[1])
	assert.Nil(t, doc.tables[1].row("Asset to Expense Ratio"), "no expenses, no ratio")
}

func TestRiskMarkdown(t *testing.T) {
	m := wealth.AnalyzeRisk(wealth.Allocation{wealth.Cash: 5000, wealth.Stocks: 5000}, 0.02, wealth.Normal)
	doc := parseMarkdown(t, RiskMarkdown(m, "EUR"))

	assert.Equal(t, []string{"Portfolio Risk (normal regime)", "Allocation"}, doc.headings)
	require.Len(t, doc.tables, 2)
	assert.Equal(t, []string{"Total", "€10,000.00"}, doc.tables[0].row("Total"))
	assert.Equal(t, [][]string{
		{"cash", "50.00%", "0.50%"},
		{"stocks", "50.00%", "18.00%"},
	}, doc.tables[1].rows)
}

func TestEmergencyMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		cash     float64
		expenses float64
		status   string
		warnings bool
	}{
		{"optimal", 20000, 2000, "optimal", false},
		{"insufficient", 2000, 2000, "insufficient", true},
		{"no expenses", 2000, 0, "optimal", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := wealth.EmergencyFund(tt.cash, tt.expenses, wealth.DefaultEmergencyFundSettings())
			doc := parseMarkdown(t, EmergencyMarkdown(res, "EUR"))

			require.Len(t, doc.tables, 1)
			assert.Equal(t, []string{"Status", tt.status}, doc.tables[0].row("Status"))
			assert.Equal(t, tt.warnings, doc.hasHeading("Warnings"))
		})
	}
}

func TestWarnings_Escaped(t *testing.T) {
	r := newReport("")
	r.warnings([]string{"a | b"})
	doc := parseMarkdown(t, r.String())
	assert.Equal(t, []string{"a | b"}, doc.items)
}
