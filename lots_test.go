package wealth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueOf returns a queue filled with the purchases of txs.
func queueOf(t *testing.T, ticker string, txs []Transaction) *LotQueue {
	t.Helper()
	q := NewLotQueue(ticker)
	for _, tx := range txs {
		_, err := q.Purchase(tx)
		require.NoError(t, err)
	}
	return q
}

func TestLotQueue_Sell(t *testing.T) {
	tests := []struct {
		method        CostBasisMethod
		wantCostBasis Money
		wantGain      Money
		wantRemaining []Money // unit prices of the remaining lots
	}{
		{FIFO, EUR(2000), EUR(1750), []Money{EUR(20), EUR(30)}},
		{LIFO, EUR(4000), EUR(-250), []Money{EUR(10), EUR(20)}},
		{AverageCost, EUR(3000), EUR(750), []Money{EUR(20)}},
	}
	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			q := queueOf(t, "ACME", ladder("ACME"))

			got := q.Sell(Q(150), EUR(25), tt.method)

			if !got.CostBasis.Equal(tt.wantCostBasis) {
				t.Errorf("Sell() cost basis = %v, want %v", got.CostBasis, tt.wantCostBasis)
			}
			if !got.RealizedGain.Equal(tt.wantGain) {
				t.Errorf("Sell() realized gain = %v, want %v", got.RealizedGain, tt.wantGain)
			}
			if !got.Proceeds.Equal(EUR(3750)) {
				t.Errorf("Sell() proceeds = %v, want 3750", got.Proceeds)
			}
			if !got.Quantity.Equal(Q(150)) || !got.Unsold.IsZero() {
				t.Errorf("Sell() quantity = %v unsold = %v, want 150 and 0", got.Quantity, got.Unsold)
			}
			assert.Empty(t, got.Warnings)

			require.Len(t, got.Remaining, len(tt.wantRemaining))
			for i, l := range got.Remaining {
				if !l.UnitPrice.Equal(tt.wantRemaining[i]) {
					t.Errorf("remaining lot %d unit price = %v, want %v", i, l.UnitPrice, tt.wantRemaining[i])
				}
			}
			if !q.Quantity().Equal(Q(150)) {
				t.Errorf("Quantity() = %v, want 150", q.Quantity())
			}
		})
	}
}

func TestLotQueue_SellUnknownMethod(t *testing.T) {
	q := queueOf(t, "ACME", ladder("ACME"))

	got := q.Sell(Q(150), EUR(25), CostBasisMethod(7))

	assert.Equal(t, FIFO, got.Method)
	assert.True(t, got.CostBasis.Equal(EUR(2000)), "cost basis = %v", got.CostBasis)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "unknown cost basis method 7")
}

func TestLotQueue_Conservation(t *testing.T) {
	for _, method := range []CostBasisMethod{FIFO, LIFO, AverageCost} {
		t.Run(method.String(), func(t *testing.T) {
			q := queueOf(t, "ACME", []Transaction{
				buy("1", "ACME", "2024-01-02", 12.5, 125),
				buy("2", "ACME", "2024-02-02", 7.25, 80),
				buy("3", "ACME", "2024-03-02", 33, 400),
			})
			purchased := Q(52.75)

			var sold Quantity
			for _, qty := range []float64{3.3, 10, 0.45, 20} {
				res := q.Sell(Q(qty), EUR(11), method)
				sold = sold.Add(res.Quantity)
				assert.True(t, res.Unsold.IsZero(), "unexpected unsold quantity %v", res.Unsold)
			}

			var remaining Quantity
			for _, l := range q.Lots() {
				remaining = remaining.Add(l.Quantity)
				assert.True(t, l.Quantity.IsPositive(), "lot %s has quantity %v", l.ID, l.Quantity)
			}
			if got := remaining.Add(sold); !got.Equal(purchased) {
				t.Errorf("remaining + sold = %v, want %v", got, purchased)
			}
		})
	}
}

func TestLotQueue_OrderingLaw(t *testing.T) {
	for _, qty := range []float64{1, 50, 100, 150, 299} {
		basis := func(method CostBasisMethod) Money {
			return queueOf(t, "ACME", ladder("ACME")).Sell(Q(qty), EUR(15), method).CostBasis
		}
		fifo, avg, lifo := basis(FIFO), basis(AverageCost), basis(LIFO)
		if fifo.GreaterThan(avg) || avg.GreaterThan(lifo) {
			t.Errorf("selling %v: fifo %v <= average %v <= lifo %v does not hold", qty, fifo, avg, lifo)
		}
	}
}

func TestLotQueue_Oversell(t *testing.T) {
	q := queueOf(t, "ACME", []Transaction{buy("1", "ACME", "2024-01-02", 10, 100)})

	res := q.Sell(Q(15), EUR(12), FIFO)

	assert.True(t, res.Quantity.Equal(Q(10)), "quantity = %v", res.Quantity)
	assert.True(t, res.Unsold.Equal(Q(5)), "unsold = %v", res.Unsold)
	assert.True(t, res.RealizedGain.Equal(EUR(20)), "gain = %v", res.RealizedGain)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "5 units unsold")
	assert.Empty(t, q.Lots())

	// Nothing left: the whole sale is unsold.
	res = q.Sell(Q(1), EUR(12), LIFO)
	assert.True(t, res.Quantity.IsZero())
	assert.True(t, res.Unsold.Equal(Q(1)))
	assert.Len(t, res.Warnings, 1)
}

func TestLotQueue_LIFOTies(t *testing.T) {
	q := queueOf(t, "ACME", []Transaction{
		buy("early", "ACME", "2024-01-02", 10, 100),
		buy("first", "ACME", "2024-03-02", 10, 200),
		buy("second", "ACME", "2024-03-02", 10, 300),
	})

	res := q.Sell(Q(25), EUR(40), LIFO)

	var got []string
	for _, c := range res.Consumed {
		got = append(got, c.LotID)
	}
	assert.Equal(t, []string{"second", "first", "early"}, got)
	require.Len(t, res.Remaining, 1)
	assert.Equal(t, "early", res.Remaining[0].ID)
	assert.True(t, res.Remaining[0].Quantity.Equal(Q(5)))
}

func TestLotQueue_FIFOUsesDatesNotInsertion(t *testing.T) {
	q := queueOf(t, "ACME", []Transaction{
		buy("late", "ACME", "2024-06-01", 10, 300),
		buy("early", "ACME", "2024-01-01", 10, 100),
	})

	res := q.Sell(Q(10), EUR(20), FIFO)

	require.Len(t, res.Consumed, 1)
	assert.Equal(t, "early", res.Consumed[0].LotID)
	assert.True(t, res.CostBasis.Equal(EUR(100)))
}

func TestLotQueue_AverageCostCollapse(t *testing.T) {
	q := queueOf(t, "ACME", []Transaction{
		buy("1", "ACME", "2024-02-01", 10, 100),
		buy("2", "ACME", "2024-01-01", 30, 600),
	})

	res := q.Sell(Q(20), EUR(20), AverageCost)

	require.Len(t, res.Remaining, 1)
	l := res.Remaining[0]
	assert.Equal(t, "2024-01-01", l.Date.String(), "synthetic lot is dated at the earliest lot")
	assert.True(t, l.UnitPrice.Equal(EUR(17.5)), "unit price = %v", l.UnitPrice)
	assert.True(t, l.Quantity.Equal(Q(20)))
	assert.True(t, res.CostBasis.Equal(EUR(350)), "cost basis = %v", res.CostBasis)

	// Collapsing is deterministic.
	again := queueOf(t, "ACME", []Transaction{
		buy("1", "ACME", "2024-02-01", 10, 100),
		buy("2", "ACME", "2024-01-01", 30, 600),
	}).Sell(Q(20), EUR(20), AverageCost)
	assert.Equal(t, l.ID, again.Remaining[0].ID)
}

func TestLotQueue_Purchase(t *testing.T) {
	q := NewLotQueue("ACME")

	tx := buy("", "ACME", "2024-01-02", 4, 100)
	tx.Commissions = EUR(2)
	l, err := q.Purchase(tx)
	require.NoError(t, err)
	assert.True(t, l.UnitPrice.Equal(EUR(25)))
	assert.True(t, l.TotalCost.Equal(EUR(102)), "total cost = %v", l.TotalCost)
	assert.NotEmpty(t, l.ID, "generated lot id")

	explicit := buy("x", "ACME", "2024-01-03", 4, 100)
	explicit.UnitPrice = EUR(24)
	l, err = q.Purchase(explicit)
	require.NoError(t, err)
	assert.True(t, l.UnitPrice.Equal(EUR(24)))

	_, err = q.Purchase(buy("y", "OTHER", "2024-01-03", 1, 1))
	assert.Error(t, err)
	_, err = q.Purchase(buy("z", "ACME", "2024-02-30", 1, 1))
	assert.Error(t, err)
	_, err = q.Purchase(sell("s", "ACME", "2024-02-03", 1, 1))
	assert.Error(t, err)
	assert.Len(t, q.Lots(), 2)
}

func TestLotQueue_CommissionsSplit(t *testing.T) {
	tx := buy("1", "ACME", "2024-01-02", 10, 100)
	tx.Commissions = EUR(5)
	q := queueOf(t, "ACME", []Transaction{tx})

	res := q.Sell(Q(4), EUR(12), FIFO)

	assert.True(t, res.Commissions.Equal(EUR(2)), "released commissions = %v", res.Commissions)
	assert.True(t, q.Commissions().Equal(EUR(3)), "remaining commissions = %v", q.Commissions())
	assert.True(t, q.Lots()[0].TotalCost.Equal(EUR(63)), "remaining total cost = %v", q.Lots()[0].TotalCost)
}

func TestLotQueue_SellNonPositive(t *testing.T) {
	q := queueOf(t, "ACME", ladder("ACME"))
	res := q.Sell(Q(0), EUR(10), FIFO)
	assert.True(t, res.Quantity.IsZero())
	assert.Len(t, res.Warnings, 1)
	assert.Len(t, q.Lots(), 3)
}
