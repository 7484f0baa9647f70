package wealth

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/etnz/wealth/date"
)

// CostBasisResult summarizes the holding of one instrument after replaying its
// transactions.
type CostBasisResult struct {
	Instrument         string          `json:"instrument"`
	Method             CostBasisMethod `json:"method"`
	CostBasis          Money           `json:"costBasis"` // cost of the remaining quantity, commissions excluded
	UnitCost           Money           `json:"unitCost"`
	RealizedGainLoss   Money           `json:"realizedGainLoss"`
	UnrealizedGainLoss Money           `json:"unrealizedGainLoss"`
	CurrentValue       Money           `json:"currentValue"`
	RemainingQuantity  Quantity        `json:"remainingQuantity"`
	TotalCommissions   Money           `json:"totalCommissions"` // purchase and sale commissions
	Lots               []Lot           `json:"lots"`
	Sales              []SaleEvent     `json:"sales"`
	Warnings           []string        `json:"warnings,omitempty"`
}

// SaleEvent is a sale transaction and what it consumed.
type SaleEvent struct {
	Transaction Transaction `json:"transaction"`
	Date        date.Date   `json:"date"`
	SaleResult
}

// datedTransaction is a transaction whose date is known to be valid.
type datedTransaction struct {
	Transaction
	on    date.Date
	index int
}

// chronological returns the valid transactions sorted by date, purchases
// before sales on the same day, then in input order. Invalid transactions are
// reported as warnings.
func chronological(txs []Transaction) ([]datedTransaction, []string) {
	var (
		valid    = make([]datedTransaction, 0, len(txs))
		warnings []string
	)
	for i, tx := range txs {
		on, err := tx.check()
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		valid = append(valid, datedTransaction{Transaction: tx, on: on, index: i})
	}
	slices.SortStableFunc(valid, func(a, b datedTransaction) int {
		return cmp.Or(
			a.on.Compare(b.on),
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.index, b.index),
		)
	})
	return valid, warnings
}

// Chronological returns the valid transactions in the order they are
// replayed, with their date in canonical form. Invalid transactions are left
// out and reported as warnings.
func Chronological(txs []Transaction) ([]Transaction, []string) {
	sorted, warnings := chronological(txs)
	out := make([]Transaction, len(sorted))
	for i, tx := range sorted {
		out[i] = tx.Transaction
		out[i].Date = tx.on.String()
	}
	return out, warnings
}

// replay runs the transactions of one instrument through a fresh LotQueue.
// Transactions must be chronological and belong to instrument.
func replay(instrument string, txs []datedTransaction, method CostBasisMethod) (*LotQueue, []SaleEvent, []string) {
	var (
		queue    = NewLotQueue(instrument)
		sales    []SaleEvent
		warnings []string
	)
	for _, tx := range txs {
		switch tx.Type {
		case Purchase:
			if _, err := queue.Purchase(tx.Transaction); err != nil {
				warnings = append(warnings, err.Error())
			}
		case Sale:
			res := queue.Sell(tx.Quantity, tx.Price(), method)
			warnings = append(warnings, res.Warnings...)
			sales = append(sales, SaleEvent{Transaction: tx.Transaction, Date: tx.on, SaleResult: res})
		}
	}
	return queue, sales, warnings
}

// CalculateCostBasis replays the transactions of a single instrument and
// reports its cost basis and gains valued at currentPrice.
// Transactions of any other instrument than the first valid one are excluded
// with a warning.
func CalculateCostBasis(txs []Transaction, method CostBasisMethod, currentPrice Money) CostBasisResult {
	fallback := CostBasisResult{Method: method}
	out := Guard("cost basis", fallback, func() CostBasisResult {
		return costBasis(txs, method, currentPrice)
	})
	if !out.OK() {
		out.Value.Warnings = append(out.Value.Warnings, out.Err.Error())
	}
	return out.Value
}

func costBasis(txs []Transaction, method CostBasisMethod, currentPrice Money) CostBasisResult {
	valid, warnings := chronological(txs)
	res := CostBasisResult{Method: method}
	if len(valid) == 0 {
		res.Warnings = append(warnings, "no valid transaction")
		return res
	}

	// The first transaction in input order names the instrument.
	first := slices.MinFunc(valid, func(a, b datedTransaction) int { return cmp.Compare(a.index, b.index) })
	res.Instrument = first.Instrument()
	mine := valid[:0:0]
	for _, tx := range valid {
		if tx.Instrument() != res.Instrument {
			warnings = append(warnings, fmt.Sprintf("%s excluded: instrument is not %s", tx.label(), res.Instrument))
			continue
		}
		mine = append(mine, tx)
		res.TotalCommissions = res.TotalCommissions.Add(tx.Commissions)
	}

	queue, sales, replayWarnings := replay(res.Instrument, mine, method)
	for _, s := range sales {
		res.RealizedGainLoss = res.RealizedGainLoss.Add(s.RealizedGain)
	}
	res.Sales = sales
	res.Lots = queue.Lots()
	res.RemainingQuantity = queue.Quantity()
	res.CostBasis = queue.CostBasis()
	res.UnitCost = res.CostBasis.Div(res.RemainingQuantity)
	res.CurrentValue = currentPrice.Mul(res.RemainingQuantity)
	res.UnrealizedGainLoss = res.CurrentValue.Sub(res.CostBasis)
	if currentPrice.IsNegative() {
		warnings = append(warnings, fmt.Sprintf("%s: negative current price %s", res.Instrument, currentPrice))
	}
	res.Warnings = append(warnings, replayWarnings...)
	return res
}
