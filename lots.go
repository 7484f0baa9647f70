package wealth

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/wealth/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// lotNamespace is the UUID namespace of generated lot IDs.
var lotNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("github.com/etnz/wealth/lot"))

// Lot is a purchase tranche of an instrument, used for cost basis calculations.
type Lot struct {
	ID          string    `json:"id"`
	Date        date.Date `json:"date"`
	Quantity    Quantity  `json:"quantity"`
	UnitPrice   Money     `json:"unitPrice"`
	TotalCost   Money     `json:"totalCost"` // Quantity * UnitPrice + Commissions
	Commissions Money     `json:"commissions"`
}

// Cost returns the cost of the lot without commissions.
func (l Lot) Cost() Money { return l.UnitPrice.Mul(l.Quantity) }

// take returns the part of the lot covering quantity q, and what is left.
// Commissions are split pro rata.
func (l Lot) take(q Quantity) (taken, left Lot) {
	if !q.LessThan(l.Quantity) {
		return l, Lot{ID: l.ID, Date: l.Date, UnitPrice: l.UnitPrice}
	}
	share := l.Commissions.Mul(q).Div(l.Quantity)

	taken, left = l, l
	taken.Quantity, taken.Commissions = q, share
	taken.TotalCost = taken.Cost().Add(share)
	left.Quantity, left.Commissions = l.Quantity.Sub(q), l.Commissions.Sub(share)
	left.TotalCost = left.Cost().Add(left.Commissions)
	return taken, left
}

// LotConsumption records the part of a lot consumed by a sale.
type LotConsumption struct {
	LotID       string    `json:"lotId"`
	LotDate     date.Date `json:"lotDate"`
	Quantity    Quantity  `json:"quantity"`
	UnitPrice   Money     `json:"unitPrice"`
	CostBasis   Money     `json:"costBasis"`
	Commissions Money     `json:"commissions"` // purchase commissions released with the consumed units
	Gain        Money     `json:"gain"`
}

// SaleResult is the outcome of selling units out of a LotQueue.
type SaleResult struct {
	Method       CostBasisMethod  `json:"method"`
	Price        Money            `json:"price"`
	Quantity     Quantity         `json:"quantity"` // quantity matched against lots
	Unsold       Quantity         `json:"unsold"`   // quantity left unmatched for lack of lots
	Proceeds     Money            `json:"proceeds"`
	CostBasis    Money            `json:"costBasis"`
	RealizedGain Money            `json:"realizedGain"`
	Commissions  Money            `json:"commissions"`
	Consumed     []LotConsumption `json:"consumed"`
	Remaining    []Lot            `json:"remaining"`
	Warnings     []string         `json:"warnings,omitempty"`
}

// LotQueue holds the open lots of a single instrument in insertion order.
// The zero value is not usable, see NewLotQueue.
type LotQueue struct {
	instrument string
	lots       []Lot
	purchases  int
}

// NewLotQueue returns an empty queue for an instrument.
func NewLotQueue(instrument string) *LotQueue {
	return &LotQueue{instrument: instrument}
}

// Instrument returns the key of the instrument the queue tracks.
func (q *LotQueue) Instrument() string { return q.instrument }

// Lots returns a copy of the open lots in insertion order.
func (q *LotQueue) Lots() []Lot { return slices.Clone(q.lots) }

// Quantity returns the total open quantity.
func (q *LotQueue) Quantity() Quantity {
	var total Quantity
	for _, l := range q.lots {
		total = total.Add(l.Quantity)
	}
	return total
}

// CostBasis returns the cost of the open lots, commissions excluded.
func (q *LotQueue) CostBasis() Money {
	var total Money
	for _, l := range q.lots {
		total = total.Add(l.Cost())
	}
	return total
}

// Commissions returns the purchase commissions still attached to open lots.
func (q *LotQueue) Commissions() Money {
	var total Money
	for _, l := range q.lots {
		total = total.Add(l.Commissions)
	}
	return total
}

// Purchase appends a lot for a purchase transaction.
func (q *LotQueue) Purchase(tx Transaction) (Lot, error) {
	on, err := tx.check()
	if err != nil {
		return Lot{}, err
	}
	if tx.Type != Purchase {
		return Lot{}, fmt.Errorf("%s is not a purchase", tx.label())
	}
	if tx.Instrument() != q.instrument {
		return Lot{}, fmt.Errorf("%s does not trade %s", tx.label(), q.instrument)
	}
	q.purchases++
	id := tx.ID
	if id == "" {
		id = uuid.NewSHA1(lotNamespace, fmt.Appendf(nil, "%s|%s|%d", q.instrument, on, q.purchases)).String()
	}
	l := Lot{
		ID:          id,
		Date:        on,
		Quantity:    tx.Quantity,
		UnitPrice:   tx.Price(),
		Commissions: tx.Commissions,
	}
	l.TotalCost = l.Cost().Add(l.Commissions)
	q.lots = append(q.lots, l)
	return l, nil
}

// Sell consumes quantity units at price out of the open lots, in the order
// defined by method. Selling more than the open quantity is not an error: the
// remainder is reported in Unsold and as a warning. An unknown method sells
// with FIFO and warns.
func (q *LotQueue) Sell(quantity Quantity, price Money, method CostBasisMethod) SaleResult {
	var unknown []string
	if method < AverageCost || method > LIFO {
		log.Warn().Str("instrument", q.instrument).Int("method", int(method)).Msg("unknown cost basis method, using fifo")
		unknown = append(unknown, fmt.Sprintf("%s: unknown cost basis method %d, sold with fifo", q.instrument, int(method)))
		method = FIFO
	}
	res := SaleResult{Method: method, Price: price, Warnings: unknown}
	if !quantity.IsPositive() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: ignored sale of non positive quantity %s", q.instrument, quantity))
		res.Remaining = q.Lots()
		return res
	}

	if method == AverageCost {
		q.collapse()
	}
	order := q.order(method)

	remaining := quantity
	for _, i := range order {
		if !remaining.IsPositive() {
			break
		}
		taken, left := q.lots[i].take(remaining.Min(q.lots[i].Quantity))
		q.lots[i] = left
		remaining = remaining.Sub(taken.Quantity)

		cost := taken.Cost()
		gain := price.Sub(taken.UnitPrice).Mul(taken.Quantity)
		res.Consumed = append(res.Consumed, LotConsumption{
			LotID:       taken.ID,
			LotDate:     taken.Date,
			Quantity:    taken.Quantity,
			UnitPrice:   taken.UnitPrice,
			CostBasis:   cost,
			Commissions: taken.Commissions,
			Gain:        gain,
		})
		res.Quantity = res.Quantity.Add(taken.Quantity)
		res.CostBasis = res.CostBasis.Add(cost)
		res.Commissions = res.Commissions.Add(taken.Commissions)
		res.RealizedGain = res.RealizedGain.Add(gain)
	}
	q.lots = slices.DeleteFunc(q.lots, func(l Lot) bool { return l.Quantity.IsZero() })

	res.Proceeds = price.Mul(res.Quantity)
	res.Unsold = remaining
	if remaining.IsPositive() {
		msg := fmt.Sprintf("%s: sale of %s units exceeds open lots, %s units unsold", q.instrument, quantity, remaining)
		log.Warn().Str("instrument", q.instrument).Str("unsold", remaining.String()).Msg("sale exceeds open lots")
		res.Warnings = append(res.Warnings, msg)
	}
	res.Remaining = q.Lots()
	return res
}

// order returns the indices of the open lots in consumption order.
func (q *LotQueue) order(method CostBasisMethod) []int {
	order := make([]int, len(q.lots))
	for i := range order {
		order[i] = i
	}
	if method == AverageCost || len(order) < 2 {
		return order
	}
	for _, l := range q.lots {
		if l.Date.IsZero() {
			log.Error().Str("instrument", q.instrument).Str("lot", l.ID).Msg("lot without date, ordered as tied")
		}
	}
	cmp := func(a, b int) int {
		da, db := q.lots[a].Date, q.lots[b].Date
		if da.IsZero() || db.IsZero() {
			return 0
		}
		return da.Compare(db)
	}
	switch method {
	case FIFO:
		slices.SortStableFunc(order, cmp)
	case LIFO:
		// Latest insertion first among lots of the same day.
		slices.Reverse(order)
		slices.SortStableFunc(order, func(a, b int) int { return cmp(b, a) })
	}
	return order
}

// collapse replaces the open lots with a single lot at the quantity weighted
// average unit price, dated at the earliest lot.
func (q *LotQueue) collapse() {
	if len(q.lots) < 2 {
		return
	}
	var (
		quantity    Quantity
		cost        Money
		commissions Money
		earliest    date.Date
		ids         = make([]string, 0, len(q.lots))
	)
	for _, l := range q.lots {
		quantity = quantity.Add(l.Quantity)
		cost = cost.Add(l.Cost())
		commissions = commissions.Add(l.Commissions)
		ids = append(ids, l.ID)
		if earliest.IsZero() || (!l.Date.IsZero() && l.Date.Before(earliest)) {
			earliest = l.Date
		}
	}
	avg := Lot{
		ID:          uuid.NewSHA1(lotNamespace, []byte(strings.Join(ids, "+"))).String(),
		Date:        earliest,
		Quantity:    quantity,
		UnitPrice:   cost.Div(quantity),
		Commissions: commissions,
	}
	avg.TotalCost = avg.Cost().Add(commissions)
	q.lots = []Lot{avg}
}
