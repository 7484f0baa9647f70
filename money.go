package wealth

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/wealth/numeric"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the portfolio currency.
//
// The engine does not convert currencies: the currency is only needed to
// format amounts, see Format.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns Money for a major unit value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool      { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) Add(n Money) Money          { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money          { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money       { return Money{value: m.value.Mul(n.value)} }
func (m Money) MulRate(rate float64) Money { return Money{value: m.value.Mul(decimal.NewFromFloat(rate))} }

// Div returns the money per unit of n, or zero if n is zero.
func (m Money) Div(n Quantity) Money {
	if n.IsZero() {
		return Money{}
	}
	return Money{value: m.value.DivRound(n.value, numeric.DivisionScale)}
}

// DivPrice returns how many units of price m buys, or zero if price is zero.
func (m Money) DivPrice(price Money) Quantity {
	if price.IsZero() {
		return Quantity{}
	}
	return Quantity{value: m.value.DivRound(price.value, numeric.DivisionScale)}
}

// Round rounds half away from zero to places decimals.
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places)} }

// Decimal returns the exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Float returns the nearest float64, for statistics and display.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// String returns the value with two decimals and no currency.
func (m Money) String() string { return m.value.StringFixed(2) }

// Format returns the value formatted for an ISO 4217 currency code, like
// "€1,500.00" for EUR. Unknown codes fall back to the plain value followed
// by the code.
func (m Money) Format(currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return strings.TrimSpace(m.String() + " " + currency)
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the formatted value with a sign.
// 0 is represented as "-".
func (m Money) SignedString(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

// UnmarshalJSON accepts JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }
