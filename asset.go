package wealth

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/wealth/numeric"
)

// AssetClass is one of the asset categories of a portfolio snapshot.
type AssetClass int

const (
	Cash AssetClass = iota
	Bonds
	Stocks
	RealEstate
	Commodities
	Alternatives
	PensionFunds
	Mixed
	OtherAccounts

	numAssetClasses = iota
)

// AssetClasses lists every asset class in declaration order.
var AssetClasses = [numAssetClasses]AssetClass{
	Cash, Bonds, Stocks, RealEstate, Commodities, Alternatives, PensionFunds, Mixed, OtherAccounts,
}

func (c AssetClass) String() string {
	switch c {
	case Cash:
		return "cash"
	case Bonds:
		return "bonds"
	case Stocks:
		return "stocks"
	case RealEstate:
		return "realEstate"
	case Commodities:
		return "commodities"
	case Alternatives:
		return "alternatives"
	case PensionFunds:
		return "pensionFunds"
	case Mixed:
		return "mixed"
	case OtherAccounts:
		return "otherAccounts"
	default:
		return fmt.Sprintf("AssetClass(%d)", int(c))
	}
}

// ParseAssetClass parses the key of an asset class, case insensitively.
func ParseAssetClass(s string) (AssetClass, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AssetClasses {
		if strings.ToLower(c.String()) == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown asset class: %q", s)
}

func (c AssetClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *AssetClass) UnmarshalText(text []byte) (err error) {
	*c, err = ParseAssetClass(string(text))
	return err
}

// Bucket groups asset classes by liquidity and risk.
type Bucket int

const (
	// CashBucket holds cash and cash-like accounts.
	CashBucket Bucket = iota
	// InvestmentsBucket holds listed investments held through a broker.
	InvestmentsBucket
	RealEstateBucket
	// PensionBucket holds locked retirement savings.
	PensionBucket
	AlternativesBucket
)

func (b Bucket) String() string {
	switch b {
	case CashBucket:
		return "cash"
	case InvestmentsBucket:
		return "investments"
	case RealEstateBucket:
		return "realEstate"
	case PensionBucket:
		return "pension"
	case AlternativesBucket:
		return "alternatives"
	default:
		return "unknown"
	}
}

// Bucket returns the bucket an asset class belongs to.
func (c AssetClass) Bucket() Bucket {
	switch c {
	case Cash, OtherAccounts:
		return CashBucket
	case Stocks, Bonds, Mixed, Commodities:
		return InvestmentsBucket
	case RealEstate:
		return RealEstateBucket
	case PensionFunds:
		return PensionBucket
	default:
		return AlternativesBucket
	}
}

// Liquid reports whether the class can be withdrawn from.
// Real estate, pension funds and alternatives are illiquid or locked.
func (b Bucket) Liquid() bool { return b == CashBucket || b == InvestmentsBucket }

// Allocation maps asset classes to the amount held in each.
type Allocation map[AssetClass]float64

// valid reports whether an allocated amount can be used.
func valid(amount float64) bool {
	return amount >= 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

// Invalid returns a warning for each negative or non-finite amount.
// Such amounts are ignored by every calculation.
func (a Allocation) Invalid() []string {
	var warnings []string
	for _, c := range AssetClasses {
		if amount, ok := a[c]; ok && !valid(amount) {
			warnings = append(warnings, fmt.Sprintf("ignored invalid %s amount %v", c, amount))
		}
	}
	return warnings
}

// Amount returns the valid amount held in class c.
func (a Allocation) Amount(c AssetClass) float64 {
	if amount := a[c]; valid(amount) {
		return amount
	}
	return 0
}

// Total returns the sum of all valid amounts.
func (a Allocation) Total() float64 {
	var total float64
	for _, c := range AssetClasses {
		total = numeric.Add(total, a.Amount(c))
	}
	return total
}

// Bucket returns the sum of valid amounts in bucket b.
func (a Allocation) Bucket(b Bucket) float64 {
	var total float64
	for _, c := range AssetClasses {
		if c.Bucket() == b {
			total = numeric.Add(total, a.Amount(c))
		}
	}
	return total
}

// Liquid returns the amount that can be withdrawn: cash and investments.
func (a Allocation) Liquid() float64 {
	return numeric.Add(a.Bucket(CashBucket), a.Bucket(InvestmentsBucket))
}

// NetWorth returns the total minus debts.
func (a Allocation) NetWorth(debts float64) float64 {
	if !valid(debts) {
		debts = 0
	}
	return numeric.Subtract(a.Total(), debts)
}

// Weights returns each class's fraction of the total. It returns nil when
// the total is zero.
func (a Allocation) Weights() map[AssetClass]float64 {
	total := a.Total()
	if total <= 0 {
		return nil
	}
	weights := make(map[AssetClass]float64, len(a))
	for _, c := range AssetClasses {
		amount := a.Amount(c)
		if amount <= 0 {
			continue
		}
		w, err := numeric.Precise.Divide(amount, total)
		if err != nil {
			// below the underflow bound, still a weight
			w = amount / total
		}
		weights[c] = w
	}
	return weights
}

// Average returns the mean of value over the asset classes, weighted by the
// amount held in each, or 0 for an empty allocation. Classes are summed in
// AssetClasses order so the result does not depend on map iteration.
func (a Allocation) Average(value func(AssetClass) float64) float64 {
	var values, amounts []float64
	for _, c := range AssetClasses {
		if amount := a.Amount(c); amount > 0 {
			values = append(values, value(c))
			amounts = append(amounts, amount)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return numeric.WeightedAverage(values, amounts)
}
