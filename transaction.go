package wealth

import (
	"fmt"
	"strings"

	"github.com/etnz/wealth/date"
)

// TransactionType tells whether a transaction buys or sells units.
type TransactionType int

const (
	Purchase TransactionType = iota
	Sale
)

func (t TransactionType) String() string {
	switch t {
	case Purchase:
		return "purchase"
	case Sale:
		return "sale"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses "purchase" (or "buy") and "sale" (or "sell").
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "purchase", "buy":
		return Purchase, nil
	case "sale", "sell":
		return Sale, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

func (t TransactionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TransactionType) UnmarshalText(text []byte) (err error) {
	*t, err = ParseTransactionType(string(text))
	return err
}

// AssetType is the kind of instrument a transaction trades. It selects the
// capital gains tax rate.
type AssetType int

const (
	StockAsset AssetType = iota
	ETFAsset
	FundAsset
	BondAsset
	// WhitelistBondAsset is a government bond eligible for the reduced tax rate.
	WhitelistBondAsset
	CryptoAsset
	CommodityAsset
	OtherAsset
)

var assetTypeNames = [...]string{
	StockAsset:         "stock",
	ETFAsset:           "etf",
	FundAsset:          "fund",
	BondAsset:          "bond",
	WhitelistBondAsset: "whitelistBond",
	CryptoAsset:        "crypto",
	CommodityAsset:     "commodity",
	OtherAsset:         "other",
}

func (t AssetType) String() string {
	if t < 0 || int(t) >= len(assetTypeNames) {
		return "unknown"
	}
	return assetTypeNames[t]
}

// ParseAssetType parses an asset type name, case insensitively.
func ParseAssetType(s string) (AssetType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range assetTypeNames {
		if strings.ToLower(name) == key {
			return AssetType(t), nil
		}
	}
	return OtherAsset, fmt.Errorf("unknown asset type: %q", s)
}

func (t AssetType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *AssetType) UnmarshalText(text []byte) (err error) {
	*t, err = ParseAssetType(string(text))
	return err
}

// Transaction is an immutable purchase or sale of an instrument.
type Transaction struct {
	ID          string          `json:"id"`
	AssetType   AssetType       `json:"assetType"`
	Ticker      string          `json:"ticker,omitempty"`
	ISIN        string          `json:"isin,omitempty"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"transactionType"`
	Quantity    Quantity        `json:"quantity"`
	Amount      Money           `json:"amount"` // total amount exchanged, commissions excluded
	Commissions Money           `json:"commissions,omitzero"`
	UnitPrice   Money           `json:"unitPrice,omitzero"` // zero means Amount / Quantity
}

// Instrument returns the key of the traded instrument: the ticker, or the
// ISIN when there is no ticker.
func (tx Transaction) Instrument() string {
	if t := strings.TrimSpace(tx.Ticker); t != "" {
		return t
	}
	return strings.TrimSpace(tx.ISIN)
}

// Price returns the unit price of the transaction.
func (tx Transaction) Price() Money {
	if !tx.UnitPrice.IsZero() {
		return tx.UnitPrice
	}
	return tx.Amount.Div(tx.Quantity)
}

// label names the transaction in warnings.
func (tx Transaction) label() string {
	if tx.ID != "" {
		return fmt.Sprintf("%s %s", tx.Type, tx.ID)
	}
	return fmt.Sprintf("%s of %s on %q", tx.Type, tx.Instrument(), tx.Date)
}

// check returns the parsed date of a transaction that can take part in lot
// accounting, or an error describing why it cannot.
func (tx Transaction) check() (date.Date, error) {
	on, err := date.Parse(tx.Date)
	if err != nil {
		return date.Date{}, fmt.Errorf("%s excluded: %w", tx.label(), err)
	}
	switch {
	case tx.Instrument() == "":
		return on, fmt.Errorf("%s excluded: no ticker nor ISIN", tx.label())
	case tx.Type != Purchase && tx.Type != Sale:
		return on, fmt.Errorf("%s excluded: unknown transaction type", tx.label())
	case !tx.Quantity.IsPositive():
		return on, fmt.Errorf("%s excluded: quantity %s is not positive", tx.label(), tx.Quantity)
	case tx.Commissions.IsNegative():
		return on, fmt.Errorf("%s excluded: negative commissions %s", tx.label(), tx.Commissions)
	case tx.Amount.IsNegative() || tx.UnitPrice.IsNegative():
		return on, fmt.Errorf("%s excluded: negative amount", tx.label())
	}
	return on, nil
}
