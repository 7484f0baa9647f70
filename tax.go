package wealth

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/wealth/date"
)

// TaxRates holds the capital gains tax rates, as fractions.
type TaxRates struct {
	Standard      float64 `json:"standard" toml:"standard" yaml:"standard"`
	WhitelistBond float64 `json:"whitelistBond" toml:"whitelist_bond" yaml:"whitelist_bond"`
}

// DefaultTaxRates returns a 26% standard rate and a 12.5% rate for
// whitelisted government bonds.
func DefaultTaxRates() TaxRates { return TaxRates{Standard: 0.26, WhitelistBond: 0.125} }

// RateFor returns the rate applying to gains on an asset type.
func (r TaxRates) RateFor(t AssetType) float64 {
	if t == WhitelistBondAsset {
		return r.WhitelistBond
	}
	return r.Standard
}

// RealizedSale is a sale with its realized gain and tax.
type RealizedSale struct {
	ID           string    `json:"id"`
	Instrument   string    `json:"instrument"`
	AssetType    AssetType `json:"assetType"`
	Date         date.Date `json:"date"`
	Quantity     Quantity  `json:"quantity"`
	Proceeds     Money     `json:"proceeds"`
	CostBasis    Money     `json:"costBasis"`
	RealizedGain Money     `json:"realizedGain"`
	Rate         float64   `json:"rate"`
	Tax          Money     `json:"tax"`
}

// GainsSummary aggregates realized sales.
type GainsSummary struct {
	Gains  Money `json:"gains"`  // net of losses
	Losses Money `json:"losses"` // sum of negative results, as a negative amount
	Tax    Money `json:"tax"`
	Sales  int   `json:"sales"`
}

func (s *GainsSummary) add(sale RealizedSale) {
	s.Gains = s.Gains.Add(sale.RealizedGain)
	if sale.RealizedGain.IsNegative() {
		s.Losses = s.Losses.Add(sale.RealizedGain)
	}
	s.Tax = s.Tax.Add(sale.Tax)
	s.Sales++
}

// YearSummary aggregates the sales of a calendar year.
type YearSummary struct {
	Year int `json:"year"`
	GainsSummary
}

// TaxReport is the capital gains report of a set of transactions.
type TaxReport struct {
	Method      CostBasisMethod            `json:"method"`
	Rates       TaxRates                   `json:"rates"`
	TotalGains  Money                      `json:"totalGains"` // net of losses
	TotalTax    Money                      `json:"totalTax"`
	ByYear      []YearSummary              `json:"byYear"`
	ByAssetType map[AssetType]GainsSummary `json:"byAssetType"`
	Sales       []RealizedSale             `json:"sales"`
	Warnings    []string                   `json:"warnings,omitempty"`
}

// Year returns the summary of a calendar year.
func (r TaxReport) Year(year int) (YearSummary, bool) {
	i, found := slices.BinarySearchFunc(r.ByYear, year, func(s YearSummary, y int) int { return s.Year - y })
	if !found {
		return YearSummary{Year: year}, false
	}
	return r.ByYear[i], true
}

// Only returns the report restricted to the sales of a calendar year.
// Warnings are kept.
func (r TaxReport) Only(year int) TaxReport {
	out := TaxReport{Method: r.Method, Rates: r.Rates, ByAssetType: make(map[AssetType]GainsSummary), Warnings: r.Warnings}
	in := date.CalendarYear(year)
	for _, sale := range r.Sales {
		if !in.Contains(sale.Date) {
			continue
		}
		out.Sales = append(out.Sales, sale)
		out.TotalGains = out.TotalGains.Add(sale.RealizedGain)
		out.TotalTax = out.TotalTax.Add(sale.Tax)
		a := out.ByAssetType[sale.AssetType]
		a.add(sale)
		out.ByAssetType[sale.AssetType] = a
	}
	if y, ok := r.Year(year); ok {
		out.ByYear = []YearSummary{y}
	}
	return out
}

// CalculateCapitalGains replays the transactions of every instrument and taxes
// each sale with a positive realized gain at the rate of its asset type.
// Losses count toward the total gains but are never taxed nor carried forward.
func CalculateCapitalGains(txs []Transaction, method CostBasisMethod, rates TaxRates) TaxReport {
	fallback := TaxReport{Method: method, Rates: rates, ByAssetType: map[AssetType]GainsSummary{}}
	out := Guard("capital gains", fallback, func() TaxReport {
		return capitalGains(txs, method, rates)
	})
	if !out.OK() {
		out.Value.Warnings = append(out.Value.Warnings, out.Err.Error())
	}
	return out.Value
}

func capitalGains(txs []Transaction, method CostBasisMethod, rates TaxRates) TaxReport {
	report := TaxReport{Method: method, ByAssetType: make(map[AssetType]GainsSummary)}
	report.Rates, report.Warnings = rates.clamp()

	sorted, warnings := chronological(txs)
	report.Warnings = append(report.Warnings, warnings...)

	byInstrument := make(map[string][]datedTransaction)
	for _, tx := range sorted {
		byInstrument[tx.Instrument()] = append(byInstrument[tx.Instrument()], tx)
	}

	byYear := make(map[int]*YearSummary)
	for _, instrument := range slices.Sorted(maps.Keys(byInstrument)) {
		_, sales, warnings := replay(instrument, byInstrument[instrument], method)
		report.Warnings = append(report.Warnings, warnings...)

		for _, s := range sales {
			if s.Quantity.IsZero() {
				continue
			}
			sale := RealizedSale{
				ID:           s.Transaction.ID,
				Instrument:   instrument,
				AssetType:    s.Transaction.AssetType,
				Date:         s.Date,
				Quantity:     s.Quantity,
				Proceeds:     s.Proceeds,
				CostBasis:    s.CostBasis,
				RealizedGain: s.RealizedGain,
			}
			if sale.RealizedGain.IsPositive() {
				sale.Rate = report.Rates.RateFor(sale.AssetType)
				sale.Tax = sale.RealizedGain.MulRate(sale.Rate).Round(2)
			}
			report.Sales = append(report.Sales, sale)
			report.TotalGains = report.TotalGains.Add(sale.RealizedGain)
			report.TotalTax = report.TotalTax.Add(sale.Tax)

			y, ok := byYear[sale.Date.Year()]
			if !ok {
				y = &YearSummary{Year: sale.Date.Year()}
				byYear[y.Year] = y
			}
			y.add(sale)

			a := report.ByAssetType[sale.AssetType]
			a.add(sale)
			report.ByAssetType[sale.AssetType] = a
		}
	}

	slices.SortStableFunc(report.Sales, func(a, b RealizedSale) int { return a.Date.Compare(b.Date) })
	for _, year := range slices.Sorted(maps.Keys(byYear)) {
		report.ByYear = append(report.ByYear, *byYear[year])
	}
	return report
}

// clamp keeps rates within [0, 1].
func (r TaxRates) clamp() (TaxRates, []string) {
	var warnings []string
	fix := func(name string, rate *float64) {
		v := *rate
		if !valid(v) {
			v = 0
		}
		if v = min(v, 1); v != *rate {
			warnings = append(warnings, fmt.Sprintf("%s tax rate %v out of [0, 1], using %v", name, *rate, v))
			*rate = v
		}
	}
	fix("standard", &r.Standard)
	fix("whitelist bond", &r.WhitelistBond)
	return r, warnings
}
