// Package wealth is the calculation engine of a personal finance tracker.
//
// Given a snapshot of a user's assets, as an [Allocation] per [AssetClass],
// and the history of their [Transaction]s, it computes the metrics a tracker
// displays:
//   - Growth: compound annual growth rates with short period handling, see
//     [CalculateCAGR].
//   - Withdrawal: safe withdrawal rates, basic ([CalculateSWR]) or adjusted
//     for inflation and risk ([CalculateAdvancedSWR]), and the emergency fund
//     coverage ([EmergencyFund]).
//   - Risk: portfolio variance from static volatility and correlation tables
//     per market [Regime], a 0 to 10 risk score and the Sharpe ratio, see
//     [AnalyzeRisk].
//   - Cost basis: lot accounting with FIFO, LIFO or average cost methods, see
//     [LotQueue] and [CalculateCostBasis].
//   - Tax: capital gains per year and asset type, see [CalculateCapitalGains].
//
// The engine performs no I/O and keeps no state between calls: every function
// is a pure function of its inputs, safe for concurrent use. Expected edge
// cases (no assets, zero volatility, selling more than owned) never fail, they
// produce a value and a list of human readable warnings. Numbers are computed
// through package numeric, and rejected results are replaced by a fallback and
// logged through zerolog, see [Guard].
package wealth
