package wealth

// Annualized volatilities per regime, as fractions.
var volatilities = [numRegimes][numAssetClasses]float64{
	Normal: {
		Cash: 0.005, Bonds: 0.05, Stocks: 0.18, RealEstate: 0.12, Commodities: 0.20,
		Alternatives: 0.25, PensionFunds: 0.08, Mixed: 0.10, OtherAccounts: 0.01,
	},
	Stress: {
		Cash: 0.008, Bonds: 0.08, Stocks: 0.28, RealEstate: 0.18, Commodities: 0.30,
		Alternatives: 0.32, PensionFunds: 0.12, Mixed: 0.16, OtherAccounts: 0.015,
	},
	Crisis: {
		Cash: 0.01, Bonds: 0.12, Stocks: 0.40, RealEstate: 0.25, Commodities: 0.40,
		Alternatives: 0.45, PensionFunds: 0.18, Mixed: 0.24, OtherAccounts: 0.02,
	},
}

// Long term annual returns, as fractions.
var expectedReturns = [numAssetClasses]float64{
	Cash:          0.02,
	Bonds:         0.03,
	Stocks:        0.07,
	RealEstate:    0.05,
	Commodities:   0.04,
	Alternatives:  0.08,
	PensionFunds:  0.045,
	Mixed:         0.05,
	OtherAccounts: 0.015,
}

// normalCorrelations holds the upper triangle of the normal regime
// correlations. All correlations are non negative, so the variance of a long
// only portfolio is never negative.
var normalCorrelations = map[[2]AssetClass]float64{
	{Cash, Bonds}:         0.10,
	{Cash, Stocks}:        0.00,
	{Cash, RealEstate}:    0.05,
	{Cash, Commodities}:   0.00,
	{Cash, Alternatives}:  0.00,
	{Cash, PensionFunds}:  0.05,
	{Cash, Mixed}:         0.05,
	{Cash, OtherAccounts}: 0.90,

	{Bonds, Stocks}:        0.10,
	{Bonds, RealEstate}:    0.20,
	{Bonds, Commodities}:   0.00,
	{Bonds, Alternatives}:  0.10,
	{Bonds, PensionFunds}:  0.60,
	{Bonds, Mixed}:         0.50,
	{Bonds, OtherAccounts}: 0.10,

	{Stocks, RealEstate}:    0.50,
	{Stocks, Commodities}:   0.30,
	{Stocks, Alternatives}:  0.60,
	{Stocks, PensionFunds}:  0.70,
	{Stocks, Mixed}:         0.90,
	{Stocks, OtherAccounts}: 0.00,

	{RealEstate, Commodities}:   0.30,
	{RealEstate, Alternatives}:  0.40,
	{RealEstate, PensionFunds}:  0.40,
	{RealEstate, Mixed}:         0.50,
	{RealEstate, OtherAccounts}: 0.05,

	{Commodities, Alternatives}:  0.30,
	{Commodities, PensionFunds}:  0.20,
	{Commodities, Mixed}:         0.30,
	{Commodities, OtherAccounts}: 0.00,

	{Alternatives, PensionFunds}:  0.40,
	{Alternatives, Mixed}:         0.50,
	{Alternatives, OtherAccounts}: 0.00,

	{PensionFunds, Mixed}:         0.75,
	{PensionFunds, OtherAccounts}: 0.05,

	{Mixed, OtherAccounts}: 0.05,
}

// contagion is how far correlations between risky classes move toward 1 in
// each regime. Cash-like classes keep their normal correlations.
var contagion = [numRegimes]float64{Normal: 0, Stress: 0.3, Crisis: 0.6}

// correlations is the full symmetric correlation matrix of each regime.
var correlations = func() (m [numRegimes][numAssetClasses][numAssetClasses]float64) {
	for r := range numRegimes {
		for pair, rho := range normalCorrelations {
			a, b := pair[0], pair[1]
			if a.Bucket() != CashBucket && b.Bucket() != CashBucket {
				rho += (1 - rho) * contagion[r]
			}
			m[r][a][b], m[r][b][a] = rho, rho
		}
		for _, c := range AssetClasses {
			m[r][c][c] = 1
		}
	}
	return m
}()
