package wealth

import "fmt"

// EUR is a helper for test to create money from const.
func EUR(v float64) Money { return M(v) }

// buy is a helper for test to create a purchase of qty units for amount.
func buy(id, ticker, on string, qty, amount float64) Transaction {
	return Transaction{ID: id, Ticker: ticker, Date: on, Type: Purchase, Quantity: Q(qty), Amount: M(amount)}
}

// sell is a helper for test to create a sale of qty units at price.
func sell(id, ticker, on string, qty, price float64) Transaction {
	return Transaction{ID: id, Ticker: ticker, Date: on, Type: Sale, Quantity: Q(qty), Amount: M(qty * price), UnitPrice: M(price)}
}

// ladder returns purchases of 100 units at 10, 20 and 30, one month apart.
func ladder(ticker string) []Transaction {
	var txs []Transaction
	for i, price := range []float64{10, 20, 30} {
		txs = append(txs, buy(fmt.Sprintf("%s-%d", ticker, i+1), ticker, fmt.Sprintf("2024-0%d-15", i+1), 100, 100*price))
	}
	return txs
}
