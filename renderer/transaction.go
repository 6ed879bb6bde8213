// Package renderer turns portfolio data into markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/csvpt/portfolio"
)

// Transaction renders a single trade to a one-line summary.
func Transaction(tx portfolio.Transaction) string {
	verb := "Bought"
	if tx.Side == portfolio.Sell {
		verb = "Sold"
	}
	return fmt.Sprintf("%s %s %s at %s (fee %s)", verb, tx.Quantity, tx.Pair, tx.Price, tx.Fee)
}

// Transactions renders the full trade history of a ledger as a markdown table.
func Transactions(l *portfolio.Ledger) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions: %s (%s)\n\n", l.Name(), l.BaseCurrency())

	if l.Len() == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Ticker | Side | Quantity | Price | Fee |")
	fmt.Fprintln(&b, "|:---|:---|:---:|---:|---:|---:|")
	for tx := range l.Transactions() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			tx.Time.Format(time.RFC3339),
			tx.Pair,
			tx.Side,
			tx.Quantity,
			tx.Price,
			tx.Fee,
		)
	}
	return b.String()
}
