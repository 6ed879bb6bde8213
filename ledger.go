package portfolio

import (
	"iter"
	"slices"
	"sort"
)

// DefaultCurrency is the base currency assumed when a ledger file carries no
// base_currency metadata.
const DefaultCurrency = "USD"

// Ledger is the transaction history of one portfolio.
//
// Transactions are held in file (append) order. Chronological order is
// established lazily at read time with a stable sort, so out-of-order
// appends keep the on-disk file append-only.
type Ledger struct {
	name         string
	baseCurrency string
	transactions []Transaction
}

// NewLedger creates an empty ledger for a portfolio named name, denominated
// in baseCurrency. An empty baseCurrency means DefaultCurrency.
func NewLedger(name, baseCurrency string) *Ledger {
	if baseCurrency == "" {
		baseCurrency = DefaultCurrency
	}
	return &Ledger{name: name, baseCurrency: baseCurrency}
}

// Name returns the portfolio name.
func (l *Ledger) Name() string { return l.name }

// BaseCurrency returns the currency fees, cost basis and PnL are
// denominated in.
func (l *Ledger) BaseCurrency() string { return l.baseCurrency }

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Append validates tx against the ledger base currency and records it.
// On a validation error the ledger is left untouched.
func (l *Ledger) Append(tx Transaction) (Transaction, error) {
	tx, err := tx.Validate(l.baseCurrency)
	if err != nil {
		return Transaction{}, err
	}
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// Transactions iterates over all transactions in chronological order.
// Transactions with equal timestamps keep their original file order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	sorted := slices.Clone(l.transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return slices.Values(sorted)
}

// FileOrder iterates over all transactions in on-disk (append) order.
func (l *Ledger) FileOrder() iter.Seq[Transaction] {
	return slices.Values(l.transactions)
}
