package portfolio

import (
	"fmt"
	"strings"
	"time"
)

// Side is the direction of a trade.
type Side int

const (
	Buy Side = iota
	Sell
)

// ParseSide parses a case-insensitive side name. It returns an error
// wrapping ErrInvalidSide for anything but buy and sell.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: %q (want buy or sell)", ErrInvalidSide, s)
	}
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "unknown"
	}
}

// Transaction is one executed trade. Once validated it is treated as
// immutable, the ledger only ever appends.
type Transaction struct {
	Time     time.Time   // execution time, UTC
	Pair     TradingPair // what was traded and in which quote currency
	Side     Side
	Quantity Quantity // traded quantity, > 0
	Price    Money    // unit price, in the pair's quote currency
	Fee      Money    // fee, in the portfolio base currency, >= 0
}

// NewTransaction builds a trade from already-parsed parts. The result still
// needs Validate before it may be appended to a ledger.
func NewTransaction(when time.Time, pair TradingPair, side Side, qty Quantity, price, fee Money) Transaction {
	return Transaction{Time: when, Pair: pair, Side: side, Quantity: qty, Price: price, Fee: fee}
}

// Validate checks the trade against the portfolio base currency and applies
// quick fixes where applicable (missing time, missing currency denominations).
// It returns the validated (and potentially completed) transaction or an
// error; nothing is ever written on a validation failure.
func (t Transaction) Validate(baseCurrency string) (Transaction, error) {
	if t.Time.IsZero() {
		t.Time = time.Now().UTC()
	}
	t.Time = t.Time.UTC()

	if t.Pair.Base == "" {
		return Transaction{}, fmt.Errorf("%w: empty ticker", ErrInvalidTicker)
	}
	if !t.Quantity.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: %s (must be > 0)", ErrInvalidQuantity, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: %s (must be > 0)", ErrInvalidPrice, t.Price.Text())
	}
	if t.Fee.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: %s (must be >= 0)", ErrInvalidFee, t.Fee.Text())
	}

	quote := t.Pair.QuoteOr(baseCurrency)
	if quote != baseCurrency {
		return Transaction{}, fmt.Errorf("%w: pair %s is quoted in %s but the portfolio is in %s",
			ErrCurrencyMismatch, t.Pair, quote, baseCurrency)
	}

	// Pin denominations: price in the quote currency, fee in the base currency.
	t.Pair.Quote = quote
	t.Price = M(t.Price.value, quote)
	t.Fee = M(t.Fee.value, baseCurrency)
	return t, nil
}

// Equal reports semantic equality of two trades.
func (t Transaction) Equal(o Transaction) bool {
	return t.Time.Equal(o.Time) &&
		t.Pair == o.Pair &&
		t.Side == o.Side &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Fee.Equal(o.Fee)
}
