package portfolio

import (
	"fmt"
	"sort"
)

// OversellPolicy decides what the aggregator does with a sell larger than
// the held quantity. There is no clamping policy on purpose.
type OversellPolicy int

const (
	// OversellError aborts the aggregation with an error naming the trade.
	OversellError OversellPolicy = iota
	// OversellNegative lets the position go negative and flags the holding.
	OversellNegative
)

func (p OversellPolicy) String() string {
	switch p {
	case OversellError:
		return "error"
	case OversellNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// ParseOversellPolicy parses a string into an OversellPolicy.
func ParseOversellPolicy(s string) (OversellPolicy, error) {
	switch s {
	case "error":
		return OversellError, nil
	case "negative":
		return OversellNegative, nil
	default:
		return 0, fmt.Errorf("unknown oversell policy: %q", s)
	}
}

// PriceLookup supplies the current price for a ticker, in the portfolio base
// currency. The second return reports availability: a missing price is
// explicit, never a silent zero.
type PriceLookup func(ticker string) (Money, bool)

// NoPrices is the lookup used when quotes are unavailable.
func NoPrices(string) (Money, bool) { return Money{}, false }

// Holding is the derived position for one ticker.
type Holding struct {
	Ticker      string
	Quantity    Quantity // quantity currently held
	AverageCost Money    // cost basis per unit, base currency
	Realized    Money    // realized PnL locked in by sells
	Fees        Money    // total fees paid across all trades of this ticker
	Price       Money    // current price, meaningful only when HasPrice
	Unrealized  Money    // (Price - AverageCost) * Quantity, when HasPrice
	HasPrice    bool
	Oversold    bool // a sell exceeded holdings (OversellNegative only)
}

// Report is the portfolio-level holdings view derived from a ledger.
type Report struct {
	Name     string
	Currency string
	Holdings []Holding // sorted by ticker
	Realized Money
	Fees     Money
	Total    Money // sum of realized + unrealized - fees per ticker
	Partial  bool  // true when some ticker had no current price
}

// NewReport consumes the ledger's transactions in chronological order and
// derives per-ticker and portfolio-level holdings.
//
// Per ticker: a buy folds into the quantity-weighted average cost, a sell
// realizes qty*(price - average cost) and leaves the average cost unchanged.
// Every fee is counted exactly once. The aggregator never mutates the ledger
// and keeps no state between calls.
func NewReport(l *Ledger, quotes PriceLookup, policy OversellPolicy) (*Report, error) {
	if quotes == nil {
		quotes = NoPrices
	}
	base := l.BaseCurrency()

	byTicker := make(map[string]*Holding)
	var order []string
	for tx := range l.Transactions() {
		h, ok := byTicker[tx.Pair.Base]
		if !ok {
			h = &Holding{
				Ticker:      tx.Pair.Base,
				Quantity:    Q(0),
				AverageCost: M(0, base),
				Realized:    M(0, base),
				Fees:        M(0, base),
			}
			byTicker[tx.Pair.Base] = h
			order = append(order, tx.Pair.Base)
		}

		switch tx.Side {
		case Buy:
			newQty := h.Quantity.Add(tx.Quantity)
			oldCost := h.AverageCost.Mul(h.Quantity)
			newCost := oldCost.Add(tx.Price.Mul(tx.Quantity))
			if newQty.IsZero() {
				h.AverageCost = M(0, base)
			} else {
				h.AverageCost = newCost.Div(newQty)
			}
			h.Quantity = newQty
		case Sell:
			if tx.Quantity.GreaterThan(h.Quantity) {
				if policy == OversellError {
					return nil, fmt.Errorf("%w: sell %s %s on %s but only %s held",
						ErrOversell, tx.Quantity, h.Ticker,
						tx.Time.Format("2006-01-02"), h.Quantity)
				}
				h.Oversold = true
			}
			h.Realized = h.Realized.Add(tx.Price.Sub(h.AverageCost).Mul(tx.Quantity))
			h.Quantity = h.Quantity.Sub(tx.Quantity)
		}
		h.Fees = h.Fees.Add(tx.Fee)
	}

	report := &Report{
		Name:     l.Name(),
		Currency: base,
		Realized: M(0, base),
		Fees:     M(0, base),
		Total:    M(0, base),
	}
	sort.Strings(order)
	for _, ticker := range order {
		h := byTicker[ticker]
		if price, ok := quotes(ticker); ok {
			h.Price = price
			h.Unrealized = price.Sub(h.AverageCost).Mul(h.Quantity)
			h.HasPrice = true
		} else {
			report.Partial = true
		}

		report.Realized = report.Realized.Add(h.Realized)
		report.Fees = report.Fees.Add(h.Fees)
		report.Total = report.Total.Add(h.Realized).Sub(h.Fees)
		if h.HasPrice {
			report.Total = report.Total.Add(h.Unrealized)
		}
		report.Holdings = append(report.Holdings, *h)
	}
	return report, nil
}
