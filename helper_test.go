package portfolio

import "time"

// USD is a helper for tests to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }

// at is a helper for tests to create timestamps from a compact literal.
func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// pair is a helper for tests to build a trading pair, panicking on bad input.
func pair(s string) TradingPair {
	p, err := ParsePair(s)
	if err != nil {
		panic(err)
	}
	return p
}
