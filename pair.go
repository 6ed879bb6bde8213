package portfolio

import (
	"fmt"
	"strings"
	"unicode"
)

// TradingPair identifies a traded asset and the currency its price is quoted
// in. A bare symbol like "AAPL" leaves Quote empty, meaning the price is
// quoted in the portfolio base currency. An explicit pair like "BTC/USD" or
// "BTC-USD" pins the quote currency.
type TradingPair struct {
	Base  string
	Quote string
}

// ParsePair parses s into a TradingPair. Symbols are normalized to upper
// case. It returns an error wrapping ErrInvalidTicker when s is empty,
// contains more than one separator, has an empty part, or uses characters
// that are not letters or digits.
func ParsePair(s string) (TradingPair, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TradingPair{}, fmt.Errorf("%w: empty ticker", ErrInvalidTicker)
	}

	seps := strings.Count(trimmed, "/") + strings.Count(trimmed, "-")
	if seps > 1 {
		return TradingPair{}, fmt.Errorf("%w: expected format 'BASE/QUOTE', got %q", ErrInvalidTicker, s)
	}

	var base, quote string
	if seps == 1 {
		i := strings.IndexAny(trimmed, "/-")
		base, quote = trimmed[:i], trimmed[i+1:]
		if base == "" {
			return TradingPair{}, fmt.Errorf("%w: base can't be empty in %q", ErrInvalidTicker, s)
		}
		if quote == "" {
			return TradingPair{}, fmt.Errorf("%w: quote can't be empty in %q", ErrInvalidTicker, s)
		}
	} else {
		base = trimmed
	}

	for _, part := range []string{base, quote} {
		for _, r := range part {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return TradingPair{}, fmt.Errorf("%w: symbol %q contains %q", ErrInvalidTicker, s, r)
			}
		}
	}

	return TradingPair{
		Base:  strings.ToUpper(base),
		Quote: strings.ToUpper(quote),
	}, nil
}

// QuoteOr returns the pair's quote currency, or base when the pair does not
// pin one.
func (p TradingPair) QuoteOr(base string) string {
	if p.Quote == "" {
		return base
	}
	return p.Quote
}

// String returns the canonical "BASE/QUOTE" form, or just the base symbol
// when no quote currency is pinned.
func (p TradingPair) String() string {
	if p.Quote == "" {
		return p.Base
	}
	return p.Base + "/" + p.Quote
}
