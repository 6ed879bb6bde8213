package portfolio

import (
	"errors"
	"testing"
)

func TestParsePair(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  TradingPair
	}{
		{"explicit slash pair", "BTC/USD", TradingPair{Base: "BTC", Quote: "USD"}},
		{"explicit dash pair", "BTC-USD", TradingPair{Base: "BTC", Quote: "USD"}},
		{"lower case is normalized", "btc/UsD", TradingPair{Base: "BTC", Quote: "USD"}},
		{"bare symbol", "AAPL", TradingPair{Base: "AAPL"}},
		{"bare symbol lower case", "aapl", TradingPair{Base: "AAPL"}},
		{"alphanumeric symbol", "eth2/USD", TradingPair{Base: "ETH2", Quote: "USD"}},
		{"surrounding whitespace", " BTC/USD ", TradingPair{Base: "BTC", Quote: "USD"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePair(tc.input)
			if err != nil {
				t.Fatalf("ParsePair(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParsePair(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParsePair_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"two separators", "BTC/ETH/USD"},
		{"mixed separators", "BTC/USD-EUR"},
		{"missing base", "/USD"},
		{"missing quote", "BTC/"},
		{"inner space", "B TC"},
		{"punctuation", "BTC$"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePair(tc.input); !errors.Is(err, ErrInvalidTicker) {
				t.Errorf("ParsePair(%q) = %v, want ErrInvalidTicker", tc.input, err)
			}
		})
	}
}

func TestParsePair_NonASCII(t *testing.T) {
	// Unicode letters are symbols too; they must survive without corruption.
	got, err := ParsePair("börse/EUR")
	if err != nil {
		t.Fatalf("ParsePair failed: %v", err)
	}
	if got.Base != "BÖRSE" || got.Quote != "EUR" {
		t.Errorf("got %+v", got)
	}
}

func TestPair_String(t *testing.T) {
	if got := pair("btc-usd").String(); got != "BTC/USD" {
		t.Errorf("String() = %q, want BTC/USD", got)
	}
	if got := pair("AAPL").String(); got != "AAPL" {
		t.Errorf("String() = %q, want AAPL", got)
	}
	if got := pair("AAPL").QuoteOr("EUR"); got != "EUR" {
		t.Errorf("QuoteOr() = %q, want EUR", got)
	}
}
