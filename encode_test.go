package portfolio

import (
	"errors"
	"strings"
	"testing"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger("main", "USD")
	txs := []Transaction{
		NewTransaction(at("2024-01-01T00:00:00Z"), pair("BTC/USD"), Buy, Q(0.2), USD(99320), USD(12)),
		NewTransaction(at("2024-02-01T00:00:00Z"), pair("ETH"), Buy, Q(3), USD(2500), USD(0)),
		NewTransaction(at("2024-03-01T00:00:00Z"), pair("BTC/USD"), Sell, Q(0.1), USD(105000), USD(5)),
	}
	for _, tx := range txs {
		if _, err := l.Append(tx); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}
	return l
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	l := testLedger(t)

	var b strings.Builder
	if err := EncodeLedger(&b, l); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}

	got, err := DecodeLedger("main.csv", "main", strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if got.BaseCurrency() != "USD" {
		t.Errorf("base currency = %q, want USD", got.BaseCurrency())
	}
	if got.Len() != l.Len() {
		t.Fatalf("decoded %d transactions, want %d", got.Len(), l.Len())
	}

	want := make([]Transaction, 0, l.Len())
	for tx := range l.FileOrder() {
		want = append(want, tx)
	}
	i := 0
	for tx := range got.FileOrder() {
		if !tx.Equal(want[i]) {
			t.Errorf("transaction %d = %+v, want %+v", i, tx, want[i])
		}
		i++
	}
}

func TestEncodeLedger_Layout(t *testing.T) {
	l := NewLedger("savings", "EUR")
	if _, err := l.Append(NewTransaction(at("2024-01-01T00:00:00Z"), pair("BTC/EUR"), Buy, Q(0.2), EUR(91000), EUR(12))); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	var b strings.Builder
	if err := EncodeLedger(&b, l); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}
	want := "# base_currency: EUR\n" +
		"timestamp,ticker,side,qty,price,fee\n" +
		"2024-01-01T00:00:00Z,BTC/EUR,BUY,0.2,91000,12\n"
	if b.String() != want {
		t.Errorf("EncodeLedger() =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestDecodeLedger_DefaultsToUSD(t *testing.T) {
	in := "timestamp,ticker,side,qty,price,fee\n" +
		"2024-01-01T00:00:00Z,BTC/USD,BUY,1,40000,7.5\n"
	l, err := DecodeLedger("main.csv", "main", strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if l.BaseCurrency() != "USD" {
		t.Errorf("base currency = %q, want USD", l.BaseCurrency())
	}
}

func TestDecodeLedger_CRLF(t *testing.T) {
	in := "# base_currency: USD\r\n" +
		"timestamp,ticker,side,qty,price,fee\r\n" +
		"2024-01-01T00:00:00Z,BTC/USD,BUY,1,40000,7.5\r\n"
	l, err := DecodeLedger("main.csv", "main", strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("decoded %d transactions, want 1", l.Len())
	}
}

func TestDecodeLedger_NonASCIITicker(t *testing.T) {
	in := "timestamp,ticker,side,qty,price,fee\n" +
		"2024-01-01T00:00:00Z,BÖRSE/USD,BUY,1,100,0\n"
	l, err := DecodeLedger("main.csv", "main", strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	for tx := range l.FileOrder() {
		if tx.Pair.Base != "BÖRSE" {
			t.Errorf("ticker = %q, want BÖRSE", tx.Pair.Base)
		}
	}
}

func TestDecodeLedger_Corruption(t *testing.T) {
	header := "# base_currency: USD\n" + "timestamp,ticker,side,qty,price,fee\n"
	goodRow := "2024-01-01T00:00:00Z,BTC/USD,BUY,1,40000,7.5\n"

	testCases := []struct {
		name     string
		row      string
		wantLine int
		wantErr  error
	}{
		{"wrong column count", "2024-01-02T00:00:00Z,BTC/USD,BUY,1\n", 4, nil},
		{"unparsable quantity", "2024-01-02T00:00:00Z,BTC/USD,BUY,one,40000,7.5\n", 4, ErrParse},
		{"bad timestamp", "not-a-time,BTC/USD,BUY,1,40000,7.5\n", 4, nil},
		{"bad side", "2024-01-02T00:00:00Z,BTC/USD,HOLD,1,40000,7.5\n", 4, ErrInvalidSide},
		{"mismatched row currency", "2024-01-02T00:00:00Z,BTC/EUR,BUY,1,40000,7.5\n", 4, ErrCurrencyMismatch},
		{"negative quantity row", "2024-01-02T00:00:00Z,BTC/USD,BUY,-1,40000,7.5\n", 4, ErrInvalidQuantity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := header + goodRow + tc.row
			_, err := DecodeLedger("main.csv", "main", strings.NewReader(in))

			var corrupt *CorruptionError
			if !errors.As(err, &corrupt) {
				t.Fatalf("DecodeLedger() = %v, want *CorruptionError", err)
			}
			if corrupt.Line != tc.wantLine {
				t.Errorf("corruption at line %d, want %d", corrupt.Line, tc.wantLine)
			}
			if corrupt.Raw != strings.TrimSuffix(tc.row, "\n") {
				t.Errorf("corruption raw = %q, want %q", corrupt.Raw, strings.TrimSuffix(tc.row, "\n"))
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("DecodeLedger() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDecodeLedger_MissingHeader(t *testing.T) {
	in := "2024-01-01T00:00:00Z,BTC/USD,BUY,1,40000,7.5\n"
	var corrupt *CorruptionError
	if _, err := DecodeLedger("main.csv", "main", strings.NewReader(in)); !errors.As(err, &corrupt) {
		t.Errorf("DecodeLedger() = %v, want *CorruptionError", err)
	}
}
