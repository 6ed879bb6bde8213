package portfolio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// A ledger file is a small CSV document:
//
//	# base_currency: EUR
//	timestamp,ticker,side,qty,price,fee
//	2024-01-01T00:00:00Z,BTC/EUR,BUY,0.2,99320,12
//
// The metadata comment is optional on read (absence implies USD) but always
// written, the header and the column order are fixed. Rows are persisted in
// append order, never re-sorted on write.

const (
	currencyComment = "# base_currency:"
	ledgerHeader    = "timestamp,ticker,side,qty,price,fee"
	ledgerColumns   = 6
)

// EncodeTransaction appends one CSV row for tx to w.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(encodeRecord(tx)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// EncodeLedger writes the full canonical file for l: metadata comment,
// header, then one row per transaction in file order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	if _, err := fmt.Fprintf(w, "%s %s\n%s\n", currencyComment, l.BaseCurrency(), ledgerHeader); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	for tx := range l.FileOrder() {
		if err := cw.Write(encodeRecord(tx)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeRecord(tx Transaction) []string {
	return []string{
		tx.Time.UTC().Format(time.RFC3339),
		tx.Pair.String(),
		tx.Side.String(),
		tx.Quantity.String(),
		tx.Price.Text(),
		tx.Fee.Text(),
	}
}

// DecodeLedger reads a full ledger file from r. filename and name are the
// file path (for error messages) and the portfolio name.
//
// A row that fails to parse yields a *CorruptionError carrying the 1-based
// line number and the raw line, rows are never silently dropped or guessed.
func DecodeLedger(filename, name string, r io.Reader) (*Ledger, error) {
	// Line-by-line on purpose: this keeps exact line numbers and raw content
	// for corruption reports. Scanner strips both \n and \r\n endings.
	scanner := bufio.NewScanner(r)
	lineNo := 0
	sawHeader := false

	ledger := NewLedger(name, "")
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if cur, ok := strings.CutPrefix(line, currencyComment); ok && !sawHeader {
				ledger.baseCurrency = strings.ToUpper(strings.TrimSpace(cur))
			}
			continue
		}

		if !sawHeader {
			if line != ledgerHeader {
				return nil, &CorruptionError{File: filename, Line: lineNo, Raw: line,
					Err: fmt.Errorf("expected header %q", ledgerHeader)}
			}
			sawHeader = true
			continue
		}

		tx, err := decodeRecord(line, ledger.baseCurrency)
		if err != nil {
			return nil, &CorruptionError{File: filename, Line: lineNo, Raw: line, Err: err}
		}
		ledger.transactions = append(ledger.transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", filename, err)
	}
	if !sawHeader {
		return nil, &CorruptionError{File: filename, Line: lineNo, Raw: "",
			Err: fmt.Errorf("missing header %q", ledgerHeader)}
	}
	return ledger, nil
}

// decodeRecord parses one data line into a validated transaction.
func decodeRecord(line, baseCurrency string) (Transaction, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = ledgerColumns
	record, err := cr.Read()
	if err != nil {
		return Transaction{}, fmt.Errorf("expected %d columns: %w", ledgerColumns, err)
	}

	when, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("bad timestamp %q: %w", record[0], err)
	}
	pair, err := ParsePair(record[1])
	if err != nil {
		return Transaction{}, err
	}
	side, err := ParseSide(record[2])
	if err != nil {
		return Transaction{}, err
	}
	qty, err := ParseQuantity(record[3])
	if err != nil {
		return Transaction{}, fmt.Errorf("bad qty: %w", err)
	}
	price, err := ParseMoney(record[4], pair.QuoteOr(baseCurrency))
	if err != nil {
		return Transaction{}, fmt.Errorf("bad price: %w", err)
	}
	fee := M(0, baseCurrency)
	if record[5] != "" {
		if fee, err = ParseMoney(record[5], baseCurrency); err != nil {
			return Transaction{}, fmt.Errorf("bad fee: %w", err)
		}
	}

	tx := NewTransaction(when, pair, side, qty, price, fee)
	return tx.Validate(baseCurrency)
}
