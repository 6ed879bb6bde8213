package portfolio

import (
	"errors"
	"fmt"
)

// Sentinel errors for the validation layer. Callers are expected to test them
// with errors.Is, wrapped errors carry the field and the offending value.
var (
	// ErrParse reports malformed numeric text handed to a decimal parser.
	ErrParse = errors.New("parse error")
	// ErrInvalidQuantity reports a quantity that is not strictly positive.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidPrice reports a price that is not strictly positive.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidFee reports a negative fee.
	ErrInvalidFee = errors.New("invalid fee")
	// ErrInvalidSide reports a side that is neither buy nor sell.
	ErrInvalidSide = errors.New("invalid side")
	// ErrInvalidTicker reports a malformed ticker or trading pair.
	ErrInvalidTicker = errors.New("invalid ticker")
	// ErrCurrencyMismatch reports a pair quoted in a currency different from
	// the portfolio base currency. There is no implicit conversion.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Errors reported by the ledger store.
var (
	// ErrPortfolioExists reports an attempt to create a portfolio whose
	// backing file already exists.
	ErrPortfolioExists = errors.New("portfolio already exists")
	// ErrPortfolioNotFound reports a portfolio name with no backing file.
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrLocked reports that another writer currently holds the ledger lock.
	// The operation is safe to retry.
	ErrLocked = errors.New("ledger is locked by another writer")
	// ErrOversell reports a sell larger than the held quantity.
	ErrOversell = errors.New("sell quantity exceeds holdings")
)

// CorruptionError reports a ledger file row that could not be parsed. It
// carries the exact location and raw content so the user can fix the file;
// corrupt rows are never skipped or guessed at.
type CorruptionError struct {
	File string // ledger file path
	Line int    // 1-based line number
	Raw  string // raw line content
	Err  error  // underlying cause
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupt ledger %s:%d: %v (line: %q)", e.File, e.Line, e.Err, e.Raw)
}

func (e *CorruptionError) Unwrap() error { return e.Err }
