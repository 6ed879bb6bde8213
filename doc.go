// Package portfolio implements a local-first, CSV-backed portfolio tracker.
// Each portfolio is one plain text file the user can read, diff and version,
// and every derived number is recomputed from the raw transaction rows.
//
// The core functionalities include:
//   - Transaction Ledger: validated, immutable trade records (ticker, side,
//     quantity, price, fee, timestamp) persisted append-only in per-portfolio
//     CSV files with a base-currency metadata line.
//   - Holdings Aggregation: a stateless engine deriving per-ticker quantity,
//     average cost basis, realized and unrealized PnL and fees from the
//     chronological transaction sequence.
//   - Exact Arithmetic: quantities and monetary values are decimals end to
//     end, never binary floats, so reports carry no rounding drift.
//   - Quotes: an optional CoinGecko price lookup for unrealized PnL; when it
//     is unavailable the report degrades explicitly instead of guessing.
//
// This package is the foundational logic for the `csvpt` command-line tool.
package portfolio
