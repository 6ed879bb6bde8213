package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/csvpt/portfolio"
	"github.com/csvpt/portfolio/renderer"
	"github.com/google/subcommands"
)

type addTxCmd struct {
	name   string
	ticker string
	side   string
	qty    string
	price  string
	fee    string
	when   string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "append a trade to a portfolio ledger" }
func (*addTxCmd) Usage() string {
	return `csvpt add-tx -n <name> -t <ticker> -side <buy|sell> -q <qty> -p <price> [-f <fee>] [-time <rfc3339>]

  Validates the trade and appends it to the portfolio CSV file. The ticker
  is either a bare symbol (quoted in the portfolio base currency) or an
  explicit pair like BTC/USD or BTC-USD; a pair quoted in another currency
  is rejected. Nothing is written when validation fails.

Usage Examples:
$ csvpt add-tx -n main -t BTC/USD -side buy -q 0.2 -p 99320 -f 12
`
}

func (p *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Name of the portfolio to append to.")
	f.StringVar(&p.name, "n", "", "Shorthand for -name.")
	f.StringVar(&p.ticker, "ticker", "", "Ticker or trading pair (e.g. AAPL, BTC/USD).")
	f.StringVar(&p.ticker, "t", "", "Shorthand for -ticker.")
	f.StringVar(&p.side, "side", "", "Trade side: buy or sell (case-insensitive).")
	f.StringVar(&p.qty, "qty", "", "Traded quantity, exact decimal, > 0.")
	f.StringVar(&p.qty, "q", "", "Shorthand for -qty.")
	f.StringVar(&p.price, "price", "", "Unit price in the pair's quote currency, > 0.")
	f.StringVar(&p.price, "p", "", "Shorthand for -price.")
	f.StringVar(&p.fee, "fee", "0", "Fee in the portfolio base currency, >= 0.")
	f.StringVar(&p.fee, "f", "0", "Shorthand for -fee.")
	f.StringVar(&p.when, "time", "", "Execution time, RFC3339 (defaults to now).")
}

func (p *addTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" || p.ticker == "" || p.side == "" || p.qty == "" || p.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	tx, err := p.buildTransaction()
	if err != nil {
		return fail(err)
	}

	s, _ := store()
	validated, err := s.Append(p.name, tx)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("✅ Added to %q: %s\n", p.name, renderer.Transaction(validated))
	return subcommands.ExitSuccess
}

// buildTransaction parses the raw flag values into a transaction. Full
// validation against the portfolio base currency happens inside Append.
func (p *addTxCmd) buildTransaction() (portfolio.Transaction, error) {
	pair, err := portfolio.ParsePair(p.ticker)
	if err != nil {
		return portfolio.Transaction{}, err
	}
	side, err := portfolio.ParseSide(p.side)
	if err != nil {
		return portfolio.Transaction{}, err
	}
	qty, err := portfolio.ParseQuantity(p.qty)
	if err != nil {
		return portfolio.Transaction{}, fmt.Errorf("qty: %w", err)
	}
	price, err := portfolio.ParseMoney(p.price, pair.Quote)
	if err != nil {
		return portfolio.Transaction{}, fmt.Errorf("price: %w", err)
	}
	fee, err := portfolio.ParseMoney(p.fee, "")
	if err != nil {
		return portfolio.Transaction{}, fmt.Errorf("fee: %w", err)
	}

	var when time.Time
	if p.when != "" {
		if when, err = time.Parse(time.RFC3339, p.when); err != nil {
			return portfolio.Transaction{}, fmt.Errorf("%w: bad time %q (want RFC3339)", portfolio.ErrParse, p.when)
		}
	}
	return portfolio.NewTransaction(when, pair, side, qty, price, fee), nil
}
