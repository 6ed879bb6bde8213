package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/csvpt/portfolio"
	"github.com/csvpt/portfolio/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	name     string
	oversell string
	offline  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "report holdings, average cost and PnL of a portfolio" }
func (*reportCmd) Usage() string {
	return `csvpt report -n <name> [-oversell <policy>] [-offline]

  Derives per-ticker holdings from the transaction ledger: quantity,
  average cost basis, realized PnL, fees, and (when current prices are
  available) unrealized PnL and a portfolio total. Without prices the
  report is rendered anyway and the total is flagged as partial.
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Name of the portfolio to report on.")
	f.StringVar(&p.name, "n", "", "Shorthand for -name.")
	f.StringVar(&p.oversell, "oversell", "error", "Policy when a sell exceeds holdings (error, negative).")
	f.BoolVar(&p.offline, "offline", false, "Do not fetch current prices, report realized figures only.")
}

func (p *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	policy, err := portfolio.ParseOversellPolicy(p.oversell)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, _ := store()
	ledger, err := s.Open(p.name)
	if err != nil {
		return fail(err)
	}

	var quotes portfolio.PriceLookup = portfolio.NoPrices
	if !p.offline {
		quotes, err = portfolio.FetchQuotes(tickers(ledger), ledger.BaseCurrency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no current prices (%v), reporting realized figures only\n", err)
			quotes = portfolio.NoPrices
		}
	}

	report, err := portfolio.NewReport(ledger, quotes, policy)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Holdings(report))
	return subcommands.ExitSuccess
}

// tickers collects the distinct tickers traded in the ledger.
func tickers(l *portfolio.Ledger) []string {
	seen := make(map[string]bool)
	var out []string
	for tx := range l.Transactions() {
		if !seen[tx.Pair.Base] {
			seen[tx.Pair.Base] = true
			out = append(out, tx.Pair.Base)
		}
	}
	return out
}
