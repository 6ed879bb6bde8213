package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type newCmd struct {
	name     string
	currency string
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a new, empty portfolio" }
func (*newCmd) Usage() string {
	return `csvpt new -n <name> [-c <currency>]

  Creates a new portfolio ledger file with the given base currency
  (default USD). Fails if a portfolio with that name already exists.
`
}

func (p *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Name of the portfolio to create.")
	f.StringVar(&p.name, "n", "", "Shorthand for -name.")
	f.StringVar(&p.currency, "currency", "", "Base currency of the portfolio (default from settings, USD out of the box).")
	f.StringVar(&p.currency, "c", "", "Shorthand for -currency.")
}

func (p *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	s, settings := store()
	currency := p.currency
	if currency == "" {
		currency = settings.BaseCurrency
	}

	ledger, err := s.Create(p.name, currency)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("✅ Created portfolio %q (base currency %s)\n", ledger.Name(), ledger.BaseCurrency())
	return subcommands.ExitSuccess
}
