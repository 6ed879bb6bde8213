package cmd

import (
	"context"
	"flag"

	"github.com/csvpt/portfolio/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	name string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show all transactions of a portfolio" }
func (*showCmd) Usage() string {
	return `csvpt show -n <name>

  Lists all transactions recorded in the portfolio, in chronological order.
`
}

func (p *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Name of the portfolio to show.")
	f.StringVar(&p.name, "n", "", "Shorthand for -name.")
}

func (p *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	s, _ := store()
	ledger, err := s.Open(p.name)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Transactions(ledger))
	return subcommands.ExitSuccess
}
