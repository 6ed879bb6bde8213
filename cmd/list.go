package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all portfolios" }
func (*listCmd) Usage() string {
	return `csvpt list

  Lists the portfolios found in the portfolio directory, one per line.
  Files that are not portfolio ledgers are ignored.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (p *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _ := store()
	names, err := s.List()
	if err != nil {
		return fail(err)
	}
	if len(names) == 0 {
		fmt.Printf("No portfolios in %q. Create one with 'csvpt new -n <name>'.\n", s.Dir())
		return subcommands.ExitSuccess
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}
