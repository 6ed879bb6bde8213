// Package cmd implements the CLI application to manage CSV portfolios.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/csvpt/portfolio"
	"github.com/google/subcommands"
)

// Register the subcommands, with their short aliases.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	list := &listCmd{}
	c.Register(list, "portfolios")
	c.Register(subcommands.Alias("ls", list), "portfolios")
	c.Register(subcommands.Alias("l", list), "portfolios")

	create := &newCmd{}
	c.Register(create, "portfolios")
	c.Register(subcommands.Alias("n", create), "portfolios")

	show := &showCmd{}
	c.Register(show, "transactions")
	c.Register(subcommands.Alias("s", show), "transactions")

	addTx := &addTxCmd{}
	c.Register(addTx, "transactions")

	report := &reportCmd{}
	c.Register(report, "reports")
	c.Register(subcommands.Alias("r", report), "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioDir = flag.String("portfolio-dir", "", "Directory holding the portfolio CSV files.\n Defaults to the configured directory (CSVPT_PORTFOLIO_DIR or ./portfolios).")

// store resolves the portfolio directory (flag wins over settings) and
// returns the ledger store for it.
func store() (*portfolio.Store, portfolio.Settings) {
	settings := portfolio.LoadSettings()
	dir := settings.PortfolioDir
	if *portfolioDir != "" {
		dir = *portfolioDir
	}
	return portfolio.NewStore(dir), settings
}

// Exit codes, one per error class so scripts can tell failures apart.
const (
	exitValidation subcommands.ExitStatus = 3
	exitNotFound   subcommands.ExitStatus = 4
	exitExists     subcommands.ExitStatus = 5
	exitCorrupt    subcommands.ExitStatus = 6
	exitLocked     subcommands.ExitStatus = 7
)

// fail prints err and maps it to the exit status of its error class.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var corrupt *portfolio.CorruptionError
	switch {
	case errors.As(err, &corrupt):
		return exitCorrupt
	case errors.Is(err, portfolio.ErrLocked):
		return exitLocked
	case errors.Is(err, portfolio.ErrPortfolioExists):
		return exitExists
	case errors.Is(err, portfolio.ErrPortfolioNotFound):
		return exitNotFound
	case isValidation(err):
		return exitValidation
	}
	return subcommands.ExitFailure
}

func isValidation(err error) bool {
	for _, target := range []error{
		portfolio.ErrParse,
		portfolio.ErrInvalidQuantity,
		portfolio.ErrInvalidPrice,
		portfolio.ErrInvalidFee,
		portfolio.ErrInvalidSide,
		portfolio.ErrInvalidTicker,
		portfolio.ErrCurrencyMismatch,
		portfolio.ErrOversell,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// printMarkdown renders md for the terminal, falling back to the raw text
// when the renderer cannot be set up (e.g. no TTY).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
