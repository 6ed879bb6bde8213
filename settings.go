package portfolio

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables understood by the tool.
const (
	envPortfolioDir = "CSVPT_PORTFOLIO_DIR"
	envBaseCurrency = "CSVPT_BASE_CURRENCY"
)

// Settings are the few knobs of the tool, resolved in priority order:
// built-in defaults, then the user dotfile, then environment variables.
// Command line flags override on top, in the cmd package.
type Settings struct {
	PortfolioDir string // directory holding one CSV ledger per portfolio
	BaseCurrency string // default base currency for new portfolios
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{PortfolioDir: "portfolios", BaseCurrency: DefaultCurrency}
}

// LoadSettings resolves settings from defaults, the optional dotfile at
// ~/.config/csvpt/config.env and CSVPT_* environment variables. The dotfile
// never overrides variables already set in the environment. An unknown base
// currency falls back to USD with a warning instead of failing.
func LoadSettings() Settings {
	s := DefaultSettings()

	if home, err := os.UserHomeDir(); err == nil {
		dotfile := filepath.Join(home, ".config", "csvpt", "config.env")
		if _, err := os.Stat(dotfile); err == nil {
			if err := godotenv.Load(dotfile); err != nil {
				log.Printf("warning: cannot read config %q: %v", dotfile, err)
			}
		}
	}

	if v := os.Getenv(envPortfolioDir); v != "" {
		s.PortfolioDir = v
	}
	if v := os.Getenv(envBaseCurrency); v != "" {
		s.BaseCurrency = strings.ToUpper(strings.TrimSpace(v))
	}

	if !KnownCurrency(s.BaseCurrency) {
		log.Printf("warning: unknown base currency %q, using %s", s.BaseCurrency, DefaultCurrency)
		s.BaseCurrency = DefaultCurrency
	}
	return s
}
