package renderer

import (
	"fmt"
	"strings"

	"github.com/csvpt/portfolio"
)

// Holdings renders a holdings report as a markdown document: one table row
// per ticker and a totals section.
//
// Unrealized PnL is printed as "n/a" for tickers with no current price, and
// the total is marked partial in that case rather than pretending the
// missing positions are worth zero.
func Holdings(r *portfolio.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings: %s (%s)\n\n", r.Name, r.Currency)

	if len(r.Holdings) == 0 {
		fmt.Fprintln(&b, "No holdings.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Ticker | Quantity | Avg Cost | Price | Unrealized | Realized | Fees |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, h := range r.Holdings {
		price, unrealized := "n/a", "n/a"
		if h.HasPrice {
			price = h.Price.String()
			unrealized = h.Unrealized.SignedString()
		}
		ticker := h.Ticker
		if h.Oversold {
			ticker += " (oversold)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			ticker,
			h.Quantity,
			h.AverageCost,
			price,
			unrealized,
			h.Realized.SignedString(),
			h.Fees,
		)
	}

	fmt.Fprintf(&b, "\nRealized PnL: %s | Fees: %s\n", r.Realized.SignedString(), r.Fees)
	if r.Partial {
		fmt.Fprintf(&b, "\n**Total (partial, some prices unavailable): %s**\n", r.Total.SignedString())
	} else {
		fmt.Fprintf(&b, "\n**Total: %s**\n", r.Total.SignedString())
	}
	return b.String()
}
