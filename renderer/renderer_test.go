package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/csvpt/portfolio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parseMarkdown parses source with table support and returns the document root.
func parseMarkdown(t *testing.T, source string) ast.Node {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	return md.Parser().Parse(text.NewReader([]byte(source)))
}

// countNodes walks the document and counts nodes of the given kind.
func countNodes(t *testing.T, doc ast.Node, source string, kind ast.NodeKind) int {
	t.Helper()
	count := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == kind {
			count++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return count
}

func testReport(t *testing.T) *portfolio.Report {
	t.Helper()
	l := portfolio.NewLedger("main", "USD")
	trades := []portfolio.Transaction{
		buildTx(t, "2024-01-01T00:00:00Z", "BTC/USD", portfolio.Buy, "0.2", "40000", "12"),
		buildTx(t, "2024-02-01T00:00:00Z", "ETH/USD", portfolio.Buy, "3", "2000", "5"),
		buildTx(t, "2024-03-01T00:00:00Z", "BTC/USD", portfolio.Sell, "0.1", "50000", "2"),
	}
	for _, tx := range trades {
		if _, err := l.Append(tx); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}
	prices := func(ticker string) (portfolio.Money, bool) {
		if ticker == "BTC" {
			return portfolio.M(60000.0, "USD"), true
		}
		return portfolio.Money{}, false
	}
	r, err := portfolio.NewReport(l, prices, portfolio.OversellError)
	if err != nil {
		t.Fatalf("NewReport() failed: %v", err)
	}
	return r
}

func buildTx(t *testing.T, when, ticker string, side portfolio.Side, qty, price, fee string) portfolio.Transaction {
	t.Helper()
	pair, err := portfolio.ParsePair(ticker)
	if err != nil {
		t.Fatal(err)
	}
	q, err := portfolio.ParseQuantity(qty)
	if err != nil {
		t.Fatal(err)
	}
	p, err := portfolio.ParseMoney(price, pair.Quote)
	if err != nil {
		t.Fatal(err)
	}
	f, err := portfolio.ParseMoney(fee, "USD")
	if err != nil {
		t.Fatal(err)
	}
	tm, err := time.Parse(time.RFC3339, when)
	if err != nil {
		t.Fatal(err)
	}
	return portfolio.NewTransaction(tm, pair, side, q, p, f)
}

func TestHoldings_IsValidMarkdown(t *testing.T) {
	out := Holdings(testReport(t))
	doc := parseMarkdown(t, out)

	if n := countNodes(t, doc, out, ast.KindHeading); n != 1 {
		t.Errorf("holdings markdown has %d headings, want 1", n)
	}
	if n := countNodes(t, doc, out, east.KindTable); n != 1 {
		t.Errorf("holdings markdown has %d tables, want 1", n)
	}
	// One row per ticker.
	if n := countNodes(t, doc, out, east.KindTableRow); n != 2 {
		t.Errorf("holdings markdown has %d body rows, want 2", n)
	}
}

func TestHoldings_PartialTotal(t *testing.T) {
	out := Holdings(testReport(t))
	if !strings.Contains(out, "partial") {
		t.Errorf("report with a missing price must advertise a partial total:\n%s", out)
	}
	if !strings.Contains(out, "n/a") {
		t.Errorf("unquoted ticker must render n/a, not zero:\n%s", out)
	}
}

func TestTransactions_IsValidMarkdown(t *testing.T) {
	l := portfolio.NewLedger("main", "USD")
	if _, err := l.Append(buildTx(t, "2024-01-01T00:00:00Z", "BTC/USD", portfolio.Buy, "0.2", "40000", "12")); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	out := Transactions(l)
	doc := parseMarkdown(t, out)
	if n := countNodes(t, doc, out, east.KindTable); n != 1 {
		t.Errorf("transactions markdown has %d tables, want 1", n)
	}
	if !strings.Contains(out, "BTC/USD") {
		t.Errorf("transactions markdown misses the pair:\n%s", out)
	}
}

func TestTransactions_Empty(t *testing.T) {
	out := Transactions(portfolio.NewLedger("empty", "USD"))
	if !strings.Contains(out, "No transactions") {
		t.Errorf("empty ledger rendering = %q", out)
	}
}
