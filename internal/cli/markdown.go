package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"pocketledger/internal/present"
)

// printMarkdown renders md for the terminal, or writes it as is when plain
// is set or rendering fails.
func printMarkdown(out io.Writer, md string, plain bool) {
	if !plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if rendered, err := r.Render(md); err == nil {
				fmt.Fprint(out, rendered)
				return
			}
		}
	}
	fmt.Fprint(out, md)
}

func cell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

func renderTotals(b *strings.Builder, s present.Summary) {
	fmt.Fprintf(b, "# Balance: %s\n\n", s.Balance)
	b.WriteString("| Income | Expenses |\n|---:|---:|\n")
	fmt.Fprintf(b, "| %s | %s |\n\n", s.Income, s.Expenses)
}

func renderTransactions(b *strings.Builder, s present.Summary) {
	fmt.Fprintf(b, "## Transactions (%s)\n\n", s.Filter)
	if s.Empty != "" {
		fmt.Fprintf(b, "%s\n\n", s.Empty)
		return
	}
	b.WriteString("| ID | Date | Description | Category | Amount |\n|---|---|---|---|---:|\n")
	for _, it := range s.Items {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n", it.ID, it.DisplayDate, cell(it.Description), cell(it.Category), it.SignedAmount)
	}
	b.WriteString("\n")
}

func renderBreakdown(b *strings.Builder, s present.Summary) {
	b.WriteString("## Expenses by category\n\n")
	if s.CategoryEmpty != "" {
		fmt.Fprintf(b, "%s\n\n", s.CategoryEmpty)
		return
	}
	b.WriteString("| Category | Amount | Share |\n|---|---:|---:|\n")
	for _, c := range s.Categories {
		fmt.Fprintf(b, "| %s | %s | %s |\n", cell(c.Name), c.FormattedAmount, c.Percent)
	}
	b.WriteString("\n")
}

// SummaryMarkdown lays out a full summary: totals, the filtered
// transactions and the expense breakdown.
func SummaryMarkdown(s present.Summary) string {
	var b strings.Builder
	renderTotals(&b, s)
	renderTransactions(&b, s)
	renderBreakdown(&b, s)
	return b.String()
}

// TransactionsMarkdown lays out only the filtered transactions.
func TransactionsMarkdown(s present.Summary) string {
	var b strings.Builder
	renderTransactions(&b, s)
	return b.String()
}
