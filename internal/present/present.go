// Package present computes everything the ledger view displays from a
// snapshot of transactions: the filtered and sorted list, the totals and
// the per-category expense breakdown.
//
// Nothing here keeps state; every call recomputes from the snapshot.
package present

import (
	"slices"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

const (
	// EmptyView is shown when no transaction passes the filter.
	EmptyView = "No transactions found."
	// EmptyBreakdown is shown when the ledger holds no expenses.
	EmptyBreakdown = "No expenses to show."
)

// Item is one row of the transaction list.
type Item struct {
	core.Transaction
	SignedAmount string `json:"signed_amount"`
	DisplayDate  string `json:"display_date"`
}

// Category is one row of the category breakdown.
type Category struct {
	core.CategoryAmount
	FormattedAmount string `json:"formatted_amount"`
}

// Summary is the full set of values handed to a renderer on each refresh.
type Summary struct {
	Filter        core.Filter `json:"filter"`
	Items         []Item      `json:"items"`
	Empty         string      `json:"empty,omitempty"`
	Balance       string      `json:"balance"`
	Income        string      `json:"income"`
	Expenses      string      `json:"expenses"`
	Totals        core.Totals `json:"-"`
	Categories    []Category  `json:"categories"`
	CategoryEmpty string      `json:"category_empty,omitempty"`
	Count         int         `json:"count"`
}

// Filter returns the transactions whose type passes f, in snapshot order.
func Filter(txs []core.Transaction, f core.Filter) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t.Type) {
			out = append(out, t)
		}
	}
	return out
}

// View filters txs and sorts them most recent first. Transactions on the
// same date appear in reverse insertion order, the latest added first.
func View(txs []core.Transaction, f core.Filter) []core.Transaction {
	out := Filter(txs, f)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Totals sums income and expenses over all of txs, whatever the filter.
func Totals(txs []core.Transaction) core.Totals {
	var s core.Totals
	for _, t := range txs {
		s = s.Add(t)
	}
	return s
}

// Breakdown groups expenses by category, largest first. Categories with
// equal sums keep the order in which they first appear. Percent is relative
// to the largest category, which is always 100.
func Breakdown(txs []core.Transaction) []core.CategoryAmount {
	var groups []core.CategoryAmount
	index := map[string]int{}
	for _, t := range txs {
		if t.Type != core.Expense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, core.CategoryAmount{Name: t.Category, Amount: decimal.Zero})
		}
		groups[i].Amount = groups[i].Amount.Add(t.Amount)
	}
	if len(groups) == 0 {
		return nil
	}

	slices.SortStableFunc(groups, func(a, b core.CategoryAmount) int {
		return b.Amount.Cmp(a.Amount)
	})

	maxAmount := groups[0].Amount
	hundred := decimal.NewFromInt(100)
	for i := range groups {
		groups[i].Percent = percent(groups[i].Amount, maxAmount, hundred)
	}
	return groups
}

func percent(amount, maxAmount, hundred decimal.Decimal) core.Percent {
	if amount.Equal(maxAmount) {
		return 100
	}
	if maxAmount.IsZero() {
		return 0
	}
	return core.Percent(amount.Mul(hundred).Div(maxAmount).InexactFloat64())
}

// Render computes the summary for the snapshot under filter f.
func Render(txs []core.Transaction, f core.Filter) Summary {
	view := View(txs, f)
	totals := Totals(txs)

	s := Summary{
		Filter:   f,
		Items:    make([]Item, 0, len(view)),
		Balance:  core.FormatMoney(totals.Balance),
		Income:   core.FormatMoney(totals.Income),
		Expenses: core.FormatMoney(totals.Expenses),
		Totals:   totals,
		Count:    len(txs),
	}
	for _, t := range view {
		s.Items = append(s.Items, Item{
			Transaction:  t,
			SignedAmount: core.FormatSigned(t),
			DisplayDate:  t.Date.Display(),
		})
	}
	if len(s.Items) == 0 {
		s.Empty = EmptyView
	}

	groups := Breakdown(txs)
	s.Categories = make([]Category, 0, len(groups))
	for _, g := range groups {
		s.Categories = append(s.Categories, Category{
			CategoryAmount:  g,
			FormattedAmount: core.FormatMoney(g.Amount),
		})
	}
	if len(s.Categories) == 0 {
		s.CategoryEmpty = EmptyBreakdown
	}
	return s
}
