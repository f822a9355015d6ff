package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

type (
	// TxType tells whether a transaction adds to or subtracts from the balance.
	TxType string

	// Filter selects which transactions appear in the rendered view.
	Filter string

	// Transaction is a single ledger entry. Transactions are never modified
	// once recorded; an edit removes the entry and records a new one.
	Transaction struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Type        TxType          `json:"type"`
		Category    string          `json:"category"`
		Date        Date            `json:"date"`
	}

	// Draft is a transaction as supplied by the input surface, before an id
	// has been assigned.
	Draft struct {
		Description string
		Amount      decimal.Decimal
		Type        TxType
		Category    string
		Date        Date
	}

	// Totals are the aggregate figures over the whole ledger.
	Totals struct {
		Income   decimal.Decimal
		Expenses decimal.Decimal
		Balance  decimal.Decimal
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")

	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

func (t TxType) String() string { return string(t) }

// IsValid reports whether t is one of the known transaction types.
func (t TxType) IsValid() bool {
	return t == Income || t == Expense
}

// ParseTxType parses "income" or "expense", case-insensitively.
func ParseTxType(s string) (TxType, error) {
	t := TxType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

func (f Filter) String() string { return string(f) }

// Matches reports whether a transaction of type t passes the filter.
func (f Filter) Matches(t TxType) bool {
	switch f {
	case FilterIncome:
		return t == Income
	case FilterExpense:
		return t == Expense
	default:
		return true
	}
}

// ParseFilter parses a filter selector. An empty string selects all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterIncome, FilterExpense:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Validate checks the draft the way the input form does.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if len(d.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// WithID turns the draft into a transaction carrying id.
func (d Draft) WithID(id int64) Transaction {
	return Transaction{
		ID:          id,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    d.Category,
		Date:        d.Date,
	}
}

// Draft returns the editable fields of t.
func (t Transaction) Draft() Draft {
	return Draft{
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Date:        t.Date,
	}
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Add accumulates t into the totals.
func (s Totals) Add(t Transaction) Totals {
	switch t.Type {
	case Income:
		s.Income = s.Income.Add(t.Amount)
	case Expense:
		s.Expenses = s.Expenses.Add(t.Amount)
	}
	s.Balance = s.Income.Sub(s.Expenses)
	return s
}

// Sub removes t from the totals.
func (s Totals) Sub(t Transaction) Totals {
	switch t.Type {
	case Income:
		s.Income = s.Income.Sub(t.Amount)
	case Expense:
		s.Expenses = s.Expenses.Sub(t.Amount)
	}
	s.Balance = s.Income.Sub(s.Expenses)
	return s
}

// Equal compares totals by value.
func (s Totals) Equal(o Totals) bool {
	return s.Income.Equal(o.Income) && s.Expenses.Equal(o.Expenses) && s.Balance.Equal(o.Balance)
}
