package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseTxType(t *testing.T) {
	for _, in := range []string{"income", " Expense "} {
		if _, err := ParseTxType(in); err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
	}
	if _, err := ParseTxType("transfer"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"", FilterAll, true},
		{"all", FilterAll, true},
		{"INCOME", FilterIncome, true},
		{"expense", FilterExpense, true},
		{"other", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %q, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	if !FilterAll.Matches(Income) || !FilterAll.Matches(Expense) {
		t.Fatal("all must match every type")
	}
	if !FilterIncome.Matches(Income) || FilterIncome.Matches(Expense) {
		t.Fatal("income filter mismatch")
	}
	if FilterExpense.Matches(Income) || !FilterExpense.Matches(Expense) {
		t.Fatal("expense filter mismatch")
	}
}

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Description: "Lunch",
		Amount:      decimal.NewFromInt(15),
		Type:        Expense,
		Category:    "Food",
		Date:        NewDate(2024, time.January, 2),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Draft{
		{Description: "", Amount: decimal.NewFromInt(1), Type: Expense, Category: "c", Date: good.Date},
		{Description: "a", Amount: decimal.Zero, Type: Expense, Category: "c", Date: good.Date},
		{Description: "a", Amount: decimal.NewFromInt(-1), Type: Expense, Category: "c", Date: good.Date},
		{Description: "a", Amount: decimal.NewFromInt(1), Type: "gift", Category: "c", Date: good.Date},
		{Description: "a", Amount: decimal.NewFromInt(1), Type: Income, Category: " ", Date: good.Date},
		{Description: "a", Amount: decimal.NewFromInt(1), Type: Income, Category: "c"},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTotalsAddSub(t *testing.T) {
	salary := Transaction{ID: 1, Amount: decimal.NewFromInt(1000), Type: Income}
	lunch := Transaction{ID: 2, Amount: decimal.NewFromInt(15), Type: Expense}

	var s Totals
	s = s.Add(salary).Add(lunch)
	if !s.Balance.Equal(decimal.NewFromInt(985)) {
		t.Fatalf("balance = %s", s.Balance)
	}
	s = s.Sub(lunch)
	if !s.Expenses.IsZero() || !s.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("after sub: %+v", s)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	d := Draft{Description: "x", Amount: decimal.NewFromInt(3), Type: Income, Category: "c", Date: NewDate(2024, 3, 1)}
	tx := d.WithID(42)
	if tx.ID != 42 || tx.Draft() != d {
		t.Fatalf("unexpected %+v", tx)
	}
}
