package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

func TestEncodeWireFormat(t *testing.T) {
	txs := []core.Transaction{{
		ID:          1704067200000,
		Description: "Salary",
		Amount:      decimal.NewFromInt(1000),
		Type:        core.Income,
		Category:    "Job",
		Date:        core.MustParseDate("2024-01-01"),
	}, {
		ID:          1704067200001,
		Description: "Lunch",
		Amount:      decimal.RequireFromString("15.50"),
		Type:        core.Expense,
		Category:    "Food",
		Date:        core.MustParseDate("2024-01-02"),
	}}
	got, err := Encode(txs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":1704067200000,"description":"Salary","amount":1000,"type":"income","category":"Job","date":"2024-01-01"},` +
		`{"id":1704067200001,"description":"Lunch","amount":15.5,"type":"expense","category":"Food","date":"2024-01-02"}]`
	if got != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	for _, in := range [][]core.Transaction{nil, {}} {
		if got, _ := Encode(in); got != "[]" {
			t.Fatalf("expected [], got %q", got)
		}
	}
}

func TestDecodeLenient(t *testing.T) {
	value := `[{"id":1,"description":"a","amount":"12.30","type":"expense","category":"c","date":"2024-3-9"}]`
	txs, err := Decode(value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected one transaction, got %d", len(txs))
	}
	tx := txs[0]
	if !tx.Amount.Equal(decimal.RequireFromString("12.3")) {
		t.Errorf("amount = %s", tx.Amount)
	}
	if tx.Date != core.NewDate(2024, time.March, 9) {
		t.Errorf("date = %s", tx.Date)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "{", `[{"date":"yesterday"}]`} {
		if _, err := Decode(value); err == nil {
			t.Errorf("%q: expected error", value)
		}
	}
}
