package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// record is the persisted form of a transaction:
//
//	{"id":1704067200000,"description":"Salary","amount":1000,"type":"income","category":"Job","date":"2024-01-01"}
type record struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	Amount      amount      `json:"amount"`
	Type        core.TxType `json:"type"`
	Category    string      `json:"category"`
	Date        core.Date   `json:"date"`
}

// amount is written as a bare JSON number and read from either a number
// or a string.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}

// Encode serializes transactions as a JSON array, in order. An empty or nil
// slice encodes as "[]".
func Encode(txs []core.Transaction) (string, error) {
	recs := make([]record, len(txs))
	for i, t := range txs {
		recs[i] = record{
			ID:          t.ID,
			Description: t.Description,
			Amount:      amount(t.Amount),
			Type:        t.Type,
			Category:    t.Category,
			Date:        t.Date,
		}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}
	return string(data), nil
}

// Decode parses a value produced by Encode. A JSON null decodes as an
// empty ledger.
func Decode(value string) ([]core.Transaction, error) {
	var recs []record
	if err := json.Unmarshal([]byte(value), &recs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	txs := make([]core.Transaction, len(recs))
	for i, r := range recs {
		txs[i] = core.Transaction{
			ID:          r.ID,
			Description: r.Description,
			Amount:      decimal.Decimal(r.Amount),
			Type:        r.Type,
			Category:    r.Category,
			Date:        r.Date,
		}
	}
	return txs, nil
}
