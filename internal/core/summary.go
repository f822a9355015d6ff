package core

import "github.com/shopspring/decimal"

// CategoryAmount is the expense total of one category, with its size
// relative to the largest category.
type CategoryAmount struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Percent Percent         `json:"percent"`
}
