package cli

import (
	"flag"

	"pocketledger/internal/core"
)

// draftFlags are the transaction fields shared by add and edit.
type draftFlags struct {
	description string
	amount      string
	typ         string
	category    string
	date        string
}

func (d *draftFlags) register(f *flag.FlagSet, defaultDate string) {
	f.StringVar(&d.description, "desc", "", "Description of the transaction.")
	f.StringVar(&d.amount, "amount", "", "Positive amount, e.g. 12.50.")
	f.StringVar(&d.typ, "type", "", "income or expense.")
	f.StringVar(&d.category, "category", "", "Category, e.g. Food.")
	f.StringVar(&d.date, "date", defaultDate, "Date in YYYY-MM-DD format.")
}

// apply overlays the flags that were given on base and validates the result.
func (d *draftFlags) apply(base core.Draft) (core.Draft, error) {
	if d.description != "" {
		base.Description = d.description
	}
	if d.category != "" {
		base.Category = d.category
	}
	if d.amount != "" {
		amount, err := core.ParseAmount(d.amount)
		if err != nil {
			return base, usagef("amount %q: %w", d.amount, err)
		}
		base.Amount = amount
	}
	if d.typ != "" {
		typ, err := core.ParseTxType(d.typ)
		if err != nil {
			return base, usageError{err}
		}
		base.Type = typ
	}
	if d.date != "" {
		date, err := core.ParseDate(d.date)
		if err != nil {
			return base, usageError{err}
		}
		base.Date = date
	}
	if err := base.Validate(); err != nil {
		return base, usageError{err}
	}
	return base, nil
}
