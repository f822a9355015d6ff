// Package core holds the ledger domain types and their money handling.
//
// Amounts are exact decimals (shopspring/decimal). Parsing accepts what a
// user types in an amount field; formatting renders two decimals with a
// dollar sign, the way the ledger widget displays every figure.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Fraction is the number of decimals every displayed amount carries.
const Fraction = 2

// dollars formats cents as "$1234.56": no thousands separator, minus sign
// in front of the symbol.
var dollars = money.NewFormatter(Fraction, ".", "", "$", "$1")

// ParseAmount converts user input to a positive amount with two decimals.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rounds to cents, half away from zero. Signs, anything but ASCII digits and
// zero are rejected with ErrInvalidAmount, so a bad amount never reaches
// the ledger totals.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,34")  -> 12.34
//	ParseAmount("12.345") -> 12.35
//	ParseAmount("abc")    -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	// Only ASCII digits and one separator; signs and exponents are not
	// something a user types in an amount field.
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(Fraction)
	if !d.IsPositive() || !d.LessThan(maxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// maxAmount keeps a single amount, in cents, well inside int64.
var maxAmount = decimal.New(math.MaxInt64/100, 0)

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Cents rounds d to two decimals, half away from zero, and returns the
// result in hundredths. ok is false when the result does not fit in int64.
func Cents(d decimal.Decimal) (cents int64, ok bool) {
	c := d.Round(Fraction).Shift(Fraction)
	if c.LessThan(minCents) || c.GreaterThan(maxCents) {
		return 0, false
	}
	return c.IntPart(), true
}

// FormatMoney renders d as "$985.00" (or "-$15.00").
func FormatMoney(d decimal.Decimal) string {
	if c, ok := Cents(d); ok {
		return dollars.Format(c)
	}
	// Beyond int64 cents: same layout, straight from the decimal.
	abs := "$" + d.Abs().StringFixed(Fraction)
	if d.IsNegative() {
		return "-" + abs
	}
	return abs
}

// FormatSigned renders the amount of t prefixed by "+" for income and "-"
// for expenses, e.g. "+$1000.00".
func FormatSigned(t Transaction) string {
	abs := FormatMoney(t.Amount.Abs())
	if t.Type == Expense {
		return "-" + abs
	}
	return "+" + abs
}

// Percent is a relative magnitude expressed in percent.
type Percent float64

// Equal compares percents with a small tolerance.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
