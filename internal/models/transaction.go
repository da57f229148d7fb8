// Package models provides the data structures shared by the ledger pipeline.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized ledger record.
type Transaction struct {
	ID          int             `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"` // positive = income, negative = expense
}

// IsIncome reports whether the amount is positive.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the amount is negative.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Month returns the calendar month of the transaction date.
func (t Transaction) Month() time.Month {
	return t.Date.Month()
}

// RawRow is a sheet row reduced to the fixed four-column shape
// (date, description, category, amount). Amount stays untyped so numeric
// cells coming from the Sheets API pass through without a string round-trip.
type RawRow struct {
	Date        string
	Description string
	Category    string
	Amount      interface{}
}

// Column positions in the source sheet.
const (
	ColDate = iota
	ColDescription
	ColCategory
	ColAmount
)

// NewRawRow builds a RawRow from delimited fields. Missing trailing fields
// are left empty and extra fields are ignored.
func NewRawRow(fields []string) RawRow {
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return RawRow{
		Date:        get(ColDate),
		Description: get(ColDescription),
		Category:    get(ColCategory),
		Amount:      get(ColAmount),
	}
}

// NewRawRowFromCells builds a RawRow from loosely typed API cells.
func NewRawRowFromCells(cells []interface{}) RawRow {
	str := func(i int) string {
		if i >= len(cells) || cells[i] == nil {
			return ""
		}
		if s, ok := cells[i].(string); ok {
			return s
		}
		return fmt.Sprint(cells[i])
	}
	var amount interface{} = ""
	if ColAmount < len(cells) && cells[ColAmount] != nil {
		amount = cells[ColAmount]
	}
	return RawRow{
		Date:        str(ColDate),
		Description: str(ColDescription),
		Category:    str(ColCategory),
		Amount:      amount,
	}
}
