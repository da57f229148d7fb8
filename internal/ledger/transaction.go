// Package ledger turns raw sheet rows into validated transactions and
// derives the totals and filtered views shown to the user.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/sheet-ledger/internal/currencyutils"
	"fjacquet/sheet-ledger/internal/dateutils"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/parsererror"
)

const parserName = "ledger"

var (
	errUnparsableDate = errors.New("unrecognized date")
	errZeroAmount     = errors.New("zero or unreadable amount")
)

// ParseTransaction converts a raw row into a transaction, reporting why the
// row was rejected. index is the zero-based position of the row in its load;
// the resulting ID is index+1 whether or not earlier rows were rejected.
//
// A row with an amount of exactly zero is rejected even if the cell really
// holds 0, since it can't be told apart from an unreadable amount.
func ParseTransaction(row models.RawRow, index int) (models.Transaction, error) {
	date, ok := dateutils.ParseDate(row.Date)
	if !ok {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "date",
			Value:  row.Date,
			Err:    errUnparsableDate,
		}
	}

	amount := currencyutils.ParseAmount(row.Amount)
	if amount.IsZero() {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: parserName,
			Field:  "amount",
			Value:  fmt.Sprint(row.Amount),
			Err:    errZeroAmount,
		}
	}

	description := strings.TrimSpace(row.Description)
	if description == "" {
		description = models.DefaultDescription
	}
	category := strings.TrimSpace(row.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	return models.Transaction{
		ID:          index + 1,
		Date:        date,
		Description: description,
		Category:    category,
		Amount:      amount,
	}, nil
}

// BuildTransaction is ParseTransaction without the reason: ok is false when
// the row is not a valid transaction.
func BuildTransaction(row models.RawRow, index int) (models.Transaction, bool) {
	t, err := ParseTransaction(row, index)
	return t, err == nil
}

// Result is the outcome of converting a batch of rows.
type Result struct {
	Transactions []models.Transaction
	// Rejected holds one error per dropped row, in row order.
	Rejected []error
}

// Dropped returns how many rows were discarded.
func (r Result) Dropped() int {
	return len(r.Rejected)
}

// FromRecords converts delimited records (header already removed) into
// transactions, keeping source order.
func FromRecords(records [][]string) Result {
	rows := make([]models.RawRow, len(records))
	for i, fields := range records {
		rows[i] = models.NewRawRow(fields)
	}
	return fromRawRows(rows)
}

// FromCells converts Sheets API value rows (header already removed) into
// transactions, keeping source order.
func FromCells(cells [][]interface{}) Result {
	rows := make([]models.RawRow, len(cells))
	for i, c := range cells {
		rows[i] = models.NewRawRowFromCells(c)
	}
	return fromRawRows(rows)
}

func fromRawRows(rows []models.RawRow) Result {
	result := Result{Transactions: make([]models.Transaction, 0, len(rows))}
	for i, row := range rows {
		t, err := ParseTransaction(row, i)
		if err != nil {
			result.Rejected = append(result.Rejected, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		result.Transactions = append(result.Transactions, t)
	}
	return result
}
