package ledger

import (
	"fjacquet/sheet-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Summarize folds a collection into income, expense and balance totals.
// Expenses are accumulated as a positive magnitude; an empty collection
// yields all zeros.
func Summarize(transactions []models.Transaction) models.Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		switch {
		case t.Amount.IsPositive():
			income = income.Add(t.Amount)
		case t.Amount.IsNegative():
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return models.Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}
