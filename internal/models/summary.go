package models

import "github.com/shopspring/decimal"

// Summary holds the aggregate totals of a transaction collection.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income" yaml:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses" yaml:"total_expenses"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`
}

// ZeroSummary returns a Summary with every total set to zero.
func ZeroSummary() Summary {
	return Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Balance:       decimal.Zero,
	}
}
