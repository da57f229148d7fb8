// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"

	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/validation"
)

// Ledger is the part of the register the commands drive.
type Ledger interface {
	Load(ctx context.Context) (models.View, error)
	All() models.View
	IncomeOnly() models.View
	ExpensesOnly() models.View
	FilterByMonth(m int) (models.View, error)
}

// LoadView loads the register and returns the requested view. A non-zero
// month selects the month view and takes precedence over viewName.
func LoadView(ctx context.Context, ledger Ledger, viewName string, month int, log logging.Logger) (models.View, error) {
	mode, err := validation.ParseView(viewName)
	if err != nil {
		return models.View{}, err
	}
	if err := validation.IsValidMonth(month); err != nil {
		return models.View{}, err
	}

	loaded, err := ledger.Load(ctx)
	if err != nil {
		return models.View{}, fmt.Errorf("loading transactions: %w", err)
	}
	log.Info("Transactions loaded",
		logging.F(logging.FieldSource, loaded.Source),
		logging.F(logging.FieldCount, len(loaded.Transactions)))

	switch {
	case month != 0:
		return ledger.FilterByMonth(month)
	case mode == models.ViewIncome:
		return ledger.IncomeOnly(), nil
	case mode == models.ViewExpenses:
		return ledger.ExpensesOnly(), nil
	default:
		return ledger.All(), nil
	}
}
