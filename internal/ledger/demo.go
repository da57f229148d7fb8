package ledger

import (
	"time"

	"fjacquet/sheet-ledger/internal/models"

	"github.com/shopspring/decimal"
)

type demoRow struct {
	day         int
	description string
	category    string
	amount      string
}

var demoRows = []demoRow{
	{1, "Такса за храна - октомври", "Приход", "250.00"},
	{2, "Покупка на играчки", "Разход", "-45.50"},
	{3, "Дарение от родители", "Приход", "100.00"},
	{5, "Почистващи препарати", "Разход", "-25.80"},
	{8, "Такса за дейности", "Приход", "150.00"},
	{10, "Материали за рисуване", "Разход", "-30.20"},
	{12, "Допълнителна такса", "Приход", "75.00"},
	{15, "Храна и напитки", "Разход", "-85.60"},
	{18, "Събитие в градината", "Приход", "200.00"},
	{20, "Ремонт на оборудване", "Разход", "-120.00"},
}

// DemoTransactions returns the fixed October 2024 dataset shown when no
// remote source is reachable. Totals: income 775.00, expenses 307.10,
// balance 467.90. Each call returns a fresh slice.
func DemoTransactions() []models.Transaction {
	out := make([]models.Transaction, len(demoRows))
	for i, r := range demoRows {
		out[i] = models.Transaction{
			ID:          i + 1,
			Date:        time.Date(2024, time.October, r.day, 0, 0, 0, 0, time.UTC),
			Description: r.description,
			Category:    r.category,
			Amount:      decimal.RequireFromString(r.amount),
		}
	}
	return out
}
