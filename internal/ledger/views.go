package ledger

import (
	"sort"
	"strings"

	"fjacquet/sheet-ledger/internal/models"
)

// IncomeOnly keeps transactions with a positive amount or an income
// category keyword.
func IncomeOnly(transactions []models.Transaction) []models.Transaction {
	return IncomeMatching(transactions, models.IncomeKeywords)
}

// IncomeMatching is IncomeOnly with a caller-supplied keyword list.
// Keywords are matched as lower-case substrings of the category.
func IncomeMatching(transactions []models.Transaction, keywords []string) []models.Transaction {
	return filter(transactions, func(t models.Transaction) bool {
		return t.Amount.IsPositive() || hasKeyword(t.Category, keywords)
	})
}

// ExpensesOnly keeps transactions with a negative amount or an expense
// category keyword.
func ExpensesOnly(transactions []models.Transaction) []models.Transaction {
	return ExpensesMatching(transactions, models.ExpenseKeywords)
}

// ExpensesMatching is ExpensesOnly with a caller-supplied keyword list.
func ExpensesMatching(transactions []models.Transaction, keywords []string) []models.Transaction {
	return filter(transactions, func(t models.Transaction) bool {
		return t.Amount.IsNegative() || hasKeyword(t.Category, keywords)
	})
}

// ForMonth keeps transactions dated in the given calendar month (1-12) of
// any year.
func ForMonth(transactions []models.Transaction, month int) []models.Transaction {
	return filter(transactions, func(t models.Transaction) bool {
		return int(t.Date.Month()) == month
	})
}

// SortByDateDesc returns a copy ordered newest first. Transactions on the
// same date keep their relative order.
func SortByDateDesc(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

func filter(transactions []models.Transaction, keep func(models.Transaction) bool) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func hasKeyword(category string, keywords []string) bool {
	category = strings.ToLower(category)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(category, kw) {
			return true
		}
	}
	return false
}
