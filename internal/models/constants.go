package models

// Defaults applied to empty source cells.
const (
	DefaultDescription = "no description"
	DefaultCategory    = "unknown"
)

// Category keywords (lower case) recognised by the income/expense views in
// addition to the amount sign. The sheet this tool was built for labels
// rows in Bulgarian.
var (
	IncomeKeywords  = []string{"приход", "income"}
	ExpenseKeywords = []string{"разход", "expense"}
)

// Keywords is the set of category keywords used by the income and expense
// views.
type Keywords struct {
	Income  []string `yaml:"income"`
	Expense []string `yaml:"expense"`
}

// DefaultKeywords returns a copy of the built-in keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Income:  append([]string(nil), IncomeKeywords...),
		Expense: append([]string(nil), ExpenseKeywords...),
	}
}

// Currency used when rendering amounts.
const DefaultCurrency = "BGN"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
