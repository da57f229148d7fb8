package models

// Source identifies where the current collection was loaded from.
type Source string

const (
	SourceNone      Source = ""
	SourceCSVExport Source = "csv-export"
	SourceSheetsAPI Source = "sheets-api"
	SourceDemo      Source = "demo"
)

// ViewMode names the active ledger view.
type ViewMode string

const (
	ViewAll      ViewMode = "all"
	ViewIncome   ViewMode = "income"
	ViewExpenses ViewMode = "expense"
	ViewMonth    ViewMode = "month"
)

// View is the snapshot handed to a presenter: transactions ordered by date
// descending, the totals to display and a status line.
type View struct {
	LoadID       string        `json:"load_id" yaml:"load_id"`
	Source       Source        `json:"source" yaml:"source"`
	Mode         ViewMode      `json:"mode" yaml:"mode"`
	Month        int           `json:"month,omitempty" yaml:"month,omitempty"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	Summary      Summary       `json:"summary" yaml:"summary"`
	Status       string        `json:"status" yaml:"status"`
}
