// Package validation checks user input coming from CLI flags and HTTP
// query parameters.
package validation

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"fjacquet/sheet-ledger/internal/models"
)

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'table', 'json', 'yaml'", format)
	}
}

// ParseView maps a view name to a ViewMode. Empty means all. "expenses" is
// accepted as an alias of "expense". The month view is selected with a
// month number instead.
func ParseView(name string) (models.ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(models.ViewAll):
		return models.ViewAll, nil
	case string(models.ViewIncome):
		return models.ViewIncome, nil
	case string(models.ViewExpenses), "expenses":
		return models.ViewExpenses, nil
	default:
		return "", fmt.Errorf("unknown view: %s. Supported views are 'all', 'income', 'expense'", name)
	}
}

// ParseMonth parses a month number. Empty means no filter (0).
func ParseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	if err := IsValidMonth(m); err != nil {
		return 0, err
	}
	return m, nil
}

// IsValidMonth accepts 0 (no filter) and 1-12.
func IsValidMonth(m int) error {
	if m < 0 || m > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", m)
	}
	return nil
}

// IsValidOutputPath rejects empty paths and paths naming an existing
// directory.
func IsValidOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("output path must not be empty")
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}
	return nil
}
