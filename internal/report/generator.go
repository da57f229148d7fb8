// Package report renders ledger views as JSON, YAML or a plain-text table.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/sheet-ledger/internal/currencyutils"
	"fjacquet/sheet-ledger/internal/dateutils"
	"fjacquet/sheet-ledger/internal/fileutils"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Generator renders views in the supported formats.
type Generator struct {
	logger   logging.Logger
	currency string
}

// NewGenerator creates a Generator that labels amounts with currency.
func NewGenerator(logger logging.Logger, currency string) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &Generator{
		logger:   logger.WithField("component", "ReportGenerator"),
		currency: currency,
	}
}

// GenerateReport renders the view in the given format.
func (g *Generator) GenerateReport(view models.View, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSONReport(view)
	case FormatYAML:
		return g.generateYAMLReport(view)
	case FormatTable:
		var buf bytes.Buffer
		if err := g.WriteTable(&buf, view); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReportFile renders the view and writes it to path, creating the
// parent directory when needed.
func (g *Generator) WriteReportFile(view models.View, format, path string) error {
	data, err := g.GenerateReport(view, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	g.logger.Info("Wrote report",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(view.Transactions)))
	return nil
}

func (g *Generator) generateJSONReport(view models.View) ([]byte, error) {
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateYAMLReport(view models.View) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTable prints the status line, the transactions (newest first, as
// they come in the view) and the totals. Amounts are shown as magnitudes
// with the sign conveyed by an IN/OUT marker.
func (g *Generator) WriteTable(w io.Writer, view models.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if view.Status != "" {
		fmt.Fprintf(tw, "%s\n\n", view.Status)
	}

	if len(view.Transactions) == 0 {
		fmt.Fprintln(tw, "No transactions available")
	} else {
		fmt.Fprintln(tw, "DATE\tDESCRIPTION\tTYPE\tAMOUNT\t")
		for _, t := range view.Transactions {
			marker := "IN"
			if t.IsExpense() {
				marker = "OUT"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t\n",
				dateutils.ToDisplayFormat(t.Date),
				t.Description,
				t.Category,
				currencyutils.FormatAmount(t.Amount.Abs(), g.currency),
				marker)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total income:\t%s\n", currencyutils.FormatAmount(view.Summary.TotalIncome, g.currency))
	fmt.Fprintf(tw, "Total expenses:\t%s\n", currencyutils.FormatAmount(view.Summary.TotalExpenses, g.currency))
	fmt.Fprintf(tw, "Balance:\t%s\n", currencyutils.FormatAmount(view.Summary.Balance, g.currency))

	return tw.Flush()
}
