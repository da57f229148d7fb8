// Package common provides the delimited-text helpers shared by the fetchers
// and the CSV exporter.
package common

import (
	"encoding/csv"
	"fmt"
	"os"

	"fjacquet/sheet-ledger/internal/dateutils"
	"fjacquet/sheet-ledger/internal/fileutils"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"

	"github.com/gocarina/gocsv"
)

var log logging.Logger = logging.NewDiscardLogger()

// Delimiter is the field separator for CSV input and output.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// TransactionCSVRow is the exported shape of a transaction.
type TransactionCSVRow struct {
	ID          int    `csv:"ID"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
}

func toCSVRows(transactions []models.Transaction) []TransactionCSVRow {
	rows := make([]TransactionCSVRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, TransactionCSVRow{
			ID:          t.ID,
			Date:        dateutils.ToISODate(t.Date),
			Description: t.Description,
			Category:    t.Category,
			Amount:      t.Amount.StringFixed(2),
		})
	}
	return rows
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.Info("Reading CSV file", logging.F(logging.FieldFile, filePath))

	file, err := os.Open(filePath) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Debug("Read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteTransactionsToCSV writes transactions to a CSV file with the columns
// ID, Date (YYYY-MM-DD), Description, Category, Amount (two decimals).
// The parent directory is created when missing.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.Info("Writing transactions to CSV file",
		logging.F(logging.FieldFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)))

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	rows := toCSVRows(transactions)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote transactions to CSV file",
		logging.F(logging.FieldFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)))
	return nil
}
