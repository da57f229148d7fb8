// Package register owns the loaded transaction collection. It runs the
// CSV export -> Sheets API -> demo data load chain and serves the
// filtered views of the collection.
package register

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fjacquet/sheet-ledger/internal/ledger"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/parsererror"

	"github.com/google/uuid"
)

// ErrLoadInProgress is returned by Load while another load is running.
var ErrLoadInProgress = errors.New("a load is already in progress")

// Status lines attached to views.
const (
	StatusAll        = "Showing all transactions"
	StatusIncome     = "Showing income only"
	StatusExpenses   = "Showing expenses only"
	StatusMonth      = "Showing transactions for %s"
	StatusNoData     = "No data available in the sheet."
	StatusLoadFailed = "Could not load data from Google Sheets. Make sure the document is publicly accessible. Showing demo data."
)

// RecordSource is the primary source: delimited records, header removed.
type RecordSource interface {
	FetchRecords(ctx context.Context) ([][]string, error)
}

// RowSource is the fallback source: loosely typed cells, header removed.
type RowSource interface {
	Configured() bool
	FetchRows(ctx context.Context) ([][]interface{}, error)
}

// Register holds the single transaction collection and its summary.
// It is safe for concurrent use.
type Register struct {
	primary  RecordSource
	fallback RowSource
	logger   logging.Logger

	loading atomic.Bool

	mu           sync.RWMutex
	keywords     models.Keywords
	transactions []models.Transaction
	summary      models.Summary
	source       models.Source
	loadID       string
	loadStatus   string
	current      models.View
}

// New creates a Register. fallback may be nil.
func New(primary RecordSource, fallback RowSource, logger logging.Logger) *Register {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Register{
		primary:      primary,
		fallback:     fallback,
		logger:       logger,
		keywords:     models.DefaultKeywords(),
		transactions: []models.Transaction{},
		summary:      models.ZeroSummary(),
		current: models.View{
			Mode:         models.ViewAll,
			Transactions: []models.Transaction{},
			Summary:      models.ZeroSummary(),
		},
	}
}

// Load replaces the collection with fresh data. The CSV export is tried
// first; on a transport failure the Sheets API is tried when it has a key;
// if that fails too, or has no key, the demo dataset is loaded and the view
// carries an error status. A source that answers with headers only leaves
// an empty collection with StatusNoData.
//
// The only error returned is ErrLoadInProgress; fetch failures are reported
// through the view status.
func (r *Register) Load(ctx context.Context) (models.View, error) {
	if !r.loading.CompareAndSwap(false, true) {
		return models.View{}, ErrLoadInProgress
	}
	defer r.loading.Store(false)

	loadID := uuid.NewString()
	start := time.Now()
	logger := r.logger.WithField(logging.FieldLoadID, loadID)

	result, source, status := r.fetch(ctx, logger)

	for _, rej := range result.Rejected {
		logger.Debug("Dropped invalid row", logging.F(logging.FieldReason, rej.Error()))
	}
	logger.Info("Loaded transactions",
		logging.F(logging.FieldSource, source),
		logging.F(logging.FieldCount, len(result.Transactions)),
		logging.F(logging.FieldDropped, result.Dropped()),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = result.Transactions
	r.summary = ledger.Summarize(r.transactions)
	r.source = source
	r.loadID = loadID
	r.loadStatus = status
	r.current = r.viewLocked(models.ViewAll, 0, r.transactions, r.summary, status)
	return r.current, nil
}

func (r *Register) fetch(ctx context.Context, logger logging.Logger) (ledger.Result, models.Source, string) {
	records, err := r.primary.FetchRecords(ctx)
	if noData(err, len(records)) {
		logger.Warn("CSV export has no data rows", logging.F(logging.FieldSource, models.SourceCSVExport))
		return emptyResult(), models.SourceCSVExport, StatusNoData
	}
	if err == nil {
		return ledger.FromRecords(records), models.SourceCSVExport, StatusAll
	}
	logger.WithError(err).Warn("CSV export failed, trying Sheets API",
		logging.F(logging.FieldStatus, parsererror.StatusCode(err)))

	if r.fallback != nil && r.fallback.Configured() {
		rows, err := r.fallback.FetchRows(ctx)
		if noData(err, len(rows)) {
			logger.Warn("Sheets API range has no data rows", logging.F(logging.FieldSource, models.SourceSheetsAPI))
			return emptyResult(), models.SourceSheetsAPI, StatusNoData
		}
		if err == nil {
			return ledger.FromCells(rows), models.SourceSheetsAPI, StatusAll
		}
		logger.WithError(err).Error("Sheets API failed",
			logging.F(logging.FieldStatus, parsererror.StatusCode(err)))
	} else {
		logger.Warn("Sheets API fallback skipped", logging.F(logging.FieldReason, parsererror.ErrFallbackNotConfigured.Error()))
	}

	logger.Error("Could not load data from any source, using demo data")
	return ledger.Result{Transactions: ledger.DemoTransactions()}, models.SourceDemo, StatusLoadFailed
}

// noData reports a header-only answer: ErrNoData, or success with no rows.
func noData(err error, n int) bool {
	return errors.Is(err, parsererror.ErrNoData) || (err == nil && n == 0)
}

func emptyResult() ledger.Result {
	return ledger.Result{Transactions: []models.Transaction{}}
}

// All returns the whole collection with its summary.
func (r *Register) All() models.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewLocked(models.ViewAll, 0, r.transactions, r.summary, StatusAll)
}

// SetKeywords replaces the category keywords used by IncomeOnly and
// ExpensesOnly. An empty list keeps the built-in keywords for that side.
func (r *Register) SetKeywords(k models.Keywords) {
	defaults := models.DefaultKeywords()
	if len(k.Income) == 0 {
		k.Income = defaults.Income
	}
	if len(k.Expense) == 0 {
		k.Expense = defaults.Expense
	}
	r.mu.Lock()
	r.keywords = k
	r.mu.Unlock()
}

// IncomeOnly lists income transactions. The summary still covers the whole
// collection.
func (r *Register) IncomeOnly() models.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewLocked(models.ViewIncome, 0, ledger.IncomeMatching(r.transactions, r.keywords.Income), r.summary, StatusIncome)
}

// ExpensesOnly lists expense transactions. The summary still covers the
// whole collection.
func (r *Register) ExpensesOnly() models.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewLocked(models.ViewExpenses, 0, ledger.ExpensesMatching(r.transactions, r.keywords.Expense), r.summary, StatusExpenses)
}

// FilterByMonth lists the transactions of calendar month m (1-12, any year)
// with a summary of just those transactions. m == 0 clears the filter.
func (r *Register) FilterByMonth(m int) (models.View, error) {
	if m < 0 || m > 12 {
		return models.View{}, &parsererror.ValidationError{
			Field:  "month",
			Reason: fmt.Sprintf("%d is not between 1 and 12", m),
		}
	}
	if m == 0 {
		return r.All(), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	filtered := ledger.ForMonth(r.transactions, m)
	status := fmt.Sprintf(StatusMonth, time.Month(m).String())
	return r.viewLocked(models.ViewMonth, m, filtered, ledger.Summarize(filtered), status), nil
}

// Current returns the all-transactions view produced by the last Load.
// View calls build fresh views and never change it, so concurrent
// callers cannot overwrite each other's view.
func (r *Register) Current() models.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Transactions returns a copy of the collection in source order.
func (r *Register) Transactions() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out
}

// Summary returns the totals of the whole collection.
func (r *Register) Summary() models.Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.summary
}

// Source returns where the collection was loaded from.
func (r *Register) Source() models.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// viewLocked builds a view; callers hold r.mu for reading at least. It
// must not write Register fields. A load that ended in an error
// status keeps that status on the all-transactions view.
func (r *Register) viewLocked(mode models.ViewMode, month int, txns []models.Transaction, summary models.Summary, status string) models.View {
	if mode == models.ViewAll && r.loadStatus != "" && r.loadStatus != StatusAll {
		status = r.loadStatus
	}
	return models.View{
		LoadID:       r.loadID,
		Source:       r.source,
		Mode:         mode,
		Month:        month,
		Transactions: ledger.SortByDateDesc(txns),
		Summary:      summary,
		Status:       status,
	}
}
