package register

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecords struct {
	records [][]string
	err     error
	calls   int
	block   chan struct{}
}

func (f *fakeRecords) FetchRecords(ctx context.Context) ([][]string, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	return f.records, f.err
}

type fakeRows struct {
	configured bool
	rows       [][]interface{}
	err        error
	calls      int
}

func (f *fakeRows) Configured() bool { return f.configured }

func (f *fakeRows) FetchRows(ctx context.Context) ([][]interface{}, error) {
	f.calls++
	return f.rows, f.err
}

var transportErr = &parsererror.FetchError{Source: "csv-export", URL: "https://example.com", StatusCode: 404}

var octoberRecords = [][]string{
	{"2024-10-01", "Fee", "Приход", "250"},
	{"2024-10-20", "Repair", "Разход", "-120,00"},
	{"bad date", "Broken", "Приход", "10"},
	{"2024-11-03", "Donation", "Приход", "100"},
	{"2024-10-05", "Cleaning", "Разход", "-25.80"},
}

func ids(txns []models.Transaction) []int {
	out := make([]int, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestLoad_PrimarySource(t *testing.T) {
	primary := &fakeRecords{records: octoberRecords}
	fallback := &fakeRows{configured: true}
	mock := logging.NewMockLogger()
	reg := New(primary, fallback, mock)

	view, err := reg.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SourceCSVExport, view.Source)
	assert.Equal(t, models.ViewAll, view.Mode)
	assert.Equal(t, StatusAll, view.Status)
	assert.NotEmpty(t, view.LoadID)
	// Newest first; row 3 dropped, IDs keep source positions.
	assert.Equal(t, []int{4, 2, 5, 1}, ids(view.Transactions))
	assert.Equal(t, "350.00", view.Summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "145.80", view.Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "204.20", view.Summary.Balance.StringFixed(2))
	assert.Equal(t, 0, fallback.calls)

	assert.True(t, mock.HasEntry("INFO", "Loaded transactions"))
	assert.Len(t, mock.GetEntriesByLevel("DEBUG"), 1)
}

func TestLoad_FallbackToSheetsAPI(t *testing.T) {
	primary := &fakeRecords{err: transportErr}
	fallback := &fakeRows{configured: true, rows: [][]interface{}{
		{"2024-10-01", "Fee", "Приход", 250.0},
		{"2024-10-02", "Toys", "Разход", "-45,50"},
	}}
	reg := New(primary, fallback, nil)

	view, err := reg.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SourceSheetsAPI, view.Source)
	assert.Equal(t, 1, fallback.calls)
	assert.Len(t, view.Transactions, 2)
	assert.Equal(t, "204.50", view.Summary.Balance.StringFixed(2))
}

func TestLoad_DemoWhenFallbackNotConfigured(t *testing.T) {
	primary := &fakeRecords{err: transportErr}
	fallback := &fakeRows{configured: false}
	reg := New(primary, fallback, nil)

	view, err := reg.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, fallback.calls)
	assert.Equal(t, models.SourceDemo, view.Source)
	assert.Equal(t, StatusLoadFailed, view.Status)
	assert.Len(t, view.Transactions, 10)
	assert.Equal(t, "775.00", view.Summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "307.10", view.Summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "467.90", view.Summary.Balance.StringFixed(2))
}

func TestLoad_DemoWhenBothSourcesFail(t *testing.T) {
	primary := &fakeRecords{err: errors.New("dial tcp: no route to host")}
	fallback := &fakeRows{configured: true, err: &parsererror.FetchError{Source: "sheets-api", StatusCode: 403}}
	mock := logging.NewMockLogger()
	reg := New(primary, fallback, mock)

	view, err := reg.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, models.SourceDemo, view.Source)
	assert.Equal(t, StatusLoadFailed, view.Status)
	assert.True(t, mock.HasEntry("ERROR", "Sheets API failed"))
}

func TestLoad_NilFallback(t *testing.T) {
	reg := New(&fakeRecords{err: transportErr}, nil, nil)

	view, err := reg.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SourceDemo, view.Source)
}

func TestLoad_HeaderOnlyYieldsNoData(t *testing.T) {
	t.Run("csv export", func(t *testing.T) {
		fallback := &fakeRows{configured: true}
		reg := New(&fakeRecords{records: [][]string{}}, fallback, nil)

		view, err := reg.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, StatusNoData, view.Status)
		assert.Empty(t, view.Transactions)
		assert.True(t, view.Summary.Balance.IsZero())
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("sheets api", func(t *testing.T) {
		reg := New(&fakeRecords{err: transportErr}, &fakeRows{configured: true, rows: [][]interface{}{}}, nil)

		view, err := reg.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.SourceSheetsAPI, view.Source)
		assert.Equal(t, StatusNoData, view.Status)
		assert.Empty(t, view.Transactions)
	})

	t.Run("csv export reports ErrNoData", func(t *testing.T) {
		fallback := &fakeRows{configured: true}
		reg := New(&fakeRecords{err: parsererror.ErrNoData}, fallback, nil)

		view, err := reg.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.SourceCSVExport, view.Source)
		assert.Equal(t, StatusNoData, view.Status)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("sheets api reports ErrNoData", func(t *testing.T) {
		reg := New(&fakeRecords{err: transportErr}, &fakeRows{configured: true, err: parsererror.ErrNoData}, nil)

		view, err := reg.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.SourceSheetsAPI, view.Source)
		assert.Equal(t, StatusNoData, view.Status)
	})
}

func TestLoad_ReplacesCollection(t *testing.T) {
	primary := &fakeRecords{records: octoberRecords}
	reg := New(primary, nil, nil)

	first, err := reg.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Transactions, 4)

	primary.records = [][]string{{"2024-12-24", "Gift", "Приход", "5"}}
	second, err := reg.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, second.Transactions, 1)
	assert.NotEqual(t, first.LoadID, second.LoadID)
	assert.Len(t, reg.Transactions(), 1)
}

func TestLoad_InProgress(t *testing.T) {
	primary := &fakeRecords{records: octoberRecords, block: make(chan struct{})}
	reg := New(primary, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := reg.Load(context.Background())
		assert.NoError(t, err)
	}()

	require.Eventually(t, func() bool { return reg.loading.Load() }, time.Second, 5*time.Millisecond)

	_, err := reg.Load(context.Background())
	assert.ErrorIs(t, err, ErrLoadInProgress)

	close(primary.block)
	wg.Wait()

	assert.Equal(t, 1, primary.calls)
	assert.Len(t, reg.Transactions(), 4)
}

func TestViews_SummaryScope(t *testing.T) {
	reg := New(&fakeRecords{err: transportErr}, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)
	full := reg.Summary()

	income := reg.IncomeOnly()
	assert.Equal(t, models.ViewIncome, income.Mode)
	assert.Len(t, income.Transactions, 5)
	assert.True(t, full.Balance.Equal(income.Summary.Balance))
	assert.Equal(t, StatusIncome, income.Status)

	expenses := reg.ExpensesOnly()
	assert.Len(t, expenses.Transactions, 5)
	assert.True(t, full.TotalIncome.Equal(expenses.Summary.TotalIncome))
	for _, txn := range expenses.Transactions {
		assert.True(t, txn.Amount.IsNegative())
	}

	october, err := reg.FilterByMonth(10)
	require.NoError(t, err)
	assert.Len(t, october.Transactions, 10)
	assert.Equal(t, "467.90", october.Summary.Balance.StringFixed(2))
	assert.Equal(t, "Showing transactions for October", october.Status)

	march, err := reg.FilterByMonth(3)
	require.NoError(t, err)
	assert.Empty(t, march.Transactions)
	assert.True(t, march.Summary.TotalIncome.IsZero())
	assert.True(t, march.Summary.Balance.IsZero())

	// Filtering never touches the collection.
	assert.Len(t, reg.Transactions(), 10)
	assert.True(t, full.Balance.Equal(reg.Summary().Balance))
}

func TestViews_DoNotReplaceLoadedView(t *testing.T) {
	reg := New(&fakeRecords{records: octoberRecords}, nil, nil)
	loaded, err := reg.Load(context.Background())
	require.NoError(t, err)

	_ = reg.IncomeOnly()
	_ = reg.ExpensesOnly()
	november, err := reg.FilterByMonth(11)
	require.NoError(t, err)

	assert.Equal(t, models.ViewMonth, november.Mode)
	assert.Equal(t, loaded, reg.Current())
	assert.Equal(t, models.ViewAll, reg.Current().Mode)
}

func TestViews_ConcurrentCallersKeepTheirOwnView(t *testing.T) {
	reg := New(&fakeRecords{records: octoberRecords}, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			v := reg.IncomeOnly()
			assert.Equal(t, models.ViewIncome, v.Mode)
			assert.Equal(t, StatusIncome, v.Status)
		}()
		go func() {
			defer wg.Done()
			v, err := reg.FilterByMonth(11)
			assert.NoError(t, err)
			assert.Equal(t, models.ViewMonth, v.Mode)
			assert.Equal(t, []int{4}, ids(v.Transactions))
		}()
	}
	wg.Wait()
}

func TestFilterByMonth_SummaryRecomputed(t *testing.T) {
	reg := New(&fakeRecords{records: octoberRecords}, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)

	november, err := reg.FilterByMonth(11)
	require.NoError(t, err)

	assert.Equal(t, []int{4}, ids(november.Transactions))
	assert.Equal(t, "100.00", november.Summary.TotalIncome.StringFixed(2))
	assert.True(t, november.Summary.TotalExpenses.IsZero())
	assert.Equal(t, 11, november.Month)
}

func TestFilterByMonth_ClearAndInvalid(t *testing.T) {
	reg := New(&fakeRecords{records: octoberRecords}, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)

	cleared, err := reg.FilterByMonth(0)
	require.NoError(t, err)
	assert.Equal(t, models.ViewAll, cleared.Mode)
	assert.Len(t, cleared.Transactions, 4)
	assert.True(t, reg.Summary().Balance.Equal(cleared.Summary.Balance))

	for _, m := range []int{-1, 13} {
		_, err := reg.FilterByMonth(m)
		var ve *parsererror.ValidationError
		assert.True(t, errors.As(err, &ve), "month %d", m)
	}
}

func TestAll_KeepsLoadErrorStatus(t *testing.T) {
	reg := New(&fakeRecords{err: transportErr}, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)

	_ = reg.IncomeOnly()
	all := reg.All()

	assert.Equal(t, StatusLoadFailed, all.Status)
	assert.Equal(t, models.ViewAll, all.Mode)
}

func TestRegister_BeforeLoad(t *testing.T) {
	reg := New(&fakeRecords{}, nil, nil)

	view := reg.Current()
	assert.Empty(t, view.Transactions)
	assert.True(t, view.Summary.Balance.IsZero())
	assert.Equal(t, models.SourceNone, reg.Source())
	assert.Empty(t, reg.IncomeOnly().Transactions)
}

func TestRegister_ConcurrentReads(t *testing.T) {
	reg := New(&fakeRecords{records: octoberRecords}, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				_ = reg.All()
			case 1:
				_ = reg.IncomeOnly()
			case 2:
				_ = reg.ExpensesOnly()
			default:
				_, _ = reg.FilterByMonth(10)
			}
			_ = reg.Current()
		}(i)
	}
	wg.Wait()
	assert.Len(t, reg.Transactions(), 4)
}

func TestSetKeywords(t *testing.T) {
	primary := &fakeRecords{records: [][]string{
		{"2024-10-01", "Grant", "Grant", "500"},
		{"2024-10-02", "Refund", "Grant refund", "-20"},
		{"2024-10-03", "Rent", "Rent", "-300"},
	}}
	reg := New(primary, nil, nil)
	_, err := reg.Load(context.Background())
	require.NoError(t, err)

	// Built-in keywords: only the sign decides here.
	assert.Equal(t, []int{1}, ids(reg.IncomeOnly().Transactions))

	reg.SetKeywords(models.Keywords{Income: []string{"grant"}})
	assert.Equal(t, []int{2, 1}, ids(reg.IncomeOnly().Transactions))
	assert.Equal(t, []int{3, 2}, ids(reg.ExpensesOnly().Transactions), "empty expense list keeps defaults")
}
