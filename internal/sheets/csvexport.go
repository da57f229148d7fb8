// Package sheets fetches ledger rows from a Google spreadsheet, either from
// its public CSV export or from the Sheets API v4 values endpoint.
package sheets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fjacquet/sheet-ledger/internal/common"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/parsererror"

	"golang.org/x/net/html/charset"
)

// DefaultExportBaseURL is the host serving public spreadsheet exports.
const DefaultExportBaseURL = "https://docs.google.com"

// DefaultTimeout bounds a single fetch when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of an export we are willing to read. Larger
// bodies are rejected rather than cut mid-row.
var maxBodyBytes int64 = 32 << 20

// CSVExportConfig holds the settings of the CSV export fetcher.
type CSVExportConfig struct {
	BaseURL   string
	SheetID   string
	GID       string
	Delimiter rune
	Timeout   time.Duration
}

// CSVExportClient downloads a sheet through the public CSV export link.
// The sheet must be shared as "anyone with the link can view".
type CSVExportClient struct {
	httpClient *http.Client
	baseURL    string
	sheetID    string
	gid        string
	delimiter  rune
	logger     logging.Logger
}

// NewCSVExportClient creates a CSV export fetcher.
func NewCSVExportClient(cfg CSVExportConfig, logger logging.Logger) *CSVExportClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultExportBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CSVExportClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		sheetID:    cfg.SheetID,
		gid:        cfg.GID,
		delimiter:  cfg.Delimiter,
		logger:     logger,
	}
}

// Source identifies this fetcher in views and logs.
func (c *CSVExportClient) Source() models.Source {
	return models.SourceCSVExport
}

// ExportURL returns the CSV export link of the configured sheet.
func (c *CSVExportClient) ExportURL() string {
	q := url.Values{}
	q.Set("format", "csv")
	q.Set("gid", c.gid)
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?%s", c.baseURL, url.PathEscape(c.sheetID), q.Encode())
}

// FetchRecords downloads the export and splits it into records, header and
// blank lines removed. A header-only export yields parsererror.ErrNoData.
func (c *CSVExportClient) FetchRecords(ctx context.Context) ([][]string, error) {
	body, _, err := c.download(ctx)
	if err != nil {
		return nil, err
	}
	records := common.SplitRecords(body, c.delimiter)
	if len(records) == 0 {
		return records, parsererror.ErrNoData
	}
	c.logger.Debug("Fetched CSV export",
		logging.F(logging.FieldSource, models.SourceCSVExport),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// download performs the GET and returns the body decoded to UTF-8 along
// with the response status.
// Network errors and non-2xx answers come back as *parsererror.FetchError.
func (c *CSVExportClient) download(ctx context.Context) (string, int, error) {
	exportURL := c.ExportURL()
	fetchErr := func(status int, err error) error {
		return &parsererror.FetchError{
			Source:     string(models.SourceCSVExport),
			URL:        exportURL,
			StatusCode: status,
			Err:        err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return "", 0, fetchErr(0, err)
	}
	req.Header.Set("Accept", "text/csv")

	c.logger.Debug("Requesting CSV export", logging.F(logging.FieldURL, exportURL))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fetchErr(0, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", 0, fetchErr(resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", 0, fetchErr(0, fmt.Errorf("reading body: %w", err))
	}
	if int64(len(raw)) > maxBodyBytes {
		return "", 0, fetchErr(0, fmt.Errorf("body exceeds %d bytes", maxBodyBytes))
	}

	reader, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", 0, fetchErr(0, fmt.Errorf("decoding body: %w", err))
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", 0, fetchErr(0, fmt.Errorf("decoding body: %w", err))
	}
	return string(data), resp.StatusCode, nil
}
