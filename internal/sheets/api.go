package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/parsererror"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const (
	// PlaceholderAPIKey is the value shipped in sample configs. It counts as
	// "no key configured".
	PlaceholderAPIKey = "YOUR_GOOGLE_SHEETS_API_KEY"
	// DefaultRange covers the date, description, category and amount columns.
	DefaultRange = "Sheet1!A:D"
)

// APIConfig holds the settings of the Sheets API fetcher.
type APIConfig struct {
	APIKey  string
	SheetID string
	Range   string
	// Endpoint overrides the API base URL (tests, proxies). Empty means the
	// public Google endpoint.
	Endpoint string
	Timeout  time.Duration
}

// APIClient reads a value range through the Sheets API v4 using an API key.
// The underlying service is created on first use.
type APIClient struct {
	cfg    APIConfig
	logger logging.Logger

	mu  sync.Mutex
	svc *gsheet.Service
}

// NewAPIClient creates a Sheets API fetcher.
func NewAPIClient(cfg APIConfig, logger logging.Logger) *APIClient {
	if cfg.Range == "" {
		cfg.Range = DefaultRange
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &APIClient{cfg: cfg, logger: logger}
}

// Source identifies this fetcher in views and logs.
func (c *APIClient) Source() models.Source {
	return models.SourceSheetsAPI
}

// Configured reports whether a real API key is set.
func (c *APIClient) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.APIKey != PlaceholderAPIKey
}

func (c *APIClient) service(ctx context.Context) (*gsheet.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.svc != nil {
		return c.svc, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(c.cfg.APIKey)}
	if c.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.cfg.Endpoint))
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	c.svc = svc
	return svc, nil
}

// FetchRows reads the configured range and returns its rows without the
// header row. Cells keep the types the API returns. A range holding only a
// header yields parsererror.ErrNoData.
func (c *APIClient) FetchRows(ctx context.Context) ([][]interface{}, error) {
	if !c.Configured() {
		return nil, parsererror.ErrFallbackNotConfigured
	}

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	c.logger.Debug("Requesting Sheets API values",
		logging.F(logging.FieldRange, c.cfg.Range))

	resp, err := svc.Spreadsheets.Values.Get(c.cfg.SheetID, c.cfg.Range).Context(ctx).Do()
	if err != nil {
		fe := &parsererror.FetchError{
			Source: string(models.SourceSheetsAPI),
			URL:    fmt.Sprintf("%sv4/spreadsheets/%s/values/%s", svc.BasePath, c.cfg.SheetID, c.cfg.Range),
			Err:    redactKey(err),
		}
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			fe.StatusCode = apiErr.Code
		}
		return nil, fe
	}

	if len(resp.Values) <= 1 {
		return [][]interface{}{}, parsererror.ErrNoData
	}
	rows := resp.Values[1:]
	c.logger.Debug("Fetched Sheets API values",
		logging.F(logging.FieldSource, models.SourceSheetsAPI),
		logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// redactKey masks the API key in the request URL that transport errors
// carry in their message.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = logging.RedactURL(urlErr.URL)
	}
	return err
}
