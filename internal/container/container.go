// Package container provides dependency injection for the sheet-ledger
// application. It centralizes the creation and wiring of the fetchers and
// the register, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/sheet-ledger/internal/common"
	"fjacquet/sheet-ledger/internal/config"
	"fjacquet/sheet-ledger/internal/fileutils"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/register"
	"fjacquet/sheet-ledger/internal/sheets"
	"fjacquet/sheet-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	csvClient *sheets.CSVExportClient
	apiClient *sheets.APIClient
	keywords  *store.KeywordStore
	register  *register.Register
}

// NewContainer creates and wires all application dependencies with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	common.SetDelimiter(cfg.DelimiterRune())
	common.SetLogger(logger)
	fileutils.SetLogger(logger)

	csvClient := sheets.NewCSVExportClient(sheets.CSVExportConfig{
		BaseURL:   cfg.Sheet.ExportBaseURL,
		SheetID:   cfg.Sheet.ID,
		GID:       cfg.Sheet.GID,
		Delimiter: cfg.DelimiterRune(),
		Timeout:   cfg.Timeout(),
	}, logger)

	apiClient := sheets.NewAPIClient(sheets.APIConfig{
		APIKey:   cfg.Sheet.APIKey,
		SheetID:  cfg.Sheet.ID,
		Range:    cfg.Sheet.Range,
		Endpoint: cfg.Sheet.APIEndpoint,
		Timeout:  cfg.Timeout(),
	}, logger)

	keywordStore := store.NewKeywordStore(cfg.Categories.KeywordsFile, logger)
	keywords, err := keywordStore.LoadKeywords()
	if err != nil {
		return nil, fmt.Errorf("failed to load category keywords: %w", err)
	}

	reg := register.New(csvClient, apiClient, logger)
	reg.SetKeywords(keywords)

	logger.Debug("Container initialized successfully",
		logging.F("sheet_id", cfg.Sheet.ID),
		logging.F("api_fallback", apiClient.Configured()))

	return &Container{
		logger:    logger,
		config:    cfg,
		csvClient: csvClient,
		apiClient: apiClient,
		keywords:  keywordStore,
		register:  reg,
	}, nil
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCSVClient returns the CSV export fetcher.
func (c *Container) GetCSVClient() *sheets.CSVExportClient {
	return c.csvClient
}

// GetAPIClient returns the Sheets API fetcher.
func (c *Container) GetAPIClient() *sheets.APIClient {
	return c.apiClient
}

// GetKeywordStore returns the category keyword store.
func (c *Container) GetKeywordStore() *store.KeywordStore {
	return c.keywords
}

// GetRegister returns the transaction register.
func (c *Container) GetRegister() *register.Register {
	return c.register
}
