// Package store loads and saves the category keyword file used by the
// income and expense views.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/sheet-ledger/internal/fileutils"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultKeywordsFile is looked up when no file name is configured.
const DefaultKeywordsFile = "keywords.yaml"

// KeywordStore manages loading and saving of category keywords.
type KeywordStore struct {
	KeywordsFile string
	logger       logging.Logger
}

// NewKeywordStore creates a store for the given file. A relative name is
// resolved against the standard locations by FindConfigFile.
func NewKeywordStore(keywordsFile string, logger logging.Logger) *KeywordStore {
	if keywordsFile == "" {
		keywordsFile = DefaultKeywordsFile
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &KeywordStore{KeywordsFile: keywordsFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *KeywordStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".sheet-ledger", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".sheet-ledger", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadKeywords reads the keyword file. A missing file yields the built-in
// keywords; a side left empty in the file falls back to its built-in list.
// Keywords are trimmed and lower-cased.
func (s *KeywordStore) LoadKeywords() (models.Keywords, error) {
	path, err := s.FindConfigFile(s.KeywordsFile)
	if err != nil {
		s.logger.Debug("Keywords file not found, using built-in keywords",
			logging.F(logging.FieldFile, s.KeywordsFile))
		return models.DefaultKeywords(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return models.Keywords{}, fmt.Errorf("error reading keywords file: %w", err)
	}

	var k models.Keywords
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &k); err != nil {
			return models.Keywords{}, fmt.Errorf("error parsing keywords file %s: %w", path, err)
		}
	}

	defaults := models.DefaultKeywords()
	k.Income = normalize(k.Income)
	if len(k.Income) == 0 {
		k.Income = defaults.Income
	}
	k.Expense = normalize(k.Expense)
	if len(k.Expense) == 0 {
		k.Expense = defaults.Expense
	}

	s.logger.Info("Loaded category keywords",
		logging.F(logging.FieldFile, path),
		logging.F("income", len(k.Income)),
		logging.F("expense", len(k.Expense)))
	return k, nil
}

// SaveKeywords writes the keyword lists to the configured file. A relative
// name is written relative to the working directory.
func (s *KeywordStore) SaveKeywords(k models.Keywords) error {
	k.Income = normalize(k.Income)
	k.Expense = normalize(k.Expense)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(k); err != nil {
		return fmt.Errorf("error marshaling keywords: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error marshaling keywords: %w", err)
	}

	if err := fileutils.WriteFile(s.KeywordsFile, buf.Bytes(), models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing keywords file: %w", err)
	}
	s.logger.Debug("Saved category keywords", logging.F(logging.FieldFile, s.KeywordsFile))
	return nil
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
