// Package parsererror defines the error types raised while fetching and
// parsing ledger data.
package parsererror

import (
	"errors"
	"fmt"
)

var (
	// ErrFallbackNotConfigured is returned when the Sheets API fallback has no
	// API key.
	ErrFallbackNotConfigured = errors.New("sheets api fallback is not configured")
	// ErrNoData is returned when a source answers with a header and no rows.
	// It is not a transport failure: the load chain stops there.
	ErrNoData = errors.New("no data in sheet")
)

// FetchError represents a transport failure against one data source:
// a network error or a non-2xx response.
type FetchError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetching %s: HTTP %d", e.Source, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: fetching %s: %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an invalid configuration or request value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StatusCode extracts the HTTP status from a FetchError chain, or 0.
func StatusCode(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
