package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	tests := []struct {
		name     string
		err      *FetchError
		expected string
	}{
		{
			name:     "http status",
			err:      &FetchError{Source: "csv-export", URL: "https://example.com/export", StatusCode: 404},
			expected: "csv-export: fetching https://example.com/export: HTTP 404",
		},
		{
			name:     "network error",
			err:      &FetchError{Source: "sheets-api", URL: "https://example.com/v4", Err: errors.New("connection refused")},
			expected: "sheets-api: fetching https://example.com/v4: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	underlying := errors.New("timeout")
	err := fmt.Errorf("loading: %w", &FetchError{Source: "csv-export", Err: underlying})

	assert.True(t, errors.Is(err, underlying))

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "csv-export", fe.Source)
}

func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &FetchError{Source: "csv-export", StatusCode: 503})
	assert.Equal(t, 503, StatusCode(err))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "basic parse error",
			err: &ParseError{
				Parser: "ledger",
				Field:  "amount",
				Value:  "abc",
				Err:    errors.New("zero or unreadable amount"),
			},
			expected: "ledger: failed to parse amount='abc': zero or unreadable amount",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "ledger",
				Field:  "date",
				Value:  "",
				Err:    errors.New("unrecognized date"),
			},
			expected: "ledger: failed to parse date='': unrecognized date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.NotNil(t, tt.err.Unwrap())
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "sheet.id", Reason: "must not be empty"}
	assert.Equal(t, "invalid sheet.id: must not be empty", err.Error())
}

func TestSentinels(t *testing.T) {
	assert.True(t, errors.Is(fmt.Errorf("api: %w", ErrFallbackNotConfigured), ErrFallbackNotConfigured))
	assert.False(t, errors.Is(ErrNoData, ErrFallbackNotConfigured))
}
