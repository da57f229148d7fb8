// Package dateutils normalizes the date strings found in spreadsheet exports.
package dateutils

import (
	"regexp"
	"strings"
	"time"
)

// Date layouts recognised by the sheet.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutSlash    = "02/01/2006"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// knownFormats are tried first; a string matching one of the patterns is
// parsed with the paired layout and nothing else.
var knownFormats = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), DateLayoutISO},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), DateLayoutSlash},
	{regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`), DateLayoutEuropean},
}

// genericFormats is the best-effort fallback for anything else.
var genericFormats = []string{
	time.RFC3339,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006-1-2",
	"2.1.2006",
	"2/1/2006",
	"2.1.2006 г.",
	"02.01.2006 15:04:05",
	"02/01/2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2-Jan-2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims the input and collapses runs of whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate converts a raw cell into a calendar date (UTC midnight).
// The second result is false when the string cannot be read as a date;
// ParseDate never panics.
func ParseDate(dateStr string) (time.Time, bool) {
	s := CleanDateString(dateStr)
	if s == "" {
		return time.Time{}, false
	}

	for _, f := range knownFormats {
		if f.pattern.MatchString(s) {
			t, err := time.Parse(f.layout, s)
			if err != nil {
				return time.Time{}, false
			}
			return DateOnly(t), true
		}
	}

	for _, layout := range genericFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), true
		}
	}
	return time.Time{}, false
}

// DateOnly drops the time-of-day and location, keeping the calendar date
// as written.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToDisplayFormat formats a date as DD.MM.YYYY, the form the ledger is
// read in. The zero time renders as an empty string.
func ToDisplayFormat(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutEuropean)
}
