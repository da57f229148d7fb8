package common

import "strings"

const utf8BOM = "\ufeff"

// SplitLine splits one delimited line into trimmed fields. A delimiter inside
// a double-quoted span is kept as part of the field; the quotes themselves are
// dropped, and a doubled quote inside a quoted span yields a literal quote.
// Unbalanced quotes never fail: the rest of the line is read as quoted.
// An empty line yields a single empty field.
func SplitLine(line string, delim rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

// SplitRecords splits a delimited document into records. Lines may end in LF
// or CRLF; blank lines are skipped and the first remaining line is treated as
// the header and dropped. A document with only a header yields no records.
func SplitRecords(text string, delim rune) [][]string {
	text = strings.TrimPrefix(text, utf8BOM)

	var records [][]string
	headerSeen := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		records = append(records, SplitLine(line, delim))
	}
	return records
}

// NonBlankLines returns the non-blank lines of a document, header included.
func NonBlankLines(text string) []string {
	text = strings.TrimPrefix(text, utf8BOM)
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
