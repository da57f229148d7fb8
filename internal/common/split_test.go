package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain fields", "2024-10-01,Fee,Приход,250", []string{"2024-10-01", "Fee", "Приход", "250"}},
		{"trims whitespace", " a ,  b,c  ", []string{"a", "b", "c"}},
		{"quoted delimiter", `2024-10-01,"Fee, October",Приход,250`, []string{"2024-10-01", "Fee, October", "Приход", "250"}},
		{"quoted amount with comma decimal", `2024-10-02,Toys,Разход,"-45,50"`, []string{"2024-10-02", "Toys", "Разход", "-45,50"}},
		{"empty line", "", []string{""}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"trailing delimiter", "a,b,", []string{"a", "b", ""}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"unterminated quote", `a,"b,c`, []string{"a", "b,c"}},
		{"spaces inside quotes are trimmed", `"  padded  ",x`, []string{"padded", "x"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitLine(tc.line, ','))
		})
	}
}

func TestSplitLine_CustomDelimiter(t *testing.T) {
	assert.Equal(t, []string{"01.10.2024", "Fee; paid", "250,00"},
		SplitLine(`01.10.2024;"Fee; paid";250,00`, ';'))
}

func TestSplitLine_FieldCountIsDelimitersPlusOne(t *testing.T) {
	for _, line := range []string{"a", "a,b", ",,,", `"x,y",z`, "a,,b,"} {
		unquotedDelims := 0
		inQuotes := false
		for _, r := range line {
			if r == '"' {
				inQuotes = !inQuotes
			} else if r == ',' && !inQuotes {
				unquotedDelims++
			}
		}
		assert.Len(t, SplitLine(line, ','), unquotedDelims+1, line)
	}
}

func TestSplitRecords(t *testing.T) {
	t.Run("skips header and blank lines", func(t *testing.T) {
		text := "Date,Description,Category,Amount\n\n2024-10-01,Fee,Приход,250\n   \n2024-10-02,Toys,Разход,-45.50\n"
		records := SplitRecords(text, ',')
		assert.Equal(t, [][]string{
			{"2024-10-01", "Fee", "Приход", "250"},
			{"2024-10-02", "Toys", "Разход", "-45.50"},
		}, records)
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		records := SplitRecords("h1,h2\r\na,b\r\nc,d\r\n", ',')
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, records)
	})

	t.Run("leading blank lines before header", func(t *testing.T) {
		records := SplitRecords("\n\nheader\nrow", ',')
		assert.Equal(t, [][]string{{"row"}}, records)
	})

	t.Run("byte order mark", func(t *testing.T) {
		records := SplitRecords("\ufeffDate,Amount\n2024-10-01,5", ',')
		assert.Equal(t, [][]string{{"2024-10-01", "5"}}, records)
	})

	t.Run("header only", func(t *testing.T) {
		assert.Empty(t, SplitRecords("Date,Description,Category,Amount\n", ','))
	})

	t.Run("empty document", func(t *testing.T) {
		assert.Empty(t, SplitRecords("", ','))
	})
}

func TestNonBlankLines(t *testing.T) {
	assert.Equal(t, []string{"h", "a"}, NonBlankLines("h\r\n\r\na\n"))
	assert.Empty(t, NonBlankLines(" \n\t\n"))
}
