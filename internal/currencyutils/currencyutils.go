// Package currencyutils normalizes amount cells and renders amounts for display.
package currencyutils

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// nonNumeric matches everything that can't be part of an amount:
	// currency codes and symbols, spaces, letters.
	nonNumeric = regexp.MustCompile(`[^\d.,-]`)
	// leadingNumber is the longest decimal prefix; anything after a second
	// period is ignored.
	leadingNumber = regexp.MustCompile(`^\d*(\.\d*)?`)
)

// ParseAmount normalizes a raw amount cell into a signed decimal.
//
// Numeric input is returned unchanged. Strings are stripped of everything
// but digits, periods, commas and minus signs, commas are read as decimal
// separators, and a leading minus sign makes the result negative. Input
// that still can't be read yields zero.
//
// A thousands-comma convention is not supported: "1,234.56" becomes 1.234.
func ParseAmount(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case int32:
		return decimal.NewFromInt32(n)
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
		return ParseAmountString(n.String())
	case string:
		return ParseAmountString(n)
	default:
		return decimal.Zero
	}
}

// ParseAmountString is ParseAmount for string cells.
func ParseAmountString(amountStr string) decimal.Decimal {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return decimal.Zero
	}

	clean := StandardizeAmount(amountStr)
	isNegative := strings.HasPrefix(clean, "-")
	clean = strings.ReplaceAll(clean, "-", "")

	num := leadingNumber.FindString(clean)
	if num == "" || num == "." {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSuffix(num, "."))
	if err != nil {
		return decimal.Zero
	}
	if isNegative {
		return amount.Neg()
	}
	return amount
}

// StandardizeAmount strips an amount string down to digits, periods and
// minus signs, turning every comma into a period. Periods from currency
// suffixes survive: "125,50 лв." -> "125.50.", "-45,80" -> "-45.80",
// "BGN 1 200" -> "1200". ParseAmount reads only the leading decimal prefix.
func StandardizeAmount(amountStr string) string {
	amountStr = nonNumeric.ReplaceAllString(amountStr, "")
	return strings.ReplaceAll(amountStr, ",", ".")
}

// FormatAmount renders an amount with two decimal places followed by the
// currency code, e.g. "125.50 BGN". An empty currency renders the bare number.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	if currency == "" {
		return formatted
	}
	switch strings.ToUpper(currency) {
	case "EUR":
		return "€" + formatted
	case "USD":
		return "$" + formatted
	case "GBP":
		return "£" + formatted
	default:
		return formatted + " " + strings.ToUpper(currency)
	}
}
