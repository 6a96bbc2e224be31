// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the currency code amounts are shown in unless
// configured otherwise.
const DefaultCurrency = "UGX"

// moneyFractionDigits matches en-US locale formatting of plain numbers.
const moneyFractionDigits = 3

func printer() *message.Printer {
	return message.NewPrinter(language.AmericanEnglish)
}

// FormatMoney renders an amount with the currency prefix and en-US digit
// grouping. All digits of amount are kept.
// e.g., ("UGX", 29370000) -> "UGX 29,370,000", ("UGX", 1234.5) -> "UGX 1,234.5"
func FormatMoney(currency string, amount decimal.Decimal) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + formatDecimal(amount.Round(moneyFractionDigits))
}

// formatDecimal groups the integer digits of d with the printer and keeps
// its fraction digits, trailing zeros removed.
func formatDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	var grouped string
	if w := whole.BigInt(); w.IsInt64() {
		grouped = printer().Sprintf("%d", w.Int64())
	} else {
		grouped = groupDigits(w.String())
	}

	frac := strings.TrimRight(d.Sub(whole).StringFixed(moneyFractionDigits), "0")
	frac = strings.TrimPrefix(frac, "0")
	if frac == "." {
		frac = ""
	}
	return sign + grouped + frac
}

// groupDigits inserts en-US thousands separators into a run of digits too
// long for the printer's integer path.
func groupDigits(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer().Sprintf("%d", n)
}

// FormatPercent formats a percentage that is already scaled to 0-100.
// e.g., 42.26 -> "42.3%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// Share returns part as a percentage of whole, or 0 when whole is not
// positive.
func Share(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
