package wallet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-typed amount. Thousands separators and
// surrounding spaces are ignored; an optional currency code prefix is
// stripped.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i > 0 && isCurrencyCode(s[:i]) {
		s = strings.TrimSpace(s[i+1:])
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return decimal.Zero, invalid(msgAmountMalformed)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(msgAmountMalformed)
	}
	return d, nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// ParseSpendingEntry splits "Category, Amount" into its parts.
func ParseSpendingEntry(input string) (string, decimal.Decimal, error) {
	if strings.TrimSpace(input) == "" {
		return "", decimal.Zero, invalid(MsgEntryRequired)
	}
	parts := strings.Split(input, ",")
	if len(parts) < 2 {
		return "", decimal.Zero, invalid(MsgEntryFormat)
	}

	// Everything after the first comma is the amount, so "Food, 1,500"
	// keeps its grouping.
	category := strings.TrimSpace(parts[0])
	amount, err := ParseAmount(strings.Join(parts[1:], ","))
	if err != nil || category == "" || !amount.IsPositive() {
		return "", decimal.Zero, invalid(MsgSpending)
	}
	return category, amount, nil
}
