package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(29370000), "UGX 29,370,000"},
		{decimal.NewFromInt(120000), "UGX 120,000"},
		{decimal.NewFromInt(999), "UGX 999"},
		{decimal.NewFromInt(0), "UGX 0"},
		{decimal.RequireFromString("1234.5"), "UGX 1,234.5"},
		{decimal.NewFromInt(-1500), "UGX -1,500"},
		{decimal.RequireFromString("1234.5678"), "UGX 1,234.568"},
		{decimal.RequireFromString("-0.5"), "UGX -0.5"},
		{decimal.RequireFromString("12345678901234567"), "UGX 12,345,678,901,234,567"},
		{decimal.RequireFromString("123456789012345678901.25"), "UGX 123,456,789,012,345,678,901.25"},
	}
	for _, tt := range tests {
		if got := FormatMoney("UGX", tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatMoneyDefaultsCurrency(t *testing.T) {
	if got := FormatMoney("", decimal.NewFromInt(5000)); got != "UGX 5,000" {
		t.Fatalf("FormatMoney = %q, want UGX 5,000", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber = %q, want 1,234,567", got)
	}
}

func TestShare(t *testing.T) {
	if got := Share(decimal.NewFromInt(25), decimal.NewFromInt(200)); got != 12.5 {
		t.Fatalf("Share = %v, want 12.5", got)
	}
	if got := Share(decimal.NewFromInt(25), decimal.Zero); got != 0 {
		t.Fatalf("Share with zero whole = %v, want 0", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Fatalf("FormatPercent = %q, want 12.5%%", got)
	}
}
