package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/model"
)

// Greeting opens every fresh transcript.
const Greeting = "Hey, how can I assist you?"

// DefaultBalance is the starting balance of a new wallet.
func DefaultBalance() decimal.Decimal {
	return decimal.NewFromInt(29_370_000)
}

// DefaultCategories returns the seeded spending breakdown.
func DefaultCategories() model.Categories {
	return model.NewCategories(
		model.Category{Name: "Food", Amount: decimal.NewFromInt(3_000_000)},
		model.Category{Name: "Transport", Amount: decimal.NewFromInt(1_500_000)},
		model.Category{Name: "Bills", Amount: decimal.NewFromInt(2_000_000)},
		model.Category{Name: "Entertainment", Amount: decimal.NewFromInt(1_000_000)},
	)
}

// DefaultVaults returns the seeded savings goals.
func DefaultVaults() []model.Vault {
	return []model.Vault{
		{ID: "rent", Name: "Rent", Current: decimal.NewFromInt(500_000), Goal: decimal.NewFromInt(1_000_000)},
		{ID: "emergency", Name: "Emergency Funds", Current: decimal.NewFromInt(200_000), Goal: decimal.NewFromInt(500_000)},
	}
}

// DefaultMonthly returns the seeded monthly spending series.
func DefaultMonthly() model.MonthlySpending {
	return model.MonthlySpending{
		Labels: []string{"Jan", "Feb", "Mar", "Apr"},
		Data: []decimal.Decimal{
			decimal.NewFromInt(5_000_000),
			decimal.NewFromInt(7_000_000),
			decimal.NewFromInt(4_500_000),
			decimal.NewFromInt(6_000_000),
		},
	}
}

// DefaultTranscript returns a transcript holding only the greeting.
func DefaultTranscript() []model.ChatMessage {
	return []model.ChatMessage{{Role: model.RoleAssistant, Text: Greeting}}
}
