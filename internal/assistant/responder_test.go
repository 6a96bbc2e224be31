package assistant

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

func defaultSnapshot() model.Snapshot {
	return model.Snapshot{
		Balance:    wallet.DefaultBalance(),
		Categories: wallet.DefaultCategories(),
		Vaults:     wallet.DefaultVaults(),
		Monthly:    wallet.DefaultMonthly(),
	}
}

func TestRespondGolden(t *testing.T) {
	r := NewResponder()
	snap := defaultSnapshot()

	tests := []struct {
		name, query, want string
	}{
		{"balance", "What's my balance?", "Your current balance is UGX 29,370,000."},
		{"balance typographic apostrophe", "What’s my balance?", "Your current balance is UGX 29,370,000."},
		{"spending sorted descending", "Break down my spending",
			"Your total spending is UGX 7,500,000. Here's a breakdown by category:\n" +
				"- Food: UGX 3,000,000\n" +
				"- Bills: UGX 2,000,000\n" +
				"- Transport: UGX 1,500,000\n" +
				"- Entertainment: UGX 1,000,000"},
		{"advice with high balance", "Any suggestions?", ReplyInvest},
		{"vaults", "vaults status",
			"Here's the status of your vaults:\n" +
				"- Rent: UGX 500,000 of UGX 1,000,000 (50.0% complete).\n" +
				"- Emergency Funds: UGX 200,000 of UGX 500,000 (40.0% complete)."},
		{"expense", "add new expense", ReplyAddExpense},
		{"greeting", "Hello", ReplyGreeting},
		{"thanks", "thank you so much", ReplyThanks},
		{"identity", "who are you?", ReplyIdentity},
		{"capabilities", "What can you help with?", ReplyCapabilities},
		{"fallback", "weather tomorrow?", ReplyFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Respond(tt.query, snap); got != tt.want {
				t.Fatalf("Respond(%q) =\n%s\nwant\n%s", tt.query, got, tt.want)
			}
		})
	}
}

func TestRespondFirstMatchWins(t *testing.T) {
	r := NewResponder()
	got := r.Respond("what's my balance? how much have i spent this month?", defaultSnapshot())
	if got != "Your current balance is UGX 29,370,000." {
		t.Fatalf("Respond = %q, want the balance reply", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"I spent a lot", IntentSpending},
		{"SHOW ME MY CASH", IntentBalance},
		{"progress on savings?", IntentVaults},
		{"Advise me financially please", IntentAdvice},
		{"scan this bill", IntentExpense},
		// "this" contains "hi".
		{"is this right", IntentGreeting},
		{"ok", IntentFallback},
	}
	for _, tt := range tests {
		if got := Classify(tt.query); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

func TestAdviceThresholds(t *testing.T) {
	r := NewResponder()

	snap := defaultSnapshot()
	snap.Balance = decimal.NewFromInt(10_000_000)
	if got := r.Respond("any suggestions?", snap); got != ReplyCutBack {
		t.Fatalf("spending 7.5M of 10M: %q, want cut back", got)
	}

	snap.Balance = decimal.NewFromInt(19_000_000)
	if got := r.Respond("any suggestions?", snap); got != ReplyTrack {
		t.Fatalf("spending 7.5M of 19M: %q, want track", got)
	}

	custom := NewResponder(WithAdviceThresholds(decimal.NewFromInt(5_000_000), decimal.RequireFromString("0.9")))
	if got := custom.Respond("any suggestions?", snap); got != ReplyInvest {
		t.Fatalf("custom threshold: %q, want invest", got)
	}
}

func TestRespondWithoutData(t *testing.T) {
	r := NewResponder()
	snap := model.Snapshot{Balance: decimal.NewFromInt(100)}

	if got := r.Respond("show me my expenses", snap); got != ReplyNoSpending {
		t.Fatalf("spending = %q", got)
	}
	if got := r.Respond("goal achievements", snap); got != ReplyNoVaults {
		t.Fatalf("vaults = %q", got)
	}
}

func TestVaultPercentIsUnclamped(t *testing.T) {
	r := NewResponder()
	snap := model.Snapshot{Vaults: []model.Vault{{
		ID: "v", Name: "Car", Current: decimal.NewFromInt(150), Goal: decimal.NewFromInt(100),
	}}}

	want := "Here's the status of your vaults:\n- Car: UGX 150 of UGX 100 (150.0% complete)."
	if got := r.Respond("vaults status", snap); got != want {
		t.Fatalf("Respond = %q, want %q", got, want)
	}
}

func TestExpenseMention(t *testing.T) {
	r := NewResponder()
	snap := defaultSnapshot()

	got := r.Respond("log my spending: I bought shoes for UGX 120,000", snap)
	want := ReplyAddExpense + ` I can see you mentioned buying "shoes" for UGX 120,000. You can add this in the XSpend section!`
	if got != want {
		t.Fatalf("Respond =\n%s\nwant\n%s", got, want)
	}

	// Replying never records the purchase.
	if !snap.Balance.Equal(wallet.DefaultBalance()) || snap.Categories.Len() != 4 {
		t.Fatal("snapshot changed")
	}
}

func TestExtractExpense(t *testing.T) {
	r := NewResponder()

	item, amount, ok := r.ExtractExpense("i bought a bike for ugx 1,250,000")
	if !ok || item != "a bike" || !amount.Equal(decimal.NewFromInt(1_250_000)) {
		t.Fatalf("ExtractExpense = %q %s %v", item, amount, ok)
	}
	if _, _, ok := r.ExtractExpense("i bought gum for ugx 0"); ok {
		t.Fatal("zero amount should not be extracted")
	}
	if _, _, ok := r.ExtractExpense("i bought gum for kes 50"); ok {
		t.Fatal("other currency should not match")
	}

	kes := NewResponder(WithCurrency("kes"))
	if _, amount, ok := kes.ExtractExpense("I bought gum for KES 50"); !ok || !amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("KES responder: %s %v", amount, ok)
	}
}
