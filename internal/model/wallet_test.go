package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCategoriesKeepDocumentOrder(t *testing.T) {
	var c Categories
	doc := `{"Transport":1500000,"Food":3000000,"Bills":"2000000"}`
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	entries := c.Entries()
	want := []string{"Transport", "Food", "Bills"}
	if len(entries) != len(want) {
		t.Fatalf("len = %d, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entries[%d] = %q, want %q", i, entries[i].Name, name)
		}
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(out); got != `{"Transport":1500000,"Food":3000000,"Bills":2000000}` {
		t.Fatalf("marshal = %s", got)
	}
}

func TestCategoriesRejectNonObject(t *testing.T) {
	var c Categories
	for _, doc := range []string{`[]`, `null`, `{"Food":"abc"}`, `{"Food":1`} {
		if err := json.Unmarshal([]byte(doc), &c); err == nil {
			t.Fatalf("unmarshal %s: expected error", doc)
		}
	}
}

func TestCategoriesAddAccumulates(t *testing.T) {
	var c Categories
	c.Add("Food", decimal.NewFromInt(100))
	c.Add("Rent", decimal.NewFromInt(50))
	c.Add("Food", decimal.NewFromInt(25))

	got, ok := c.Get("Food")
	if !ok || !got.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("Food = %s (ok=%v), want 125", got, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if !c.Total().Equal(decimal.NewFromInt(175)) {
		t.Fatalf("Total = %s, want 175", c.Total())
	}
	if _, ok := c.Get("food"); ok {
		t.Fatal("category names must be case-sensitive")
	}
}

func TestCategoriesTop(t *testing.T) {
	var c Categories
	if _, ok := c.Top(); ok {
		t.Fatal("empty categories should have no top")
	}

	c.Add("Food", decimal.NewFromInt(300))
	c.Add("Rent", decimal.NewFromInt(500))
	c.Add("Fun", decimal.NewFromInt(500))
	top, ok := c.Top()
	if !ok || top.Name != "Rent" {
		t.Fatalf("Top = %q (ok=%v), want Rent", top.Name, ok)
	}

	zero := NewCategories(Category{Name: "Food", Amount: decimal.Zero})
	if _, ok := zero.Top(); ok {
		t.Fatal("zero spending should have no top")
	}
}

func TestVaultProgressClamps(t *testing.T) {
	v := Vault{Current: decimal.NewFromInt(1500), Goal: decimal.NewFromInt(1000)}
	if got := v.PercentComplete(); got != 150 {
		t.Fatalf("PercentComplete = %v, want 150", got)
	}
	if got := v.Progress(); got != 100 {
		t.Fatalf("Progress = %v, want 100", got)
	}

	zero := Vault{Current: decimal.NewFromInt(10)}
	if got := zero.Progress(); got != 0 {
		t.Fatalf("Progress with zero goal = %v, want 0", got)
	}
}

func TestChatMessageLegacyRole(t *testing.T) {
	var msgs []ChatMessage
	doc := `[{"role":"bot","message":"Hey"},{"role":"user","message":"hi"}]`
	if err := json.Unmarshal([]byte(doc), &msgs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msgs[0].Role != RoleAssistant {
		t.Fatalf("role = %q, want %q", msgs[0].Role, RoleAssistant)
	}
	if msgs[1].Text != "hi" {
		t.Fatalf("text = %q, want hi", msgs[1].Text)
	}
}

func TestMonthlySpendingAdd(t *testing.T) {
	m := MonthlySpending{
		Labels: []string{"Jan"},
		Data:   []decimal.Decimal{decimal.NewFromInt(10)},
	}
	m.Add("Jan", decimal.NewFromInt(5))
	m.Add("Feb", decimal.NewFromInt(7))

	if len(m.Labels) != 2 || m.Labels[1] != "Feb" {
		t.Fatalf("labels = %v", m.Labels)
	}
	if !m.Data[0].Equal(decimal.NewFromInt(15)) {
		t.Fatalf("Jan = %s, want 15", m.Data[0])
	}
}
