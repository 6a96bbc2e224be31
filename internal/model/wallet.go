// Package model defines the wallet's domain types shared by the engine,
// the assistant and the presentation layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted documents store amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Vault is a named savings goal.
type Vault struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Current decimal.Decimal `json:"current"`
	Goal    decimal.Decimal `json:"goal"`
}

// PercentComplete returns current/goal*100 without clamping.
// A vault with a non-positive goal reports 0.
func (v Vault) PercentComplete() float64 {
	if !v.Goal.IsPositive() {
		return 0
	}
	return v.Current.Div(v.Goal).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// Progress returns PercentComplete clamped to [0, 100] for display.
func (v Vault) Progress() float64 {
	p := v.PercentComplete()
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Category is one entry of the spending breakdown.
type Category struct {
	Name   string
	Amount decimal.Decimal
}

// Categories maps category names to accumulated amounts, remembering the
// order in which each name was first added. The zero value is empty and
// ready to use.
type Categories struct {
	entries []Category
	index   map[string]int
}

// NewCategories builds a Categories from entries in order. Repeated names
// are summed into the first occurrence.
func NewCategories(entries ...Category) Categories {
	var c Categories
	for _, e := range entries {
		c.Add(e.Name, e.Amount)
	}
	return c
}

// Add increases name by amount, appending the name if it is new.
func (c *Categories) Add(name string, amount decimal.Decimal) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.entries[i].Amount = c.entries[i].Amount.Add(amount)
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Category{Name: name, Amount: amount})
}

// Get returns the amount recorded for name.
func (c Categories) Get(name string) (decimal.Decimal, bool) {
	i, ok := c.index[name]
	if !ok {
		return decimal.Zero, false
	}
	return c.entries[i].Amount, true
}

// Len returns the number of categories.
func (c Categories) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the categories in insertion order.
func (c Categories) Entries() []Category {
	out := make([]Category, len(c.entries))
	copy(out, c.entries)
	return out
}

// Total sums every category.
func (c Categories) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Top returns the category with the largest amount. Ties go to the
// earliest. It reports false when nothing positive has been spent.
func (c Categories) Top() (Category, bool) {
	var top Category
	for i, e := range c.entries {
		if i == 0 || e.Amount.GreaterThan(top.Amount) {
			top = e
		}
	}
	return top, top.Amount.IsPositive()
}

// Clone returns an independent copy.
func (c Categories) Clone() Categories {
	return NewCategories(c.entries...)
}

// MarshalJSON encodes the categories as a JSON object in insertion order.
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(e.Amount.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	var out Categories
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categories: unexpected key %v", tok)
		}
		var amount decimal.Decimal
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("categories: amount for %q: %w", name, err)
		}
		out.Add(name, amount)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// MonthlySpending is the per-month spending series shown on the dashboard.
type MonthlySpending struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// Add adds amount to the bucket labelled label. When the last bucket has a
// different label a new bucket is appended.
func (m *MonthlySpending) Add(label string, amount decimal.Decimal) {
	n := len(m.Labels)
	if n > 0 && m.Labels[n-1] == label {
		m.Data[n-1] = m.Data[n-1].Add(amount)
		return
	}
	m.Labels = append(m.Labels, label)
	m.Data = append(m.Data, amount)
}

// Valid reports whether labels and data line up.
func (m MonthlySpending) Valid() bool {
	return len(m.Labels) == len(m.Data)
}

// Clone returns an independent copy.
func (m MonthlySpending) Clone() MonthlySpending {
	return MonthlySpending{
		Labels: append([]string(nil), m.Labels...),
		Data:   append([]decimal.Decimal(nil), m.Data...),
	}
}

// Snapshot is a read-only copy of the financial state at one instant.
type Snapshot struct {
	Balance    decimal.Decimal
	Categories Categories
	Vaults     []Vault
	Monthly    MonthlySpending
}

// TotalSpending sums every spending category.
func (s Snapshot) TotalSpending() decimal.Decimal {
	return s.Categories.Total()
}

// TotalSaved sums the current amount of every vault.
func (s Snapshot) TotalSaved() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.Vaults {
		total = total.Add(v.Current)
	}
	return total
}
