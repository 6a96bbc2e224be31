package wallet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/store"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func inMay() time.Time { return time.Date(2026, time.May, 3, 12, 0, 0, 0, time.UTC) }

func newEngine(t *testing.T, st store.Store, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(quiet), WithClock(inMay)}, opts...)
	e := Open(st, opts...)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func flush(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func amt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestDefaultsOnEmptyStore(t *testing.T) {
	e := newEngine(t, store.NewMemory())
	snap := e.Snapshot()

	if !snap.Balance.Equal(amt(29_370_000)) {
		t.Fatalf("Balance = %s, want 29370000", snap.Balance)
	}
	names := []string{}
	for _, c := range snap.Categories.Entries() {
		names = append(names, c.Name)
	}
	if fmt.Sprint(names) != "[Food Transport Bills Entertainment]" {
		t.Fatalf("categories = %v", names)
	}
	if len(snap.Vaults) != 2 || snap.Vaults[0].ID != "rent" || snap.Vaults[1].ID != "emergency" {
		t.Fatalf("vaults = %+v", snap.Vaults)
	}
	tr := e.Transcript()
	if len(tr) != 1 || tr[0].Text != Greeting || tr[0].Role != model.RoleAssistant {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestRecordSpending(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if err := e.RecordSpending("Food", amt(50_000)); err != nil {
		t.Fatalf("RecordSpending: %v", err)
	}
	snap := e.Snapshot()
	if !snap.Balance.Equal(amt(29_320_000)) {
		t.Fatalf("Balance = %s, want 29320000", snap.Balance)
	}
	if got, _ := snap.Categories.Get("Food"); !got.Equal(amt(3_050_000)) {
		t.Fatalf("Food = %s, want 3050000", got)
	}
}

func TestRecordSpendingNewCategoryAppends(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if err := e.RecordSpending("Gifts", amt(10_000)); err != nil {
		t.Fatalf("RecordSpending: %v", err)
	}
	entries := e.Snapshot().Categories.Entries()
	last := entries[len(entries)-1]
	if last.Name != "Gifts" || !last.Amount.Equal(amt(10_000)) {
		t.Fatalf("last category = %+v, want Gifts 10000", last)
	}
	if len(entries) != 5 {
		t.Fatalf("len = %d, want 5", len(entries))
	}
}

func TestRecordSpendingIsCaseSensitive(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if err := e.RecordSpending("food", amt(1)); err != nil {
		t.Fatalf("RecordSpending: %v", err)
	}
	snap := e.Snapshot()
	if snap.Categories.Len() != 5 {
		t.Fatalf("Len = %d, want 5 (food and Food are distinct)", snap.Categories.Len())
	}
}

func TestRecordSpendingKeepsBalanceIdentity(t *testing.T) {
	e := newEngine(t, store.NewMemory())
	before := e.Snapshot()

	spends := []int64{1, 250_000, 13, 7_000_000}
	total := decimal.Zero
	for _, s := range spends {
		if err := e.RecordSpending("Bills", amt(s)); err != nil {
			t.Fatalf("RecordSpending(%d): %v", s, err)
		}
		total = total.Add(amt(s))
	}

	after := e.Snapshot()
	if !before.Balance.Sub(after.Balance).Equal(total) {
		t.Fatalf("balance dropped by %s, want %s", before.Balance.Sub(after.Balance), total)
	}
	if !after.TotalSpending().Sub(before.TotalSpending()).Equal(total) {
		t.Fatalf("spending grew by %s, want %s", after.TotalSpending().Sub(before.TotalSpending()), total)
	}
}

func TestRecordSpendingRejectsInvalidInput(t *testing.T) {
	e := newEngine(t, store.NewMemory())
	before := e.Snapshot()

	cases := []struct {
		category string
		amount   decimal.Decimal
	}{
		{"", amt(10)},
		{"   ", amt(10)},
		{"Food", amt(0)},
		{"Food", amt(-5)},
	}
	for _, c := range cases {
		err := e.RecordSpending(c.category, c.amount)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("RecordSpending(%q, %s) = %v, want ErrInvalidInput", c.category, c.amount, err)
		}
		if UserMessage(err) != MsgSpending {
			t.Fatalf("message = %q", UserMessage(err))
		}
	}

	after := e.Snapshot()
	if !after.Balance.Equal(before.Balance) || after.Categories.Len() != before.Categories.Len() {
		t.Fatal("rejected spending changed state")
	}
}

func TestOverspendingGoesNegative(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if err := e.RecordSpending("Rent", amt(30_000_000)); err != nil {
		t.Fatalf("RecordSpending: %v", err)
	}
	if got := e.Snapshot().Balance; !got.Equal(amt(-630_000)) {
		t.Fatalf("Balance = %s, want -630000", got)
	}
}

func TestRecordSpendingFillsCurrentMonth(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	_ = e.RecordSpending("Food", amt(100))
	_ = e.RecordSpending("Food", amt(50))

	m := e.Snapshot().Monthly
	if len(m.Labels) != 5 || m.Labels[4] != "May" {
		t.Fatalf("labels = %v, want May appended", m.Labels)
	}
	if !m.Data[4].Equal(amt(150)) {
		t.Fatalf("May = %s, want 150", m.Data[4])
	}
}

func TestCreateVault(t *testing.T) {
	e := newEngine(t, store.NewMemory(), WithIDGenerator(func() string { return "vault-1" }))

	id, err := e.CreateVault("Holiday", amt(2_000_000))
	if err != nil {
		t.Fatalf("CreateVault: %v", err)
	}
	if id != "vault-1" {
		t.Fatalf("id = %q, want vault-1", id)
	}
	vaults := e.Snapshot().Vaults
	v := vaults[len(vaults)-1]
	if v.Name != "Holiday" || !v.Current.IsZero() || !v.Goal.Equal(amt(2_000_000)) {
		t.Fatalf("vault = %+v", v)
	}
}

func TestCreateVaultIDsAreUnique(t *testing.T) {
	ids := []string{"rent", "rent", "vault-a", "vault-a", "vault-b"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}
	e := newEngine(t, store.NewMemory(), WithIDGenerator(gen))

	first, _ := e.CreateVault("A", amt(1))
	second, _ := e.CreateVault("B", amt(1))
	if first != "vault-a" || second != "vault-b" {
		t.Fatalf("ids = %q, %q; want vault-a, vault-b", first, second)
	}
}

func TestCreateVaultDefaultIDFormat(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	id, err := e.CreateVault("Car", amt(10))
	if err != nil {
		t.Fatalf("CreateVault: %v", err)
	}
	if len(id) != len("vault-")+36 || id[:6] != "vault-" {
		t.Fatalf("id = %q, want vault-<uuid>", id)
	}
}

func TestCreateVaultRejectsInvalidInput(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if _, err := e.CreateVault(" ", amt(10)); UserMessage(err) != MsgVaultName {
		t.Fatalf("blank name: %v", err)
	}
	for _, goal := range []int64{0, -10} {
		_, err := e.CreateVault("Car", amt(goal))
		if !errors.Is(err, ErrInvalidInput) || UserMessage(err) != MsgVaultGoal {
			t.Fatalf("goal %d: %v", goal, err)
		}
	}
	if n := len(e.Snapshot().Vaults); n != 2 {
		t.Fatalf("vaults = %d, want 2", n)
	}
}

func TestSetVaultAmount(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if err := e.SetVaultAmount("rent", amt(1_000_000)); err != nil {
		t.Fatalf("SetVaultAmount: %v", err)
	}
	v := e.Snapshot().Vaults[0]
	if !v.Current.Equal(amt(1_000_000)) || v.Progress() != 100 {
		t.Fatalf("rent = %+v, progress %v", v, v.Progress())
	}

	// Above goal is allowed; display clamps.
	if err := e.SetVaultAmount("rent", amt(1_500_000)); err != nil {
		t.Fatalf("SetVaultAmount over goal: %v", err)
	}
	v = e.Snapshot().Vaults[0]
	if v.Progress() != 100 || v.PercentComplete() != 150 {
		t.Fatalf("progress = %v, percent = %v", v.Progress(), v.PercentComplete())
	}

	if err := e.SetVaultAmount("rent", amt(0)); err != nil {
		t.Fatalf("SetVaultAmount zero: %v", err)
	}
}

func TestSetVaultAmountIsIdempotent(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	if err := e.SetVaultAmount("emergency", amt(250_000)); err != nil {
		t.Fatalf("first SetVaultAmount: %v", err)
	}
	first := e.Snapshot()
	if err := e.SetVaultAmount("emergency", amt(250_000)); err != nil {
		t.Fatalf("second SetVaultAmount: %v", err)
	}
	second := e.Snapshot()

	if len(first.Vaults) != len(second.Vaults) {
		t.Fatalf("vault count changed on repeat: %d -> %d", len(first.Vaults), len(second.Vaults))
	}
	for i, a := range first.Vaults {
		b := second.Vaults[i]
		if a.ID != b.ID || a.Name != b.Name || !a.Current.Equal(b.Current) || !a.Goal.Equal(b.Goal) {
			t.Fatalf("vault %d changed on repeat: %+v -> %+v", i, a, b)
		}
	}
	if !first.Balance.Equal(second.Balance) {
		t.Fatalf("balance changed on repeat: %s -> %s", first.Balance, second.Balance)
	}
}

func TestSetVaultAmountErrors(t *testing.T) {
	e := newEngine(t, store.NewMemory())
	before := e.Snapshot()

	if err := e.SetVaultAmount("nope", amt(5)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: %v, want ErrNotFound", err)
	}
	if err := e.SetVaultAmount("rent", amt(-1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative: %v, want ErrInvalidInput", err)
	}
	if err := e.SetVaultAmount("nope", amt(-1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id and negative: %v, want ErrNotFound", err)
	}

	after := e.Snapshot()
	for i := range before.Vaults {
		if !before.Vaults[i].Current.Equal(after.Vaults[i].Current) {
			t.Fatalf("vault %s changed", before.Vaults[i].ID)
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	e := newEngine(t, store.NewMemory())

	snap := e.Snapshot()
	snap.Vaults[0].Current = amt(0)
	snap.Categories.Add("Food", amt(1))

	fresh := e.Snapshot()
	if !fresh.Vaults[0].Current.Equal(amt(500_000)) {
		t.Fatal("mutating a snapshot vault leaked into the engine")
	}
	if got, _ := fresh.Categories.Get("Food"); !got.Equal(amt(3_000_000)) {
		t.Fatal("mutating snapshot categories leaked into the engine")
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.db")
	st, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	e := Open(st, WithLogger(quiet), WithClock(inMay))
	_ = e.RecordSpending("Food", amt(50_000))
	_ = e.RecordSpending("Gifts", amt(5_000))
	id, _ := e.CreateVault("Car", amt(9_000_000))
	_ = e.SetVaultAmount(id, amt(1_000))
	e.AppendMessage(model.ChatMessage{Role: model.RoleUser, Text: "hi"})
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	want := e.Snapshot()
	if err := st.Close(); err != nil {
		t.Fatalf("store Close: %v", err)
	}

	st, err = store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	got := newEngine(t, st).Snapshot()

	if !got.Balance.Equal(want.Balance) {
		t.Fatalf("Balance = %s, want %s", got.Balance, want.Balance)
	}
	gotCats, wantCats := got.Categories.Entries(), want.Categories.Entries()
	if len(gotCats) != len(wantCats) {
		t.Fatalf("categories = %v, want %v", gotCats, wantCats)
	}
	for i := range wantCats {
		if gotCats[i].Name != wantCats[i].Name || !gotCats[i].Amount.Equal(wantCats[i].Amount) {
			t.Fatalf("category %d = %+v, want %+v", i, gotCats[i], wantCats[i])
		}
	}
	if len(got.Vaults) != 3 || got.Vaults[2].ID != id || !got.Vaults[2].Current.Equal(amt(1_000)) {
		t.Fatalf("vaults = %+v", got.Vaults)
	}
	if fmt.Sprint(got.Monthly.Labels) != fmt.Sprint(want.Monthly.Labels) {
		t.Fatalf("monthly labels = %v, want %v", got.Monthly.Labels, want.Monthly.Labels)
	}
}

func TestLoadFallsBackPerKey(t *testing.T) {
	st := store.NewMemory()
	_ = st.Set(store.KeyBalance, "not a number")
	_ = st.Set(store.KeyCategories, `["Food"]`)
	_ = st.Set(store.KeyVaults, `[{"id":"a","name":"A","current":5,"goal":10},{"id":"a","name":"B","current":1,"goal":2}]`)
	_ = st.Set(store.KeyMonthlySpending, `{"labels":["Jan"],"data":[]}`)
	_ = st.Set(store.KeyChatHistory, `[{"role":"robot","message":"x"}]`)

	snap := newEngine(t, st).Snapshot()
	if !snap.Balance.Equal(DefaultBalance()) {
		t.Fatalf("Balance = %s, want default", snap.Balance)
	}
	if snap.Categories.Len() != 4 {
		t.Fatalf("categories = %d, want defaults", snap.Categories.Len())
	}
	if len(snap.Vaults) != 2 || snap.Vaults[0].ID != "rent" {
		t.Fatalf("vaults = %+v, want defaults", snap.Vaults)
	}
	if len(snap.Monthly.Labels) != 4 {
		t.Fatalf("monthly = %+v, want defaults", snap.Monthly)
	}
}

func TestLoadRejectsInvalidVaults(t *testing.T) {
	docs := map[string]string{
		"zero goal":     `[{"id":"a","name":"A","current":5,"goal":0}]`,
		"negative goal": `[{"id":"b","name":"B","current":1,"goal":-3}]`,
		"empty name":    `[{"id":"c","name":"","current":1,"goal":10}]`,
		"blank name":    `[{"id":"d","name":"  ","current":1,"goal":10}]`,
		"missing goal":  `[{"id":"e","name":"E","current":1}]`,
	}
	for name, doc := range docs {
		st := store.NewMemory()
		_ = st.Set(store.KeyVaults, doc)

		vaults := newEngine(t, st).Snapshot().Vaults
		if len(vaults) != 2 || vaults[0].ID != "rent" || vaults[1].ID != "emergency" {
			t.Fatalf("%s: vaults = %+v, want defaults", name, vaults)
		}
	}
}

func TestLoadKeepsGoodKeysNextToBadOnes(t *testing.T) {
	st := store.NewMemory()
	_ = st.Set(store.KeyBalance, "1000.5")
	_ = st.Set(store.KeyCategories, `{"Rent":-4}`)
	_ = st.Set(store.KeyChatHistory, `[{"role":"bot","message":"Hey"},{"role":"user","message":"hi"}]`)
	_ = st.Set(store.KeyVaults, `[]`)

	e := newEngine(t, st)
	snap := e.Snapshot()
	if !snap.Balance.Equal(decimal.RequireFromString("1000.5")) {
		t.Fatalf("Balance = %s, want 1000.5", snap.Balance)
	}
	if _, ok := snap.Categories.Get("Rent"); ok {
		t.Fatal("negative category should fall back to defaults")
	}
	if len(snap.Vaults) != 0 {
		t.Fatalf("vaults = %+v, want the stored empty list", snap.Vaults)
	}
	tr := e.Transcript()
	if len(tr) != 2 || tr[0].Role != model.RoleAssistant {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestPersistedFormats(t *testing.T) {
	st := store.NewMemory()
	e := newEngine(t, st, WithIDGenerator(func() string { return "vault-x" }))

	_ = e.RecordSpending("Food", amt(1))
	_, _ = e.CreateVault("Car", amt(10))
	flush(t, e)

	tests := []struct {
		key, want string
	}{
		{store.KeyBalance, "29369999"},
		{store.KeyCategories, `{"Food":3000001,"Transport":1500000,"Bills":2000000,"Entertainment":1000000}`},
		{store.KeyMonthlySpending, `{"labels":["Jan","Feb","Mar","Apr","May"],"data":[5000000,7000000,4500000,6000000,1]}`},
		{store.KeyVaults, `[{"id":"rent","name":"Rent","current":500000,"goal":1000000},{"id":"emergency","name":"Emergency Funds","current":200000,"goal":500000},{"id":"vault-x","name":"Car","current":0,"goal":10}]`},
	}
	for _, tt := range tests {
		got, ok, err := st.Get(tt.key)
		if err != nil || !ok {
			t.Fatalf("Get(%s) = %v, %v", tt.key, ok, err)
		}
		if got != tt.want {
			t.Errorf("%s = %s\nwant %s", tt.key, got, tt.want)
		}
	}
}

func TestTranscript(t *testing.T) {
	st := store.NewMemory()
	e := newEngine(t, st)

	e.AppendMessage(model.ChatMessage{Role: model.RoleUser, Text: "hello"})
	if n := len(e.Transcript()); n != 2 {
		t.Fatalf("len = %d, want 2", n)
	}

	e.ResetTranscript()
	tr := e.Transcript()
	if len(tr) != 1 || tr[0].Text != Greeting {
		t.Fatalf("transcript after reset = %+v", tr)
	}
	flush(t, e)
	raw, _, _ := st.Get(store.KeyChatHistory)
	if raw != `[{"role":"assistant","message":"Hey, how can I assist you?"}]` {
		t.Fatalf("persisted = %s", raw)
	}
}

type failingStore struct {
	store.Store
}

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestFlushReportsWriteErrors(t *testing.T) {
	e := newEngine(t, failingStore{store.NewMemory()})

	if err := e.RecordSpending("Food", amt(1)); err != nil {
		t.Fatalf("RecordSpending: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Flush(ctx); err == nil {
		t.Fatal("Flush should surface the write error")
	}
	// Memory is still updated.
	if got, _ := e.Snapshot().Categories.Get("Food"); !got.Equal(amt(3_000_001)) {
		t.Fatalf("Food = %s", got)
	}
	if err := e.Flush(ctx); err != nil {
		t.Fatalf("second Flush = %v, want nil once reported", err)
	}
}
