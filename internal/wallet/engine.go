// Package wallet owns the financial state: balance, spending categories,
// savings vaults, the monthly spending series and the assistant transcript.
// Mutations update memory first and are persisted in the background.
package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/store"
)

// Engine is the single owner of wallet state. It is safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	balance    decimal.Decimal
	categories model.Categories
	vaults     []model.Vault
	monthly    model.MonthlySpending
	transcript []model.ChatMessage

	store  store.Store
	writer *writer
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the clock used to pick the monthly bucket.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides how vault ids are minted.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// New returns an engine holding the default state, backed by st.
// Call Load to replace the defaults with persisted values.
func New(st store.Store, opts ...Option) *Engine {
	e := &Engine{
		balance:    DefaultBalance(),
		categories: DefaultCategories(),
		vaults:     DefaultVaults(),
		monthly:    DefaultMonthly(),
		transcript: DefaultTranscript(),
		store:      st,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      func() string { return "vault-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "wallet")
	e.writer = newWriter(st, e.logger)
	return e
}

// Open creates an engine and loads persisted state.
func Open(st store.Store, opts ...Option) *Engine {
	e := New(st, opts...)
	e.Load()
	return e
}

// Load reads every persisted key. Missing values keep their defaults;
// values that fail to decode or validate are replaced by defaults and
// logged. Load never fails.
func (e *Engine) Load() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.balance = DefaultBalance()
	if raw, ok := e.read(store.KeyBalance); ok {
		if b, err := decodeBalance(raw); err != nil {
			e.fallback(store.KeyBalance, err)
		} else {
			e.balance = b
		}
	}

	e.categories = DefaultCategories()
	if raw, ok := e.read(store.KeyCategories); ok {
		if c, err := decodeCategories(raw); err != nil {
			e.fallback(store.KeyCategories, err)
		} else {
			e.categories = c
		}
	}

	e.vaults = DefaultVaults()
	if raw, ok := e.read(store.KeyVaults); ok {
		if v, err := decodeVaults(raw); err != nil {
			e.fallback(store.KeyVaults, err)
		} else {
			e.vaults = v
		}
	}

	e.monthly = DefaultMonthly()
	if raw, ok := e.read(store.KeyMonthlySpending); ok {
		if m, err := decodeMonthly(raw); err != nil {
			e.fallback(store.KeyMonthlySpending, err)
		} else {
			e.monthly = m
		}
	}

	e.transcript = DefaultTranscript()
	if raw, ok := e.read(store.KeyChatHistory); ok {
		if t, err := decodeTranscript(raw); err != nil {
			e.fallback(store.KeyChatHistory, err)
		} else {
			e.transcript = t
		}
	}

	e.logger.Debug("state loaded",
		"balance", e.balance.String(),
		"categories", e.categories.Len(),
		"vaults", len(e.vaults),
		"messages", len(e.transcript),
	)
}

func (e *Engine) read(key string) (string, bool) {
	raw, ok, err := e.store.Get(key)
	if err != nil {
		e.fallback(key, err)
		return "", false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

func (e *Engine) fallback(key string, err error) {
	e.logger.Warn("using default", "key", key, "error", err)
}

// RecordSpending adds amount to category, subtracts it from the balance
// and adds it to the current month's bucket. The balance may go negative.
func (e *Engine) RecordSpending(category string, amount decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" || !amount.IsPositive() {
		return invalid(MsgSpending)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.categories.Add(category, amount)
	e.balance = e.balance.Sub(amount)
	e.monthly.Add(e.now().Format("Jan"), amount)

	e.persistBalance()
	e.persist(store.KeyCategories, e.categories)
	e.persist(store.KeyMonthlySpending, e.monthly)

	e.logger.Info("spending recorded", "category", category, "amount", amount.String())
	return nil
}

// CreateVault appends a new vault with nothing saved and returns its id.
func (e *Engine) CreateVault(name string, goal decimal.Decimal) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(MsgVaultName)
	}
	if !goal.IsPositive() {
		return "", invalid(MsgVaultGoal)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.newID()
	for e.vaultIndex(id) >= 0 {
		id = e.newID()
	}
	e.vaults = append(e.vaults, model.Vault{ID: id, Name: name, Current: decimal.Zero, Goal: goal})
	e.persist(store.KeyVaults, e.vaults)

	e.logger.Info("vault created", "id", id, "name", name, "goal", goal.String())
	return id, nil
}

// SetVaultAmount replaces the saved amount of vault id. Amounts above the
// goal are allowed.
func (e *Engine) SetVaultAmount(id string, amount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.vaultIndex(id)
	if i < 0 {
		return fmt.Errorf("vault %q: %w", id, ErrNotFound)
	}
	if amount.IsNegative() {
		return invalid(MsgVaultAmount)
	}

	e.vaults[i].Current = amount
	e.persist(store.KeyVaults, e.vaults)

	e.logger.Info("vault updated", "id", id, "current", amount.String())
	return nil
}

func (e *Engine) vaultIndex(id string) int {
	for i, v := range e.vaults {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns a deep copy of the financial state.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return model.Snapshot{
		Balance:    e.balance,
		Categories: e.categories.Clone(),
		Vaults:     append([]model.Vault(nil), e.vaults...),
		Monthly:    e.monthly.Clone(),
	}
}

// AppendMessage adds msg to the transcript.
func (e *Engine) AppendMessage(msg model.ChatMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.transcript = append(e.transcript, msg)
	e.persist(store.KeyChatHistory, e.transcript)
}

// Transcript returns a copy of the chat transcript.
func (e *Engine) Transcript() []model.ChatMessage {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]model.ChatMessage(nil), e.transcript...)
}

// ResetTranscript clears the transcript back to the greeting.
func (e *Engine) ResetTranscript() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.transcript = DefaultTranscript()
	e.persist(store.KeyChatHistory, e.transcript)
}

// Flush waits for every write scheduled so far. It returns the first write
// error since the previous Flush.
func (e *Engine) Flush(ctx context.Context) error {
	return e.writer.flush(ctx)
}

// Close persists outstanding writes and stops the background writer. The
// store itself is left open.
func (e *Engine) Close() error {
	return e.writer.close()
}

// persistBalance and persist must be called with e.mu held so writes are
// scheduled in mutation order.
func (e *Engine) persistBalance() {
	e.writer.schedule(store.KeyBalance, e.balance.String())
}

func (e *Engine) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		e.logger.Error("encoding state", "key", key, "error", err)
		return
	}
	e.writer.schedule(key, string(data))
}

func decodeBalance(raw string) (decimal.Decimal, error) {
	b, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing balance: %w", err)
	}
	return b, nil
}

func decodeCategories(raw string) (model.Categories, error) {
	var c model.Categories
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return model.Categories{}, err
	}
	for _, entry := range c.Entries() {
		if entry.Name == "" {
			return model.Categories{}, errors.New("empty category name")
		}
		if entry.Amount.IsNegative() {
			return model.Categories{}, fmt.Errorf("category %q is negative", entry.Name)
		}
	}
	return c, nil
}

func decodeVaults(raw string) ([]model.Vault, error) {
	var vaults []model.Vault
	if err := json.Unmarshal([]byte(raw), &vaults); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(vaults))
	for _, v := range vaults {
		switch {
		case v.ID == "":
			return nil, errors.New("vault without id")
		case seen[v.ID]:
			return nil, fmt.Errorf("duplicate vault id %q", v.ID)
		case strings.TrimSpace(v.Name) == "":
			return nil, fmt.Errorf("vault %q has no name", v.ID)
		case !v.Goal.IsPositive():
			return nil, fmt.Errorf("vault %q has a non-positive goal", v.ID)
		case v.Current.IsNegative():
			return nil, fmt.Errorf("vault %q has a negative amount", v.ID)
		}
		seen[v.ID] = true
	}
	if vaults == nil {
		vaults = []model.Vault{}
	}
	return vaults, nil
}

func decodeMonthly(raw string) (model.MonthlySpending, error) {
	var m model.MonthlySpending
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return model.MonthlySpending{}, err
	}
	if !m.Valid() {
		return model.MonthlySpending{}, fmt.Errorf("%d labels for %d values", len(m.Labels), len(m.Data))
	}
	return m, nil
}

func decodeTranscript(raw string) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, err
	}
	for i, m := range msgs {
		if !m.Valid() {
			return nil, fmt.Errorf("message %d has unknown role %q", i, m.Role)
		}
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return msgs, nil
}
