// Package assistant answers free-text finance questions with scripted
// replies built from a snapshot of the wallet.
package assistant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
)

// Canned replies.
const (
	ReplyNoSpending   = "You haven't recorded any spending yet this month."
	ReplyInvest       = "With your current balance, I recommend exploring investment opportunities or setting up a new, ambitious savings goal in your 'My Vault' section!"
	ReplyCutBack      = "It seems your spending is quite high relative to your balance. Consider reviewing your 'XSpend' categories to identify areas where you can cut back, especially on non-essentials."
	ReplyTrack        = "To improve your finances, always track your spending diligently and try to allocate a portion of your income to your savings vaults regularly."
	ReplyNoVaults     = "You haven't set up any vaults yet. Go to the 'Wallet' section to create some savings goals!"
	ReplyAddExpense   = "To add an expense or upload a receipt, please navigate to the 'XSpend' tab. You can manually add spending there."
	ReplyGreeting     = "Hello there! How can I help you with your finances today?"
	ReplyThanks       = "You're most welcome! Is there anything else I can assist you with?"
	ReplyIdentity     = "I am My Wallet AI, your smart finance partner, here to help you manage your money."
	ReplyCapabilities = "I can tell you your balance, summarize your spending, update you on your savings goals, and offer financial advice. Just ask!"
	ReplyFallback     = "I'm not sure how to respond to that. Can you ask about your balance, spending, vaults, or for financial advice?"
)

// Intent names the rule group a query matched.
type Intent string

const (
	IntentBalance      Intent = "balance"
	IntentSpending     Intent = "spending"
	IntentAdvice       Intent = "advice"
	IntentVaults       Intent = "vaults"
	IntentExpense      Intent = "expense"
	IntentGreeting     Intent = "greeting"
	IntentThanks       Intent = "thanks"
	IntentIdentity     Intent = "identity"
	IntentCapabilities Intent = "capabilities"
	IntentFallback     Intent = "fallback"
)

// rule matches when the normalized query contains any trigger.
type rule struct {
	intent   Intent
	triggers []string
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{IntentBalance, []string{
		"what's my balance?", "how much money do i have?", "check my wallet",
		"total funds available", "show me my cash", "my current balance",
	}},
	{IntentSpending, []string{
		"how much have i spent this month?", "break down my spending",
		"what did i spend the most on?", "show me my expenses",
		"where is most of my money going?", "spent",
	}},
	{IntentAdvice, []string{
		"recommend a savings plan", "what should i do with my money?",
		"any suggestions?", "advise me financially",
	}},
	{IntentVaults, []string{
		"what's my rent vault status?", "how much saved for emergencies?",
		"progress on savings?", "vaults status", "goal achievements",
	}},
	{IntentExpense, []string{
		"upload this receipt", "add new expense", "scan this bill", "log my spending",
	}},
	// "hi" also matches inside words such as "this".
	{IntentGreeting, []string{"hello", "hi"}},
	{IntentThanks, []string{"thanks", "thank you"}},
	{IntentIdentity, []string{"who are you?"}},
	{IntentCapabilities, []string{"what can you help with?"}},
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// Normalize lowercases query and folds typographic apostrophes.
func Normalize(query string) string {
	return apostrophes.Replace(strings.ToLower(query))
}

// Classify returns the intent of the first rule group query matches.
func Classify(query string) Intent {
	q := Normalize(query)
	for _, r := range rules {
		for _, trig := range r.triggers {
			if strings.Contains(q, trig) {
				return r.intent
			}
		}
	}
	return IntentFallback
}

// Responder turns a query and a wallet snapshot into a reply. It never
// changes wallet state.
type Responder struct {
	currency    string
	highBalance decimal.Decimal
	spendRatio  decimal.Decimal
	purchase    *regexp.Regexp
}

// Option configures a Responder.
type Option func(*Responder)

// WithCurrency sets the currency code used in replies and in purchase
// mentions.
func WithCurrency(code string) Option {
	return func(r *Responder) { r.currency = strings.ToUpper(strings.TrimSpace(code)) }
}

// WithAdviceThresholds sets the balance above which investing is suggested
// and the spending share of the balance above which cutting back is.
func WithAdviceThresholds(highBalance, spendRatio decimal.Decimal) Option {
	return func(r *Responder) {
		r.highBalance = highBalance
		r.spendRatio = spendRatio
	}
}

// NewResponder returns a Responder with the default UGX currency and
// advice thresholds of 20,000,000 and 40%.
func NewResponder(opts ...Option) *Responder {
	r := &Responder{
		currency:    cli.DefaultCurrency,
		highBalance: decimal.NewFromInt(20_000_000),
		spendRatio:  decimal.RequireFromString("0.4"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.currency == "" {
		r.currency = cli.DefaultCurrency
	}
	r.purchase = regexp.MustCompile(`i bought (.+) for ` + regexp.QuoteMeta(strings.ToLower(r.currency)) + ` ([\d,]+)`)
	return r
}

// Respond returns the reply for query given snap.
func (r *Responder) Respond(query string, snap model.Snapshot) string {
	switch Classify(query) {
	case IntentBalance:
		return fmt.Sprintf("Your current balance is %s.", r.money(snap.Balance))
	case IntentSpending:
		return r.spending(snap)
	case IntentAdvice:
		return r.advice(snap)
	case IntentVaults:
		return r.vaults(snap)
	case IntentExpense:
		reply := ReplyAddExpense
		if item, amount, ok := r.ExtractExpense(query); ok {
			reply += fmt.Sprintf(" I can see you mentioned buying \"%s\" for %s. You can add this in the XSpend section!", item, r.money(amount))
		}
		return reply
	case IntentGreeting:
		return ReplyGreeting
	case IntentThanks:
		return ReplyThanks
	case IntentIdentity:
		return ReplyIdentity
	case IntentCapabilities:
		return ReplyCapabilities
	default:
		return ReplyFallback
	}
}

// ExtractExpense finds "i bought <item> for <currency> <amount>" in query.
// The item is returned lowercased and trimmed. Non-positive amounts are
// ignored.
func (r *Responder) ExtractExpense(query string) (string, decimal.Decimal, bool) {
	m := r.purchase.FindStringSubmatch(Normalize(query))
	if m == nil {
		return "", decimal.Zero, false
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
	if err != nil || !amount.IsPositive() {
		return "", decimal.Zero, false
	}
	return strings.TrimSpace(m[1]), amount, true
}

func (r *Responder) money(d decimal.Decimal) string {
	return cli.FormatMoney(r.currency, d)
}

func (r *Responder) spending(snap model.Snapshot) string {
	total := snap.TotalSpending()
	if !total.IsPositive() {
		return ReplyNoSpending
	}

	entries := snap.Categories.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Your total spending is %s. Here's a breakdown by category:", r.money(total))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- %s: %s", e.Name, r.money(e.Amount))
	}
	return b.String()
}

func (r *Responder) advice(snap model.Snapshot) string {
	switch {
	case snap.Balance.GreaterThan(r.highBalance):
		return ReplyInvest
	case snap.TotalSpending().GreaterThan(snap.Balance.Mul(r.spendRatio)):
		return ReplyCutBack
	default:
		return ReplyTrack
	}
}

func (r *Responder) vaults(snap model.Snapshot) string {
	if len(snap.Vaults) == 0 {
		return ReplyNoVaults
	}

	var b strings.Builder
	b.WriteString("Here's the status of your vaults:")
	for _, v := range snap.Vaults {
		fmt.Fprintf(&b, "\n- %s: %s of %s (%s complete).",
			v.Name, r.money(v.Current), r.money(v.Goal), cli.FormatPercent(v.PercentComplete()))
	}
	return b.String()
}
