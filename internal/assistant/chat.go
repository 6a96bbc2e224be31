package assistant

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/mywallet/internal/model"
)

var (
	// ErrEmptyQuery is returned by Ask for a blank query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrBusy is returned by Ask while an earlier reply is still pending.
	ErrBusy = errors.New("assistant is still replying")
)

// DefaultTypingDelay is how long a reply takes to appear.
const DefaultTypingDelay = 1500 * time.Millisecond

// Wallet is the part of the wallet engine the chat needs.
type Wallet interface {
	Snapshot() model.Snapshot
	AppendMessage(model.ChatMessage)
	ResetTranscript()
}

// Chat runs one conversation at a time: the user's message is recorded
// immediately and the reply after a typing delay.
type Chat struct {
	wallet    Wallet
	responder *Responder
	delay     time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	pending *pendingReply
}

type pendingReply struct {
	timer *time.Timer
	ch    chan model.ChatMessage
}

// NewChat returns a Chat answering with r after delay. A nil logger uses
// slog.Default.
func NewChat(w Wallet, r *Responder, delay time.Duration, logger *slog.Logger) *Chat {
	if logger == nil {
		logger = slog.Default()
	}
	if delay < 0 {
		delay = 0
	}
	return &Chat{
		wallet:    w,
		responder: r,
		delay:     delay,
		logger:    logger.With("component", "assistant"),
	}
}

// Ask records query and schedules the reply. The reply is computed from
// the wallet as it is now. The returned channel yields the reply once and
// is closed; it is closed without a value if Reset runs first.
func (c *Chat) Ask(query string) (<-chan model.ChatMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return nil, ErrBusy
	}

	c.wallet.AppendMessage(model.ChatMessage{Role: model.RoleUser, Text: query})
	reply := c.responder.Respond(query, c.wallet.Snapshot())
	c.logger.Debug("reply scheduled", "intent", Classify(query), "delay", c.delay)

	p := &pendingReply{ch: make(chan model.ChatMessage, 1)}
	c.pending = p
	p.timer = time.AfterFunc(c.delay, func() { c.deliver(p, reply) })
	return p.ch, nil
}

func (c *Chat) deliver(p *pendingReply, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != p {
		return
	}
	c.pending = nil

	msg := model.ChatMessage{Role: model.RoleAssistant, Text: text}
	c.wallet.AppendMessage(msg)
	p.ch <- msg
	close(p.ch)
}

// Pending reports whether a reply is on its way.
func (c *Chat) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Reset cancels any pending reply and clears the transcript back to the
// greeting.
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p := c.pending; p != nil {
		p.timer.Stop()
		c.pending = nil
		close(p.ch)
		c.logger.Debug("pending reply canceled")
	}
	c.wallet.ResetTranscript()
}
