package assistant

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/mywallet/internal/model"
	"github.com/theirongolddev/mywallet/internal/store"
	"github.com/theirongolddev/mywallet/internal/wallet"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newChat(t *testing.T, delay time.Duration) (*Chat, *wallet.Engine) {
	t.Helper()
	e := wallet.Open(store.NewMemory(), wallet.WithLogger(quiet))
	t.Cleanup(func() { _ = e.Close() })
	return NewChat(e, NewResponder(), delay, quiet), e
}

func receive(t *testing.T, ch <-chan model.ChatMessage) (model.ChatMessage, bool) {
	t.Helper()
	select {
	case msg, ok := <-ch:
		return msg, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the reply")
		return model.ChatMessage{}, false
	}
}

func TestAskRejectsBlankQuery(t *testing.T) {
	c, e := newChat(t, 0)

	if _, err := c.Ask("   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("Ask = %v, want ErrEmptyQuery", err)
	}
	if n := len(e.Transcript()); n != 1 {
		t.Fatalf("transcript = %d messages, want 1", n)
	}
}

func TestAskDeliversReply(t *testing.T) {
	c, e := newChat(t, 10*time.Millisecond)

	ch, err := c.Ask("  check my wallet ")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	msg, ok := receive(t, ch)
	if !ok {
		t.Fatal("channel closed without a reply")
	}
	if msg.Role != model.RoleAssistant || msg.Text != "Your current balance is UGX 29,370,000." {
		t.Fatalf("reply = %+v", msg)
	}

	tr := e.Transcript()
	if len(tr) != 3 {
		t.Fatalf("transcript = %+v, want greeting, question, reply", tr)
	}
	if tr[1].Role != model.RoleUser || tr[1].Text != "check my wallet" {
		t.Fatalf("user message = %+v, want trimmed query", tr[1])
	}
	if c.Pending() {
		t.Fatal("Pending after delivery")
	}
}

func TestAskWhileBusy(t *testing.T) {
	c, _ := newChat(t, time.Hour)

	if _, err := c.Ask("hello"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if _, err := c.Ask("hello again"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Ask = %v, want ErrBusy", err)
	}
}

func TestResetCancelsPendingReply(t *testing.T) {
	c, e := newChat(t, time.Hour)

	ch, err := c.Ask("hello")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	c.Reset()

	if _, ok := receive(t, ch); ok {
		t.Fatal("canceled reply was delivered")
	}
	tr := e.Transcript()
	if len(tr) != 1 || tr[0].Text != wallet.Greeting {
		t.Fatalf("transcript = %+v, want only the greeting", tr)
	}
	if c.Pending() {
		t.Fatal("Pending after Reset")
	}
	if _, err := c.Ask("hello"); err != nil {
		t.Fatalf("Ask after Reset: %v", err)
	}
}

func TestReplyUsesSnapshotAtAskTime(t *testing.T) {
	c, e := newChat(t, 50*time.Millisecond)

	ch, err := c.Ask("what's my balance?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	// Mutations are not blocked by the pending reply.
	if err := e.RecordSpending("Food", decimal.NewFromInt(370_000)); err != nil {
		t.Fatalf("RecordSpending: %v", err)
	}

	msg, _ := receive(t, ch)
	if msg.Text != "Your current balance is UGX 29,370,000." {
		t.Fatalf("reply = %q, want the balance as of asking", msg.Text)
	}
}
