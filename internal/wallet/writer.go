package wallet

import (
	"context"
	"log/slog"
	"sync"

	"github.com/theirongolddev/mywallet/internal/store"
)

// writer persists values in the background. Scheduling never blocks on the
// store; repeated writes to one key before it is drained collapse into the
// latest value.
type writer struct {
	store  store.Store
	logger *slog.Logger

	mu        sync.Mutex
	pending   map[string]string
	order     []string
	scheduled uint64 // writes scheduled so far
	written   uint64 // writes that have reached the store
	err       error  // first failure since the last flush
	progress  chan struct{}
	closed    bool

	wake chan struct{}
	done chan struct{}
}

func newWriter(st store.Store, logger *slog.Logger) *writer {
	w := &writer{
		store:    st,
		logger:   logger,
		pending:  make(map[string]string),
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) schedule(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Warn("write after close dropped", "key", key)
		return
	}
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
	w.scheduled++

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for range w.wake {
		w.drain()
	}
	w.drain()
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if len(w.order) == 0 {
			w.mu.Unlock()
			return
		}
		batch, order, upTo := w.pending, w.order, w.scheduled
		w.pending = make(map[string]string)
		w.order = nil
		w.mu.Unlock()

		var firstErr error
		for _, key := range order {
			if err := w.store.Set(key, batch[key]); err != nil {
				w.logger.Error("persist failed", "key", key, "error", err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			w.logger.Debug("persisted", "key", key, "bytes", len(batch[key]))
		}

		w.mu.Lock()
		if firstErr != nil && w.err == nil {
			w.err = firstErr
		}
		w.written = upTo
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

// flush waits until everything scheduled before the call is written.
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.scheduled
	for w.written < target {
		ch := w.progress
		w.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.mu.Lock()
	}
	err := w.err
	w.err = nil
	w.mu.Unlock()
	return err
}

// close drains outstanding writes and stops the goroutine.
func (w *writer) close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.wake)
	w.mu.Unlock()

	<-w.done

	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.err
	w.err = nil
	return err
}
