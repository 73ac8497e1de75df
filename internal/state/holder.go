// Package state holds what the list view shows: the items, an optional
// error message and a busy flag. Fetch cycles run in the background and
// only the most recently triggered one may write.
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/fetchlist/internal/fetch"
	"github.com/idilsaglam/fetchlist/internal/model"
	"github.com/idilsaglam/fetchlist/internal/sanitize"
)

// EmptyListMessage is shown when a fetch succeeds but nothing survives sanitizing.
const EmptyListMessage = "The fetched list is empty.\nTry re-fetching later."

// State is a snapshot of the three observable fields.
// HasErr distinguishes "no error" from an empty message.
type State struct {
	Items  []model.ListableItem
	Err    string
	HasErr bool
	Busy   bool
}

// Holder runs fetch cycles and publishes state changes to subscribers.
type Holder struct {
	fetcher fetch.Fetcher
	log     *log.Logger

	// notify serializes write+publish so subscribers see changes in order.
	notify sync.Mutex

	mu      sync.Mutex
	st      State
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
	subs    map[int]func(State)
	nextSub int

	wg sync.WaitGroup
}

type Option func(*Holder)

// WithLogger sets where cycle diagnostics go. Defaults to discarding them.
func WithLogger(l *log.Logger) Option {
	return func(h *Holder) { h.log = l }
}

func New(f fetch.Fetcher, opts ...Option) *Holder {
	h := &Holder{
		fetcher: f,
		log:     log.New(io.Discard, "", 0),
		st:      State{Items: []model.ListableItem{}},
		subs:    map[int]func(State){},
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Snapshot returns the current state.
func (h *Holder) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Holder) Items() []model.ListableItem { return h.Snapshot().Items }

func (h *Holder) Error() (string, bool) {
	s := h.Snapshot()
	return s.Err, s.HasErr
}

func (h *Holder) Busy() bool { return h.Snapshot().Busy }

// Subscribe registers fn to receive every state change. fn runs on the
// fetch goroutine and must not block. The returned func unsubscribes.
func (h *Holder) Subscribe(fn func(State)) (cancel func()) {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// TriggerFetch starts a new fetch cycle, cancelling the one in flight.
// It returns immediately. After Close it does nothing.
func (h *Holder) TriggerFetch() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	if h.cancel != nil {
		h.cancel()
	}
	h.gen++
	gen := h.gen
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.wg.Add(1)
	h.mu.Unlock()

	go h.run(ctx, gen, uuid.NewString())
}

// Close cancels the cycle in flight. No state is written afterwards.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// Wait blocks until every started cycle has returned.
func (h *Holder) Wait() { h.wg.Wait() }

func (h *Holder) run(ctx context.Context, gen uint64, id string) {
	defer h.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			h.log.Printf("fetch %s: panic: %v", id, r)
			h.fail(gen, fmt.Sprintf("Exception occurred:\n%v", r))
		}
	}()

	h.log.Printf("fetch %s: start", id)
	h.write(gen, func(s *State) { s.Busy = true })

	items, err := h.fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		h.log.Printf("fetch %s: cancelled", id)
		return
	}
	if err != nil {
		h.log.Printf("fetch %s: failed: %v", id, err)
		h.fail(gen, failureMessage(err))
		return
	}

	clean := sanitize.Sanitize(items)
	h.log.Printf("fetch %s: %d items, %d after sanitize", id, len(items), len(clean))
	if len(clean) == 0 {
		// Items are left as they were; a previous list stays underneath the error.
		h.fail(gen, EmptyListMessage)
		return
	}
	h.write(gen, func(s *State) {
		s.Items = clean
		s.Err, s.HasErr = "", false
		s.Busy = false
	})
}

func (h *Holder) fail(gen uint64, msg string) {
	h.write(gen, func(s *State) {
		s.Err, s.HasErr = msg, true
		s.Busy = false
	})
}

// write applies fn and publishes, unless gen has been superseded or the
// holder is closed.
func (h *Holder) write(gen uint64, fn func(*State)) bool {
	h.notify.Lock()
	defer h.notify.Unlock()

	h.mu.Lock()
	if h.closed || gen != h.gen {
		h.mu.Unlock()
		return false
	}
	fn(&h.st)
	snap := h.snapshotLocked()
	subs := make([]func(State), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		h.publish(fn, snap)
	}
	return true
}

// publish hands snap to one subscriber. A panicking subscriber is logged
// and skipped; it must not take down the cycle or the process.
func (h *Holder) publish(fn func(State), snap State) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Printf("subscriber panic: %v", r)
		}
	}()
	fn(snap)
}

func (h *Holder) snapshotLocked() State {
	s := h.st
	s.Items = slices.Clone(h.st.Items)
	if s.Items == nil {
		s.Items = []model.ListableItem{}
	}
	return s
}

// failureMessage keeps HTTP status errors as they are and reports anything
// else the way an unexpected exception is reported.
func failureMessage(err error) string {
	var se *fetch.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return "Exception occurred:\n" + err.Error()
}
