// Package toast is a queue of short-lived notifications. Each item carries
// its own timer; an item leaves the queue when the timer fires, when its
// handle is cancelled, when the user dismisses it, or when the queue closes.
package toast

import (
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
)

// Item is a queued notification.
type Item[T any] struct {
	ID          uint64
	Content     T
	Dismissable bool
	// Expires is zero for items without a timeout.
	Expires time.Time
}

type entry[T any] struct {
	item  Item[T]
	timer clock.Timer
}

// Option configures a Queue.
type Option func(*settings)

type settings struct {
	log      logr.Logger
	onChange func()
}

// WithLogger sets the logger. The default discards.
func WithLogger(l logr.Logger) Option {
	return func(s *settings) { s.log = l }
}

// OnChange registers fn to run after every change to the queue. It may be
// called from timer goroutines and never while the queue lock is held.
func OnChange(fn func()) Option {
	return func(s *settings) { s.onChange = fn }
}

// Queue holds expiring items in insertion order. It is safe for concurrent use.
type Queue[T any] struct {
	clk      clock.WithDelayedExecution
	log      logr.Logger
	onChange func()

	mu      sync.Mutex
	next    uint64
	entries []entry[T]
	closed  bool
}

// NewQueue creates a queue whose timers run on clk.
func NewQueue[T any](clk clock.WithDelayedExecution, opts ...Option) *Queue[T] {
	s := settings{log: logr.Discard()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Queue[T]{clk: clk, log: s.log, onChange: s.onChange}
}

// Handle cancels one enqueued item.
type Handle[T any] struct {
	q     *Queue[T]
	id    uint64
	timer clock.Timer
}

// ID returns the item id.
func (h *Handle[T]) ID() uint64 { return h.id }

// Cancel stops the item's timer and removes the item. Calling it again, or
// after the item expired, does nothing.
func (h *Handle[T]) Cancel() {
	if h.timer != nil {
		h.timer.Stop()
	}
	h.q.removeByID(h.id, "cancelled")
}

// Enqueue appends content. A positive timeout starts a timer that removes
// the item when it fires; timeout <= 0 keeps the item until it is cancelled
// or dismissed.
func (q *Queue[T]) Enqueue(content T, timeout time.Duration, dismissable bool) *Handle[T] {
	item := Item[T]{Content: content, Dismissable: dismissable}
	if timeout > 0 {
		item.Expires = q.clk.Now().Add(timeout)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.log.Info("enqueue on closed toast queue ignored", "severity", "warning")
		return &Handle[T]{q: q}
	}
	item.ID = q.next
	q.next++
	q.entries = append(q.entries, entry[T]{item: item})
	q.mu.Unlock()

	// The clock is never called with q.mu held: expiry callbacks take q.mu
	// while the clock may hold its own lock.
	h := &Handle[T]{q: q, id: item.ID}
	if timeout > 0 {
		id := item.ID
		h.timer = q.clk.AfterFunc(timeout, func() { q.removeByID(id, "expired") })
		if !q.attachTimer(id, h.timer) {
			h.timer.Stop()
		}
	}

	q.log.V(1).Info("toast enqueued", "id", item.ID, "timeout", timeout, "dismissable", dismissable)
	q.changed()
	return h
}

func (q *Queue[T]) attachTimer(id uint64, t clock.Timer) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.entries {
		if q.entries[i].item.ID == id {
			q.entries[i].timer = t
			return true
		}
	}
	return false
}

// Dismiss removes a dismissable item. It returns false if the item is gone
// or not dismissable.
func (q *Queue[T]) Dismiss(id uint64) bool {
	q.mu.Lock()
	var timer clock.Timer
	found := false
	for _, e := range q.entries {
		if e.item.ID == id {
			if !e.item.Dismissable {
				q.mu.Unlock()
				return false
			}
			timer, found = e.timer, true
			break
		}
	}
	q.mu.Unlock()
	if !found {
		return false
	}
	if timer != nil {
		timer.Stop()
	}
	return q.removeByID(id, "dismissed")
}

// Items returns a snapshot in insertion order.
func (q *Queue[T]) Items() []Item[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item[T], len(q.entries))
	for i, e := range q.entries {
		out[i] = e.item
	}
	return out
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close stops every timer and empties the queue. Later Enqueue calls are
// ignored.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	entries := q.entries
	q.entries = nil
	q.mu.Unlock()

	for _, e := range entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	if len(entries) > 0 {
		q.changed()
	}
}

// removeByID is the one removal path for every caller. Only the first
// caller for an id removes it. It never touches the timer: expiry callbacks
// can run under the clock's own lock.
func (q *Queue[T]) removeByID(id uint64, reason string) bool {
	q.mu.Lock()
	idx := -1
	for i, e := range q.entries {
		if e.item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	q.entries = append(q.entries[:idx:idx], q.entries[idx+1:]...)
	q.mu.Unlock()

	q.log.V(1).Info("toast removed", "id", id, "reason", reason)
	q.changed()
	return true
}

func (q *Queue[T]) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}
