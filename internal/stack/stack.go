// Package stack is the push/pop/peek collection behind every piece of
// contextual overlay state: modals, shell layout overrides, tab sets.
package stack

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"modalstack/internal/channel"
)

// ErrUnknownEntry is returned when an id is not present on the stack.
var ErrUnknownEntry = errors.New("stack: unknown entry")

// ID identifies an entry. IDs increase per stack and wrap on overflow.
type ID uint64

// Entry is an item together with its identity.
type Entry[T any] struct {
	ID   ID
	Item T
}

// Policy picks the next active entry after the active one is removed.
type Policy int

const (
	// SelectLast activates the most recently pushed surviving entry.
	SelectLast Policy = iota
	// SelectFirst activates the oldest surviving entry.
	SelectFirst
)

func (p Policy) String() string {
	switch p {
	case SelectLast:
		return "last"
	case SelectFirst:
		return "first"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "last" or "first".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last", "":
		return SelectLast, nil
	case "first":
		return SelectFirst, nil
	default:
		return 0, fmt.Errorf("unknown selection policy %q (expected last or first)", s)
	}
}

// Hooks observe a stack. Any field may be nil.
type Hooks[T any] struct {
	// OnPush runs after an entry is appended.
	OnPush func(Entry[T])
	// OnRemove runs once per removal call with the removed entries in
	// insertion order, before a new active entry is selected.
	OnRemove func(removed []Entry[T], activeRemoved bool)
	// OnActive runs when the active entry changes or its item is modified.
	OnActive func(active Entry[T], ok bool)
}

type hookReg[T any] struct {
	hooks   Hooks[T]
	removed bool
}

// Option configures a Stack.
type Option func(*settings)

type settings struct {
	policy           Policy
	keepActiveOnPush bool
}

// WithPolicy sets the reselection policy. The default is SelectLast.
func WithPolicy(p Policy) Option {
	return func(s *settings) { s.policy = p }
}

// WithKeepActiveOnPush makes Push leave the active entry alone unless
// nothing is active, as tab strips do.
func WithKeepActiveOnPush() Option {
	return func(s *settings) { s.keepActiveOnPush = true }
}

// Stack is an ordered collection of entries with one active entry.
// With the default options the active entry is always the top.
// A Stack is not safe for concurrent use.
type Stack[T any] struct {
	tag      channel.Tag
	settings settings

	next    ID
	entries []Entry[T]

	active    ID
	hasActive bool

	base    ID
	hasBase bool

	hooks []*hookReg[T]
}

// New creates an empty stack. It panics if tag is blank.
func New[T any](tag channel.Tag, opts ...Option) *Stack[T] {
	if err := tag.Validate(); err != nil {
		panic(fmt.Errorf("stack.New: %w", err))
	}
	s := &Stack[T]{tag: tag}
	for _, opt := range opts {
		opt(&s.settings)
	}
	return s
}

// NewWithBase creates a stack holding base as a permanent bottom entry.
// Pop and the removal methods never remove the base.
func NewWithBase[T any](tag channel.Tag, base T, opts ...Option) *Stack[T] {
	s := New[T](tag, opts...)
	s.base = s.Push(base)
	s.hasBase = true
	return s
}

// Tag returns the channel tag the stack was created with.
func (s *Stack[T]) Tag() channel.Tag { return s.tag }

// Policy returns the reselection policy.
func (s *Stack[T]) Policy() Policy { return s.settings.policy }

// Len returns the number of entries, base included.
func (s *Stack[T]) Len() int { return len(s.entries) }

// Push appends item and returns its id.
func (s *Stack[T]) Push(item T) ID {
	id := s.next
	s.next++
	e := Entry[T]{ID: id, Item: item}
	s.entries = append(s.entries, e)
	s.each(func(h Hooks[T]) {
		if h.OnPush != nil {
			h.OnPush(e)
		}
	})
	if !s.settings.keepActiveOnPush || !s.hasActive {
		s.setActive(id, true)
	}
	return id
}

// PushScoped pushes item and returns a release func that removes exactly
// that entry. Release is idempotent; use it as a cleanup for whatever owns
// the entry.
func (s *Stack[T]) PushScoped(item T) (release func()) {
	id := s.Push(item)
	var once sync.Once
	return func() {
		once.Do(func() { s.Remove(id) })
	}
}

// Pop removes the top entry. It returns false on an empty stack or when
// only the base remains.
func (s *Stack[T]) Pop() (Entry[T], bool) {
	if len(s.entries) == 0 {
		return Entry[T]{}, false
	}
	top := s.entries[len(s.entries)-1]
	removed := s.remove(func(e Entry[T]) bool { return e.ID == top.ID })
	if len(removed) == 0 {
		return Entry[T]{}, false
	}
	return removed[0], true
}

// Remove removes the entry with id. It reports whether anything was removed.
func (s *Stack[T]) Remove(id ID) bool {
	return len(s.remove(func(e Entry[T]) bool { return e.ID == id })) > 0
}

// RemoveMany removes every entry whose id is in ids.
func (s *Stack[T]) RemoveMany(ids []ID) []Entry[T] {
	set := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return s.remove(func(e Entry[T]) bool {
		_, ok := set[e.ID]
		return ok
	})
}

// RemoveAllExcept removes every entry other than id (and the base).
func (s *Stack[T]) RemoveAllExcept(id ID) []Entry[T] {
	return s.remove(func(e Entry[T]) bool { return e.ID != id })
}

// Modify replaces the item of entry id in place, keeping its identity and position.
func (s *Stack[T]) Modify(id ID, item T) bool {
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		s.entries[i].Item = item
		if s.hasActive && s.active == id {
			s.notifyActive()
		}
		return true
	}
	return false
}

// Select makes id the active entry.
func (s *Stack[T]) Select(id ID) error {
	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("%w: %d on %s", ErrUnknownEntry, id, s.tag)
	}
	s.setActive(id, true)
	return nil
}

// Active returns the active entry.
func (s *Stack[T]) Active() (Entry[T], bool) {
	if !s.hasActive {
		return Entry[T]{}, false
	}
	return s.Get(s.active)
}

// Top returns the most recently pushed entry still present.
func (s *Stack[T]) Top() (Entry[T], bool) {
	if len(s.entries) == 0 {
		return Entry[T]{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Get returns the entry with id.
func (s *Stack[T]) Get(id ID) (Entry[T], bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry[T]{}, false
}

// Entries returns a copy of the entries in insertion order.
func (s *Stack[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(s.entries))
	copy(out, s.entries)
	return out
}

// Observe registers hooks and returns a func that unregisters them.
func (s *Stack[T]) Observe(h Hooks[T]) (cancel func()) {
	reg := &hookReg[T]{hooks: h}
	s.hooks = append(s.hooks, reg)
	return func() {
		if reg.removed {
			return
		}
		reg.removed = true
		for i, r := range s.hooks {
			if r == reg {
				s.hooks = append(s.hooks[:i:i], s.hooks[i+1:]...)
				break
			}
		}
	}
}

// Watch calls fn whenever the active entry changes.
func (s *Stack[T]) Watch(fn func(active Entry[T], ok bool)) (cancel func()) {
	return s.Observe(Hooks[T]{OnActive: fn})
}

func (s *Stack[T]) remove(match func(Entry[T]) bool) []Entry[T] {
	var removed []Entry[T]
	kept := make([]Entry[T], 0, len(s.entries))
	for _, e := range s.entries {
		if match(e) && !(s.hasBase && e.ID == s.base) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	if len(removed) == 0 {
		return nil
	}
	s.entries = kept

	activeRemoved := false
	if s.hasActive {
		for _, e := range removed {
			if e.ID == s.active {
				activeRemoved = true
				break
			}
		}
	}
	s.each(func(h Hooks[T]) {
		if h.OnRemove != nil {
			h.OnRemove(removed, activeRemoved)
		}
	})
	if activeRemoved {
		s.reselect()
	}
	return removed
}

func (s *Stack[T]) reselect() {
	if len(s.entries) == 0 {
		s.setActive(0, false)
		return
	}
	next := s.entries[len(s.entries)-1]
	if s.settings.policy == SelectFirst {
		next = s.entries[0]
	}
	s.setActive(next.ID, true)
}

func (s *Stack[T]) setActive(id ID, ok bool) {
	if s.hasActive == ok && (!ok || s.active == id) {
		return
	}
	s.active, s.hasActive = id, ok
	s.notifyActive()
}

func (s *Stack[T]) notifyActive() {
	e, ok := s.Active()
	s.each(func(h Hooks[T]) {
		if h.OnActive != nil {
			h.OnActive(e, ok)
		}
	})
}

func (s *Stack[T]) each(fn func(Hooks[T])) {
	regs := make([]*hookReg[T], len(s.hooks))
	copy(regs, s.hooks)
	for _, r := range regs {
		if !r.removed {
			fn(r.hooks)
		}
	}
}
