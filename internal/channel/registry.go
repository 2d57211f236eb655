// Package channel scopes independent instances of the same generic overlay
// machinery. Every stack, trap and queue is constructed with a Tag, and a
// Registry maps tags to those instances so that callers fetch "the modal
// stack for settings" explicitly instead of through ambient state.
package channel

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrEmptyTag is returned for a blank tag.
	ErrEmptyTag = errors.New("channel: empty tag")

	// ErrDuplicateTag is returned by Register when the tag is taken.
	ErrDuplicateTag = errors.New("channel: tag already registered")

	// ErrUnknownTag is returned by Lookup when nothing is registered.
	ErrUnknownTag = errors.New("channel: no registration for tag")

	// ErrTagType is returned by Lookup when the registration is not a T.
	ErrTagType = errors.New("channel: registration has a different type")
)

// Tag names a channel, e.g. "app.modals" or "settings.modals".
type Tag string

func (t Tag) String() string { return string(t) }

// Validate returns ErrEmptyTag for blank tags.
func (t Tag) Validate() error {
	if strings.TrimSpace(string(t)) == "" {
		return ErrEmptyTag
	}
	return nil
}

// Registry maps tags to values. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[Tag]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Tag]any)}
}

// Register binds v to tag. Tags are registered once.
func (r *Registry) Register(tag Tag, v any) error {
	if err := tag.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[tag]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	r.entries[tag] = v
	return nil
}

// Unregister removes tag. It reports whether tag was registered.
func (r *Registry) Unregister(tag Tag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[tag]
	delete(r.entries, tag)
	return ok
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag Tag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[tag]
	return ok
}

// Tags returns the registered tags, sorted.
func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]Tag, 0, len(r.entries))
	for t := range r.entries {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Lookup returns the value registered under tag as a T.
func Lookup[T any](r *Registry, tag Tag) (T, error) {
	var zero T
	r.mu.RLock()
	v, ok := r.entries[tag]
	r.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T, want %T", ErrTagType, tag, v, zero)
	}
	return typed, nil
}

// MustLookup is Lookup for registrations the program cannot run without.
// A missing or mistyped registration is a wiring bug, so it panics.
func MustLookup[T any](r *Registry, tag Tag) T {
	v, err := Lookup[T](r, tag)
	if err != nil {
		panic(err)
	}
	return v
}
