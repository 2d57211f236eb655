package overlay

import (
	"modalstack/internal/channel"
	"modalstack/internal/stack"
)

// Tabs is a tab strip. Adding a tab leaves the selection alone unless
// nothing is selected; closing the selected tab selects according to the
// policy, by default the first remaining tab.
type Tabs[T any] struct {
	stack *stack.Stack[T]
}

// NewTabs creates a tab strip holding initial, with the first one selected.
func NewTabs[T any](tag channel.Tag, policy stack.Policy, initial ...T) *Tabs[T] {
	t := &Tabs[T]{stack: stack.New[T](tag, stack.WithPolicy(policy), stack.WithKeepActiveOnPush())}
	for _, item := range initial {
		t.stack.Push(item)
	}
	return t
}

// Tag returns the channel tag.
func (t *Tabs[T]) Tag() channel.Tag { return t.stack.Tag() }

// Add appends a tab.
func (t *Tabs[T]) Add(item T) stack.ID { return t.stack.Push(item) }

// Remove closes a tab.
func (t *Tabs[T]) Remove(id stack.ID) bool { return t.stack.Remove(id) }

// RemoveMany closes every tab in ids.
func (t *Tabs[T]) RemoveMany(ids []stack.ID) int { return len(t.stack.RemoveMany(ids)) }

// RemoveOthers closes every tab except id.
func (t *Tabs[T]) RemoveOthers(id stack.ID) int { return len(t.stack.RemoveAllExcept(id)) }

// Modify replaces a tab's item.
func (t *Tabs[T]) Modify(id stack.ID, item T) bool { return t.stack.Modify(id, item) }

// Switch selects a tab. It returns stack.ErrUnknownEntry for unknown ids.
func (t *Tabs[T]) Switch(id stack.ID) error { return t.stack.Select(id) }

// Active returns the selected tab.
func (t *Tabs[T]) Active() (stack.Entry[T], bool) { return t.stack.Active() }

// Entries returns the tabs in order.
func (t *Tabs[T]) Entries() []stack.Entry[T] { return t.stack.Entries() }

// Len returns the number of tabs.
func (t *Tabs[T]) Len() int { return t.stack.Len() }

// Watch calls fn when the selection changes.
func (t *Tabs[T]) Watch(fn func(stack.Entry[T], bool)) func() { return t.stack.Watch(fn) }

// Next selects the tab after the selected one, wrapping.
func (t *Tabs[T]) Next() { t.step(1) }

// Prev selects the tab before the selected one, wrapping.
func (t *Tabs[T]) Prev() { t.step(-1) }

func (t *Tabs[T]) step(dir int) {
	entries := t.stack.Entries()
	if len(entries) == 0 {
		return
	}
	cur, ok := t.stack.Active()
	idx := 0
	if ok {
		for i, e := range entries {
			if e.ID == cur.ID {
				idx = (i + dir + len(entries)) % len(entries)
				break
			}
		}
	}
	_ = t.stack.Select(entries[idx].ID)
}
