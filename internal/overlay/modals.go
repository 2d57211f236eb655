// Package overlay wires the generic stack to concrete surfaces: modal
// dialogs that trap focus, layout overrides for the application shell, and
// tab strips.
package overlay

import (
	"fmt"

	"github.com/go-logr/logr"

	"modalstack/internal/channel"
	"modalstack/internal/dom"
	"modalstack/internal/focus"
	"modalstack/internal/stack"
)

// Modal describes one dialog.
type Modal struct {
	Title string
	// Content is mounted inside the modal container on push.
	Content *dom.Element
	// Width is the rendered box width in cells; 0 means the renderer's default.
	Width int
	// Headless modals are tracked on the stack but never mounted, so they
	// get no focus trap.
	Headless bool
	// OnClose runs once after the modal leaves the stack.
	OnClose func()
}

type mount struct {
	container *dom.Element
	framed    bool
}

// ModalsOption configures Modals.
type ModalsOption func(*Modals)

// WithModalsLogger sets the logger. The default discards.
func WithModalsLogger(l logr.Logger) ModalsOption {
	return func(m *Modals) { m.log = l }
}

// Modals mounts dialogs pushed onto a stack under a host element and keeps
// the focus trap in step with the stack. Pushes and removals made directly on
// the underlying stack are handled the same way.
type Modals struct {
	stack *stack.Stack[Modal]
	trap  *focus.Trap
	doc   *dom.Document
	host  *dom.Element
	log   logr.Logger

	mounts map[stack.ID]*mount
	cancel func()
}

// NewModals attaches to s. host must be attached to doc.
func NewModals(s *stack.Stack[Modal], trap *focus.Trap, doc *dom.Document, host *dom.Element, opts ...ModalsOption) *Modals {
	m := &Modals{
		stack:  s,
		trap:   trap,
		doc:    doc,
		host:   host,
		log:    logr.Discard(),
		mounts: make(map[stack.ID]*mount),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithValues("channel", s.Tag().String())
	m.cancel = s.Observe(stack.Hooks[Modal]{
		OnPush:   m.pushed,
		OnRemove: m.removed,
	})
	return m
}

// Tag returns the channel tag of the underlying stack.
func (m *Modals) Tag() channel.Tag { return m.stack.Tag() }

// ContainerID returns the element id a modal is mounted under.
func (m *Modals) ContainerID(id stack.ID) string {
	return fmt.Sprintf("%s-modal-%d", m.stack.Tag(), id)
}

// Push opens a dialog and traps focus in it.
func (m *Modals) Push(modal Modal) stack.ID { return m.stack.Push(modal) }

// Pop closes the top dialog.
func (m *Modals) Pop() bool {
	_, ok := m.stack.Pop()
	return ok
}

// Remove closes the dialog with id.
func (m *Modals) Remove(id stack.ID) bool { return m.stack.Remove(id) }

// RemoveMany closes every dialog in ids.
func (m *Modals) RemoveMany(ids []stack.ID) int { return len(m.stack.RemoveMany(ids)) }

// RemoveAllExcept closes every dialog other than id.
func (m *Modals) RemoveAllExcept(id stack.ID) int { return len(m.stack.RemoveAllExcept(id)) }

// Modify replaces the title and width of a dialog. Mounted content and the
// close hook stay.
func (m *Modals) Modify(id stack.ID, modal Modal) bool {
	cur, ok := m.stack.Get(id)
	if !ok {
		return false
	}
	modal.Content = cur.Item.Content
	modal.Headless = cur.Item.Headless
	modal.OnClose = cur.Item.OnClose
	return m.stack.Modify(id, modal)
}

// Active returns the top dialog.
func (m *Modals) Active() (stack.Entry[Modal], bool) { return m.stack.Active() }

// Entries returns the open dialogs, bottom first.
func (m *Modals) Entries() []stack.Entry[Modal] { return m.stack.Entries() }

// Len returns the number of open dialogs.
func (m *Modals) Len() int { return m.stack.Len() }

// Container returns the mounted container of a dialog, or nil.
func (m *Modals) Container(id stack.ID) *dom.Element {
	if mt := m.mounts[id]; mt != nil {
		return mt.container
	}
	return nil
}

// Close removes every dialog and detaches from the stack.
func (m *Modals) Close() {
	m.stack.RemoveMany(entryIDs(m.stack.Entries()))
	m.cancel()
	m.trap.Reset()
}

func entryIDs[T any](entries []stack.Entry[T]) []stack.ID {
	ids := make([]stack.ID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func (m *Modals) pushed(e stack.Entry[Modal]) {
	cid := m.ContainerID(e.ID)
	if !e.Item.Headless {
		closeBtn := dom.NewButton(cid+"-close", "✕").WithClick(func() { m.Remove(e.ID) })
		container := dom.NewContainer(cid)
		if e.Item.Content != nil {
			container.Append(e.Item.Content)
		}
		container.Append(closeBtn)
		m.host.Append(container)
		m.mounts[e.ID] = &mount{container: container}
	}

	// A headless modal has nothing mounted under cid; the trap logs and the
	// push still stands.
	ok := m.trap.Activate(cid)
	if mt := m.mounts[e.ID]; mt != nil {
		mt.framed = ok
	}
	m.log.V(1).Info("modal opened", "id", uint64(e.ID), "title", e.Item.Title, "trapped", ok)
}

func (m *Modals) removed(removed []stack.Entry[Modal], _ bool) {
	for _, e := range removed {
		if mt := m.mounts[e.ID]; mt != nil {
			if mt.framed {
				m.trap.Discard(mt.container)
			}
			mt.container.Remove()
			delete(m.mounts, e.ID)
		}
		m.log.V(1).Info("modal closed", "id", uint64(e.ID))
	}
	if m.stack.Len() == 0 {
		m.trap.Reset()
	}
	for _, e := range removed {
		if e.Item.OnClose != nil {
			e.Item.OnClose()
		}
	}
}
