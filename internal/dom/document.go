package dom

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Document owns an element tree, the focused element and key listeners.
// It is not safe for concurrent use; drive it from the Bubble Tea update loop.
type Document struct {
	body      *Element
	active    *Element
	listeners map[*Element][]*listener
	global    []*listener
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{
		body:      NewContainer("body"),
		listeners: make(map[*Element][]*listener),
	}
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// Attached reports whether el is part of this document's tree.
func (d *Document) Attached(el *Element) bool {
	return el != nil && el.Root() == d.body
}

// GetElementByID returns the first element in document order with id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.body.find(id)
}

// QueryAll returns all elements under the body matching match.
func (d *Document) QueryAll(match func(*Element) bool) []*Element {
	return d.body.QueryAll(match)
}

// ActiveElement returns the focused element, or nil if nothing is focused
// or the focused element has since been detached.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && !d.Attached(d.active) {
		d.active = nil
	}
	return d.active
}

// Focus moves focus to el. It returns false, leaving focus unchanged, when
// el is nil or not attached.
func (d *Document) Focus(el *Element) bool {
	if !d.Attached(el) {
		return false
	}
	d.active = el
	return true
}

// Blur clears focus.
func (d *Document) Blur() {
	d.active = nil
}

// Click runs el's OnClick if el is attached and enabled.
func (d *Document) Click(el *Element) bool {
	if !d.Attached(el) || el.Disabled || el.OnClick == nil {
		return false
	}
	el.OnClick()
	return true
}

// AddKeyListener subscribes fn to key events. A nil target subscribes at
// document level; otherwise fn only sees events whose target is inside target.
// The returned func unsubscribes and may be called more than once.
func (d *Document) AddKeyListener(target *Element, fn KeyListener) (unsubscribe func()) {
	l := &listener{fn: fn}
	if target == nil {
		d.global = append(d.global, l)
	} else {
		d.listeners[target] = append(d.listeners[target], l)
	}
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		if target == nil {
			d.global = without(d.global, l)
			return
		}
		rest := without(d.listeners[target], l)
		if len(rest) == 0 {
			delete(d.listeners, target)
		} else {
			d.listeners[target] = rest
		}
	}
}

// ListenerCount returns the number of live listeners.
func (d *Document) ListenerCount() int {
	n := len(d.global)
	for _, ls := range d.listeners {
		n += len(ls)
	}
	return n
}

// DispatchKey delivers msg to listeners, bubbling from the focused element
// to the root and then to document-level listeners, and applies the default
// action unless a listener prevented it.
func (d *Document) DispatchKey(msg tea.KeyMsg) *KeyEvent {
	ev := &KeyEvent{Msg: msg, Target: d.ActiveElement()}
	for n := ev.Target; n != nil && !ev.stopped; n = n.parent {
		deliver(d.listeners[n], ev)
	}
	if !ev.stopped {
		deliver(d.global, ev)
	}
	if !ev.defaultPrevented {
		d.defaultAction(ev)
	}
	return ev
}

func deliver(ls []*listener, ev *KeyEvent) {
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.fn(ev)
		if ev.stopped {
			return
		}
	}
}

func (d *Document) defaultAction(ev *KeyEvent) {
	switch ev.Msg.Type {
	case tea.KeyTab:
		d.step(ev.Target, 1)
		return
	case tea.KeyShiftTab:
		d.step(ev.Target, -1)
		return
	}
	t := ev.Target
	if t == nil || t.Disabled {
		return
	}
	switch ev.Msg.Type {
	case tea.KeyEnter:
		if t.Kind == KindButton || t.Kind == KindLink {
			d.Click(t)
		}
	case tea.KeySpace:
		switch {
		case t.Kind == KindButton:
			d.Click(t)
		case t.Kind == KindInput && (t.InputType == InputCheckbox || t.InputType == InputRadio):
			t.Checked = t.InputType == InputRadio || !t.Checked
		case editable(t):
			t.Value += " "
		}
	case tea.KeyBackspace:
		if editable(t) && t.Value != "" {
			_, size := utf8.DecodeLastRuneInString(t.Value)
			t.Value = t.Value[:len(t.Value)-size]
		}
	case tea.KeyRunes:
		if editable(t) {
			t.Value += string(ev.Msg.Runes)
		}
	}
}

// step moves focus to the next (dir > 0) or previous focusable element,
// wrapping at either end of the document.
func (d *Document) step(from *Element, dir int) {
	order := d.QueryAll((*Element).Focusable)
	if len(order) == 0 {
		return
	}
	idx := -1
	for i, el := range order {
		if el == from {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && dir > 0:
		next = 0
	case idx < 0:
		next = len(order) - 1
	default:
		next = (idx + dir + len(order)) % len(order)
	}
	d.active = order[next]
}

// Editable reports whether typed characters edit el's value.
func Editable(el *Element) bool {
	return el != nil && editable(el)
}

func editable(el *Element) bool {
	switch el.Kind {
	case KindTextarea:
		return true
	case KindInput:
		return el.InputType == "" || el.InputType == InputText || el.InputType == InputPassword
	}
	return false
}

func without(ls []*listener, target *listener) []*listener {
	out := ls[:0:0]
	for _, l := range ls {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}
