package dom

import tea "github.com/charmbracelet/bubbletea"

// KeyEvent is a key press travelling through a Document.
type KeyEvent struct {
	Msg    tea.KeyMsg
	Target *Element // element focused when the key was pressed; nil if none

	defaultPrevented bool
	stopped          bool
}

// Key returns the Bubble Tea string form of the key ("tab", "shift+tab", "a").
func (e *KeyEvent) Key() string {
	return e.Msg.String()
}

// PreventDefault suppresses the document's default action for the key.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops delivery to listeners further up the tree.
func (e *KeyEvent) StopPropagation() {
	e.stopped = true
}

// KeyListener handles a key event.
type KeyListener func(*KeyEvent)

type listener struct {
	fn      KeyListener
	removed bool
}
