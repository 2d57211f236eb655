package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"modalstack/internal/channel"
	"modalstack/internal/stack"
)

// Slot renders one region of the shell. A nil Slot renders nothing.
type Slot func(width int) string

func (s Slot) render(width int) string {
	if s == nil {
		return ""
	}
	return s(width)
}

// Layout is the set of regions around the main content.
type Layout struct {
	Header       Slot
	LeftSidebar  Slot
	RightSidebar Slot
	Footer       Slot
}

// Shell is a stack of layouts over a permanent base layout. Screens push a
// layout while shown and pop it when they go away; the base is never popped.
type Shell struct {
	stack *stack.Stack[Layout]
}

// NewShell creates a shell with base as its bottom layout.
func NewShell(tag channel.Tag, base Layout) *Shell {
	return &Shell{stack: stack.NewWithBase[Layout](tag, base)}
}

// Tag returns the channel tag.
func (s *Shell) Tag() channel.Tag { return s.stack.Tag() }

// Push makes l the active layout.
func (s *Shell) Push(l Layout) stack.ID { return s.stack.Push(l) }

// PushScoped pushes l and returns a func that removes exactly that layout.
func (s *Shell) PushScoped(l Layout) func() { return s.stack.PushScoped(l) }

// Pop removes the top layout unless only the base is left.
func (s *Shell) Pop() bool {
	_, ok := s.stack.Pop()
	return ok
}

// Depth returns the number of layouts, base included.
func (s *Shell) Depth() int { return s.stack.Len() }

// Active returns the layout in effect.
func (s *Shell) Active() Layout {
	e, _ := s.stack.Active()
	return e.Item
}

// Render lays body out inside the active layout at the given width.
func (s *Shell) Render(body string, width int) string {
	l := s.Active()
	left := l.LeftSidebar.render(width)
	right := l.RightSidebar.render(width)
	center := width - lipgloss.Width(left) - lipgloss.Width(right)
	if center < 0 {
		center = 0
	}
	main := lipgloss.NewStyle().Width(center).Render(body)

	var rows []string
	if h := l.Header.render(width); h != "" {
		rows = append(rows, h)
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, nonEmpty(left, main, right)...))
	if f := l.Footer.render(width); f != "" {
		rows = append(rows, f)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
