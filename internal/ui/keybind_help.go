package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"modalstack/internal/focus"
)

func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return h
}

// RenderKeybindHelp produces the transient help box shown after SPC.
// When the handler is inside a submenu (e.g. "SPC t") it shows that level.
func RenderKeybindHelp(handler *KeyHandler, layer Layer) string {
	if handler == nil {
		return ""
	}
	bindings := NewKeyMap(handler, layer).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}
	prefix := handler.CurrentSeq()
	if prefix == "" {
		prefix = handler.LeaderSeq
	}
	content := Styles.Muted.Render(prefix) + " " + newHelpModel().ShortHelpView(bindings)
	return Styles.BoxHelp.Render(content)
}

// RenderStatusHelp is the idle one-line help for layer.
func RenderStatusHelp(layer Layer, keys focus.KeyMap) string {
	bindings := []key.Binding{keys.Next, keys.Prev}
	switch layer {
	case LayerModal:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/space", "activate")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close dialog")),
		)
	default:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
			key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "menu")),
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		)
	}
	return newHelpModel().ShortHelpView(bindings)
}
