package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"modalstack/internal/dom"
	"modalstack/internal/ui/textutil"
)

// RenderElement draws el and its children. Each leaf is truncated to width
// cells. A container of buttons is drawn as one row; other containers stack
// their children vertically.
func RenderElement(doc *dom.Document, el *dom.Element, width int) string {
	if el == nil {
		return ""
	}
	if el.Kind == dom.KindContainer {
		children := el.Children()
		parts := make([]string, 0, len(children))
		for _, c := range children {
			if s := RenderElement(doc, c, width); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		if allButtons(children) {
			return strings.Join(parts, " ")
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	focused := doc != nil && doc.ActiveElement() == el
	text := textutil.Truncate(elementText(el, focused), width)
	switch {
	case focused:
		return Styles.Focused.Render(text)
	case el.Disabled:
		return Styles.Disabled.Render(text)
	}
	switch el.Kind {
	case dom.KindText:
		return Styles.Normal.Render(text)
	case dom.KindLink:
		return Styles.Link.Render(text)
	case dom.KindButton:
		return Styles.Button.Render(text)
	default:
		return Styles.Input.Render(text)
	}
}

func elementText(el *dom.Element, focused bool) string {
	switch el.Kind {
	case dom.KindText:
		return el.Label
	case dom.KindButton:
		return "[ " + el.Label + " ]"
	case dom.KindLink:
		return el.Label + " ↗"
	case dom.KindSelect:
		return el.Label + ": " + el.Value + " ▾"
	case dom.KindTextarea, dom.KindInput:
		switch el.InputType {
		case dom.InputCheckbox:
			if el.Checked {
				return "[x] " + el.Label
			}
			return "[ ] " + el.Label
		case dom.InputRadio:
			if el.Checked {
				return "(•) " + el.Label
			}
			return "( ) " + el.Label
		case dom.InputHidden:
			return ""
		}
		value := el.Value
		if el.InputType == dom.InputPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		if focused {
			value += "▏"
		}
		return el.Label + ": " + value
	default:
		return el.Label
	}
}

func allButtons(els []*dom.Element) bool {
	if len(els) == 0 {
		return false
	}
	for _, e := range els {
		if e.Kind != dom.KindButton {
			return false
		}
	}
	return true
}
