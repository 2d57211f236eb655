// Package textutil measures and fits plain text to terminal columns.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of columns s occupies. ANSI styling is ignored.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate cuts s to at most width columns, ending in Ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// PadRight fits s into exactly width columns, filling with trailing spaces.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", max(width-runewidth.StringWidth(s), 0))
}

// PadLeft fits s into exactly width columns, filling with leading spaces.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	return strings.Repeat(" ", max(width-runewidth.StringWidth(s), 0)) + s
}
