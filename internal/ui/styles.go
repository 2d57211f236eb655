package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focused elements, borders
	ColorDanger    = "196" // Red - for confirmations, errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "243" // Darker gray - for suspended dialogs
	ColorWarning   = "208" // Orange - for warning details
)

// Styles contains shared style definitions used by the screen and dialogs.
var Styles = struct {
	Title    lipgloss.Style // Bold accent color - for main titles
	Muted    lipgloss.Style // Dimmed text
	Normal   lipgloss.Style // Normal text
	Disabled lipgloss.Style // Disabled elements (dim, strikethrough)
	Focused  lipgloss.Style // The focused element (reverse highlight)
	Button   lipgloss.Style // Unfocused button
	Link     lipgloss.Style // Link (underlined accent)
	Input    lipgloss.Style // Text field body
	Crumb    lipgloss.Style // Breadcrumb of suspended dialogs
	Toast    lipgloss.Style // One toast box
	BoxHelp  lipgloss.Style // Leader help box
	Tab      lipgloss.Style // Inactive tab label
	TabOn    lipgloss.Style // Active tab label
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Disabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Strikethrough(true),
	Focused: lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Link: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Underline(true),
	Input: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Underline(true),
	Crumb: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
	Toast: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	BoxHelp: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1),
	Tab: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	TabOn: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Padding(0, 1),
}

// ModalStyles contains the dialog box styles.
var ModalStyles = struct {
	BoxDefault   lipgloss.Style // Standard dialog box (magenta border)
	BoxWarning   lipgloss.Style // Confirmation box (red border)
	Title        lipgloss.Style
	TitleWarning lipgloss.Style
	Label        lipgloss.Style
	Help         lipgloss.Style
	Details      lipgloss.Style
}{
	BoxDefault: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxWarning: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Label: lipgloss.NewStyle(),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
}
