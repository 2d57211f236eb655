package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"modalstack/internal/ui/textutil"
)

const (
	defaultModalWidth = 50
	toastWidth        = 36
)

// renderModalLayer draws the top dialog centred in a width x height area.
// Dialogs suspended beneath it are listed above the box by title.
func (a *AppModel) renderModalLayer(width, height int) string {
	top, ok := a.Modals.Active()
	if !ok {
		return ""
	}

	box, title := ModalStyles.BoxDefault, ModalStyles.Title
	if a.dialogs[top.ID] == DialogConfirmQuit {
		box, title = ModalStyles.BoxWarning, ModalStyles.TitleWarning
	}

	boxWidth := top.Item.Width
	if boxWidth <= 0 {
		boxWidth = defaultModalWidth
	}
	if boxWidth > width-2 {
		boxWidth = width - 2
	}
	inner := boxWidth - box.GetHorizontalPadding()
	if inner < 1 {
		inner = 1
	}

	content := title.Render(textutil.Truncate(top.Item.Title, inner))
	if el := a.Modals.Container(top.ID); el != nil {
		content += "\n\n" + RenderElement(a.Doc, el, inner)
	}
	block := box.Width(boxWidth).Render(content)

	if crumbs := a.suspendedTitles(); len(crumbs) > 0 {
		trail := textutil.Truncate(strings.Join(crumbs, " › ")+" ›", width)
		block = lipgloss.JoinVertical(lipgloss.Center, Styles.Crumb.Render(trail), block)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func (a *AppModel) suspendedTitles() []string {
	entries := a.Modals.Entries()
	if len(entries) < 2 {
		return nil
	}
	titles := make([]string, 0, len(entries)-1)
	for _, e := range entries[:len(entries)-1] {
		titles = append(titles, e.Item.Title)
	}
	return titles
}

// renderToasts draws queued toasts, oldest first, right-aligned.
func (a *AppModel) renderToasts(width int) string {
	items := a.Toasts.Items()
	if len(items) == 0 {
		return ""
	}
	rows := make([]string, 0, len(items))
	for _, it := range items {
		text := textutil.PadLeft(it.Content, toastWidth)
		if it.Dismissable {
			text += Styles.Muted.Render("  ✕")
		}
		rows = append(rows, Styles.Toast.Render(text))
	}
	col := lipgloss.JoinVertical(lipgloss.Right, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, col)
}
