package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"modalstack/internal/dom"
	"modalstack/internal/overlay"
	"modalstack/internal/stack"
)

// openDialog builds a dialog of kind and pushes it onto app.modals.
// Element ids are prefixed per dialog so nested copies of the same dialog
// never collide.
func (a *AppModel) openDialog(kind DialogKind) stack.ID {
	a.dialogSeq++
	prefix := fmt.Sprintf("%s-%d-", kind, a.dialogSeq)

	var id stack.ID
	dismiss := func() { a.Modals.Remove(id) }

	var (
		m        overlay.Modal
		afterKey func()
	)
	switch kind {
	case DialogProfile:
		m = a.profileDialog(prefix, dismiss)
	case DialogPalette:
		m, afterKey = a.paletteDialog(prefix, dismiss)
	case DialogSettings:
		m, afterKey = a.settingsDialog(prefix, dismiss)
	case DialogConfirmQuit:
		m = a.confirmQuitDialog(prefix, dismiss)
	default:
		a.Log.Info("unknown dialog kind", "severity", "warning", "kind", int(kind))
		return 0
	}

	onClose := m.OnClose
	m.OnClose = func() {
		delete(a.dialogs, id)
		delete(a.afterKey, id)
		if onClose != nil {
			onClose()
		}
	}
	id = a.Modals.Push(m)
	a.dialogs[id] = kind
	if afterKey != nil {
		a.afterKey[id] = afterKey
	}
	a.Log.V(1).Info("dialog opened", "kind", kind.String(), "id", uint64(id), "depth", a.Modals.Len())
	return id
}

func (a *AppModel) profileDialog(prefix string, dismiss func()) overlay.Modal {
	name := dom.NewInput(prefix+"name", dom.InputText, "Name")
	subscribe := dom.NewInput(prefix+"subscribe", dom.InputCheckbox, "Email me updates")
	content := dom.NewContainer(prefix+"body",
		dom.NewText("Tab and Shift+Tab stay inside this dialog."),
		name,
		subscribe,
		dom.NewLink(prefix+"docs", "Dialog pattern", "https://www.w3.org/WAI/ARIA/apg/patterns/dialog-modal/"),
		dom.NewContainer(prefix+"actions",
			dom.NewButton(prefix+"nested", "Nested…").WithClick(func() { a.openDialog(DialogProfile) }),
			dom.NewButton(prefix+"save", "Save").WithClick(func() {
				who := strings.TrimSpace(name.Value)
				if who == "" {
					who = "anonymous"
				}
				a.showToast(fmt.Sprintf("Saved profile for %s", who))
				dismiss()
			}),
			dom.NewButton(prefix+"cancel", "Cancel").WithClick(dismiss),
		),
	)
	return overlay.Modal{Title: "Profile", Content: content, Width: 56}
}

func (a *AppModel) paletteDialog(prefix string, dismiss func()) (overlay.Modal, func()) {
	p, body := NewPalette(prefix, DefaultCommands(), func(c PaletteCommand) {
		dismiss()
		msg := c.Msg
		a.emit(func() tea.Msg { return msg })
	})
	unsubscribe := a.Doc.AddKeyListener(p.Query, func(ev *dom.KeyEvent) {
		if ev.Key() != "enter" {
			return
		}
		ev.PreventDefault()
		if !p.Submit() {
			a.Log.V(1).Info("palette query matched nothing", "query", p.Query.Value)
		}
	})
	return overlay.Modal{Title: "Command palette", Content: body, Width: 48, OnClose: unsubscribe}, p.Refresh
}

func (a *AppModel) confirmQuitDialog(prefix string, dismiss func()) overlay.Modal {
	confirm := func() {
		dismiss()
		a.emit(tea.Quit)
	}
	content := dom.NewContainer(prefix+"body", dom.NewText("Leave the demo?"))
	if n := a.Toasts.Len(); n > 0 {
		content.Append(dom.NewText(fmt.Sprintf("%d pending toast(s) will be dropped", n)))
	}
	content.Append(
		dom.NewText("y: confirm  Esc: cancel"),
		dom.NewContainer(prefix+"actions",
			dom.NewButton(prefix+"yes", "Yes").WithClick(confirm),
			dom.NewButton(prefix+"no", "No").WithClick(dismiss),
		),
	)
	unsubscribe := a.Doc.AddKeyListener(content, func(ev *dom.KeyEvent) {
		if ev.Key() == "y" {
			ev.PreventDefault()
			confirm()
		}
	})
	return overlay.Modal{Title: "Quit?", Content: content, Width: 40, OnClose: unsubscribe}
}

// settingsDialog drives app.tabs and pushes a shell layout for as long as
// it is open.
func (a *AppModel) settingsDialog(prefix string, dismiss func()) (overlay.Modal, func()) {
	strip := dom.NewText("")
	section := dom.NewText("")
	refresh := func() {
		strip.Label = a.tabStrip()
		if e, ok := a.Tabs.Active(); ok {
			section.Label = "Section: " + e.Item
		} else {
			section.Label = "No tabs"
		}
	}
	refresh()

	stopWatch := a.Tabs.Watch(func(e stack.Entry[string], ok bool) {
		a.Log.V(1).Info("tab selected", "tab", e.Item, "ok", ok)
		refresh()
	})
	release := a.Shell.PushScoped(overlay.Layout{
		Header: func(int) string {
			return Styles.Title.Render("Settings") + Styles.Muted.Render(fmt.Sprintf("  %d tab(s), policy %s", a.Tabs.Len(), a.opts.TabPolicy))
		},
		Footer: a.footer,
	})

	content := dom.NewContainer(prefix+"body",
		strip,
		section,
		dom.NewContainer(prefix+"actions",
			dom.NewButton(prefix+"prev", "◀ Prev").WithClick(a.Tabs.Prev),
			dom.NewButton(prefix+"next", "Next ▶").WithClick(a.Tabs.Next),
			dom.NewButton(prefix+"new", "New tab").WithClick(func() {
				a.tabSeq++
				a.Tabs.Add(fmt.Sprintf("Tab %d", a.tabSeq))
			}),
			dom.NewButton(prefix+"close-tab", "Close tab").WithClick(func() {
				e, ok := a.Tabs.Active()
				if !ok {
					return
				}
				if a.Tabs.Len() <= 1 {
					a.showToast("The last tab stays open")
					return
				}
				a.Tabs.Remove(e.ID)
			}),
		),
		dom.NewContainer(prefix+"footer",
			dom.NewButton(prefix+"done", "Done").WithClick(dismiss),
		),
	)
	return overlay.Modal{
		Title:   "Settings",
		Content: content,
		Width:   60,
		OnClose: func() {
			stopWatch()
			release()
		},
	}, refresh
}

// tabStrip renders the tab labels with the selected one in brackets.
func (a *AppModel) tabStrip() string {
	active, ok := a.Tabs.Active()
	var parts []string
	for _, e := range a.Tabs.Entries() {
		if ok && e.ID == active.ID {
			parts = append(parts, "["+e.Item+"]")
			continue
		}
		parts = append(parts, " "+e.Item+" ")
	}
	return strings.Join(parts, " ")
}
