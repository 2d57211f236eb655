package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"modalstack/internal/dom"
)

// paletteSlots is the number of result rows. The rows are fixed so the
// dialog's focus boundary does not change while the query is typed.
const paletteSlots = 5

// PaletteCommand is one entry of the command palette.
type PaletteCommand struct {
	Name string
	Msg  tea.Msg
}

// DefaultCommands lists what the palette can run.
func DefaultCommands() []PaletteCommand {
	return []PaletteCommand{
		{Name: "Open profile dialog", Msg: OpenDialogMsg{Kind: DialogProfile}},
		{Name: "Open settings", Msg: OpenDialogMsg{Kind: DialogSettings}},
		{Name: "Show toast", Msg: ShowToastMsg{}},
		{Name: "Dismiss toast", Msg: DismissToastMsg{}},
		{Name: "Clear toasts", Msg: ClearToastsMsg{}},
		{Name: "Quit", Msg: OpenDialogMsg{Kind: DialogConfirmQuit}},
	}
}

type commandSource []PaletteCommand

func (c commandSource) String(i int) string { return c[i].Name }
func (c commandSource) Len() int            { return len(c) }

// Palette filters commands with fuzzy matching as the query changes.
type Palette struct {
	Query    *dom.Element
	commands commandSource
	matches  []PaletteCommand
	slots    []*dom.Element
	run      func(PaletteCommand)
}

// NewPalette builds the palette subtree. run is called with the picked command.
func NewPalette(idPrefix string, commands []PaletteCommand, run func(PaletteCommand)) (*Palette, *dom.Element) {
	p := &Palette{
		Query:    dom.NewInput(idPrefix+"query", dom.InputText, "Search"),
		commands: commands,
		run:      run,
	}
	results := dom.NewContainer(idPrefix + "results")
	for i := 0; i < paletteSlots; i++ {
		i := i
		slot := dom.NewButton(fmt.Sprintf("%sresult-%d", idPrefix, i), "").WithClick(func() { p.pick(i) })
		p.slots = append(p.slots, slot)
		results.Append(dom.NewContainer("", slot))
	}
	p.Refresh()
	return p, dom.NewContainer(idPrefix+"body", p.Query, results)
}

// Refresh recomputes matches for the current query. An empty query lists
// every command in order.
func (p *Palette) Refresh() {
	p.matches = p.matches[:0]
	if p.Query.Value == "" {
		p.matches = append(p.matches, p.commands...)
	} else {
		for _, m := range fuzzy.FindFrom(p.Query.Value, p.commands) {
			p.matches = append(p.matches, p.commands[m.Index])
		}
	}
	for i, slot := range p.slots {
		if i < len(p.matches) {
			slot.Label = p.matches[i].Name
			slot.Disabled = false
			continue
		}
		slot.Label = ""
		slot.Disabled = true
	}
}

// Matches returns the commands currently listed, best first.
func (p *Palette) Matches() []PaletteCommand {
	out := make([]PaletteCommand, len(p.matches))
	copy(out, p.matches)
	return out
}

// Submit runs the best match. It returns false when nothing matches.
func (p *Palette) Submit() bool {
	return p.pick(0)
}

func (p *Palette) pick(i int) bool {
	if i >= len(p.matches) {
		return false
	}
	p.run(p.matches[i])
	return true
}
