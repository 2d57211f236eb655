package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modalstack/internal/dom"
)

func TestPalette_EmptyQueryListsAll(t *testing.T) {
	cmds := []PaletteCommand{{Name: "Alpha"}, {Name: "Beta"}}
	p, body := NewPalette("p-", cmds, func(PaletteCommand) {})

	assert.Equal(t, cmds, p.Matches())
	slots := body.QueryAll(func(e *dom.Element) bool { return e.Kind == dom.KindButton })
	require.Len(t, slots, paletteSlots)
	assert.Equal(t, "Alpha", slots[0].Label)
	assert.Equal(t, "Beta", slots[1].Label)
	for _, s := range slots[2:] {
		assert.True(t, s.Disabled)
		assert.False(t, s.Focusable())
	}
}

func TestPalette_FuzzyFilterAndSubmit(t *testing.T) {
	var ran []string
	p, _ := NewPalette("p-", DefaultCommands(), func(c PaletteCommand) { ran = append(ran, c.Name) })

	p.Query.Value = "clr"
	p.Refresh()
	require.NotEmpty(t, p.Matches())
	assert.Equal(t, "Clear toasts", p.Matches()[0].Name)

	require.True(t, p.Submit())
	assert.Equal(t, []string{"Clear toasts"}, ran)
}

func TestPalette_NoMatch(t *testing.T) {
	called := false
	p, body := NewPalette("p-", DefaultCommands(), func(PaletteCommand) { called = true })

	p.Query.Value = "zzzz"
	p.Refresh()
	assert.Empty(t, p.Matches())
	assert.False(t, p.Submit())
	assert.False(t, called)

	focusable := body.QueryAll((*dom.Element).Focusable)
	require.Len(t, focusable, 1, "only the query stays focusable")
	assert.Same(t, p.Query, focusable[0])
}

func TestPalette_SlotClickRunsCommand(t *testing.T) {
	var got PaletteCommand
	_, body := NewPalette("p-", DefaultCommands(), func(c PaletteCommand) { got = c })

	doc := dom.NewDocument()
	doc.Body().Append(body)

	slot := doc.GetElementByID("p-result-1")
	require.NotNil(t, slot)
	require.True(t, doc.Click(slot))
	assert.Equal(t, "Open settings", got.Name)
	assert.Equal(t, OpenDialogMsg{Kind: DialogSettings}, got.Msg)
}
