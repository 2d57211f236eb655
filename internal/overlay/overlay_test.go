package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modalstack/internal/dom"
	"modalstack/internal/focus"
	"modalstack/internal/stack"
)

type fixture struct {
	doc    *dom.Document
	open   *dom.Element
	modals *Modals
	trap   *focus.Trap
}

func newFixture(t *testing.T, opts ...focus.Option) *fixture {
	t.Helper()
	doc := dom.NewDocument()
	open := dom.NewButton("open", "Open")
	layer := dom.NewContainer("layer")
	doc.Body().Append(open, layer)
	doc.Focus(open)

	opts = append(opts, focus.WithTag("app.modals"))
	trap := focus.NewTrap(doc, opts...)
	s := stack.New[Modal]("app.modals")
	return &fixture{doc: doc, open: open, trap: trap, modals: NewModals(s, trap, doc, layer)}
}

func dialog(title string, ids ...string) Modal {
	content := dom.NewContainer("")
	for _, id := range ids {
		content.Append(dom.NewButton(id, id))
	}
	return Modal{Title: title, Content: content}
}

func TestModals_PushMountsAndTraps(t *testing.T) {
	f := newFixture(t)
	id := f.modals.Push(dialog("First", "ok", "cancel"))

	c := f.modals.Container(id)
	require.NotNil(t, c)
	assert.Equal(t, "app.modals-modal-0", c.ID)
	assert.True(t, f.doc.Attached(c))
	assert.Equal(t, "ok", f.doc.ActiveElement().ID)
	assert.Equal(t, 1, f.trap.Depth())

	f.doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	f.doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, c.ID+"-close", f.doc.ActiveElement().ID, "close button is the last stop")
	f.doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "ok", f.doc.ActiveElement().ID)
}

func TestModals_ScenarioRestoresFocus(t *testing.T) {
	f := newFixture(t)

	first := f.modals.Push(dialog("first", "f1"))
	e, _ := f.modals.Active()
	assert.Equal(t, "first", e.Item.Title)

	f.modals.Push(dialog("second", "s1"))
	e, _ = f.modals.Active()
	assert.Equal(t, "second", e.Item.Title)
	assert.Equal(t, "s1", f.doc.ActiveElement().ID)

	require.True(t, f.modals.Remove(first))
	e, _ = f.modals.Active()
	assert.Equal(t, "second", e.Item.Title)
	assert.Equal(t, "s1", f.doc.ActiveElement().ID, "removing a suspended modal keeps focus")
	assert.Nil(t, f.doc.GetElementByID("f1"), "suspended modal is unmounted")

	require.True(t, f.modals.Pop())
	_, ok := f.modals.Active()
	assert.False(t, ok)
	assert.Same(t, f.open, f.doc.ActiveElement(), "focus is back on the opener")
	assert.Equal(t, 0, f.trap.Depth())
	assert.Equal(t, 0, f.doc.ListenerCount())
}

func TestModals_NestedPopRestoresEachLevel(t *testing.T) {
	f := newFixture(t)
	f.modals.Push(dialog("outer", "o1", "o2"))
	f.doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "o2", f.doc.ActiveElement().ID)

	f.modals.Push(dialog("inner", "i1"))
	f.modals.Pop()
	assert.Equal(t, "o2", f.doc.ActiveElement().ID)
	f.modals.Pop()
	assert.Same(t, f.open, f.doc.ActiveElement())
	assert.False(t, f.modals.Pop(), "pop on empty is a no-op")
}

func TestModals_CloseButton(t *testing.T) {
	f := newFixture(t)
	id := f.modals.Push(dialog("closable", "x"))
	closeBtn := f.doc.GetElementByID(f.modals.ContainerID(id) + "-close")
	require.NotNil(t, closeBtn)

	f.doc.Focus(closeBtn)
	f.doc.DispatchKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, f.modals.Len())
	assert.Same(t, f.open, f.doc.ActiveElement())
}

func TestModals_RemoveAllExceptAndMany(t *testing.T) {
	f := newFixture(t)
	a := f.modals.Push(dialog("a", "a1"))
	b := f.modals.Push(dialog("b", "b1"))
	c := f.modals.Push(dialog("c", "c1"))

	assert.Equal(t, 2, f.modals.RemoveAllExcept(a))
	e, _ := f.modals.Active()
	assert.Equal(t, a, e.ID)
	assert.Equal(t, 1, f.trap.Depth())
	assert.Equal(t, "a1", f.doc.ActiveElement().ID, "origins chain back through the discarded frames")

	assert.Equal(t, 0, f.modals.RemoveMany([]stack.ID{b, c}))
	assert.Equal(t, 1, f.modals.RemoveMany([]stack.ID{a}))
	assert.Equal(t, 0, f.trap.Depth())
}

func TestModals_Modify(t *testing.T) {
	f := newFixture(t)
	id := f.modals.Push(dialog("old", "m1"))

	require.True(t, f.modals.Modify(id, Modal{Title: "new", Width: 40}))
	e, _ := f.modals.Active()
	assert.Equal(t, "new", e.Item.Title)
	assert.Equal(t, 40, e.Item.Width)
	assert.NotNil(t, e.Item.Content, "content is kept")
	assert.Equal(t, "m1", f.doc.ActiveElement().ID, "modify has no focus side effects")
	assert.False(t, f.modals.Modify(99, Modal{}))
}

func TestModals_HeadlessWarnsButPushes(t *testing.T) {
	var lines []string
	log := funcr.New(func(_, args string) { lines = append(lines, args) }, funcr.Options{})
	f := newFixture(t, focus.WithLogger(log))

	id := f.modals.Push(Modal{Title: "ghost", Headless: true})
	assert.Equal(t, 1, f.modals.Len())
	assert.Nil(t, f.modals.Container(id))
	assert.Equal(t, 0, f.trap.Depth())
	require.Len(t, lines, 1)
	assert.True(t, strings.Contains(lines[0], "warning"))

	f.modals.Pop()
	assert.Same(t, f.open, f.doc.ActiveElement())
}

func TestModals_Close(t *testing.T) {
	f := newFixture(t)
	f.modals.Push(dialog("a", "a1"))
	f.modals.Close()

	assert.Equal(t, 0, f.trap.Depth())
	assert.Equal(t, 0, f.doc.ListenerCount())
	assert.Nil(t, f.doc.GetElementByID("a1"))
}

func TestModals_ChannelsAreIndependent(t *testing.T) {
	f := newFixture(t)
	settingsLayer := dom.NewContainer("settings-layer")
	f.doc.Body().Append(settingsLayer)
	settings := NewModals(stack.New[Modal]("settings.modals"),
		focus.NewTrap(f.doc, focus.WithTag("settings.modals")), f.doc, settingsLayer)

	f.modals.Push(dialog("app", "a1", "a2"))
	assert.Equal(t, 0, settings.Len())
	_, ok := settings.Active()
	assert.False(t, ok)
	assert.NotEqual(t, f.modals.ContainerID(0), settings.ContainerID(0))

	settings.Push(dialog("settings", "s1", "s2", "s3"))
	assert.Equal(t, "s1", f.doc.ActiveElement().ID)
	assert.Equal(t, 2, f.doc.ListenerCount(), "one interceptor per channel")

	tab := tea.KeyMsg{Type: tea.KeyTab}
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}
	press := func(from string, msg tea.KeyMsg) string {
		require.True(t, f.doc.Focus(f.doc.GetElementByID(from)), from)
		f.doc.DispatchKey(msg)
		return f.doc.ActiveElement().ID
	}

	assert.Equal(t, "s3", press("s2", tab))
	assert.Equal(t, "s1", press("s2", shiftTab))
	assert.Equal(t, "s1", press(settings.ContainerID(0)+"-close", tab))
	assert.Equal(t, settings.ContainerID(0)+"-close", press("s1", shiftTab))

	assert.Equal(t, f.modals.ContainerID(0)+"-close", press("a2", tab))
	assert.Equal(t, "a1", press(f.modals.ContainerID(0)+"-close", tab))
	assert.Equal(t, f.modals.ContainerID(0)+"-close", press("a1", shiftTab))
}

func TestShell(t *testing.T) {
	text := func(s string) Slot { return func(int) string { return s } }
	sh := NewShell("app.shell", Layout{Header: text("HOME"), Footer: text("status")})

	out := sh.Render("body", 20)
	assert.Contains(t, out, "HOME")
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "body")

	release := sh.PushScoped(Layout{Header: text("SETTINGS"), LeftSidebar: text("nav")})
	assert.Equal(t, 2, sh.Depth())
	out = sh.Render("body", 20)
	assert.Contains(t, out, "SETTINGS")
	assert.Contains(t, out, "nav")
	assert.NotContains(t, out, "status")

	release()
	release()
	assert.Equal(t, 1, sh.Depth())
	assert.False(t, sh.Pop(), "base layout stays")
	assert.Contains(t, sh.Render("", 20), "HOME")
}

func TestTabs(t *testing.T) {
	tabs := NewTabs[string]("editor.tabs", stack.SelectFirst, "main.go", "go.mod")
	e, ok := tabs.Active()
	require.True(t, ok)
	assert.Equal(t, "main.go", e.Item)

	readme := tabs.Add("README.md")
	e, _ = tabs.Active()
	assert.Equal(t, "main.go", e.Item, "adding keeps the selection")

	require.NoError(t, tabs.Switch(readme))
	tabs.Next()
	e, _ = tabs.Active()
	assert.Equal(t, "main.go", e.Item, "next wraps")
	tabs.Prev()
	e, _ = tabs.Active()
	assert.Equal(t, "README.md", e.Item)

	tabs.Remove(readme)
	e, _ = tabs.Active()
	assert.Equal(t, "main.go", e.Item, "first remaining tab is selected")

	assert.ErrorIs(t, tabs.Switch(999), stack.ErrUnknownEntry)
	assert.True(t, tabs.Modify(e.ID, "main_test.go"))
	assert.Equal(t, 1, tabs.RemoveOthers(e.ID))
	assert.Equal(t, 1, tabs.Len())
	assert.Equal(t, 1, tabs.RemoveMany([]stack.ID{e.ID}))
	_, ok = tabs.Active()
	assert.False(t, ok)
}

func TestModals_OnCloseReleasesScopedLayout(t *testing.T) {
	f := newFixture(t)
	sh := NewShell("app.shell", Layout{})
	release := sh.PushScoped(Layout{})

	var closed int
	m := dialog("settings", "s1")
	m.OnClose = func() { closed++; release() }
	id := f.modals.Push(m)
	require.Equal(t, 2, sh.Depth())

	f.modals.Modify(id, Modal{Title: "renamed"})
	f.modals.Pop()
	assert.Equal(t, 1, closed, "close hook survives modify and runs once")
	assert.Equal(t, 1, sh.Depth())
}
