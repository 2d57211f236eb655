package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("SPC q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q", LayerBase) == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q", LayerModal) == nil {
		t.Error("expected SPC q to be bound on every layer")
	}
	if reg.Lookup("unknown", LayerBase) != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeybindRegistry_LayerFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForLayer("q", tea.Quit, "Quit", []Layer{LayerBase})

	if reg.Lookup("q", LayerBase) == nil {
		t.Error("expected q on base layer")
	}
	if reg.Lookup("q", LayerModal) != nil {
		t.Error("q must not fire inside a dialog")
	}

	// Rebinding without layers lifts the filter.
	reg.BindWithDesc("q", tea.Quit, "Quit")
	if reg.Lookup("q", LayerModal) == nil {
		t.Error("expected q on modal layer after rebinding")
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC d", tea.Quit, "Dialog")
	reg.BindWithDesc("SPC t t", tea.Quit, "Show")
	reg.BindWithDesc("SPC t c", tea.Quit, "Clear all")
	reg.BindWithDescForLayer("SPC x", tea.Quit, "Base only", []Layer{LayerBase})

	top := reg.LeaderHints("", LayerBase)
	if top["d"] != "Dialog" || top["t"] != "Toast" || top["x"] != "Base only" {
		t.Errorf("unexpected top-level hints: %v", top)
	}
	if _, ok := reg.LeaderHints("", LayerModal)["x"]; ok {
		t.Error("base-only binding leaked into modal hints")
	}

	sub := reg.LeaderHints("SPC t", LayerBase)
	if len(sub) != 2 || sub["t"] != "Show" || sub["c"] != "Clear all" {
		t.Errorf("unexpected toast submenu hints: %v", sub)
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC x", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	// Press space -> leader waiting (Bubble Tea reports space as " ")
	consumed, cmd := h.Handle(keyMsg(" "), LayerBase)
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	// Press x -> execute SPC x
	consumed, cmd = h.Handle(keyMsg("x"), LayerBase)
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd == nil {
		t.Fatal("expected command for SPC x")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_LeaderOnlyOnBase(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg(" "), LayerModal)
	if consumed {
		t.Error("space inside a dialog belongs to the focused element")
	}
	if h.LeaderWaiting {
		t.Error("leader must not start on the modal layer")
	}
}

func TestKeyHandler_Submenu(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC t t", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), LayerBase)
	consumed, cmd := h.Handle(keyMsg("t"), LayerBase)
	if !consumed || cmd != nil {
		t.Errorf("t: consumed=%v cmd=%v", consumed, cmd)
	}
	if got := h.CurrentSeq(); got != "SPC t" {
		t.Errorf("CurrentSeq = %q, want %q", got, "SPC t")
	}
	if _, cmd = h.Handle(keyMsg("t"), LayerBase); cmd == nil {
		t.Error("expected SPC t t to resolve")
	}
	if h.CurrentSeq() != "" {
		t.Error("sequence should reset after a match")
	}
}

func TestKeyHandler_UnknownLeaderSequenceResets(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), LayerBase)
	consumed, cmd := h.Handle(keyMsg("j"), LayerBase)
	if !consumed || cmd != nil {
		t.Errorf("j: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("unknown sequence should leave leader mode")
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), LayerBase)
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"), LayerBase)
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}

	// A second esc is not the handler's business.
	if consumed, _ := h.Handle(keyMsg("esc"), LayerBase); consumed {
		t.Error("esc outside leader mode should fall through")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"), LayerBase)
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"), LayerBase)
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC d", tea.Quit, "Dialog")
	reg.BindWithDesc("SPC t t", tea.Quit, "Show")
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "), LayerBase)
	out := RenderKeybindHelp(h, LayerBase)
	for _, want := range []string{"SPC", "Dialog", "Toast", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("help box missing %q:\n%s", want, out)
		}
	}

	h.Handle(keyMsg("t"), LayerBase)
	out = RenderKeybindHelp(h, LayerBase)
	if !strings.Contains(out, "SPC t") || !strings.Contains(out, "Show") {
		t.Errorf("submenu help missing entries:\n%s", out)
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
