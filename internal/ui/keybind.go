package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key sequences to commands.
// Key sequences use spacemacs-style notation: "SPC" for space, "SPC t t" for SPC, t, t.
// Single keys: "q", "esc", "ctrl+c".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	layerFilter  map[string][]Layer // nil/empty = applies to all layers
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		layerFilter:  make(map[string][]Layer),
	}
}

// Bind registers a key sequence to a command on every layer.
// Overwrites any existing binding for the sequence.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers a key sequence with a description for the help view.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForLayer(seq, cmd, desc, nil)
}

// BindWithDescForLayer registers a key sequence that only fires, and only
// shows up in hints, on the given layers. Nil or empty means every layer.
func (r *KeybindRegistry) BindWithDescForLayer(seq string, cmd tea.Cmd, desc string, layers []Layer) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(layers) > 0 {
		r.layerFilter[n] = layers
	} else {
		delete(r.layerFilter, n)
	}
}

// Lookup returns the command for a key sequence on layer, or nil.
func (r *KeybindRegistry) Lookup(seq string, layer Layer) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesToLayer(n, layer) {
		return nil
	}
	return r.bindings[n]
}

// HasPrefix returns true if any binding starts with seq and a space (i.e. more keys follow).
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// submenuLabel names first-level leader keys that open a submenu.
var submenuLabel = map[string]string{
	"t": "Toast",
}

// LeaderHints returns hints for SPC-prefixed bindings on layer.
// When currentSeq is empty it returns first-level hints ("d", "p", "t");
// for "SPC t" it returns the toast submenu.
func (r *KeybindRegistry) LeaderHints(currentSeq string, layer Layer) map[string]string {
	out := make(map[string]string)
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) {
			continue
		}
		if !r.appliesToLayer(seq, layer) {
			continue
		}
		rest := strings.TrimPrefix(seq, prefix)
		k := rest
		if parts := strings.Fields(rest); len(parts) > 0 {
			k = parts[0]
		}
		if r.HasPrefix(prefix + k) {
			if label, ok := submenuLabel[k]; ok {
				out[k] = label
			} else {
				out[k] = k + "…"
			}
			continue
		}
		if d := r.descriptions[seq]; d != "" {
			out[k] = d
		} else {
			out[k] = seq
		}
	}
	return out
}

func (r *KeybindRegistry) appliesToLayer(seq string, layer Layer) bool {
	layers, ok := r.layerFilter[seq]
	if !ok || len(layers) == 0 {
		return true
	}
	for _, l := range layers {
		if l == layer {
			return true
		}
	}
	return false
}

// normalizeSeq converts tea key strings to our canonical format.
// "space" -> "SPC", "ctrl+c" -> "ctrl+c", "j" -> "j".
func normalizeSeq(seq string) string {
	if seq == " " {
		return "SPC"
	}
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = "SPC"
		}
	}
	return strings.Join(parts, " ")
}

// KeyHandler manages leader key state and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string   // " " (tea.KeyMsg.String() format)
	LeaderSeq     string   // "SPC" (our format)
	LeaderWaiting bool     // true when waiting for key after leader
	Buffer        []string // accumulated sequence in leader mode
}

// NewKeyHandler creates a handler with SPC as leader.
// Bubble Tea reports space as " " (KeySpace), not "space".
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{
		Registry:  reg,
		LeaderKey: " ",
		LeaderSeq: "SPC",
	}
}

// Handle processes a KeyMsg for layer. Returns (consumed, cmd).
// A consumed key must not reach the document. The leader only starts on the
// base layer; inside a dialog space belongs to the focused element.
func (h *KeyHandler) Handle(msg tea.KeyMsg, layer Layer) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if s == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	if s == h.LeaderKey && layer == LayerBase && !h.LeaderWaiting {
		h.LeaderWaiting = true
		h.Buffer = []string{h.LeaderSeq}
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.Lookup(seq, layer); c != nil {
			h.reset()
			return true, c
		}
		// No exact match; stay in leader mode if a longer binding exists
		if h.Registry.HasPrefix(seq) {
			return true, nil
		}
		h.reset()
		return true, nil
	}

	if c := h.Registry.Lookup(keyToSeqPart(s), layer); c != nil {
		return true, c
	}
	return false, nil
}

// CurrentSeq returns the pending leader sequence, e.g. "SPC t".
func (h *KeyHandler) CurrentSeq() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// keyToSeqPart converts a tea key string to our sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyMap implements help.KeyMap for the pending leader sequence on one layer.
type KeyMap struct {
	handler *KeyHandler
	layer   Layer
}

// NewKeyMap creates a KeyMap for the handler's registry on layer.
func NewKeyMap(handler *KeyHandler, layer Layer) help.KeyMap {
	return &KeyMap{handler: handler, layer: layer}
}

// ShortHelp returns one binding per next key, sorted, plus esc to cancel.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.handler == nil || km.handler.Registry == nil {
		return nil
	}
	hints := km.handler.Registry.LeaderHints(km.handler.CurrentSeq(), km.layer)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp returns a single column with the ShortHelp bindings.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
