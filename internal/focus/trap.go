// Package focus keeps keyboard focus inside the topmost open overlay.
//
// A Trap holds a stack of frames, one per activation. The top frame owns the
// single document-level key interceptor, which wraps Tab and Shift+Tab at the
// edges of the frame's container. Deactivating pops the frame, restores focus
// to where it was before that frame activated, and rebinds the interceptor to
// the frame underneath.
package focus

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"modalstack/internal/channel"
	"modalstack/internal/dom"
)

const tracerName = "modalstack/focus"

// Frame is one activation of the trap.
type Frame struct {
	// Origin had focus right before the frame activated. Nil when nothing
	// was focused.
	Origin *dom.Element
	// Target is the container focus is kept inside.
	Target *dom.Element
	// Boundary is nil when Target has no focusable descendants.
	Boundary *Boundary
}

// KeyMap defines the keys that cycle focus.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
}

// DefaultKeyMap cycles with tab and shift+tab.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	}
}

// Option configures a Trap.
type Option func(*Trap)

// WithLogger sets the logger. The default discards.
func WithLogger(l logr.Logger) Option {
	return func(t *Trap) { t.log = l }
}

// WithTag names the channel the trap serves; it shows up in logs and spans.
func WithTag(tag channel.Tag) Option {
	return func(t *Trap) { t.tag = tag }
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *Trap) { t.tracer = tp.Tracer(tracerName) }
}

// WithKeyMap overrides DefaultKeyMap.
func WithKeyMap(km KeyMap) Option {
	return func(t *Trap) { t.keys = km }
}

// Trap is the focus-trap coordinator for one document. It is not safe for
// concurrent use.
type Trap struct {
	doc    *dom.Document
	log    logr.Logger
	tag    channel.Tag
	tracer trace.Tracer
	keys   KeyMap

	frames    []Frame
	intercept func() // unsubscribes the live interceptor
}

// NewTrap creates a trap over doc.
func NewTrap(doc *dom.Document, opts ...Option) *Trap {
	t := &Trap{
		doc:  doc,
		log:  logr.Discard(),
		keys: DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	t.log = t.log.WithValues("channel", t.tag.String())
	return t
}

// Tag returns the channel tag.
func (t *Trap) Tag() channel.Tag { return t.tag }

// Depth returns the number of frames.
func (t *Trap) Depth() int { return len(t.frames) }

// Active returns the top frame.
func (t *Trap) Active() (Frame, bool) {
	if len(t.frames) == 0 {
		return Frame{}, false
	}
	return t.frames[len(t.frames)-1], true
}

// Activate traps focus inside the element with id targetID. It logs a
// warning and returns false, changing nothing, if no such element is attached.
func (t *Trap) Activate(targetID string) bool {
	el := t.doc.GetElementByID(targetID)
	if el == nil {
		t.warnMissing(targetID)
		return false
	}
	return t.activate(el, targetID)
}

// ActivateElement is Activate for an element reference.
func (t *Trap) ActivateElement(el *dom.Element) bool {
	id := ""
	if el != nil {
		id = el.ID
	}
	if !t.doc.Attached(el) {
		t.warnMissing(id)
		return false
	}
	return t.activate(el, id)
}

func (t *Trap) activate(target *dom.Element, id string) bool {
	_, span := t.tracer.Start(context.Background(), "focus.activate",
		trace.WithAttributes(
			attribute.String("channel.tag", t.tag.String()),
			attribute.String("focus.target", id),
		))
	defer span.End()

	origin := t.doc.ActiveElement()
	frame := Frame{Origin: origin, Target: target}
	if b, ok := FindBoundary(target); ok {
		frame.Boundary = &b
		t.doc.Focus(b.First)
	}
	t.install(frame)
	t.frames = append(t.frames, frame)

	span.SetAttributes(
		attribute.Int("focus.depth", len(t.frames)),
		attribute.Bool("focus.has_boundary", frame.Boundary != nil),
	)
	t.log.V(1).Info("focus trap activated", "target", id, "depth", len(t.frames))
	return true
}

// Deactivate pops the top frame and restores focus to its origin. The frame
// underneath, if any, gets a freshly computed boundary and the interceptor.
// It is a no-op when no frame is active.
func (t *Trap) Deactivate() {
	if len(t.frames) == 0 {
		return
	}
	_, span := t.tracer.Start(context.Background(), "focus.deactivate",
		trace.WithAttributes(attribute.String("channel.tag", t.tag.String())))
	defer span.End()

	t.uninstall()
	top := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]

	if len(t.frames) > 0 {
		t.refreshTop()
	}
	// Best effort: a detached origin is ignored by the document.
	if top.Origin != nil {
		t.doc.Focus(top.Origin)
	}

	span.SetAttributes(attribute.Int("focus.depth", len(t.frames)))
	t.log.V(1).Info("focus trap deactivated", "depth", len(t.frames))
}

// Discard drops the frame trapping target without touching focus. The frame
// above it inherits its origin when its own origin was inside target.
// Discarding the top frame is Deactivate. It returns false if no frame
// traps target.
func (t *Trap) Discard(target *dom.Element) bool {
	idx := -1
	for i := len(t.frames) - 1; i >= 0; i-- {
		if t.frames[i].Target == target {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		return false
	case idx == len(t.frames)-1:
		t.Deactivate()
		return true
	}

	gone := t.frames[idx]
	above := &t.frames[idx+1]
	if above.Origin == nil || gone.Target.Contains(above.Origin) {
		above.Origin = gone.Origin
	}
	t.frames = append(t.frames[:idx], t.frames[idx+1:]...)
	t.log.V(1).Info("suspended focus trap discarded", "target", target.ID, "depth", len(t.frames))
	return true
}

// Reset removes the interceptor and every frame without moving focus.
func (t *Trap) Reset() {
	t.uninstall()
	t.frames = nil
}

func (t *Trap) refreshTop() {
	top := &t.frames[len(t.frames)-1]
	top.Boundary = nil
	if t.doc.Attached(top.Target) {
		if b, ok := FindBoundary(top.Target); ok {
			top.Boundary = &b
		}
	}
	t.install(*top)
}

func (t *Trap) install(f Frame) {
	t.uninstall()
	t.intercept = t.doc.AddKeyListener(nil, t.interceptor(f))
}

func (t *Trap) uninstall() {
	if t.intercept != nil {
		t.intercept()
		t.intercept = nil
	}
}

// interceptor wraps focus at the edges of f's boundary. Events targeting
// anything outside f's container belong to someone else and pass through.
func (t *Trap) interceptor(f Frame) dom.KeyListener {
	return func(ev *dom.KeyEvent) {
		if f.Boundary == nil || ev.Target == nil || !f.Target.Contains(ev.Target) {
			return
		}
		switch {
		case key.Matches(ev.Msg, t.keys.Next) && ev.Target == f.Boundary.Last:
			ev.PreventDefault()
			t.doc.Focus(f.Boundary.First)
		case key.Matches(ev.Msg, t.keys.Prev) && ev.Target == f.Boundary.First:
			ev.PreventDefault()
			t.doc.Focus(f.Boundary.Last)
		}
	}
}

func (t *Trap) warnMissing(id string) {
	t.log.Info("focus trap target not found, activation skipped",
		"severity", "warning", "target", id)
}
