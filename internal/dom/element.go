package dom

// Kind classifies an element for focus and default key handling.
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindLink
	KindButton
	KindTextarea
	KindInput
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindLink:
		return "link"
	case KindButton:
		return "button"
	case KindTextarea:
		return "textarea"
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Input types recognised as focusable. An empty InputType behaves as text.
const (
	InputText     = "text"
	InputRadio    = "radio"
	InputCheckbox = "checkbox"
	InputPassword = "password"
	InputHidden   = "hidden"
)

// Element is a node in a Document tree.
// The exported fields are plain data; tree structure is changed only
// through Append and Remove.
type Element struct {
	ID        string
	Kind      Kind
	Label     string
	Href      string // links only
	InputType string // inputs only
	Value     string // inputs, textareas, selects
	Checked   bool   // radio and checkbox inputs
	Disabled  bool

	// OnClick runs when the element is clicked or activated with Enter.
	OnClick func()

	parent   *Element
	children []*Element
}

// NewContainer creates a grouping element holding children.
func NewContainer(id string, children ...*Element) *Element {
	e := &Element{ID: id, Kind: KindContainer}
	return e.Append(children...)
}

// NewText creates a static text element.
func NewText(label string) *Element {
	return &Element{Kind: KindText, Label: label}
}

// NewButton creates a button.
func NewButton(id, label string) *Element {
	return &Element{ID: id, Kind: KindButton, Label: label}
}

// NewLink creates a link. A link without href is not focusable.
func NewLink(id, label, href string) *Element {
	return &Element{ID: id, Kind: KindLink, Label: label, Href: href}
}

// NewInput creates an input of the given type.
func NewInput(id, inputType, label string) *Element {
	return &Element{ID: id, Kind: KindInput, InputType: inputType, Label: label}
}

// NewTextarea creates a multi-line text field.
func NewTextarea(id, label string) *Element {
	return &Element{ID: id, Kind: KindTextarea, Label: label}
}

// NewSelect creates a select with an initial value.
func NewSelect(id, label, value string) *Element {
	return &Element{ID: id, Kind: KindSelect, Label: label, Value: value}
}

// Disable marks the element disabled and returns it.
func (e *Element) Disable() *Element {
	e.Disabled = true
	return e
}

// WithClick sets OnClick and returns the element.
func (e *Element) WithClick(fn func()) *Element {
	e.OnClick = fn
	return e
}

// Append attaches children in order, detaching each from its previous parent.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c == e {
			continue
		}
		c.Remove()
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Remove detaches the element from its parent. Removing a detached element is a no-op.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the direct children.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Root returns the topmost ancestor (the element itself when detached).
func (e *Element) Root() *Element {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// QueryAll returns the descendants matching match, in document order.
// The element itself is never included.
func (e *Element) QueryAll(match func(*Element) bool) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if match(n) {
			out = append(out, n)
		}
	})
	return out
}

// walk visits descendants pre-order.
func (e *Element) walk(visit func(*Element)) {
	for _, c := range e.children {
		visit(c)
		c.walk(visit)
	}
}

// find returns the first element (self included) with the given id.
func (e *Element) find(id string) *Element {
	if e.ID == id {
		return e
	}
	for _, c := range e.children {
		if f := c.find(id); f != nil {
			return f
		}
	}
	return nil
}

// Focusable reports whether the element takes part in tab order:
// non-disabled links with an href, buttons, textareas, selects and
// text, radio or checkbox inputs.
func (e *Element) Focusable() bool {
	switch e.Kind {
	case KindLink:
		return e.Href != "" && !e.Disabled
	case KindButton, KindTextarea, KindSelect:
		return !e.Disabled
	case KindInput:
		if e.Disabled {
			return false
		}
		switch e.InputType {
		case "", InputText, InputRadio, InputCheckbox:
			return true
		}
		return false
	default:
		return false
	}
}
