package ui

import (
	"strings"
	"testing"

	"modalstack/internal/dom"
	"modalstack/internal/ui/textutil"
)

func TestRenderElement_Leaves(t *testing.T) {
	tests := []struct {
		name string
		el   *dom.Element
		want string
	}{
		{"text", dom.NewText("hello"), "hello"},
		{"button", dom.NewButton("b", "OK"), "[ OK ]"},
		{"link", dom.NewLink("l", "docs", "https://example.com"), "docs ↗"},
		{"select", dom.NewSelect("s", "Theme", "dark"), "Theme: dark ▾"},
		{"checkbox", func() *dom.Element {
			e := dom.NewInput("c", dom.InputCheckbox, "Subscribe")
			e.Checked = true
			return e
		}(), "[x] Subscribe"},
		{"radio", dom.NewInput("r", dom.InputRadio, "One"), "( ) One"},
		{"password", func() *dom.Element {
			e := dom.NewInput("p", dom.InputPassword, "Secret")
			e.Value = "abc"
			return e
		}(), "Secret: •••"},
		{"hidden", dom.NewInput("h", dom.InputHidden, "x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderElement(nil, tt.el, 80)
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderElement = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRenderElement_FocusedInputShowsCaret(t *testing.T) {
	doc := dom.NewDocument()
	in := dom.NewInput("name", dom.InputText, "Name")
	in.Value = "Ada"
	doc.Body().Append(in)

	if got := RenderElement(doc, in, 80); strings.Contains(got, "▏") {
		t.Errorf("unfocused input shows a caret: %q", got)
	}
	doc.Focus(in)
	if got := RenderElement(doc, in, 80); !strings.Contains(got, "Name: Ada▏") {
		t.Errorf("focused input = %q", got)
	}
}

func TestRenderElement_ButtonRowAndTruncation(t *testing.T) {
	row := dom.NewContainer("row", dom.NewButton("a", "Yes"), dom.NewButton("b", "No"))
	got := RenderElement(nil, row, 80)
	if strings.Count(got, "\n") != 0 {
		t.Errorf("buttons should share a row, got %q", got)
	}
	if !strings.Contains(got, "[ Yes ] [ No ]") {
		t.Errorf("row = %q", got)
	}

	long := dom.NewText(strings.Repeat("w", 50))
	if w := textutil.Width(RenderElement(nil, long, 10)); w > 10 {
		t.Errorf("truncated width = %d, want <= 10", w)
	}
}

func TestRenderElement_StacksMixedChildren(t *testing.T) {
	box := dom.NewContainer("box",
		dom.NewText("title"),
		dom.NewInput("i", dom.InputText, "Field"),
		dom.NewContainer("empty"),
	)
	lines := strings.Split(RenderElement(nil, box, 80), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), lines)
	}
}
