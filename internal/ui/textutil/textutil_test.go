package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"日本語テキスト", 5, "日本…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := PadLeft("ok", 5); got != "   ok" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadRight("ok", 5); got != "ok   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("日本", 5); got != "日本 " {
		t.Errorf("PadRight wide = %q", got)
	}
	if got := PadLeft("too long", 4); Width(got) != 4 {
		t.Errorf("PadLeft overflow = %q, width %d", got, Width(got))
	}
}
