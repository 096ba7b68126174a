package engine

import "testing"

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"single escape", "rock &amp; roll", "rock & roll"},
		{"double escape", "it&amp;#39;s", "it's"},
		{"tags", "<font color=\"#E5E5E5\">so</font> true", "so true"},
		{"escaped tags", "&lt;i&gt;music&lt;/i&gt;", "music"},
		{"whitespace", " line\none \t two ", "line one two"},
		{"only newline", "\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCaption(tt.input); got != tt.want {
				t.Errorf("CleanCaption(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("короткий", 100, "..."); got != "короткий" {
		t.Errorf("short string changed: %q", got)
	}
	got := TruncateRunes("привет мир", 6, "")
	if got != "привет" {
		t.Errorf("TruncateRunes = %q, want %q", got, "привет")
	}
}
