package engine

import (
	"context"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  summary  ", "summary"},
		{"markdown fence", "```markdown\n## Overview\ntext\n```", "## Overview\ntext"},
		{"bare fence", "```\ntext\n```", "text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCallLLMNotConfigured(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()
	cfg.LLMClient = nil

	if _, err := CallLLM(context.Background(), "sys", "prompt"); err == nil {
		t.Fatal("expected error without LLM client")
	}
	if _, err := SummarizeTranscript(context.Background(), "https://youtu.be/x", "[00:00] hi"); err == nil {
		t.Fatal("expected error without LLM client")
	}
	if LLMEnabled() {
		t.Error("LLMEnabled() = true without client")
	}
}
