// Package toolutil provides shared helper functions for go_youtube MCP tools.
package toolutil

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/transcript"
)

// NormLangs splits a comma-separated language field ("de, en") into codes.
// An empty field yields nil, meaning "use the server default".
func NormLangs(lang string) []string {
	var out []string
	for _, l := range strings.Split(lang, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// FormatTimestamp renders a millisecond offset as [MM:SS], or [HH:MM:SS]
// from one hour on.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("[%02d:%02d:%02d]", h, m, s)
	}
	return fmt.Sprintf("[%02d:%02d]", m, s)
}

// TimestampedText renders chunks one per line, each prefixed with its start time.
func TimestampedText(chunks []transcript.Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		sb.WriteString(FormatTimestamp(c.StartMs))
		sb.WriteByte(' ')
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
