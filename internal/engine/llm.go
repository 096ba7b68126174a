package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
func CallLLM(ctx context.Context, system, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", errors.New("llm: not configured")
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, system, prompt,
		llm.WithChatTemperature(cfg.LLMTemperature),
		llm.WithChatMaxTokens(cfg.LLMMaxTokens),
	)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// SummarizeTranscript asks the LLM for a timestamped summary of a transcript.
// transcript is expected one line per segment, prefixed with its start time.
func SummarizeTranscript(ctx context.Context, videoURL, transcript string) (string, error) {
	if cfg.MaxContentChars > 0 {
		transcript = TruncateRunes(transcript, cfg.MaxContentChars, "\n[transcript truncated]")
	}
	return CallLLM(ctx, summarySystemPrompt, fmt.Sprintf(summaryPrompt, videoURL, transcript))
}
