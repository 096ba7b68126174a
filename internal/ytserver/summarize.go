package ytserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// summaryChunkSize groups segments so that each summary line carries a
// timestamp every few sentences.
const summaryChunkSize = 400

// SummarizeFunc produces a summary from a timestamped transcript.
type SummarizeFunc func(ctx context.Context, videoURL, transcript string) (string, error)

// RegisterSummarizer adds summarize_transcript, which fetches a transcript and
// hands it to summarize.
func RegisterSummarizer(server *mcp.Server, svc *ytservice.Service, summarize SummarizeFunc) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_transcript",
		Description: "Fetches the transcript of a YouTube video and returns a markdown summary with an overview and key points referenced by [MM:SS] or [HH:MM:SS] timestamps.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, SummarizeOutput, error) {
		if strings.TrimSpace(input.VideoURL) == "" {
			return nil, SummarizeOutput{}, errors.New("videoUrl is required")
		}
		chunks, err := svc.GetTranscript(ctx, input.VideoURL, transcript.MaxLength(summaryChunkSize), toolutil.NormLangs(input.Language)...)
		if err != nil {
			return nil, SummarizeOutput{}, err
		}
		videoID := ytservice.ExtractVideoID(input.VideoURL)
		if len(chunks) == 0 {
			return nil, SummarizeOutput{VideoID: videoID, Summary: "The transcript is empty."}, nil
		}

		summary, err := summarize(ctx, input.VideoURL, toolutil.TimestampedText(chunks))
		if err != nil {
			slog.Warn("summarize_transcript: llm failed", slog.String("id", videoID), slog.Any("error", err))
			return nil, SummarizeOutput{}, fmt.Errorf("summarization failed: %w", err)
		}
		return nil, SummarizeOutput{VideoID: videoID, Summary: summary}, nil
	})
}
