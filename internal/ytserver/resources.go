package ytserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const transcriptURIPrefix = "youtube://transcript/"

// RegisterResources adds the youtube://transcript/{videoId} template, which
// serves a video's whole transcript as plain text.
func RegisterResources(server *mcp.Server, svc *ytservice.Service) {
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "YouTube Transcript",
		URITemplate: transcriptURIPrefix + "{videoId}",
		MIMEType:    "text/plain",
		Description: "The full transcript of a YouTube video as plain text, identified by its video ID.",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		videoID := strings.TrimPrefix(uri, transcriptURIPrefix)
		if videoID == "" || videoID == uri || strings.ContainsAny(videoID, "/?&") {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		text, err := svc.TranscriptText(ctx, ytservice.WatchURL(videoID))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("transcript resource: load failed", slog.String("id", videoID), slog.Any("error", err))
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: "text/plain", Text: text}},
		}, nil
	})
}

// RegisterPrompts adds the summarize_video prompt.
func RegisterPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "summarize_video",
		Description: "Summarize a YouTube video from its transcript, with timestamped key points.",
		Arguments: []*mcp.PromptArgument{{
			Name:        "videoUrl",
			Description: "The full URL of the YouTube video.",
			Required:    true,
		}},
	}, func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		videoURL := strings.TrimSpace(req.Params.Arguments["videoUrl"])
		if videoURL == "" {
			return nil, fmt.Errorf("videoUrl is required")
		}
		return &mcp.GetPromptResult{
			Description: "Summarize " + videoURL,
			Messages: []*mcp.PromptMessage{{
				Role:    "user",
				Content: &mcp.TextContent{Text: fmt.Sprintf(engine.SummarizeVideoPrompt, videoURL)},
			}},
		}, nil
	})
}
