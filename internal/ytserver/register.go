// Package ytserver exposes the YouTube service over MCP: tools, the
// transcript resource template and the summarize_video prompt.
package ytserver

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers the YouTube tools on the given MCP server:
// get_transcript, search_videos, search_channels, get_channel_videos.
func RegisterTools(server *mcp.Server, svc *ytservice.Service) {
	registerTranscript(server, svc)
	registerSearchVideos(server, svc)
	registerSearchChannels(server, svc)
	registerChannelVideos(server, svc)
}

func registerTranscript(server *mcp.Server, svc *ytservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Retrieves the full transcript of a specified YouTube video. This tool is useful for understanding video content without watching it, or for extracting textual information from videos. " + engine.FormattingGuidance,
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		if strings.TrimSpace(input.VideoURL) == "" {
			return nil, TranscriptOutput{}, errors.New("videoUrl is required")
		}
		policy := transcript.PolicyFor(input.ChunkSize, input.ChunkBySilence, input.SilenceThreshold)
		chunks, err := svc.GetTranscript(ctx, input.VideoURL, policy, toolutil.NormLangs(input.Language)...)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		return nil, TranscriptOutput{
			VideoID: ytservice.ExtractVideoID(input.VideoURL),
			Chunks:  chunks,
		}, nil
	})
}

func registerSearchVideos(server *mcp.Server, svc *ytservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_videos",
		Description: "Searches YouTube for videos matching the specified query. Returns a list of video results with title, video ID, and channel information. Results are sorted by rating by default for better quality content.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, VideoSearchOutput, error) {
		videos, err := svc.SearchVideos(ctx, input.Query, input.SortBy)
		if err != nil {
			return nil, VideoSearchOutput{}, err
		}
		return nil, VideoSearchOutput{
			Query:  input.Query,
			SortBy: string(ytservice.ParseSortKey(input.SortBy, false)),
			Videos: videos,
		}, nil
	})
}

func registerSearchChannels(server *mcp.Server, svc *ytservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_channels",
		Description: "Searches YouTube for channels matching the specified query. You can specify a sort order for the results (default: rating).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, ChannelSearchOutput, error) {
		channels, err := svc.SearchChannels(ctx, input.Query, input.SortBy)
		if err != nil {
			return nil, ChannelSearchOutput{}, err
		}
		return nil, ChannelSearchOutput{
			Query:    input.Query,
			SortBy:   string(ytservice.ParseSortKey(input.SortBy, true)),
			Channels: channels,
		}, nil
	})
}

func registerChannelVideos(server *mcp.Server, svc *ytservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_channel_videos",
		Description: "Retrieves a list of videos from a specified YouTube channel. This tool is useful for getting all videos uploaded by a specific channel.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ChannelVideosInput) (*mcp.CallToolResult, ChannelVideosOutput, error) {
		videos, err := svc.GetChannelVideos(ctx, input.ChannelID, input.MaxResults)
		if err != nil {
			return nil, ChannelVideosOutput{}, err
		}
		return nil, ChannelVideosOutput{
			ChannelID: input.ChannelID,
			Count:     len(videos),
			Videos:    videos,
		}, nil
	})
}
