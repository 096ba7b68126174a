// Package ytservice implements the YouTube operations exposed as MCP tools:
// transcript retrieval with chunking, video and channel search, and channel
// upload listings.
package ytservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/normalize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
)

// Channel listing limits.
const (
	DefaultChannelVideos = 50
	MaxChannelVideos     = 200
)

var (
	watchIDRE = regexp.MustCompile(`[?&]v=([^&]+)`)
	shortIDRE = regexp.MustCompile(`youtu\.be/([^?]+)`)
)

// ExtractVideoID pulls the video ID out of a watch URL (?v=ID) or a short
// youtu.be/ID link. It returns "" when neither form matches.
func ExtractVideoID(videoURL string) string {
	if m := watchIDRE.FindStringSubmatch(videoURL); len(m) == 2 {
		return m[1]
	}
	if m := shortIDRE.FindStringSubmatch(videoURL); len(m) == 2 {
		return m[1]
	}
	return ""
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Service runs YouTube operations against a Source. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	src   Source
	langs []string
}

// Option configures a Service.
type Option func(*Service)

// WithLanguages sets the default caption language preference.
func WithLanguages(langs ...string) Option {
	return func(s *Service) { s.langs = langs }
}

// New creates a Service backed by src. The caption language preference
// defaults to engine.Cfg.YouTubeLangs.
func New(src Source, opts ...Option) *Service {
	s := &Service{src: src, langs: engine.Cfg.YouTubeLangs}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetTranscript fetches the captions of the video at videoURL and chunks them
// with policy. langs overrides the service's language preference.
func (s *Service) GetTranscript(ctx context.Context, videoURL string, policy transcript.Policy, langs ...string) ([]transcript.Chunk, error) {
	engine.IncrTranscript()
	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: not a YouTube video URL: %q", ErrInvalidInput, videoURL)
	}

	var chunks []transcript.Chunk
	err := engine.TrackOperation(ctx, "get_transcript", func(ctx context.Context) error {
		tracks, err := s.src.CaptionTracks(ctx, videoID)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			return ErrNoCaptions
		}
		if len(langs) == 0 {
			langs = s.langs
		}
		segments, err := s.src.TranscriptSegments(ctx, videoID, RankTracks(tracks, langs))
		if err != nil {
			return err
		}
		chunks = transcript.Split(segments, policy)
		return nil
	})
	if err != nil {
		engine.IncrTranscriptError()
		if errors.Is(err, ErrNoCaptions) {
			return nil, ErrNoCaptions
		}
		return nil, s.fail("get_transcript", msgTranscript, videoID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("transcript fetched",
		slog.String("id", videoID),
		slog.String("policy", policy.Kind.String()),
		slog.Int("chunks", len(chunks)),
	)
	return chunks, nil
}

// TranscriptText returns the whole transcript of a video as one string.
func (s *Service) TranscriptText(ctx context.Context, videoURL string, langs ...string) (string, error) {
	chunks, err := s.GetTranscript(ctx, videoURL, transcript.None(), langs...)
	if err != nil {
		return "", err
	}
	return transcript.JoinText(chunks), nil
}

// SearchVideos searches videos. Unknown sortBy values are treated as rating.
func (s *Service) SearchVideos(ctx context.Context, query, sortBy string) ([]normalize.VideoSearchResult, error) {
	engine.IncrVideoSearch()
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	req := SearchRequest{Query: query, Type: ResultVideo, Sort: ParseSortKey(sortBy, false)}
	resp, err := s.src.Search(ctx, req)
	if err != nil {
		return nil, s.fail("search_videos", msgSearchVideos, query, err)
	}
	return normalize.Videos(resp.Videos), nil
}

// SearchChannels searches channels. Unknown sortBy values are treated as rating.
func (s *Service) SearchChannels(ctx context.Context, query, sortBy string) ([]normalize.ChannelSearchResult, error) {
	engine.IncrChannelSearch()
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	req := SearchRequest{Query: query, Type: ResultChannel, Sort: ParseSortKey(sortBy, true)}
	resp, err := s.src.Search(ctx, req)
	if err != nil {
		return nil, s.fail("search_channels", msgSearchChannel, query, err)
	}
	return normalize.Channels(resp.Channels), nil
}

// ClampChannelVideos applies the listing default and hard cap.
func ClampChannelVideos(maxResults int) int {
	if maxResults <= 0 {
		return DefaultChannelVideos
	}
	return min(maxResults, MaxChannelVideos)
}

// GetChannelVideos lists up to maxResults uploads of a channel (default 50, at most 200).
func (s *Service) GetChannelVideos(ctx context.Context, channelID string, maxResults int) ([]normalize.ChannelVideoResult, error) {
	engine.IncrChannelVideos()
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, fmt.Errorf("%w: channel id is required", ErrInvalidInput)
	}
	limit := ClampChannelVideos(maxResults)

	// Only existence matters here; upload records carry their own fields.
	_, ok, err := s.src.Channel(ctx, channelID)
	if err != nil {
		return nil, s.fail("get_channel_videos", msgChannelVideos, channelID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}

	uploads, err := s.src.ChannelUploads(ctx, channelID, limit)
	if err != nil {
		return nil, s.fail("get_channel_videos", msgChannelVideos, channelID, err)
	}
	if len(uploads) > limit {
		uploads = uploads[:limit]
	}
	return normalize.ChannelVideos(uploads), nil
}

// fail logs the source error and hides it behind a fixed message.
// Context errors are returned as-is so cancellation stays recognizable.
func (s *Service) fail(op, msg, subject string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	engine.IncrRetrievalError()
	slog.Warn(op+": source failed", slog.String("subject", subject), slog.Any("error", err))
	return retrievalError(op, msg, err)
}
