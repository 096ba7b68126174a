package ytservice

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/normalize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
)

// CaptionTrack describes one caption track offered for a video.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind,omitempty"` // "asr" = auto-generated
}

// ResultType selects what a search returns.
type ResultType string

const (
	ResultVideo   ResultType = "video"
	ResultChannel ResultType = "channel"
)

// SearchRequest is a single search against the source.
type SearchRequest struct {
	Query string
	Type  ResultType
	Sort  SortKey
}

// SearchResponse carries raw records; only the list matching the requested
// type is expected to be populated.
type SearchResponse struct {
	Videos   []normalize.RawRecord
	Channels []normalize.RawRecord
}

// Source is the external YouTube collaborator. Implementations must not keep
// results across calls.
type Source interface {
	// CaptionTracks lists caption tracks; an empty list means the video has none.
	CaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	// TranscriptSegments returns the timed caption segments of a video, using
	// tracks previously returned by CaptionTracks.
	TranscriptSegments(ctx context.Context, videoID string, tracks []CaptionTrack) ([]transcript.Segment, error)
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
	// Channel returns the channel record; ok is false if the channel cannot be resolved.
	Channel(ctx context.Context, channelID string) (rec normalize.RawRecord, ok bool, err error)
	// ChannelUploads lists up to limit uploaded videos, newest first.
	ChannelUploads(ctx context.Context, channelID string, limit int) ([]normalize.RawRecord, error)
}
