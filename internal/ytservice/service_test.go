package ytservice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anatolykoptev/go_youtube/internal/normalize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource records calls and returns canned data.
type fakeSource struct {
	tracks    []CaptionTrack
	tracksErr error
	segments  []transcript.Segment
	segErr    error
	gotTracks []CaptionTrack

	search    SearchResponse
	searchErr error
	gotSearch []SearchRequest

	channelOK  bool
	channelErr error
	uploads    []normalize.RawRecord
	uploadsErr error
	gotLimit   int
}

func (f *fakeSource) CaptionTracks(ctx context.Context, _ string) ([]CaptionTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.tracks, f.tracksErr
}

func (f *fakeSource) TranscriptSegments(_ context.Context, _ string, tracks []CaptionTrack) ([]transcript.Segment, error) {
	f.gotTracks = tracks
	return f.segments, f.segErr
}

func (f *fakeSource) Search(_ context.Context, req SearchRequest) (SearchResponse, error) {
	f.gotSearch = append(f.gotSearch, req)
	return f.search, f.searchErr
}

func (f *fakeSource) Channel(_ context.Context, id string) (normalize.RawRecord, bool, error) {
	return normalize.FromValue(map[string]string{"id": id}), f.channelOK, f.channelErr
}

func (f *fakeSource) ChannelUploads(_ context.Context, _ string, limit int) ([]normalize.RawRecord, error) {
	f.gotLimit = limit
	return f.uploads, f.uploadsErr
}

func oneTrack() []CaptionTrack {
	return []CaptionTrack{{BaseURL: "https://example.test/tt?lang=en", LanguageCode: "en"}}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=abc&t=10", "abc"},
		{"https://youtu.be/xyz789?t=42", "xyz789"},
		{"https://youtu.be/xyz789", "xyz789"},
		{"https://example.com/video", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractVideoID(tt.url); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestGetTranscript(t *testing.T) {
	src := &fakeSource{
		tracks: oneTrack(),
		segments: []transcript.Segment{
			{Text: "x", StartMs: 0, EndMs: 100},
			{Text: "y", StartMs: 400, EndMs: 500},
		},
	}
	svc := New(src)

	chunks, err := svc.GetTranscript(t.Context(), "https://www.youtube.com/watch?v=abc", transcript.SilenceGap(200))
	require.NoError(t, err)
	assert.Equal(t, []transcript.Chunk{
		{Text: "x ", StartMs: 0, EndMs: 100},
		{Text: "y ", StartMs: 400, EndMs: 500},
	}, chunks)

	chunks, err = svc.GetTranscript(t.Context(), "https://youtu.be/abc", transcript.SilenceGap(500))
	require.NoError(t, err)
	assert.Equal(t, []transcript.Chunk{{Text: "x y ", StartMs: 0, EndMs: 500}}, chunks)
}

func TestGetTranscriptInvalidURL(t *testing.T) {
	src := &fakeSource{tracks: oneTrack()}
	_, err := New(src).GetTranscript(t.Context(), "https://example.com/not-youtube", transcript.None())
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, src.gotTracks, "source must not be asked for segments")
}

func TestGetTranscriptNoCaptions(t *testing.T) {
	_, err := New(&fakeSource{tracks: []CaptionTrack{}}).
		GetTranscript(t.Context(), "https://youtu.be/abc", transcript.None())
	require.ErrorIs(t, err, ErrNoCaptions)
	assert.NotErrorIs(t, err, ErrRetrievalFailure)
	assert.Equal(t, "no caption tracks found for this video", err.Error())
}

func TestGetTranscriptRetrievalFailure(t *testing.T) {
	cause := errors.New("HTTP 429: slow down")
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{"tracks", &fakeSource{tracksErr: cause}},
		{"segments", &fakeSource{tracks: oneTrack(), segErr: cause}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.src).GetTranscript(t.Context(), "https://youtu.be/abc", transcript.None())
			require.ErrorIs(t, err, ErrRetrievalFailure)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, "Failed to fetch transcript", err.Error())

			var re *RetrievalError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, "get_transcript", re.Op)
		})
	}
}

func TestGetTranscriptCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	chunks, err := New(&fakeSource{tracks: oneTrack()}).
		GetTranscript(ctx, "https://youtu.be/abc", transcript.None())
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrRetrievalFailure)
	assert.Nil(t, chunks)
}

func TestGetTranscriptLanguagePreference(t *testing.T) {
	tracks := []CaptionTrack{
		{BaseURL: "u-en", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u-de", LanguageCode: "de"},
	}
	src := &fakeSource{tracks: tracks, segments: []transcript.Segment{{Text: "hallo"}}}

	_, err := New(src, WithLanguages("de")).GetTranscript(t.Context(), "https://youtu.be/abc", transcript.None())
	require.NoError(t, err)
	assert.Equal(t, "de", src.gotTracks[0].LanguageCode)

	_, err = New(src, WithLanguages("de")).GetTranscript(t.Context(), "https://youtu.be/abc", transcript.None(), "en")
	require.NoError(t, err)
	assert.Equal(t, "en", src.gotTracks[0].LanguageCode)
}

func TestTranscriptText(t *testing.T) {
	src := &fakeSource{tracks: oneTrack(), segments: []transcript.Segment{
		{Text: "hello", EndMs: 10}, {Text: "world", StartMs: 10, EndMs: 20},
	}}
	text, err := New(src).TranscriptText(t.Context(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestSearchVideosSortCoercion(t *testing.T) {
	tests := []struct {
		sortBy string
		want   SortKey
	}{
		{"", SortRating},
		{"popularity", SortRating},
		{"videoCount", SortRating},
		{"date", SortDate},
		{"viewCount", SortViewCount},
		{"title", SortTitle},
		{"relevance", SortRelevance},
	}
	for _, tt := range tests {
		src := &fakeSource{}
		_, err := New(src).SearchVideos(t.Context(), "golang", tt.sortBy)
		require.NoError(t, err)
		require.Len(t, src.gotSearch, 1)
		assert.Equal(t, tt.want, src.gotSearch[0].Sort, "sortBy=%q", tt.sortBy)
		assert.Equal(t, ResultVideo, src.gotSearch[0].Type)
	}
}

func TestSearchChannelsAcceptsVideoCount(t *testing.T) {
	src := &fakeSource{search: SearchResponse{Channels: []normalize.RawRecord{
		normalize.FromValue(map[string]any{"author": "Gophers", "id": "UC1"}),
		normalize.FromValue(map[string]any{}),
	}}}
	got, err := New(src).SearchChannels(t.Context(), "go", "videoCount")
	require.NoError(t, err)
	assert.Equal(t, SortVideoCount, src.gotSearch[0].Sort)
	assert.Equal(t, ResultChannel, src.gotSearch[0].Type)
	assert.Equal(t, []normalize.ChannelSearchResult{
		{ChannelName: "Gophers", ChannelID: "UC1"},
		{ChannelName: normalize.NoChannelName, ChannelID: normalize.NoChannelID},
	}, got)
}

func TestSearchVideosNormalizes(t *testing.T) {
	src := &fakeSource{search: SearchResponse{Videos: []normalize.RawRecord{
		normalize.FromValue(map[string]any{"title": "T", "id": "v1", "author": "A"}),
		normalize.FromValue(map[string]any{"title": "", "id": 0}),
	}}}
	got, err := New(src).SearchVideos(t.Context(), "q", "rating")
	require.NoError(t, err)
	assert.Equal(t, []normalize.VideoSearchResult{
		{Title: "T", VideoID: "v1", ChannelName: "A"},
		{Title: normalize.NoTitle, VideoID: normalize.NoID, ChannelName: normalize.NoChannelName},
	}, got)
}

func TestSearchErrors(t *testing.T) {
	svc := New(&fakeSource{searchErr: errors.New("boom")})

	_, err := svc.SearchVideos(t.Context(), "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SearchVideos(t.Context(), "q", "")
	require.ErrorIs(t, err, ErrRetrievalFailure)
	assert.Equal(t, "Failed to search videos", err.Error())

	_, err = svc.SearchChannels(t.Context(), "q", "")
	require.ErrorIs(t, err, ErrRetrievalFailure)
	assert.Equal(t, "Failed to search channels", err.Error())
}

func TestClampChannelVideos(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 50}, {0, 50}, {1, 1}, {50, 50}, {200, 200}, {500, 200},
	}
	for _, tt := range tests {
		if got := ClampChannelVideos(tt.in); got != tt.want {
			t.Errorf("ClampChannelVideos(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGetChannelVideos(t *testing.T) {
	uploads := make([]normalize.RawRecord, 250)
	for i := range uploads {
		uploads[i] = normalize.FromValue(map[string]any{"id": fmt.Sprintf("v%d", i), "title": "t"})
	}
	src := &fakeSource{channelOK: true, uploads: uploads}

	got, err := New(src).GetChannelVideos(t.Context(), "UC1", 500)
	require.NoError(t, err)
	assert.Equal(t, MaxChannelVideos, src.gotLimit)
	assert.Len(t, got, MaxChannelVideos)
	assert.Equal(t, "v0", got[0].VideoID)
	assert.Equal(t, normalize.UnknownDate, got[0].PublishedAt)

	_, err = New(src).GetChannelVideos(t.Context(), "UC1", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultChannelVideos, src.gotLimit)
}

func TestGetChannelVideosErrors(t *testing.T) {
	_, err := New(&fakeSource{}).GetChannelVideos(t.Context(), "UCnope", 10)
	assert.ErrorIs(t, err, ErrChannelNotFound)

	_, err = New(&fakeSource{}).GetChannelVideos(t.Context(), " ", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = New(&fakeSource{channelErr: errors.New("down")}).GetChannelVideos(t.Context(), "UC1", 10)
	require.ErrorIs(t, err, ErrRetrievalFailure)
	assert.Equal(t, "Failed to fetch channel videos", err.Error())

	_, err = New(&fakeSource{channelOK: true, uploadsErr: errors.New("down")}).GetChannelVideos(t.Context(), "UC1", 10)
	require.ErrorIs(t, err, ErrRetrievalFailure)
}
