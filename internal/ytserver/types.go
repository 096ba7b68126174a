package ytserver

import (
	"github.com/anatolykoptev/go_youtube/internal/normalize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
)

// TranscriptInput is the get_transcript tool input.
type TranscriptInput struct {
	VideoURL         string `json:"videoUrl" jsonschema:"The full URL of the YouTube video from which to retrieve the transcript. This is the standard URL you would use to watch the video in a browser (e.g., 'https://www.youtube.com/watch?v=dQw4w9WgXcQ')."`
	ChunkSize        int    `json:"chunkSize,omitempty" jsonschema:"Optional: The maximum number of characters for each transcript chunk. If provided, the transcript will be split into chunks of this size. Useful for processing very long transcripts in smaller, manageable parts."`
	ChunkBySilence   bool   `json:"chunkBySilence,omitempty" jsonschema:"Optional: If true, the transcript will be chunked based on periods of silence in the audio. This can help in segmenting the transcript into more natural conversational or thematic breaks."`
	SilenceThreshold *int64 `json:"silenceThreshold,omitempty" jsonschema:"Optional: When chunkBySilence is true, this specifies the minimum duration of silence (in milliseconds) to consider as a chunk break. A higher value means longer pauses are required to create a new chunk. Default: 200"`
	Language         string `json:"language,omitempty" jsonschema:"Optional: Preferred caption language codes, comma-separated (e.g. 'de,en'). Default: server setting"`
}

// TranscriptOutput is the get_transcript tool output.
type TranscriptOutput struct {
	VideoID string             `json:"videoId"`
	Chunks  []transcript.Chunk `json:"chunks"`
}

// SearchInput is shared by search_videos and search_channels.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"The search query. Can include keywords, phrases, or specific terms related to the content you're looking for."`
	SortBy string `json:"sortBy,omitempty" jsonschema:"Optional: How to sort the search results: relevance, date, rating (default), viewCount, title. Channel search also accepts videoCount."`
}

// VideoSearchOutput is the search_videos tool output.
type VideoSearchOutput struct {
	Query  string                        `json:"query"`
	SortBy string                        `json:"sortBy"`
	Videos []normalize.VideoSearchResult `json:"videos"`
}

// ChannelSearchOutput is the search_channels tool output.
type ChannelSearchOutput struct {
	Query    string                          `json:"query"`
	SortBy   string                          `json:"sortBy"`
	Channels []normalize.ChannelSearchResult `json:"channels"`
}

// ChannelVideosInput is the get_channel_videos tool input.
type ChannelVideosInput struct {
	ChannelID  string `json:"channelId" jsonschema:"The YouTube channel ID from which to retrieve videos. You can get this from search_channels results or from a channel URL."`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of videos to retrieve (default: 50, max: 200)."`
}

// ChannelVideosOutput is the get_channel_videos tool output.
type ChannelVideosOutput struct {
	ChannelID string                         `json:"channelId"`
	Count     int                            `json:"count"`
	Videos    []normalize.ChannelVideoResult `json:"videos"`
}

// SummarizeInput is the summarize_transcript tool input.
type SummarizeInput struct {
	VideoURL string `json:"videoUrl" jsonschema:"The full URL of the YouTube video to summarize."`
	Language string `json:"language,omitempty" jsonschema:"Optional: Preferred caption language codes, comma-separated. Default: server setting"`
}

// SummarizeOutput is the summarize_transcript tool output.
type SummarizeOutput struct {
	VideoID string `json:"videoId"`
	Summary string `json:"summary"`
}
