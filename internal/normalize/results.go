package normalize

// Placeholder values used when a field cannot be read from the source record.
const (
	NoTitle       = "No title"
	NoID          = "No ID"
	NoChannelName = "No channel name"
	NoChannelID   = "No channel ID"
	UnknownDate   = "Unknown date"
	NoDescription = "No description"
)

// VideoSearchResult is one entry of a video search.
type VideoSearchResult struct {
	Title       string `json:"title"`
	VideoID     string `json:"videoId"`
	ChannelName string `json:"channelName"`
}

// ChannelSearchResult is one entry of a channel search.
type ChannelSearchResult struct {
	ChannelName string `json:"channelName"`
	ChannelID   string `json:"channelId"`
}

// ChannelVideoResult is one upload of a channel.
type ChannelVideoResult struct {
	Title        string `json:"title"`
	VideoID      string `json:"videoId"`
	PublishedAt  string `json:"publishedAt"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Video normalizes a video search record.
func Video(r RawRecord) VideoSearchResult {
	return VideoSearchResult{
		Title:       r.stringOr(NoTitle, "title"),
		VideoID:     r.stringOr(NoID, "id"),
		ChannelName: authorName(r, NoChannelName),
	}
}

// Channel normalizes a channel search record. The name falls back to the
// record's own title, and the ID to the record's own id.
func Channel(r RawRecord) ChannelSearchResult {
	name := authorName(r, "")
	if name == "" {
		name = r.stringOr(NoChannelName, "title", "name")
	}
	id, ok := r.NestedString("author", "id")
	if !ok {
		id = r.stringOr(NoChannelID, "id")
	}
	return ChannelSearchResult{ChannelName: name, ChannelID: id}
}

// ChannelVideo normalizes an uploaded-video record.
func ChannelVideo(r RawRecord) ChannelVideoResult {
	return ChannelVideoResult{
		Title:        r.stringOr(NoTitle, "title"),
		VideoID:      r.stringOr(NoID, "id"),
		PublishedAt:  r.stringOr(UnknownDate, "published"),
		Description:  r.stringOr(NoDescription, "description"),
		ThumbnailURL: Thumbnail(r),
	}
}

// Thumbnail returns the URL of the first entry of the record's thumbnails
// array, or "" when there is none.
func Thumbnail(r RawRecord) string {
	thumbs := r.Array("thumbnails")
	if len(thumbs) == 0 {
		return ""
	}
	return thumbs[0].stringOr("", "url")
}

// authorName reads "author" as either a plain string or an object with a name.
func authorName(r RawRecord, def string) string {
	if s, ok := r.NestedString("author", ""); ok {
		return s
	}
	if s, ok := r.NestedString("author", "name"); ok {
		return s
	}
	return def
}

// Videos normalizes a list of video records, preserving order.
func Videos(records []RawRecord) []VideoSearchResult {
	out := make([]VideoSearchResult, len(records))
	for i, r := range records {
		out[i] = Video(r)
	}
	return out
}

// Channels normalizes a list of channel records, preserving order.
func Channels(records []RawRecord) []ChannelSearchResult {
	out := make([]ChannelSearchResult, len(records))
	for i, r := range records {
		out[i] = Channel(r)
	}
	return out
}

// ChannelVideos normalizes a list of upload records, preserving order.
func ChannelVideos(records []RawRecord) []ChannelVideoResult {
	out := make([]ChannelVideoResult, len(records))
	for i, r := range records {
		out[i] = ChannelVideo(r)
	}
	return out
}
