package sources

// YouTube implementation is split across four files by responsibility:
//   youtube_innertube.go  - Innertube API types, constants, and low-level HTTP primitives
//   youtube_transcript.go - caption tracks and timed segments (watch page, timedtext,
//                           engagement panel and ANDROID player fallbacks)
//   youtube_search.go     - video/channel search (Data API v3 or Innertube /search)
//   youtube_channel.go    - channel lookup and upload listings

import (
	"net/http"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
)

const (
	ytBaseURL     = "https://www.youtube.com"
	ytDataAPIBase = "https://www.googleapis.com/youtube/v3"
)

// YouTube talks to YouTube over HTTP. It keeps no results between calls, so
// one instance can serve every request.
type YouTube struct {
	client      *http.Client
	apiKeys     []string
	searchLimit int
	baseURL     string
	apiBase     string
}

var _ ytservice.Source = (*YouTube)(nil)

// NewYouTube builds a client from engine.Cfg. The Data API v3 is used for
// search and channel listings when a key is configured; otherwise every call
// goes through Innertube.
func NewYouTube() *YouTube {
	var keys []string
	if engine.Cfg.YouTubeAPIKey != "" {
		keys = append(keys, engine.Cfg.YouTubeAPIKey)
	}
	if engine.Cfg.YouTubeAPIKeyFallback != "" {
		keys = append(keys, engine.Cfg.YouTubeAPIKeyFallback)
	}
	return &YouTube{
		client:      engine.Cfg.HTTPClient,
		apiKeys:     keys,
		searchLimit: engine.Cfg.YouTubeSearchLimit,
		baseURL:     ytBaseURL,
		apiBase:     ytDataAPIBase,
	}
}

func (y *YouTube) useDataAPI() bool { return len(y.apiKeys) > 0 }
