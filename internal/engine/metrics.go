package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests    atomic.Int64
	TranscriptErrors      atomic.Int64
	VideoSearchRequests   atomic.Int64
	ChannelSearchRequests atomic.Int64
	ChannelVideoRequests  atomic.Int64
	RetrievalErrors       atomic.Int64
	InnertubeRequests     atomic.Int64
	DataAPIRequests       atomic.Int64
	TimedTextRequests     atomic.Int64
	LLMCalls              atomic.Int64
	LLMErrors             atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"transcript_requests", "transcript_errors",
	"video_search_requests", "channel_search_requests", "channel_video_requests",
	"retrieval_errors",
	"innertube_requests", "data_api_requests", "timedtext_requests",
	"llm_calls", "llm_errors",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests":     metrics.TranscriptRequests.Load(),
		"transcript_errors":       metrics.TranscriptErrors.Load(),
		"video_search_requests":   metrics.VideoSearchRequests.Load(),
		"channel_search_requests": metrics.ChannelSearchRequests.Load(),
		"channel_video_requests":  metrics.ChannelVideoRequests.Load(),
		"retrieval_errors":        metrics.RetrievalErrors.Load(),
		"innertube_requests":      metrics.InnertubeRequests.Load(),
		"data_api_requests":       metrics.DataAPIRequests.Load(),
		"timedtext_requests":      metrics.TimedTextRequests.Load(),
		"llm_calls":               metrics.LLMCalls.Load(),
		"llm_errors":              metrics.LLMErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for ytservice.
func IncrTranscript()      { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptError() { metrics.TranscriptErrors.Add(1) }
func IncrVideoSearch()     { metrics.VideoSearchRequests.Add(1) }
func IncrChannelSearch()   { metrics.ChannelSearchRequests.Add(1) }
func IncrChannelVideos()   { metrics.ChannelVideoRequests.Add(1) }
func IncrRetrievalError()  { metrics.RetrievalErrors.Add(1) }

// Incrementors for sources/ sub-package.
func IncrInnertube() { metrics.InnertubeRequests.Add(1) }
func IncrDataAPI()   { metrics.DataAPIRequests.Add(1) }
func IncrTimedText() { metrics.TimedTextRequests.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
