// go_youtube: YouTube transcripts & search MCP server.
//
// Exposes four MCP tools: get_transcript, search_videos, search_channels,
// get_channel_videos (plus summarize_transcript when an LLM key is set),
// a youtube://transcript/{videoId} resource template and a summarize_video prompt.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/sources"
	"github.com/anatolykoptev/go_youtube/internal/ytserver"
	"github.com/anatolykoptev/go_youtube/internal/ytservice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_youtube",
		slog.String("port", mcpPort),
		slog.Bool("data_api", engine.Cfg.YouTubeAPIKey != ""),
		slog.Bool("llm", engine.LLMEnabled()),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_youtube",
		Version: version,
	}, nil)

	svc := ytservice.New(sources.NewYouTube())
	ytserver.RegisterTools(server, svc)
	ytserver.RegisterResources(server, svc)
	ytserver.RegisterPrompts(server)
	tools := 4
	if engine.LLMEnabled() {
		ytserver.RegisterSummarizer(server, svc, engine.SummarizeTranscript)
		tools++
	}
	slog.Info("tools registered", slog.Int("count", tools))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_youtube",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIKeyFallback: env.Str("YOUTUBE_API_KEY_FALLBACK", ""),
		YouTubeLangs:          env.List("YOUTUBE_LANGS", "en"),
		YouTubeSearchLimit:    env.Int("YOUTUBE_SEARCH_LIMIT", 20),
		YouTubeRPS:            env.Float("YOUTUBE_RPS", 5),
		FetchTimeout:          env.Duration("FETCH_TIMEOUT", 15*time.Second),
		LLMAPIKey:             env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:    env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:            env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:              env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:        env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:          env.Int("LLM_MAX_TOKENS", 16384),
		MaxContentChars:       env.Int("MAX_CONTENT_CHARS", 12000),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
	}

	engine.Init(c)
}
