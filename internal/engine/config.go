package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	YouTubeLangs          []string
	YouTubeSearchLimit    int
	YouTubeRPS            float64 // outbound requests per second; 0 = unpaced
	FetchTimeout          time.Duration
	LLMAPIKey             string
	LLMAPIKeyFallbacks    []string
	LLMAPIBase            string
	LLMModel              string
	LLMTemperature        float64
	LLMMaxTokens          int
	MaxContentChars       int
	HTTPClient            *http.Client
	LLMClient             *llm.Client // nil = summarize_transcript disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if len(c.YouTubeLangs) == 0 {
		c.YouTubeLangs = []string{"en"}
	}
	if c.YouTubeSearchLimit <= 0 {
		c.YouTubeSearchLimit = 20
	}
	cfg = c
	Cfg = &cfg
	initThrottle(c.YouTubeRPS)
}

// LLMEnabled reports whether an LLM client is configured.
func LLMEnabled() bool {
	return cfg.LLMClient != nil && cfg.LLMAPIKey != ""
}
