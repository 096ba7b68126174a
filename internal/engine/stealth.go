package engine

import (
	"context"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth retry and user-agent helpers for engine consumers.
var DefaultRetryConfig = stealth.DefaultRetryConfig

func RandomUserAgent() string { return stealth.RandomUserAgent() }

// RetryHTTP paces every attempt through the outbound throttle and retries
// transient failures (429, 5xx, network errors).
func RetryHTTP(ctx context.Context, rc stealth.RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return stealth.RetryHTTP(ctx, rc, func() (*http.Response, error) {
		if err := Throttle(ctx); err != nil {
			return nil, err
		}
		return fn()
	})
}
