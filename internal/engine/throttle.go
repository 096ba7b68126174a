package engine

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// outbound paces requests sent to YouTube. It only delays callers; it never
// rejects them.
var outbound = rate.NewLimiter(rate.Inf, 1)

func initThrottle(rps float64) {
	if rps <= 0 {
		outbound = rate.NewLimiter(rate.Inf, 1)
		return
	}
	burst := int(math.Ceil(rps))
	outbound = rate.NewLimiter(rate.Limit(rps), burst)
}

// Throttle blocks until the next outbound request may be sent or ctx is done.
func Throttle(ctx context.Context) error {
	return outbound.Wait(ctx)
}
