package agent

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// NewLimiter spaces calls at requestsPerSecond with no burst. It returns nil
// when requestsPerSecond is not positive.
func NewLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

// WaitTurn blocks until limiter admits one call to provider. A nil limiter
// admits immediately. Cancellation is returned as is; a wait that cannot
// finish before the context deadline is a *TransportError of kind timeout.
func WaitTurn(ctx context.Context, limiter *rate.Limiter, provider string) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return &TransportError{Provider: provider, Kind: TransportTimeout, Err: err}
	}
	return nil
}
