package geocoder

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// throttle waits for the per-key limiter. It never sleeps past the request
// deadline: if the wait cannot finish in time the call is reported as rate
// limited without contacting the provider.
func (c *Client) throttle(ctx context.Context, apiKey string) error {
	if c.opts.RateLimit <= 0 {
		return nil
	}
	if err := c.limiterFor(apiKey).Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return eris.Wrap(ctxErr, "geocoder: waiting for rate limiter")
		}
		return eris.Wrapf(ErrRateLimited, "local throttle: %v", err)
	}
	return nil
}

func (c *Client) limiterFor(apiKey string) *rate.Limiter {
	if lim, ok := c.limiters.Get(apiKey); ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(c.opts.RateLimit), c.opts.RateBurst)
	if prev, ok, _ := c.limiters.PeekOrAdd(apiKey, lim); ok {
		return prev
	}
	return lim
}
