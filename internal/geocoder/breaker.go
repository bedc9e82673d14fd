package geocoder

import (
	"time"

	"github.com/rotisserie/eris"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/locality-resolver/internal/metrics"
)

// BreakerOptions configures the optional provider circuit breaker.
type BreakerOptions struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func newBreaker(opts BreakerOptions, logger *zap.Logger) *gobreaker.CircuitBreaker[[]Place] {
	if opts.MaxRequests == 0 {
		opts.MaxRequests = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: opts.MaxRequests,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		// Answers about the address or the key say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				eris.Is(err, ErrNoResults) ||
				eris.Is(err, ErrUnauthorized) ||
				eris.Is(err, ErrRateLimited)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Geocoder circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.SetBreakerState(breakerStateValue(to))
		},
	}
	return gobreaker.NewCircuitBreaker[[]Place](settings)
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
