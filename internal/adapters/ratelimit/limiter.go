package ratelimit

import (
	"context"

	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"golang.org/x/time/rate"
)

const (
	DefaultRPS = 20
	MinRPS     = 1
	MaxRPS     = 100
)

// Limiter throttles outbound calls of one adapter instance.
type Limiter struct {
	limiter *rate.Limiter
	rps     int
}

// New clamps rps to the accepted range. Zero selects the default; an out of
// range value is logged and replaced by the default.
func New(rps int, logger ports.Logger) *Limiter {
	limitValue := DefaultRPS
	if rps >= MinRPS && rps <= MaxRPS {
		limitValue = rps
	} else if rps != 0 && logger != nil {
		logger.Warnf(context.Background(), "Invalid RPS configured (%d), using default %d RPS. Valid range: %d-%d.", rps, DefaultRPS, MinRPS, MaxRPS)
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(limitValue), limitValue),
		rps:     limitValue,
	}
}

func (l *Limiter) RPS() int {
	return l.rps
}

// Wait blocks until a call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context, logger ports.Logger) error {
	err := l.limiter.Wait(ctx)
	if err != nil {
		if ctx.Err() == nil && logger != nil {
			logger.Warnf(ctx, "Error waiting for rate limiter: %v", err)
		}
		return err
	}
	return nil
}
