package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/services/geocoding"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

func newCircuitBreaker(name string, cfg BreakerConfig, isSuccessful func(err error) bool) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: isSuccessful,
	})
}

func execute[T any](name string, cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T
	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s unavailable: %w", name, err)
		}
		return zero, err
	}
	res, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned unexpected result", name)
	}
	return res, nil
}

// upstreamHealthy treats a cancelled context as success: a superseded
// search says nothing about upstream health.
func upstreamHealthy(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// BreakerResolver fails fast once the geocoding service keeps failing.
// A "not found" answer is a healthy response and never trips the circuit.
type BreakerResolver struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped locationResolver
}

func NewBreakerResolver(name string, cfg BreakerConfig, wrapped locationResolver) *BreakerResolver {
	isSuccessful := func(err error) bool {
		return upstreamHealthy(err) || errors.Is(err, geocoding.ErrNotFound)
	}
	return &BreakerResolver{
		name:    name,
		cb:      newCircuitBreaker(name, cfg, isSuccessful),
		wrapped: wrapped,
	}
}

func (b *BreakerResolver) Resolve(ctx context.Context, query string) (models.Place, error) {
	return execute(b.name, b.cb, func() (models.Place, error) {
		return b.wrapped.Resolve(ctx, query)
	})
}

// BreakerFetcher is the forecast counterpart of BreakerResolver.
type BreakerFetcher struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped forecastFetcher
}

func NewBreakerFetcher(name string, cfg BreakerConfig, wrapped forecastFetcher) *BreakerFetcher {
	return &BreakerFetcher{
		name:    name,
		cb:      newCircuitBreaker(name, cfg, upstreamHealthy),
		wrapped: wrapped,
	}
}

func (b *BreakerFetcher) FetchCurrent(ctx context.Context, coord models.Coordinates) (models.CurrentConditions, error) {
	return execute(b.name, b.cb, func() (models.CurrentConditions, error) {
		return b.wrapped.FetchCurrent(ctx, coord)
	})
}
