package decorators

import (
	"context"
	"time"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

type weatherGetterService interface {
	GetWeather(ctx context.Context, rawInput string) (models.ResolvedWeather, error)
}

type lookupCollector interface {
	ObserveLookup(outcome string, duration time.Duration)
}

// MeasuredService reports the outcome and latency of every lookup.
type MeasuredService struct {
	inner     weatherGetterService
	collector lookupCollector
}

func NewMeasuredService(inner weatherGetterService, collector lookupCollector) *MeasuredService {
	return &MeasuredService{inner: inner, collector: collector}
}

func (s *MeasuredService) GetWeather(ctx context.Context, rawInput string) (models.ResolvedWeather, error) {
	start := time.Now()
	weather, err := s.inner.GetWeather(ctx, rawInput)
	s.collector.ObserveLookup(models.KindOf(err).String(), time.Since(start))
	return weather, err
}
