package weather

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/services/geocoding"
)

type locationResolver interface {
	Resolve(ctx context.Context, query string) (models.Place, error)
}

type forecastFetcher interface {
	FetchCurrent(ctx context.Context, coord models.Coordinates) (models.CurrentConditions, error)
}

// Service runs the city → coordinates → current weather pipeline.
type Service struct {
	logger   zerolog.Logger
	resolver locationResolver
	fetcher  forecastFetcher
}

func NewService(logger zerolog.Logger, resolver locationResolver, fetcher forecastFetcher) *Service {
	return &Service{logger: logger, resolver: resolver, fetcher: fetcher}
}

// GetWeather resolves rawInput and fetches its current conditions.
// Every returned error is a *models.LookupError.
func (s *Service) GetWeather(ctx context.Context, rawInput string) (models.ResolvedWeather, error) {
	query := strings.TrimSpace(rawInput)
	if query == "" {
		s.logger.Debug().Ctx(ctx).Msg("rejecting blank query")
		return models.ResolvedWeather{}, models.NewLookupError(models.KindEmptyQuery, nil)
	}

	place, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, geocoding.ErrNotFound) {
			s.logger.Info().
				Ctx(ctx).
				Str("query", query).
				Msg("city not found")
			return models.ResolvedWeather{}, models.NewLookupError(models.KindCityNotFound, err)
		}
		s.logger.Error().
			Ctx(ctx).
			Str("query", query).
			Err(err).
			Msg("location lookup failed")
		return models.ResolvedWeather{}, models.NewLookupError(models.KindNetwork, err)
	}

	current, err := s.fetcher.FetchCurrent(ctx, place.Coordinates())
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("query", query).
			Str("place", place.DisplayName).
			Err(err).
			Msg("forecast lookup failed")
		return models.ResolvedWeather{}, models.NewLookupError(models.KindNetwork, err)
	}

	s.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Str("place", place.DisplayName).
		Str("country", place.CountryName).
		Msg("weather resolved")

	return models.NewResolvedWeather(place, current), nil
}
