package models

import (
	"fmt"
	"time"
)

// ObservedAtLayout is the timestamp layout Open-Meteo uses for current_weather.time.
const ObservedAtLayout = "2006-01-02T15:04"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the first geocoding candidate for a query.
type Place struct {
	DisplayName string  `json:"displayName"`
	CountryName string  `json:"countryName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (p Place) Coordinates() Coordinates {
	return Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

// CurrentConditions is the current_weather snapshot for a coordinate.
// ObservedAtISO is kept exactly as the upstream sent it (no zone suffix).
type CurrentConditions struct {
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	WindSpeedKmh       float64 `json:"windSpeedKmh"`
	WeatherCode        int     `json:"weatherCode"`
	ObservedAtISO      string  `json:"observedAtIso"`
}

// ObservedAt parses ObservedAtISO as a UTC wall clock.
func (c CurrentConditions) ObservedAt() (time.Time, error) {
	t, err := time.ParseInLocation(ObservedAtLayout, c.ObservedAtISO, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse observation time %q: %w", c.ObservedAtISO, err)
	}
	return t, nil
}

// ResolvedWeather is the display record produced by one successful lookup.
type ResolvedWeather struct {
	Place
	CurrentConditions
}

func NewResolvedWeather(place Place, current CurrentConditions) ResolvedWeather {
	return ResolvedWeather{Place: place, CurrentConditions: current}
}
