package view

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/weathercode"
)

const clockLayout = "03:04 PM"

// Card is the display form of a ResolvedWeather.
type Card struct {
	Title       string `json:"title"`
	Condition   string `json:"condition"`
	Temperature string `json:"temperature"`
	WindSpeed   string `json:"windSpeed"`
	ObservedAt  string `json:"observedAt"`
	TimeZone    string `json:"timeZone"`
}

type zoneLocator interface {
	Location(latitude, longitude float64) (*time.Location, error)
}

type CardRenderer struct {
	logger zerolog.Logger
	zones  zoneLocator
}

// NewCardRenderer shows times in the place's own zone. A nil locator
// renders every time in UTC.
func NewCardRenderer(logger zerolog.Logger, zones zoneLocator) *CardRenderer {
	return &CardRenderer{logger: logger, zones: zones}
}

func (r *CardRenderer) Render(w models.ResolvedWeather) Card {
	loc := r.location(w.Place)
	return Card{
		Title:       title(w.Place),
		Condition:   weathercode.Label(w.WeatherCode),
		Temperature: formatNumber(w.TemperatureCelsius) + "°C",
		WindSpeed:   formatNumber(w.WindSpeedKmh) + " km/h",
		ObservedAt:  r.clock(w.CurrentConditions, loc),
		TimeZone:    loc.String(),
	}
}

func (r *CardRenderer) location(p models.Place) *time.Location {
	if r.zones == nil {
		return time.UTC
	}
	loc, err := r.zones.Location(p.Latitude, p.Longitude)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Float64("latitude", p.Latitude).
			Float64("longitude", p.Longitude).
			Msg("timezone lookup failed, showing UTC")
		return time.UTC
	}
	return loc
}

func (r *CardRenderer) clock(c models.CurrentConditions, loc *time.Location) string {
	at, err := c.ObservedAt()
	if err != nil {
		r.logger.Warn().Err(err).Str("observedAt", c.ObservedAtISO).Msg("unparsable observation time")
		return c.ObservedAtISO
	}
	return at.In(loc).Format(clockLayout)
}

func title(p models.Place) string {
	if p.CountryName == "" {
		return p.DisplayName
	}
	return p.DisplayName + ", " + p.CountryName
}

// formatNumber prints the shortest exact form, with -0 shown as 0.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
