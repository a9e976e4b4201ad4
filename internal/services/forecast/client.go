package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=51.5&longitude=-0.12&current_weather=true
const DefaultURL = "https://api.open-meteo.com/v1/forecast"

var (
	ErrMalformedResponse = errors.New("forecast: malformed response")
	ErrTransport         = errors.New("forecast: request failed")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type apiResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		WindSpeed   *float64 `json:"windspeed"`
		WeatherCode *int     `json:"weathercode"`
		Time        *string  `json:"time"`
	} `json:"current_weather"`
}

// Client fetches current conditions from the Open-Meteo forecast API.
type Client struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClient(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	return &Client{apiURL: apiURL, client: httpClient, logger: logger}
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FetchCurrent returns the current_weather block for coord. The coordinate is
// sent as is; out-of-range values are left for the service to reject.
func (c *Client) FetchCurrent(ctx context.Context, coord models.Coordinates) (models.CurrentConditions, error) {
	start := time.Now()

	u, err := url.Parse(c.apiURL)
	if err != nil {
		return models.CurrentConditions{}, fmt.Errorf("%w: parse base URL: %w", ErrTransport, err)
	}
	q := u.Query()
	q.Set("latitude", formatCoordinate(coord.Latitude))
	q.Set("longitude", formatCoordinate(coord.Longitude))
	q.Set("current_weather", "true")
	u.RawQuery = q.Encode()

	c.logger.Debug().
		Ctx(ctx).
		Float64("latitude", coord.Latitude).
		Float64("longitude", coord.Longitude).
		Str("url", u.String()).
		Msg("starting forecast request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.CurrentConditions{}, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Msg("error sending forecast request")
		return models.CurrentConditions{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Error().
				Err(cerr).
				Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Ctx(ctx).
			Str("status", resp.Status).
			Msg("forecast API returned non-200 status")
		return models.CurrentConditions{}, fmt.Errorf("%w: status %s", ErrTransport, resp.Status)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Msg("failed to decode forecast response")
		return models.CurrentConditions{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	cw := raw.CurrentWeather
	switch {
	case cw == nil:
		return models.CurrentConditions{}, fmt.Errorf("%w: current_weather is missing", ErrMalformedResponse)
	case cw.Temperature == nil, cw.WindSpeed == nil, cw.WeatherCode == nil, cw.Time == nil:
		return models.CurrentConditions{}, fmt.Errorf("%w: current_weather is incomplete", ErrMalformedResponse)
	}

	current := models.CurrentConditions{
		TemperatureCelsius: *cw.Temperature,
		WindSpeedKmh:       *cw.WindSpeed,
		WeatherCode:        *cw.WeatherCode,
		ObservedAtISO:      *cw.Time,
	}

	c.logger.Info().
		Ctx(ctx).
		Float64("temperature", current.TemperatureCelsius).
		Int("weathercode", current.WeatherCode).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched current weather")

	return current, nil
}
