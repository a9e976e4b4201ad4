package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=London
const DefaultURL = "https://geocoding-api.open-meteo.com/v1/search"

var (
	ErrNotFound  = errors.New("geocoding: no matching place")
	ErrTransport = errors.New("geocoding: request failed")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type apiResponse struct {
	Results []struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Name      string   `json:"name"`
		Country   string   `json:"country"`
	} `json:"results"`
}

// Client resolves free-text place names with the Open-Meteo geocoding API.
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

// Resolve returns the first candidate the service reports for query.
func (c *Client) Resolve(ctx context.Context, query string) (models.Place, error) {
	start := time.Now()

	u, err := url.Parse(c.apiURL)
	if err != nil {
		return models.Place{}, fmt.Errorf("%w: parse base URL: %w", ErrTransport, err)
	}
	q := u.Query()
	q.Set("name", query)
	u.RawQuery = q.Encode()

	c.logger.Debug().
		Ctx(ctx).
		Str("query", query).
		Str("url", u.String()).
		Msg("starting geocoding request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Place{}, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("query", query).
			Msg("error sending geocoding request")
		return models.Place{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Error().
				Err(cerr).
				Str("query", query).
				Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Ctx(ctx).
			Str("query", query).
			Str("status", resp.Status).
			Msg("geocoding API returned non-200 status")
		return models.Place{}, fmt.Errorf("%w: status %s", ErrTransport, resp.Status)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("query", query).
			Msg("failed to decode geocoding response")
		return models.Place{}, fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}

	if len(raw.Results) == 0 {
		c.logger.Info().
			Ctx(ctx).
			Str("query", query).
			Msg("no geocoding candidates")
		return models.Place{}, ErrNotFound
	}

	first := raw.Results[0]
	if first.Latitude == nil || first.Longitude == nil {
		return models.Place{}, fmt.Errorf("%w: first candidate has no coordinates", ErrTransport)
	}

	place := models.Place{
		DisplayName: first.Name,
		CountryName: first.Country,
		Latitude:    *first.Latitude,
		Longitude:   *first.Longitude,
	}

	c.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Str("place", place.DisplayName).
		Int("candidates", len(raw.Results)).
		Dur("duration_ms", time.Since(start)).
		Msg("resolved place")

	return place, nil
}
