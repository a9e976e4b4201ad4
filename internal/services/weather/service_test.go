package weather_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-now/internal/models"
	"github.com/Nazarious-ucu/weather-now/internal/services/forecast"
	"github.com/Nazarious-ucu/weather-now/internal/services/geocoding"
	"github.com/Nazarious-ucu/weather-now/internal/services/weather"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, query string) (models.Place, error) {
	args := m.Called(ctx, query)
	data, ok := args.Get(0).(models.Place)
	if !ok {
		return models.Place{}, args.Error(1)
	}
	return data, args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchCurrent(ctx context.Context, coord models.Coordinates) (models.CurrentConditions, error) {
	args := m.Called(ctx, coord)
	data, ok := args.Get(0).(models.CurrentConditions)
	if !ok {
		return models.CurrentConditions{}, args.Error(1)
	}
	return data, args.Error(1)
}

var (
	london = models.Place{DisplayName: "London", CountryName: "UK", Latitude: 51.5, Longitude: -0.12}
	cloudy = models.CurrentConditions{
		TemperatureCelsius: 15.2,
		WindSpeedKmh:       10.4,
		WeatherCode:        3,
		ObservedAtISO:      "2024-01-01T12:00",
	}
)

func TestService_GetWeather_BlankInput(t *testing.T) {
	for _, input := range []string{"", " ", "\t", "  \n  "} {
		resolver := &mockResolver{}
		fetcher := &mockFetcher{}

		svc := weather.NewService(zerolog.Nop(), resolver, fetcher)

		got, err := svc.GetWeather(context.Background(), input)
		require.ErrorIs(t, err, models.ErrEmptyQuery)
		assert.Equal(t, models.ResolvedWeather{}, got)
		assert.Equal(t, "Please enter a city name.", err.Error())

		resolver.AssertNumberOfCalls(t, "Resolve", 0)
		fetcher.AssertNumberOfCalls(t, "FetchCurrent", 0)
	}
}

func TestService_GetWeather_TrimsQuery(t *testing.T) {
	resolver := &mockResolver{}
	fetcher := &mockFetcher{}

	resolver.On("Resolve", mock.Anything, "London").Return(london, nil).Once()
	fetcher.On("FetchCurrent", mock.Anything, london.Coordinates()).Return(cloudy, nil).Once()

	t.Cleanup(func() {
		resolver.AssertExpectations(t)
		fetcher.AssertExpectations(t)
	})

	svc := weather.NewService(zerolog.Nop(), resolver, fetcher)

	got, err := svc.GetWeather(context.Background(), "  London \n")
	require.NoError(t, err)
	assert.Equal(t, models.NewResolvedWeather(london, cloudy), got)
}

func TestService_GetWeather_CityNotFound(t *testing.T) {
	resolver := &mockResolver{}
	fetcher := &mockFetcher{}

	resolver.On("Resolve", mock.Anything, "Atlantis").Return(models.Place{}, geocoding.ErrNotFound).Once()

	t.Cleanup(func() {
		resolver.AssertExpectations(t)
		fetcher.AssertNumberOfCalls(t, "FetchCurrent", 0)
	})

	svc := weather.NewService(zerolog.Nop(), resolver, fetcher)

	got, err := svc.GetWeather(context.Background(), "Atlantis")
	require.ErrorIs(t, err, models.ErrCityNotFound)
	assert.Equal(t, models.KindCityNotFound, models.KindOf(err))
	assert.Equal(t, "City not found.", err.Error())
	assert.Equal(t, models.ResolvedWeather{}, got)
}

func TestService_GetWeather_NetworkErrors(t *testing.T) {
	refused := errors.New("connection refused")

	t.Run("geocoding transport", func(t *testing.T) {
		resolver := &mockResolver{}
		fetcher := &mockFetcher{}
		resolver.On("Resolve", mock.Anything, "London").Return(models.Place{}, refused).Once()

		t.Cleanup(func() {
			resolver.AssertExpectations(t)
			fetcher.AssertNumberOfCalls(t, "FetchCurrent", 0)
		})

		svc := weather.NewService(zerolog.Nop(), resolver, fetcher)

		got, err := svc.GetWeather(context.Background(), "London")
		require.ErrorIs(t, err, models.ErrNetwork)
		assert.ErrorIs(t, err, refused)
		assert.Equal(t, models.ResolvedWeather{}, got)
	})

	t.Run("forecast malformed", func(t *testing.T) {
		resolver := &mockResolver{}
		fetcher := &mockFetcher{}
		resolver.On("Resolve", mock.Anything, "London").Return(london, nil).Once()
		fetcher.On("FetchCurrent", mock.Anything, london.Coordinates()).
			Return(models.CurrentConditions{}, forecast.ErrMalformedResponse).Once()

		t.Cleanup(func() {
			resolver.AssertExpectations(t)
			fetcher.AssertExpectations(t)
		})

		svc := weather.NewService(zerolog.Nop(), resolver, fetcher)

		got, err := svc.GetWeather(context.Background(), "London")
		require.ErrorIs(t, err, models.ErrNetwork)
		assert.ErrorIs(t, err, forecast.ErrMalformedResponse)
		assert.Equal(t, "Unable to fetch weather data. Try again later.", err.Error())
		assert.Equal(t, models.ResolvedWeather{}, got)
	})

	t.Run("forecast transport", func(t *testing.T) {
		resolver := &mockResolver{}
		fetcher := &mockFetcher{}
		resolver.On("Resolve", mock.Anything, "London").Return(london, nil).Once()
		fetcher.On("FetchCurrent", mock.Anything, mock.Anything).Return(models.CurrentConditions{}, refused).Once()

		svc := weather.NewService(zerolog.Nop(), resolver, fetcher)

		_, err := svc.GetWeather(context.Background(), "London")
		require.ErrorIs(t, err, models.ErrNetwork)
	})
}

type upstream struct {
	geocoding *httptest.Server
	forecast  *httptest.Server

	geocodingCalls atomic.Int32
	forecastCalls  atomic.Int32
	lastLatitude   atomic.Value
	lastLongitude  atomic.Value
}

func newUpstream(t *testing.T, geocodingBody, forecastBody string) *upstream {
	t.Helper()
	u := &upstream{}
	u.geocoding = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.geocodingCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geocodingBody))
	}))
	u.forecast = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.forecastCalls.Add(1)
		u.lastLatitude.Store(r.URL.Query().Get("latitude"))
		u.lastLongitude.Store(r.URL.Query().Get("longitude"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	t.Cleanup(func() {
		u.geocoding.Close()
		u.forecast.Close()
	})
	return u
}

func (u *upstream) service() *weather.Service {
	l := zerolog.Nop()
	return weather.NewService(l,
		geocoding.NewClient(u.geocoding.URL, http.DefaultClient, l),
		forecast.NewClient(u.forecast.URL, http.DefaultClient, l),
	)
}

func TestService_GetWeather_RoundTrip(t *testing.T) {
	u := newUpstream(t,
		`{"results":[{"latitude":51.5,"longitude":-0.12,"name":"London","country":"UK"}]}`,
		`{"current_weather":{"temperature":15.2,"windspeed":10.4,"weathercode":3,"time":"2024-01-01T12:00"}}`,
	)

	got, err := u.service().GetWeather(context.Background(), "london")
	require.NoError(t, err)

	assert.Equal(t, models.ResolvedWeather{
		Place: models.Place{
			DisplayName: "London",
			CountryName: "UK",
			Latitude:    51.5,
			Longitude:   -0.12,
		},
		CurrentConditions: models.CurrentConditions{
			TemperatureCelsius: 15.2,
			WindSpeedKmh:       10.4,
			WeatherCode:        3,
			ObservedAtISO:      "2024-01-01T12:00",
		},
	}, got)
	assert.EqualValues(t, 1, u.geocodingCalls.Load())
	assert.EqualValues(t, 1, u.forecastCalls.Load())
}

func TestService_GetWeather_UsesFirstCandidate(t *testing.T) {
	u := newUpstream(t,
		`{"results":[
			{"latitude":40.4168,"longitude":-3.7038,"name":"Madrid","country":"Spain"},
			{"latitude":41.1,"longitude":-93.8,"name":"Madrid","country":"United States"}
		]}`,
		`{"current_weather":{"temperature":30,"windspeed":5,"weathercode":0,"time":"2024-07-01T14:00"}}`,
	)

	got, err := u.service().GetWeather(context.Background(), "Madrid")
	require.NoError(t, err)

	assert.Equal(t, "Spain", got.CountryName)
	assert.Equal(t, "40.4168", u.lastLatitude.Load())
	assert.Equal(t, "-3.7038", u.lastLongitude.Load())
}

func TestService_GetWeather_EmptyResultsSkipForecast(t *testing.T) {
	u := newUpstream(t, `{"generationtime_ms":0.3}`, `{}`)

	_, err := u.service().GetWeather(context.Background(), "Nowhereville")
	require.ErrorIs(t, err, models.ErrCityNotFound)
	assert.EqualValues(t, 1, u.geocodingCalls.Load())
	assert.EqualValues(t, 0, u.forecastCalls.Load())
}

func TestService_GetWeather_ConnectionRefused(t *testing.T) {
	u := newUpstream(t,
		`{"results":[{"latitude":51.5,"longitude":-0.12,"name":"London","country":"UK"}]}`,
		`{}`,
	)
	u.forecast.Close()

	_, err := u.service().GetWeather(context.Background(), "London")
	require.ErrorIs(t, err, models.ErrNetwork)
	assert.ErrorIs(t, err, forecast.ErrTransport)

	u.geocoding.Close()

	_, err = u.service().GetWeather(context.Background(), "London")
	require.ErrorIs(t, err, models.ErrNetwork)
	assert.ErrorIs(t, err, geocoding.ErrTransport)
}
