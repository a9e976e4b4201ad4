package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-now/internal/models"
)

func TestState_Accessors(t *testing.T) {
	s := loaded(3, "London", londonWeather, Card{Title: "London"})
	w, ok := s.Weather()
	assert.True(t, ok)
	assert.Equal(t, londonWeather, w)
	_, ok = s.Failure()
	assert.False(t, ok)
	assert.Empty(t, s.Message())

	f := failed(4, "Atlantis", models.KindCityNotFound)
	_, ok = f.Weather()
	assert.False(t, ok)
	_, ok = f.Card()
	assert.False(t, ok)
	kind, ok := f.Failure()
	assert.True(t, ok)
	assert.Equal(t, models.KindCityNotFound, kind)
	assert.Equal(t, "City not found.", f.Message())

	l := loading(5, "Paris")
	assert.Equal(t, StatusLoading, l.Status())
	_, ok = l.Weather()
	assert.False(t, ok)
	assert.Equal(t, "Paris", l.Query())
	assert.Equal(t, uint64(5), l.Seq())
}

func TestState_MarshalJSON(t *testing.T) {
	testCases := []struct {
		name  string
		state State
		want  string
	}{
		{
			name:  "idle",
			state: idle(0),
			want:  `{"status":"idle","seq":0}`,
		},
		{
			name:  "loading",
			state: loading(2, "Paris"),
			want:  `{"status":"loading","seq":2,"query":"Paris"}`,
		},
		{
			name:  "failed",
			state: failed(3, "", models.KindEmptyQuery),
			want:  `{"status":"failed","seq":3,"error":{"kind":"empty_query","message":"Please enter a city name."}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.state)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(data))
		})
	}
}

func TestState_MarshalJSON_Loaded(t *testing.T) {
	data, err := json.Marshal(loaded(1, "London", londonWeather, Card{Title: "London, United Kingdom"}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "loaded", got["status"])
	assert.NotContains(t, got, "error")
	weather, ok := got["weather"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "London", weather["displayName"])
	assert.InDelta(t, 15.2, weather["temperatureCelsius"], 1e-9)
	card, ok := got["card"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "London, United Kingdom", card["title"])
}
