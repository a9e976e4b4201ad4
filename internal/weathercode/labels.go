// Package weathercode maps WMO weather codes reported by Open-Meteo to the
// labels shown next to a result.
package weathercode

import "sort"

// Fallback is returned for codes that have no entry in the table.
const Fallback = "🌍 Weather Info"

var labels = map[int]string{
	0:  "☀️ Clear sky",
	1:  "🌤️ Mainly clear",
	2:  "⛅ Partly cloudy",
	3:  "☁️ Overcast",
	45: "🌫️ Fog",
	48: "🌫️ Depositing rime fog",
	51: "🌦️ Light drizzle",
	53: "🌧️ Moderate drizzle",
	55: "🌧️ Heavy drizzle",
	61: "🌧️ Light rain",
	63: "🌧️ Moderate rain",
	65: "🌧️🌧️ Heavy rain",
	66: "🌨️❄️ Light freezing rain",
	67: "🌨️❄️💧 Heavy freezing rain",
	71: "🌨️ Light snow",
	73: "🌨️ Moderate snow",
	75: "🌨️❄️❄️ Heavy snow",
	77: "🌨️ Snow grains",
	80: "🌦️ Rain showers",
	81: "🌦️ Moderate rain showers",
	82: "🌧️💧 Heavy rain showers",
	95: "⛈️ Thunderstorm",
	96: "⛈️🌨️ Thunderstorm with hail",
	99: "⛈️🌨️ Heavy thunderstorm with hail",
}

var codes = sortedCodes()

func sortedCodes() []int {
	out := make([]int, 0, len(labels))
	for code := range labels {
		out = append(out, code)
	}
	sort.Ints(out)
	return out
}

// Lookup returns the label for code and whether the table has it.
func Lookup(code int) (string, bool) {
	label, ok := labels[code]
	return label, ok
}

// Label returns the label for code, or Fallback.
func Label(code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return Fallback
}

// Codes lists the known codes in ascending order.
func Codes() []int {
	out := make([]int, len(codes))
	copy(out, codes)
	return out
}

// Table returns a copy of the whole mapping.
func Table() map[int]string {
	out := make(map[int]string, len(labels))
	for code, label := range labels {
		out[code] = label
	}
	return out
}
