package providers

import "strconv"

// weatherLabels maps WMO weather interpretation codes, as reported by
// Open-Meteo, to display text.
var weatherLabels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow",
	73: "Snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Rain showers",
	81: "Heavy rain showers",
	82: "Violent rain showers",
	85: "Snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm (slight hail)",
	99: "Thunderstorm (heavy hail)",
}

// WeatherLabel returns the label for code, or "Code N" when it is unknown.
func WeatherLabel(code int) string {
	if label, ok := weatherLabels[code]; ok {
		return label
	}
	return "Code " + strconv.Itoa(code)
}
