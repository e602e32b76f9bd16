package providers

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

const (
	UnitFahrenheit = "fahrenheit"
	UnitCelsius    = "celsius"
)

// WeatherView is the rendered state of the weather panel.
type WeatherView struct {
	Location    string
	Conditions  string
	Temperature string
	Wind        string
}

// WeatherProvider geocodes a city and then asks Open-Meteo for its current
// conditions. The forecast call only happens after a successful geocode.
type WeatherProvider struct {
	geocoder    Geocoder
	forecast    upstream
	defaultCity string
	defaultUnit string
}

func NewWeatherProvider(client *resty.Client, geo Geocoder, forecastURL, defaultCity, defaultUnit string) *WeatherProvider {
	return &WeatherProvider{
		geocoder:    geo,
		forecast:    newUpstream(client, "forecast", forecastURL),
		defaultCity: defaultCity,
		defaultUnit: defaultUnit,
	}
}

// NormalizeUnit maps user input onto the two supported temperature units.
// Anything that does not ask for Celsius gets Fahrenheit.
func NormalizeUnit(unit string) string {
	u := strings.TrimSpace(unit)
	for _, name := range []string{UnitCelsius, "metric", "c"} {
		if strings.EqualFold(u, name) {
			return UnitCelsius
		}
	}
	return UnitFahrenheit
}

func (p *WeatherProvider) Fetch(ctx context.Context, in panel.Input) (WeatherView, error) {
	city := in.Get("city", p.defaultCity)
	unit := NormalizeUnit(in.Get("unit", p.defaultUnit))

	place, err := p.geocoder.Locate(ctx, city)
	if err != nil {
		return WeatherView{}, err
	}

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	values.Set("current", "temperature_2m,wind_speed_10m,weather_code")
	values.Set("temperature_unit", unit)
	values.Set("wind_speed_unit", "mph")
	values.Set("timezone", "auto")

	var payload struct {
		Current *struct {
			Temperature *float64 `json:"temperature_2m"`
			WindSpeed   *float64 `json:"wind_speed_10m"`
			WeatherCode *int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := p.forecast.get(ctx, "/forecast", values, &payload); err != nil {
		return WeatherView{}, err
	}

	cur := payload.Current
	if cur == nil || cur.Temperature == nil || cur.WindSpeed == nil || cur.WeatherCode == nil {
		return WeatherView{}, panel.Failf("forecast payload missing current conditions for %s", place.Label())
	}

	symbol := "F"
	if unit == UnitCelsius {
		symbol = "C"
	}

	return WeatherView{
		Location:    place.Label(),
		Conditions:  WeatherLabel(*cur.WeatherCode),
		Temperature: fmt.Sprintf("%s°%s", formatWhole(*cur.Temperature), symbol),
		Wind:        fmt.Sprintf("%s mph", formatWhole(*cur.WindSpeed)),
	}, nil
}

// formatWhole rounds half away from zero and never prints "-0".
func formatWhole(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

func (p *WeatherProvider) Panel() panel.Panel {
	return panel.Definition[WeatherView]{
		Meta: panel.Meta{
			Name:   "weather",
			Title:  "Weather",
			Action: "Get weather",
			Fields: []panel.Field{
				{Name: "city", Label: "City", Placeholder: p.defaultCity},
				{Name: "unit", Label: "Units", Options: []string{UnitFahrenheit, UnitCelsius}},
			},
		},
		Fetch: p.Fetch,
		View:  view("weather"),
	}
}
