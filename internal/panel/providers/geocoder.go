package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/NateStaxx/FetchDeck/internal/common"
	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// Place is a geocoded city.
type Place struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Label is the "City, CC" text shown by the weather panel.
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// Geocoder resolves a city name to coordinates. A city without matches
// yields a not-found failure.
type Geocoder interface {
	Locate(ctx context.Context, city string) (Place, error)
}

func cityNotFound(city string) *panel.Failure {
	return &panel.Failure{
		Reason: panel.ReasonNotFound,
		Label:  "City not found",
		Err:    fmt.Errorf("no geocoding results for %q", city),
	}
}

// OpenMeteoGeocoder uses the Open-Meteo geocoding search API.
type OpenMeteoGeocoder struct {
	api upstream
}

func NewOpenMeteoGeocoder(client *resty.Client, baseURL string) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{api: newUpstream(client, "geocoding", baseURL)}
}

func (g *OpenMeteoGeocoder) Locate(ctx context.Context, city string) (Place, error) {
	values := url.Values{}
	values.Set("name", city)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name        *string  `json:"name"`
			Latitude    *float64 `json:"latitude"`
			Longitude   *float64 `json:"longitude"`
			CountryCode string   `json:"country_code"`
		} `json:"results"`
	}
	if err := g.api.get(ctx, "/search", values, &payload); err != nil {
		return Place{}, err
	}
	if len(payload.Results) == 0 {
		return Place{}, cityNotFound(city)
	}

	first := payload.Results[0]
	if first.Name == nil || strings.TrimSpace(*first.Name) == "" || first.Latitude == nil || first.Longitude == nil {
		return Place{}, panel.Failf("geocoding result for %q without name or coordinates", city)
	}
	return Place{
		Name:      *first.Name,
		Country:   first.CountryCode,
		Latitude:  *first.Latitude,
		Longitude: *first.Longitude,
	}, nil
}

var geocoderKeyOnce sync.Once

// GoogleGeocoder uses the Google Geocoding API. The underlying client keeps
// its key in a package variable, so it is set once for the process. That
// client has no deadline of its own, so every lookup runs under timeout and
// is abandoned when the context ends.
type GoogleGeocoder struct {
	lookup  func(geocoder.Address) (geocoder.Location, error)
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
}

func NewGoogleGeocoder(apiKey string, timeout time.Duration) *GoogleGeocoder {
	geocoderKeyOnce.Do(func() {
		geocoder.ApiKey = apiKey
	})
	return newGoogleGeocoder(geocoder.Geocoding, timeout)
}

func newGoogleGeocoder(lookup func(geocoder.Address) (geocoder.Location, error), timeout time.Duration) *GoogleGeocoder {
	return &GoogleGeocoder{
		lookup:  lookup,
		timeout: timeout,
		circuit: newBreaker("google-geocoding"),
	}
}

type googleResult struct {
	loc geocoder.Location
	err error
}

// Locate labels the place with the city as typed: the Google client only
// exposes full country names, not the two-letter codes Open-Meteo returns.
func (g *GoogleGeocoder) Locate(ctx context.Context, city string) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, panel.Fail(panel.ReasonTransport, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.circuit.Execute(func() (interface{}, error) {
		done := make(chan googleResult, 1)
		go func() {
			loc, err := g.lookup(geocoder.Address{City: city})
			done <- googleResult{loc: loc, err: err}
		}()

		select {
		case <-ctx.Done():
			return nil, panel.Fail(panel.ReasonTransport, ctx.Err())
		case r := <-done:
			if r.err == nil {
				return &r.loc, nil
			}
			// Zero results is an answer, not an outage.
			if common.HasAny(r.err.Error(), "ZERO_RESULTS", "no results", "not found") {
				return (*geocoder.Location)(nil), nil
			}
			return nil, panel.Fail(panel.ReasonTransport, r.err)
		}
	})
	if err != nil {
		return Place{}, breakerFailure(err)
	}

	loc, _ := result.(*geocoder.Location)
	if loc == nil {
		return Place{}, cityNotFound(city)
	}
	return Place{Name: city, Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}
