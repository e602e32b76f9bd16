package providers

import (
	"github.com/NateStaxx/FetchDeck/internal/config"
	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// Build constructs every panel in page order from configuration.
func Build(cfg *config.AppConfig) []panel.Panel {
	client := NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)
	ep := cfg.Endpoint

	// Open-Meteo geocoding needs no key; Google is used only when a key is set.
	var geo Geocoder = NewOpenMeteoGeocoder(client, ep.Geocoding)
	if cfg.GeocoderAPIKey != "" {
		geo = NewGoogleGeocoder(cfg.GeocoderAPIKey, cfg.HTTP.Timeout)
	}

	return []panel.Panel{
		NewDogProvider(client, ep.Dog).Panel(),
		NewCatProvider(client, ep.Cat).Panel(),
		NewWeatherProvider(client, geo, ep.Forecast, cfg.Weather.DefaultCity, cfg.Weather.DefaultUnit).Panel(),
		NewCurrencyProvider(client, ep.Currency, cfg.Currency.Base, cfg.Currency.Symbols).Panel(),
		NewShowsProvider(client, ep.Shows, cfg.Shows.Limit).Panel(),
		NewGitHubProvider(client, ep.GitHub, cfg.GitHub.User).Panel(),
		NewJokeProvider(client, ep.Joke).Panel(),
		NewDirectoryProvider(client, ep.Directory).Panel(),
	}
}
