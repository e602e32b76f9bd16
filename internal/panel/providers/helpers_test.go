package providers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NateStaxx/FetchDeck/internal/config"
	"github.com/NateStaxx/FetchDeck/internal/panel"
)

func newTestClient() *resty.Client {
	return NewHTTPClient(2*time.Second, "fetchdeck-test")
}

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func serveStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(code), code)
	}
}

func newUpstreamServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// deadURL returns the address of a server that is no longer listening.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func testConfig(t *testing.T, base string) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		HTTP:     config.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "fetchdeck-test"},
		Weather:  config.WeatherConfig{DefaultCity: "Phoenix", DefaultUnit: UnitFahrenheit},
		Currency: config.CurrencyConfig{Base: "USD", Symbols: []string{"EUR", "GBP", "JPY", "CAD", "MXN"}},
		Shows:    config.ShowsConfig{Limit: 6},
		GitHub:   config.GitHubConfig{User: "octocat"},
		Endpoint: config.Endpoints{
			Dog: base, Cat: base, Geocoding: base, Forecast: base, Currency: base,
			Shows: base, GitHub: base, Joke: base, Directory: base,
		},
	}
}

func render(t *testing.T, p panel.Panel, in panel.Input) panel.Outcome {
	t.Helper()
	svc, err := panel.NewService(zap.NewNop(), p)
	require.NoError(t, err)
	out, err := svc.Render(context.Background(), p.Describe().Name, in)
	require.NoError(t, err)
	return out
}
