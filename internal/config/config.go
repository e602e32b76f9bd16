package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultsRaw []byte

var validate = validator.New()

// AppConfig is the runtime configuration of the service.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	HTTP     HTTPConfig     `yaml:"http"`
	Endpoint Endpoints      `yaml:"endpoints"`
	Weather  WeatherConfig  `yaml:"weather"`
	Currency CurrencyConfig `yaml:"currency"`
	Shows    ShowsConfig    `yaml:"shows"`
	GitHub   GitHubConfig   `yaml:"github"`
	Status   StatusConfig   `yaml:"status"`

	// GeocoderAPIKey switches weather geocoding to Google when set.
	GeocoderAPIKey string `yaml:"-"`

	Env      string `yaml:"-"`
	LogLevel string `yaml:"-"`
}

type ServerConfig struct {
	Port         string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
}

type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent string        `yaml:"user_agent" validate:"required"`
}

// Endpoints holds the base URL of every upstream API.
type Endpoints struct {
	Dog       string `yaml:"dog" validate:"required,url"`
	Cat       string `yaml:"cat" validate:"required,url"`
	Geocoding string `yaml:"geocoding" validate:"required,url"`
	Forecast  string `yaml:"forecast" validate:"required,url"`
	Currency  string `yaml:"currency" validate:"required,url"`
	Shows     string `yaml:"shows" validate:"required,url"`
	GitHub    string `yaml:"github" validate:"required,url"`
	Joke      string `yaml:"joke" validate:"required,url"`
	Directory string `yaml:"directory" validate:"required,url"`
}

type WeatherConfig struct {
	DefaultCity string `yaml:"default_city" validate:"required"`
	DefaultUnit string `yaml:"default_unit" validate:"oneof=fahrenheit celsius"`
}

type CurrencyConfig struct {
	Base    string   `yaml:"base" validate:"required,len=3"`
	Symbols []string `yaml:"symbols" validate:"min=1,dive,len=3"`
}

type ShowsConfig struct {
	Limit int `yaml:"limit" validate:"gt=0"`
}

type GitHubConfig struct {
	User string `yaml:"user" validate:"required"`
}

type StatusConfig struct {
	// ProbeInterval of zero disables the upstream probe.
	ProbeInterval time.Duration `yaml:"probe_interval" validate:"gte=0"`
	MaxHistory    int           `yaml:"max_history" validate:"gte=0"`
}

// Load reads the embedded defaults, applies environment overrides and
// validates the result.
func Load() (*AppConfig, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse(defaultsRaw)
}

// Parse decodes raw YAML, applies environment overrides and validates.
func Parse(raw []byte) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	cfg.Server.Port = getenvDefault("PORT", cfg.Server.Port)
	cfg.HTTP.UserAgent = getenvDefault("HTTP_USER_AGENT", cfg.HTTP.UserAgent)

	var err error
	if cfg.HTTP.Timeout, err = getenvDuration("HTTP_TIMEOUT", cfg.HTTP.Timeout); err != nil {
		return err
	}
	if cfg.Status.ProbeInterval, err = getenvDuration("STATUS_PROBE_INTERVAL", cfg.Status.ProbeInterval); err != nil {
		return err
	}
	cfg.Status.MaxHistory = getenvInt("STATUS_MAX_HISTORY", cfg.Status.MaxHistory)

	e := &cfg.Endpoint
	e.Dog = getenvDefault("DOG_API_URL", e.Dog)
	e.Cat = getenvDefault("CAT_API_URL", e.Cat)
	e.Geocoding = getenvDefault("GEOCODING_API_URL", e.Geocoding)
	e.Forecast = getenvDefault("FORECAST_API_URL", e.Forecast)
	e.Currency = getenvDefault("CURRENCY_API_URL", e.Currency)
	e.Shows = getenvDefault("SHOWS_API_URL", e.Shows)
	e.GitHub = getenvDefault("GITHUB_API_URL", e.GitHub)
	e.Joke = getenvDefault("JOKE_API_URL", e.Joke)
	e.Directory = getenvDefault("DIRECTORY_API_URL", e.Directory)

	cfg.Weather.DefaultCity = getenvDefault("WEATHER_DEFAULT_CITY", cfg.Weather.DefaultCity)
	cfg.Weather.DefaultUnit = getenvDefault("WEATHER_DEFAULT_UNIT", cfg.Weather.DefaultUnit)
	cfg.Currency.Base = strings.ToUpper(getenvDefault("CURRENCY_BASE", cfg.Currency.Base))
	if v := os.Getenv("CURRENCY_SYMBOLS"); v != "" {
		cfg.Currency.Symbols = splitList(v)
	}
	cfg.Shows.Limit = getenvInt("SHOWS_LIMIT", cfg.Shows.Limit)
	cfg.GitHub.User = getenvDefault("GITHUB_USER", cfg.GitHub.User)

	cfg.GeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")
	cfg.Env = getenvDefault("APP_ENV", "development")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
