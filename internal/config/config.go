package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	ErrParsing    ConfigErrorType = "PARSING_FAILED"
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load when the environment cannot be turned
// into a usable AppConfig.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	WeatherAPIKey     string `envconfig:"WEATHERAPI_API_KEY"`
	GeocodingAPIKey   string `envconfig:"GEOCODING_API_KEY"`

	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	FetchPacing      time.Duration `envconfig:"FETCH_PACING" default:"250ms" validate:"gte=0"`
	ForecastCacheTTL time.Duration `envconfig:"FORECAST_CACHE_TTL" default:"30m" validate:"gt=0"`

	// RefreshInterval controls how often the default trip is re-ranked.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"1h" validate:"gte=0"`

	DefaultTripDays    int    `envconfig:"DEFAULT_TRIP_DAYS" default:"4" validate:"min=1,max=10"`
	DefaultPriority    string `envconfig:"DEFAULT_PRIORITY" default:"weather" validate:"oneof=weather sun"`
	DefaultPreferences string `envconfig:"DEFAULT_PREFERENCES" default:"sun"`

	// Ranking history retention.
	RankingMaxHistory int           `envconfig:"RANKING_MAX_HISTORY" default:"24" validate:"gte=0"` // 0 = unlimited
	RankingMaxAge     time.Duration `envconfig:"RANKING_MAX_AGE" default:"48h" validate:"gte=0"`    // 0 = unlimited

	// FollowsDBPath selects SQLite follows; empty keeps them in memory.
	FollowsDBPath string `envconfig:"FOLLOWS_DB_PATH"`

	Preferences weather.Preferences `ignored:"true"`
}

// Load reads configuration from the environment (and an optional .env file).
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Type: ErrParsing, Message: "failed to process environment", Err: err}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, &ConfigError{Type: ErrValidation, Message: "invalid configuration", Err: err}
	}

	prefs, unknown := weather.ParsePreferences(cfg.DefaultPreferences)
	if len(unknown) > 0 {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: fmt.Sprintf("DEFAULT_PREFERENCES: unknown %s", strings.Join(unknown, ",")),
		}
	}
	cfg.Preferences = prefs

	return &cfg, nil
}

// Priority returns the default base priority.
func (c *AppConfig) Priority() weather.BasePriority {
	return weather.BasePriority(c.DefaultPriority)
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
