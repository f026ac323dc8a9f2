package store

import (
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

const forecastCacheSize = 1_000

// ForecastCache keeps recently fetched forecasts for a fixed TTL.
type ForecastCache struct {
	cache  *otter.Cache[string, weather.Forecast]
	logger *slog.Logger
}

// NewForecastCache creates a cache whose entries expire ttl after being written.
func NewForecastCache(ttl time.Duration, logger *slog.Logger) *ForecastCache {
	if logger == nil {
		logger = slog.Default()
	}
	c := otter.Must(&otter.Options[string, weather.Forecast]{
		MaximumSize:      forecastCacheSize,
		ExpiryCalculator: otter.ExpiryWriting[string, weather.Forecast](ttl),
	})
	return &ForecastCache{cache: c, logger: logger}
}

func (c *ForecastCache) Get(key string) (weather.Forecast, bool) {
	f, ok := c.cache.GetIfPresent(key)
	if !ok {
		c.logger.Debug("forecast cache miss", "key", key)
	}
	return f, ok
}

func (c *ForecastCache) Set(key string, f weather.Forecast) {
	c.cache.Set(key, f)
}

func (c *ForecastCache) Invalidate(key string) {
	c.cache.Invalidate(key)
}
