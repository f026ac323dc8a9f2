// Package geo resolves trip origins and measures distances to destinations.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
	"github.com/umahmood/haversine"
)

// ErrUnknownOrigin is returned when an origin cannot be resolved.
var ErrUnknownOrigin = errors.New("unknown origin")

// Origin is where a trip starts.
type Origin struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	IATA string  `json:"iata,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

var startCities = []Origin{
	{ID: "manila", Name: "Manila", IATA: "MNL", Lat: 14.5995, Lon: 120.9842},
	{ID: "cebu", Name: "Cebu", IATA: "CEB", Lat: 10.3157, Lon: 123.8854},
	{ID: "davao", Name: "Davao", IATA: "DVO", Lat: 7.1907, Lon: 125.4553},
	{ID: "clark", Name: "Clark", IATA: "CRK", Lat: 15.1860, Lon: 120.5600},
}

// StartCities returns the built-in origins.
func StartCities() []Origin {
	out := make([]Origin, len(startCities))
	copy(out, startCities)
	return out
}

// Position is an origin at explicit coordinates, such as the user's location.
func Position(lat, lon float64) Origin {
	return Origin{ID: "position", Name: "din nuvarande position", Lat: lat, Lon: lon}
}

// DistanceKm returns the great-circle distance from o to the given point.
func DistanceKm(o Origin, lat, lon float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: o.Lat, Lon: o.Lon},
		haversine.Coord{Lat: lat, Lon: lon},
	)
	return km
}

// Geocoder turns a city name into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (lat, lon float64, err error)
}

type googleGeocoder struct {
	country string
}

func (g googleGeocoder) Geocode(ctx context.Context, city string) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: g.country})
	if err != nil {
		return 0, 0, err
	}
	return loc.Latitude, loc.Longitude, nil
}

// Resolver resolves origin names. Built-in start cities always resolve;
// other names need a geocoder.
type Resolver struct {
	geocoder Geocoder
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]Origin
}

// NewResolver creates a Resolver. An empty apiKey disables geocoding.
func NewResolver(apiKey string, logger *slog.Logger) *Resolver {
	var g Geocoder
	if apiKey != "" {
		geocoder.ApiKey = apiKey
		g = googleGeocoder{country: "Philippines"}
	}
	return NewResolverWithGeocoder(g, logger)
}

// NewResolverWithGeocoder creates a Resolver using g, which may be nil.
func NewResolverWithGeocoder(g Geocoder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{geocoder: g, logger: logger, cache: make(map[string]Origin)}
}

// Resolve finds the origin named by id or city name.
func (r *Resolver) Resolve(ctx context.Context, name string) (Origin, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Origin{}, fmt.Errorf("%w: empty name", ErrUnknownOrigin)
	}
	for _, c := range startCities {
		if strings.EqualFold(c.ID, name) || strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	if r.geocoder == nil {
		return Origin{}, fmt.Errorf("%w: %q", ErrUnknownOrigin, name)
	}

	key := strings.ToLower(name)
	r.mu.Lock()
	o, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return o, nil
	}

	lat, lon, err := r.geocoder.Geocode(ctx, name)
	if err != nil {
		r.logger.Warn("geocoding origin failed", "origin", name, "error", err)
		return Origin{}, fmt.Errorf("%w: %q: %v", ErrUnknownOrigin, name, err)
	}
	o = Origin{ID: key, Name: name, Lat: lat, Lon: lon}

	r.mu.Lock()
	r.cache[key] = o
	r.mu.Unlock()
	return o, nil
}
