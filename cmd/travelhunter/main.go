// Package main implements the travelhunter CLI, which ranks Philippine
// destinations by forecast weather for a trip window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/pinoyinvestor/travelhunter/internal/catalog"
	"github.com/pinoyinvestor/travelhunter/internal/config"
	"github.com/pinoyinvestor/travelhunter/internal/geo"
	"github.com/pinoyinvestor/travelhunter/internal/store"
	"github.com/pinoyinvestor/travelhunter/internal/weather"
	"github.com/pinoyinvestor/travelhunter/internal/weather/providers"
)

const weakMatchPercent = 30

var (
	start    = flag.String("start", "", "Trip start date YYYY-MM-DD (default today)")
	days     = flag.Int("days", 0, "Trip length in days, 1-10 (default DEFAULT_TRIP_DAYS)")
	priority = flag.String("priority", "", "Base priority: weather or sun (default DEFAULT_PRIORITY)")
	prefs    = flag.String("prefs", "", "Comma-separated preferences: sun,party,diving,surf,chill (default DEFAULT_PREFERENCES)")
	origin   = flag.String("origin", "", "Start city (manila, cebu, davao, clark or a geocoded city)")
	refresh  = flag.Bool("refresh", false, "Ignore cached forecasts")
	follow   = flag.String("follow", "", "Comma-separated destination ids to build an itinerary for")
	verbose  = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", userMessage(err)))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	req := weather.RankRequest{
		Days:        cfg.DefaultTripDays,
		Preferences: cfg.Preferences,
		Priority:    cfg.Priority(),
		Refresh:     *refresh,
	}
	if *days != 0 {
		req.Days = *days
	}
	if req.Days < 1 || req.Days > weather.MaxTripDays {
		return fmt.Errorf("-days must be 1-%d", weather.MaxTripDays)
	}
	if *priority != "" {
		req.Priority = weather.BasePriority(strings.ToLower(*priority))
		if !req.Priority.Valid() {
			return fmt.Errorf("-priority must be weather or sun, got %q", *priority)
		}
	}
	if *prefs != "" {
		p, unknown := weather.ParsePreferences(*prefs)
		if len(unknown) > 0 {
			return fmt.Errorf("unknown preferences: %s", strings.Join(unknown, ","))
		}
		req.Preferences = p
	}
	if *start != "" {
		req.StartDate, err = time.Parse(weather.DateLayout, *start)
		if err != nil {
			return fmt.Errorf("-start: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var from *geo.Origin
	if *origin != "" {
		o, err := geo.NewResolver(cfg.GeocodingAPIKey, logger).Resolve(ctx, *origin)
		if err != nil {
			return err
		}
		from = &o
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	provs := []weather.ForecastProvider{providers.NewOpenMeteoProvider(httpClient, logger)}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, logger))
	}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, logger))
	}

	pacing := cfg.FetchPacing
	if pacing == 0 {
		pacing = -1
	}

	service := weather.NewService(weather.ServiceDeps{
		Catalog:   catalog.All(),
		Providers: provs,
		Cache:     store.NewForecastCache(cfg.ForecastCacheTTL, logger),
		Rankings:  store.NewMemoryStore(1, 0),
		Follows:   store.NewMemoryFollows(),
		Pacing:    pacing,
		Logger:    logger,
	})

	ranking, err := service.Rank(ctx, req)
	if err != nil {
		return err
	}
	printRanking(ranking, from)

	if *follow == "" {
		return nil
	}
	dests, err := followedDestinations(*follow)
	if err != nil {
		return err
	}
	for _, d := range dests {
		if err := service.Follow(ctx, d.ID); err != nil {
			return err
		}
	}
	it, err := service.Itinerary(ctx)
	if err != nil {
		return err
	}
	printItinerary(it)
	return nil
}

func printRanking(r weather.Ranking, from *geo.Origin) {
	bold := color.New(color.Bold)
	strong := color.New(color.FgGreen)
	weak := color.New(color.FgRed)

	bold.Printf("Bästa resmål %s – %s (%d dagar, prioritet %s)\n", r.StartDate, r.EndDate, r.Days, r.Priority)
	if from != nil {
		fmt.Printf("Från %s\n", from.Name)
	}
	fmt.Println()

	for _, res := range r.Results {
		line := fmt.Sprintf("%2d. %-18s %3d%%  %5.1f p  %s %s",
			res.Rank, res.Destination.Name, res.Score.MatchPercent, res.Score.TotalScore,
			res.Analysis.Emoji, res.Analysis.Label)
		if from != nil {
			line += fmt.Sprintf("  %5.0f km", geo.DistanceKm(*from, res.Destination.Lat, res.Destination.Lon))
		}
		if res.TopPick {
			line += "  ★"
		}

		switch {
		case res.StrongMatch:
			strong.Println(line)
		case res.Score.MatchPercent < weakMatchPercent:
			weak.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func printItinerary(it weather.Itinerary) {
	fmt.Println()
	color.New(color.Bold).Println("Din resplan")
	fmt.Println(it.Summary)

	if len(it.Route) == 0 {
		return
	}
	names := make([]string, 0, len(it.Route))
	for _, d := range it.Route {
		names = append(names, d.Name)
	}
	fmt.Printf("\nFöreslagen ordning: %s\n", strings.Join(names, " → "))

	for _, d := range it.Route {
		recs := it.Days[d.ID]
		if len(recs) == 0 {
			continue
		}
		fmt.Printf("\n%s\n", d.Name)
		for _, rec := range recs {
			fmt.Printf("  %s  %s %-13s %4.1f°C  %4.1f mm\n",
				rec.Date, rec.Icon, rec.Icon.Label(), rec.TemperatureC, rec.PrecipitationMm)
		}
	}
}

// followedDestinations resolves a comma-separated id list against the catalog.
func followedDestinations(list string) ([]weather.Destination, error) {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.ToLower(strings.TrimSpace(id)); id != "" {
			ids = append(ids, id)
		}
	}

	dests := catalog.ByIDs(ids)
	known := make(map[string]struct{}, len(dests))
	for _, d := range dests {
		known[d.ID] = struct{}{}
	}
	var unknown []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", weather.ErrUnknownDestination, strings.Join(unknown, ","))
	}
	return dests, nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, weather.ErrRateLimited):
		return "Väder-API:t tycker vi frågar för snabbt just nu (429). Testa igen om en liten stund."
	case errors.Is(err, weather.ErrFetchFailed):
		return "Något gick fel när väderdata hämtades."
	default:
		return err.Error()
	}
}
