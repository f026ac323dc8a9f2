package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxTripDays is the longest trip window that can be ranked.
	MaxTripDays = 10
	// StrongMatchPercent marks a destination as a strong match.
	StrongMatchPercent = 70
	// DefaultPacing separates consecutive forecast requests.
	DefaultPacing = 250 * time.Millisecond
)

var (
	// ErrNotFound is returned when nothing is stored for a lookup.
	ErrNotFound = errors.New("not found")
	// ErrUnknownDestination is returned for ids that are not in the catalog.
	ErrUnknownDestination = errors.New("unknown destination")
)

// RankRequest describes one ranking run.
type RankRequest struct {
	StartDate   time.Time
	Days        int
	Preferences Preferences
	Priority    BasePriority
	// Refresh bypasses cached forecasts.
	Refresh bool
}

// RankedDestination is one destination's place in a ranking.
type RankedDestination struct {
	Rank        int            `json:"rank"`
	Destination Destination    `json:"destination"`
	Score       ScoreResult    `json:"score"`
	Analysis    Classification `json:"analysis"`
	AvgCloudPct *float64       `json:"avgCloudPct,omitempty"`
	Forecast    Forecast       `json:"forecast"`
	TopPick     bool           `json:"topPick"`
	StrongMatch bool           `json:"strongMatch"`
}

// Ranking is the outcome of ranking the whole catalog for one trip window.
type Ranking struct {
	ID          string              `json:"id"`
	CreatedAt   time.Time           `json:"createdAt"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Days        int                 `json:"days"`
	Preferences Preferences         `json:"preferences"`
	Priority    BasePriority        `json:"priority"`
	Results     []RankedDestination `json:"results"`
}

// Forecasts returns the ranked forecasts keyed by destination id.
func (r Ranking) Forecasts() map[string]Forecast {
	out := make(map[string]Forecast, len(r.Results))
	for _, res := range r.Results {
		out[res.Destination.ID] = res.Forecast
	}
	return out
}

// Itinerary is the multi-stop view over the followed destinations.
type Itinerary struct {
	RankingID    string                 `json:"rankingId,omitempty"`
	Destinations []Destination          `json:"destinations"`
	Days         map[string][]DayRecord `json:"days"`
	Summary      string                 `json:"summary"`
	Route        []Destination          `json:"route"`
}

// ServiceDeps bundles the collaborators of a Service. Cache, Rankings and
// Follows are optional.
type ServiceDeps struct {
	Catalog   []Destination
	Providers []ForecastProvider
	Cache     ForecastCache
	Rankings  RankingStore
	Follows   FollowStore
	// Pacing is the pause between consecutive network fetches. Zero means
	// DefaultPacing; a negative value disables pacing.
	Pacing time.Duration
	Logger *slog.Logger
}

// Service fetches forecasts one destination at a time and ranks the catalog.
type Service struct {
	catalog   []Destination
	providers []ForecastProvider
	cache     ForecastCache
	rankings  RankingStore
	follows   FollowStore
	pacing    time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new Service.
func NewService(deps ServiceDeps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pacing := deps.Pacing
	if pacing == 0 {
		pacing = DefaultPacing
	}
	return &Service{
		catalog:   deps.Catalog,
		providers: deps.Providers,
		cache:     deps.Cache,
		rankings:  deps.Rankings,
		follows:   deps.Follows,
		pacing:    pacing,
		logger:    logger,
		now:       time.Now,
	}
}

// Catalog returns the destinations the service ranks.
func (s *Service) Catalog() []Destination {
	return s.catalog
}

// Destination looks up a catalog entry by id.
func (s *Service) Destination(id string) (Destination, bool) {
	for _, d := range s.catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// Rank fetches forecasts for every catalog destination, scores them and
// returns them best first. Fetches are strictly sequential.
func (s *Service) Rank(ctx context.Context, req RankRequest) (Ranking, error) {
	days := min(max(req.Days, 1), MaxTripDays)

	start := req.StartDate
	if start.IsZero() {
		start = s.now()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days-1)

	priority := req.Priority
	if !priority.Valid() {
		priority = PriorityWeather
	}

	s.logger.Info("ranking destinations",
		"start", start.Format(DateLayout), "days", days, "priority", priority,
		"preferences", req.Preferences.Active(), "destinations", len(s.catalog))

	results := make([]RankedDestination, 0, len(s.catalog))
	fetched := false
	for _, dest := range s.catalog {
		fr := ForecastRequest{Destination: dest, StartDate: start, EndDate: end}

		f, network, err := s.forecast(ctx, fr, req.Refresh, fetched)
		if err != nil {
			s.logger.Warn("ranking aborted", "destination", dest.ID, "error", err)
			return Ranking{}, err
		}
		fetched = fetched || network

		avgCloud := AverageCloud(f.Daily, days, f.Hourly)
		results = append(results, RankedDestination{
			Destination: dest,
			Score:       Score(f.Daily, days, dest, req.Preferences, priority, avgCloud),
			Analysis:    Analyze(f.Daily, days, f.Hourly),
			AvgCloudPct: avgCloud,
			Forecast:    f,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.TotalScore > results[j].Score.TotalScore
	})
	for i := range results {
		results[i].Rank = i + 1
		results[i].TopPick = i == 0
		results[i].StrongMatch = results[i].Score.MatchPercent >= StrongMatchPercent
	}

	ranking := Ranking{
		ID:          uuid.NewString(),
		CreatedAt:   s.now().UTC(),
		StartDate:   start.Format(DateLayout),
		EndDate:     end.Format(DateLayout),
		Days:        days,
		Preferences: req.Preferences,
		Priority:    priority,
		Results:     results,
	}
	if s.rankings != nil {
		s.rankings.SaveRanking(ranking)
	}

	s.logger.Info("ranking completed", "id", ranking.ID, "results", len(results))
	return ranking, nil
}

// forecast returns the forecast for one destination, from cache when allowed.
// The second return value reports whether a network fetch happened.
func (s *Service) forecast(ctx context.Context, req ForecastRequest, refresh, pause bool) (Forecast, bool, error) {
	key := fmt.Sprintf("%s|%s|%d", req.Destination.ID, req.StartDate.Format(DateLayout), req.Days())

	if s.cache != nil {
		if refresh {
			s.cache.Invalidate(key)
		} else if f, ok := s.cache.Get(key); ok {
			s.logger.Debug("forecast cache hit", "destination", req.Destination.ID)
			return f, false, nil
		}
	}

	if pause && s.pacing > 0 {
		timer := time.NewTimer(s.pacing)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Forecast{}, false, ctx.Err()
		case <-timer.C:
		}
	}

	f, err := s.fetch(ctx, req)
	if err != nil {
		return Forecast{}, true, err
	}
	if s.cache != nil {
		s.cache.Set(key, f)
	}
	return f, true, nil
}

// fetch tries each provider in order and translates failures into
// ErrRateLimited or ErrFetchFailed.
func (s *Service) fetch(ctx context.Context, req ForecastRequest) (Forecast, error) {
	if len(s.providers) == 0 {
		return Forecast{}, fmt.Errorf("%w: no forecast providers configured", ErrFetchFailed)
	}

	var (
		lastErr     error
		rateLimited bool
	)
	for _, p := range s.providers {
		f, err := p.FetchForecast(ctx, req)
		if err == nil {
			f.Provider = p.Name()
			if f.FetchedAt.IsZero() {
				f.FetchedAt = s.now().UTC()
			}
			return f, nil
		}

		s.logger.Warn("provider forecast failed",
			"provider", p.Name(), "destination", req.Destination.ID, "error", err)
		if ctx.Err() != nil {
			return Forecast{}, ctx.Err()
		}
		if errors.Is(err, ErrRateLimited) {
			rateLimited = true
		}
		lastErr = err
	}

	if rateLimited {
		return Forecast{}, fmt.Errorf("%s: %w", req.Destination.ID, ErrRateLimited)
	}
	return Forecast{}, fmt.Errorf("%w: %s: %v", ErrFetchFailed, req.Destination.ID, lastErr)
}

// Latest returns the most recent ranking.
func (s *Service) Latest() (Ranking, error) {
	if s.rankings == nil {
		return Ranking{}, ErrNotFound
	}
	return s.rankings.GetLatest()
}

// History returns rankings created between from and to (inclusive).
func (s *Service) History(from, to time.Time) ([]Ranking, error) {
	if s.rankings == nil {
		return nil, ErrNotFound
	}
	return s.rankings.GetRange(from, to)
}

// Follow adds a destination to the followed set.
func (s *Service) Follow(ctx context.Context, id string) error {
	if err := s.checkFollowable(id); err != nil {
		return err
	}
	return s.follows.Follow(ctx, id)
}

// Unfollow removes a destination from the followed set.
func (s *Service) Unfollow(ctx context.Context, id string) error {
	if err := s.checkFollowable(id); err != nil {
		return err
	}
	return s.follows.Unfollow(ctx, id)
}

// ToggleFollow flips the followed state of a destination and returns the new state.
func (s *Service) ToggleFollow(ctx context.Context, id string) (bool, error) {
	if err := s.checkFollowable(id); err != nil {
		return false, err
	}
	return s.follows.Toggle(ctx, id)
}

// IsFollowed reports whether a destination is in the followed set.
func (s *Service) IsFollowed(ctx context.Context, id string) (bool, error) {
	if s.follows == nil {
		return false, nil
	}
	return s.follows.IsFollowed(ctx, id)
}

// Followed returns the followed destinations in catalog order.
func (s *Service) Followed(ctx context.Context) ([]Destination, error) {
	if s.follows == nil {
		return nil, nil
	}
	ids, err := s.follows.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing follows: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var out []Destination
	for _, d := range s.catalog {
		if _, ok := set[d.ID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Itinerary summarises and orders the followed destinations using the
// latest ranking's forecasts.
func (s *Service) Itinerary(ctx context.Context) (Itinerary, error) {
	followed, err := s.Followed(ctx)
	if err != nil {
		return Itinerary{}, err
	}

	latest, err := s.Latest()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Itinerary{}, err
	}
	return BuildItinerary(followed, latest), nil
}

// BuildItinerary projects a ranking's forecasts for dests into day records
// and derives the summary and route.
func BuildItinerary(dests []Destination, r Ranking) Itinerary {
	forecasts := r.Forecasts()
	days := make(map[string][]DayRecord, len(dests))
	for _, d := range dests {
		f, ok := forecasts[d.ID]
		if !ok {
			continue
		}
		if recs := SimplifyForecast(f.Daily, r.Days); len(recs) > 0 {
			days[d.ID] = recs
		}
	}

	return Itinerary{
		RankingID:    r.ID,
		Destinations: dests,
		Days:         days,
		Summary:      Summarize(dests, days),
		Route:        PlanRoute(dests, days),
	}
}

func (s *Service) checkFollowable(id string) error {
	if s.follows == nil {
		return errors.New("follow store not configured")
	}
	if _, ok := s.Destination(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDestination, id)
	}
	return nil
}
