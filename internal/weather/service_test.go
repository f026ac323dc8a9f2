package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)

type conditions struct {
	temp, rain, wind, cloud float64
}

func buildForecast(req ForecastRequest, c conditions) Forecast {
	var f Forecast
	h := &HourlySeries{}
	for d := req.StartDate; !d.After(req.EndDate); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		f.Daily.Time = append(f.Daily.Time, date)
		f.Daily.MaxTemperatureC = append(f.Daily.MaxTemperatureC, c.temp)
		f.Daily.PrecipitationMm = append(f.Daily.PrecipitationMm, c.rain)
		f.Daily.MaxWindSpeedKmh = append(f.Daily.MaxWindSpeedKmh, c.wind)
		h.Time = append(h.Time, date+"T12:00")
		h.CloudCoverPct = append(h.CloudCoverPct, f64(c.cloud))
		h.PrecipitationMm = append(h.PrecipitationMm, f64(0))
	}
	f.Hourly = h
	return f
}

type fakeProvider struct {
	name    string
	weather map[string]conditions
	errs    map[string]error

	mu        sync.Mutex
	calls     []ForecastRequest
	active    int
	maxActive int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) FetchForecast(_ context.Context, req ForecastRequest) (Forecast, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)
	p.active++
	p.maxActive = max(p.maxActive, p.active)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.active--
		p.mu.Unlock()
	}()

	if err := p.errs[req.Destination.ID]; err != nil {
		return Forecast{}, err
	}
	return buildForecast(req, p.weather[req.Destination.ID]), nil
}

func (p *fakeProvider) calledIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, len(p.calls))
	for i, c := range p.calls {
		ids[i] = c.Destination.ID
	}
	return ids
}

type mapCache map[string]Forecast

func (m mapCache) Get(key string) (Forecast, bool) {
	f, ok := m[key]
	return f, ok
}

func (m mapCache) Set(key string, f Forecast) { m[key] = f }
func (m mapCache) Invalidate(key string)      { delete(m, key) }

type sliceRankings struct{ saved []Ranking }

func (s *sliceRankings) SaveRanking(r Ranking) { s.saved = append(s.saved, r) }

func (s *sliceRankings) GetLatest() (Ranking, error) {
	if len(s.saved) == 0 {
		return Ranking{}, ErrNotFound
	}
	return s.saved[len(s.saved)-1], nil
}

func (s *sliceRankings) GetRange(from, to time.Time) ([]Ranking, error) {
	var out []Ranking
	for _, r := range s.saved {
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

type sliceFollows struct{ ids []string }

func (s *sliceFollows) Follow(_ context.Context, id string) error {
	for _, v := range s.ids {
		if v == id {
			return nil
		}
	}
	s.ids = append(s.ids, id)
	return nil
}

func (s *sliceFollows) Unfollow(_ context.Context, id string) error {
	out := s.ids[:0]
	for _, v := range s.ids {
		if v != id {
			out = append(out, v)
		}
	}
	s.ids = out
	return nil
}

func (s *sliceFollows) Toggle(ctx context.Context, id string) (bool, error) {
	if ok, _ := s.IsFollowed(ctx, id); ok {
		return false, s.Unfollow(ctx, id)
	}
	return true, s.Follow(ctx, id)
}

func (s *sliceFollows) IsFollowed(_ context.Context, id string) (bool, error) {
	for _, v := range s.ids {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *sliceFollows) List(context.Context) ([]string, error) {
	return append([]string(nil), s.ids...), nil
}

var testCatalog = []Destination{
	{ID: "rainy", Name: "Rainy", Tags: []string{"Lugn"}},
	{ID: "sunny", Name: "Sunny", Tags: []string{"Surf"}},
	{ID: "okay", Name: "Okay"},
}

func testWeather() map[string]conditions {
	return map[string]conditions{
		"rainy": {temp: 24, rain: 20, wind: 45, cloud: 95},
		"sunny": {temp: 30, rain: 0, wind: 10, cloud: 10},
		"okay":  {temp: 30, rain: 5, wind: 30, cloud: 55},
	}
}

type testEnv struct {
	svc      *Service
	provider *fakeProvider
	cache    mapCache
	rankings *sliceRankings
	follows  *sliceFollows
}

func newTestEnv(providers ...ForecastProvider) *testEnv {
	env := &testEnv{
		cache:    mapCache{},
		rankings: &sliceRankings{},
		follows:  &sliceFollows{},
	}
	if len(providers) == 0 {
		env.provider = &fakeProvider{name: "fake", weather: testWeather()}
		providers = []ForecastProvider{env.provider}
	}
	env.svc = NewService(ServiceDeps{
		Catalog:   testCatalog,
		Providers: providers,
		Cache:     env.cache,
		Rankings:  env.rankings,
		Follows:   env.follows,
		Pacing:    -1,
	})
	env.svc.now = func() time.Time { return testNow }
	return env
}

func TestRankOrdersAndBadges(t *testing.T) {
	env := newTestEnv()

	r, err := env.svc.Rank(context.Background(), RankRequest{
		Days:        3,
		Preferences: Preferences{Sun: true},
		Priority:    PriorityWeather,
	})
	require.NoError(t, err)

	require.Len(t, r.Results, 3)
	assert.Equal(t, "sunny", r.Results[0].Destination.ID)
	assert.Equal(t, "okay", r.Results[1].Destination.ID)
	assert.Equal(t, "rainy", r.Results[2].Destination.ID)
	for i, res := range r.Results {
		assert.Equal(t, i+1, res.Rank)
		assert.Equal(t, i == 0, res.TopPick)
	}

	// 10 points a day, weighted 1.2, plus sun bonus 3 + 2.
	assert.InDelta(t, 17, r.Results[0].Score.TotalScore, 1e-9)
	assert.True(t, r.Results[0].StrongMatch)
	assert.False(t, r.Results[2].StrongMatch)
	assert.Equal(t, "Sol-säkert", r.Results[0].Analysis.Label)

	assert.Equal(t, "2025-01-10", r.StartDate)
	assert.Equal(t, "2025-01-12", r.EndDate)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, testNow, r.CreatedAt)
	require.Len(t, env.rankings.saved, 1)
	assert.Equal(t, r.ID, env.rankings.saved[0].ID)
}

func TestRankFetchesSequentiallyInCatalogOrder(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Rank(context.Background(), RankRequest{Days: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"rainy", "sunny", "okay"}, env.provider.calledIDs())
	assert.Equal(t, 1, env.provider.maxActive)
}

func TestRankClampsDays(t *testing.T) {
	env := newTestEnv()

	r, err := env.svc.Rank(context.Background(), RankRequest{Days: 25})
	require.NoError(t, err)
	assert.Equal(t, MaxTripDays, r.Days)
	assert.Equal(t, "2025-01-19", r.EndDate)

	r, err = env.svc.Rank(context.Background(), RankRequest{Days: 0, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Days)
	assert.Equal(t, PriorityWeather, r.Priority, "invalid priority falls back to weather")
}

func TestRankRateLimitedAbortsWithoutSaving(t *testing.T) {
	p := &fakeProvider{
		name:    "fake",
		weather: testWeather(),
		errs:    map[string]error{"sunny": fmt.Errorf("openmeteo: %w", ErrRateLimited)},
	}
	env := newTestEnv(p)

	_, err := env.svc.Rank(context.Background(), RankRequest{Days: 2})

	require.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrFetchFailed)
	assert.Empty(t, env.rankings.saved)
	assert.Equal(t, []string{"rainy", "sunny"}, p.calledIDs(), "stops at the failing destination")
}

func TestRankFallsBackToNextProvider(t *testing.T) {
	broken := &fakeProvider{
		name: "broken",
		errs: map[string]error{
			"rainy": errors.New("boom"),
			"sunny": errors.New("boom"),
			"okay":  errors.New("boom"),
		},
	}
	backup := &fakeProvider{name: "backup", weather: testWeather()}
	env := newTestEnv(broken, backup)

	r, err := env.svc.Rank(context.Background(), RankRequest{Days: 2})
	require.NoError(t, err)
	for _, res := range r.Results {
		assert.Equal(t, "backup", res.Forecast.Provider)
	}
}

func TestRankFetchFailed(t *testing.T) {
	p := &fakeProvider{name: "fake", errs: map[string]error{"rainy": errors.New("connection refused")}}
	env := newTestEnv(p)

	_, err := env.svc.Rank(context.Background(), RankRequest{Days: 2})

	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRankUsesCacheUnlessRefresh(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.Rank(ctx, RankRequest{Days: 2})
	require.NoError(t, err)
	_, err = env.svc.Rank(ctx, RankRequest{Days: 2})
	require.NoError(t, err)
	assert.Len(t, env.provider.calledIDs(), 3)

	_, err = env.svc.Rank(ctx, RankRequest{Days: 2, Refresh: true})
	require.NoError(t, err)
	assert.Len(t, env.provider.calledIDs(), 6)
	assert.Len(t, env.cache, 3)
}

func TestRankCancelledDuringPacing(t *testing.T) {
	p := &fakeProvider{name: "fake", weather: testWeather()}
	svc := NewService(ServiceDeps{Catalog: testCatalog, Providers: []ForecastProvider{p}, Pacing: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Rank(ctx, RankRequest{Days: 1})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"rainy"}, p.calledIDs())
}

func TestFollowsAndItinerary(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.ErrorIs(t, env.svc.Follow(ctx, "atlantis"), ErrUnknownDestination)

	require.NoError(t, env.svc.Follow(ctx, "okay"))
	require.NoError(t, env.svc.Follow(ctx, "sunny"))

	it, err := env.svc.Itinerary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sunny: ingen väderdata ännu. Okay: ingen väderdata ännu.", it.Summary)

	_, err = env.svc.Rank(ctx, RankRequest{Days: 3})
	require.NoError(t, err)

	it, err = env.svc.Itinerary(ctx)
	require.NoError(t, err)
	require.Len(t, it.Destinations, 2)
	assert.Equal(t, "sunny", it.Destinations[0].ID, "catalog order")
	assert.Len(t, it.Days["sunny"], 3)
	assert.Equal(t, "sunny", it.Route[0].ID)
	assert.Contains(t, it.Summary, "Rekommendation just nu: Sunny")

	followed, err := env.svc.ToggleFollow(ctx, "sunny")
	require.NoError(t, err)
	assert.False(t, followed)

	dests, err := env.svc.Followed(ctx)
	require.NoError(t, err)
	require.Len(t, dests, 1)
	assert.Equal(t, "okay", dests[0].ID)

	ok, err := env.svc.IsFollowed(ctx, "okay")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = env.svc.IsFollowed(ctx, "sunny")
	require.NoError(t, err)
	assert.False(t, ok)
}
