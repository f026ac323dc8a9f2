package weather

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrRateLimited means the forecast provider asked us to slow down. The
	// caller may retry later.
	ErrRateLimited = errors.New("rate limited, retry later")
	// ErrFetchFailed covers every other failure to obtain a forecast.
	ErrFetchFailed = errors.New("fetch failed")
)

// DateLayout is the calendar date format used by requests and series.
const DateLayout = "2006-01-02"

// ForecastRequest asks for daily and hourly observations covering the
// inclusive date range [StartDate, EndDate].
type ForecastRequest struct {
	Destination Destination
	StartDate   time.Time
	EndDate     time.Time
}

// Days returns the number of calendar days in the request window.
func (r ForecastRequest) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// ForecastProvider abstracts a weather forecast source (Open-Meteo, WeatherAPI, OpenWeather).
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, req ForecastRequest) (Forecast, error)
}

// ForecastCache keeps recently fetched forecasts.
type ForecastCache interface {
	Get(key string) (Forecast, bool)
	Set(key string, f Forecast)
	Invalidate(key string)
}

// RankingStore is the contract for keeping ranking runs.
type RankingStore interface {
	SaveRanking(r Ranking)
	GetLatest() (Ranking, error)
	GetRange(from, to time.Time) ([]Ranking, error)
}

// FollowStore keeps the user's followed destination ids in the order they
// were followed.
type FollowStore interface {
	Follow(ctx context.Context, id string) error
	Unfollow(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (bool, error)
	IsFollowed(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]string, error)
}
