package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

// jobTimeout bounds one ranking run; a full catalog fetch is paced, so it
// needs more than a single request timeout.
const jobTimeout = 2 * time.Minute

// Ranker is the part of weather.Service the scheduler drives.
type Ranker interface {
	Rank(ctx context.Context, req weather.RankRequest) (weather.Ranking, error)
}

// Trip is the default trip kept warm by the scheduler. A zero StartDate
// means "today" at run time.
type Trip struct {
	Days        int
	Preferences weather.Preferences
	Priority    weather.BasePriority
}

// Scheduler periodically ranks the default trip.
type Scheduler struct {
	scheduler *gocron.Scheduler
	ranker    Ranker
	trip      Trip
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(ranker Ranker, trip Trip, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		ranker:    ranker,
		trip:      trip,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables it.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler disabled", "interval", s.interval)
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval", s.interval, "days", s.trip.Days)
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce ranks the default trip once; failures are logged.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.logger.Info("scheduler: ranking default trip")
	r, err := s.ranker.Rank(ctx, weather.RankRequest{
		Days:        s.trip.Days,
		Preferences: s.trip.Preferences,
		Priority:    s.trip.Priority,
	})
	if err != nil {
		s.logger.Error("scheduler: ranking failed", "error", err)
		return
	}
	s.logger.Info("scheduler: ranking stored", "id", r.ID, "results", len(r.Results))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
