package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

// ErrNotFound is returned when no ranking matches a lookup.
var ErrNotFound = weather.ErrNotFound

// MemoryStore is a concurrency-safe in-memory history of rankings.
type MemoryStore struct {
	mu sync.RWMutex

	// oldest first
	rankings []weather.Ranking

	maxHistory int           // max number of rankings kept
	maxAge     time.Duration // max age of rankings
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory or maxAge is <= 0, that limit is not applied.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveRanking appends a ranking and enforces retention.
func (s *MemoryStore) SaveRanking(r weather.Ranking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rankings = append(s.rankings, r)

	if s.maxHistory > 0 && len(s.rankings) > s.maxHistory {
		over := len(s.rankings) - s.maxHistory
		s.rankings = slices.Clone(s.rankings[over:])
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.rankings); i++ {
			if !s.rankings[i].CreatedAt.Before(cutoff) {
				break
			}
		}
		// The newest ranking always survives, even when its clock is off.
		switch {
		case i == len(s.rankings):
			s.rankings = slices.Clone(s.rankings[i-1:])
		case i > 0:
			s.rankings = slices.Clone(s.rankings[i:])
		}
	}
}

// GetLatest returns the most recent ranking.
func (s *MemoryStore) GetLatest() (weather.Ranking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rankings) == 0 {
		return weather.Ranking{}, ErrNotFound
	}
	return s.rankings[len(s.rankings)-1], nil
}

// GetRange returns all rankings created between from and to (inclusive).
func (s *MemoryStore) GetRange(from, to time.Time) ([]weather.Ranking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.Ranking
	for _, r := range s.rankings {
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// MemoryFollows is an in-memory followed-destination set that keeps
// insertion order.
type MemoryFollows struct {
	mu  sync.RWMutex
	ids []string
}

func NewMemoryFollows() *MemoryFollows {
	return &MemoryFollows{}
}

func (m *MemoryFollows) Follow(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.ids, id) {
		m.ids = append(m.ids, id)
	}
	return nil
}

func (m *MemoryFollows) Unfollow(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = slices.DeleteFunc(m.ids, func(v string) bool { return v == id })
	return nil
}

// Toggle flips id and reports whether it is followed afterwards.
func (m *MemoryFollows) Toggle(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.Index(m.ids, id); i >= 0 {
		m.ids = slices.Delete(m.ids, i, i+1)
		return false, nil
	}
	m.ids = append(m.ids, id)
	return true, nil
}

func (m *MemoryFollows) IsFollowed(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.ids, id), nil
}

func (m *MemoryFollows) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.ids), nil
}
