package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/moodlog/internal/api"
)

// Dashboard is the signed-in user's data shown on the lk page.
type Dashboard struct {
	User         api.User
	TodayMood    api.MoodEntry
	HasMood      bool
	Notes        []api.Note
	Analytics    api.MoodAnalytics
	UnreadCount  int
	Question     string
	Achievements []api.UserAchievement
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Dashboard
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored dashboard. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(d *Dashboard, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if d != nil {
		s.snapshot.Dashboard = cloneDashboard(*d)
		s.snapshot.HasData = true
	} else {
		s.snapshot.Dashboard = Dashboard{}
		s.snapshot.HasData = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Reset drops all data, used when the user signs out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Dashboard = cloneDashboard(s.snapshot.Dashboard)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneDashboard(d Dashboard) Dashboard {
	d.Notes = cloneSlice(d.Notes)
	d.Achievements = cloneSlice(d.Achievements)
	if d.Analytics != nil {
		d.Analytics = maps.Clone(d.Analytics)
	}
	return d
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	return slices.Clone(items)
}
