package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/pawpal/internal/rescue"
)

// Health is the outcome of the last successful reachability check.
type Health struct {
	Latency   time.Duration
	CheckedAt time.Time
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Health              Health
	HasHealth           bool
	Types               []rescue.AnimalType
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// TypeNames lists the species names in catalog order.
func (s Snapshot) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for _, t := range s.Types {
		names = append(names, t.Name)
	}
	return names
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a poll result. When err is non-nil the previous data is
// kept but the error is recorded for visibility. A nil types slice keeps the
// catalog already known.
func (s *Store) Update(health *Health, types []rescue.AnimalType, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if types != nil {
		s.snapshot.Types = cloneTypes(types)
	}
	if health != nil {
		s.snapshot.Health = *health
		s.snapshot.HasHealth = true
	} else {
		s.snapshot.HasHealth = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Types = cloneTypes(s.snapshot.Types)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTypes(types []rescue.AnimalType) []rescue.AnimalType {
	if len(types) == 0 {
		return nil
	}
	dup := make([]rescue.AnimalType, len(types))
	copy(dup, types)
	return dup
}
