package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/soul-abducter-glitch/Store-3D/internal/bridge"
)

// Snapshot represents the latest poll data available to the UI.
type Snapshot struct {
	Jobs        []bridge.Job
	LastUpdated time.Time
	LastError   error
}

// Store coordinates concurrent reads of the cached job list. A single
// writer (whichever operation last polled) updates it; the panel reads it.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the cached job list. When err is non-nil the previous
// jobs are kept and the error is recorded for visibility.
func (s *Store) Update(jobs []bridge.Job, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		return
	}

	s.snapshot.Jobs = cloneJobs(jobs)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Jobs = cloneJobs(s.snapshot.Jobs)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneJobs(jobs []bridge.Job) []bridge.Job {
	if len(jobs) == 0 {
		return nil
	}
	dup := make([]bridge.Job, len(jobs))
	copy(dup, jobs)
	return dup
}
