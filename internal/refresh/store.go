// Package refresh keeps the latest aggregation results per user and reruns
// them periodically for users who are actively looking at them.
package refresh

import (
	"sync"
	"time"
)

// ReportDashboard names the dashboard slot.
const ReportDashboard = "dashboard"

type slotKey struct {
	userID string
	report string
}

// Snapshot is a stored pass result.
type Snapshot[V any] struct {
	Value    V
	Seq      uint64
	StoredAt time.Time
}

// Store holds the last written result per user and report. Writes are
// last-write-wins: a slow pass that finishes after a newer one replaces it.
// Seq is kept for diagnostics only.
type Store[V any] struct {
	mu    sync.RWMutex
	slots map[slotKey]Snapshot[V]
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{
		slots: make(map[slotKey]Snapshot[V]),
		now:   time.Now,
	}
}

// Put stores value for the user's report. It reports whether the write
// replaced a result from a later pass.
func (s *Store[V]) Put(userID, report string, seq uint64, value V) (replacedNewer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey{userID, report}
	if prev, ok := s.slots[key]; ok && prev.Seq > seq {
		replacedNewer = true
	}
	s.slots[key] = Snapshot[V]{Value: value, Seq: seq, StoredAt: s.now()}
	return replacedNewer
}

// Get returns the stored result for the user's report.
func (s *Store[V]) Get(userID, report string) (Snapshot[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.slots[slotKey{userID, report}]
	return snap, ok
}

// Delete drops every report stored for the user.
func (s *Store[V]) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.slots {
		if k.userID == userID {
			delete(s.slots, k)
		}
	}
}

// Len reports how many slots are filled.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
