package metrics

import (
	"sync"

	"actiowatch/internal/domain"
)

// SnapshotStore keeps the most recently published snapshot for request
// handlers.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot domain.SystemSnapshot
	ready    bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Set(m domain.SystemSnapshot) {
	s.mu.Lock()
	s.snapshot = m
	s.ready = true
	s.mu.Unlock()
}

// Latest returns ErrSnapshotNotReady until the first Set.
func (s *SnapshotStore) Latest() (domain.SystemSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return domain.SystemSnapshot{}, domain.ErrSnapshotNotReady
	}
	return s.snapshot, nil
}
