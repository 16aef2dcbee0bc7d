package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

// SnapshotStore is an in-memory Store guarded by a RWMutex. Reads are
// lock-brief pointer loads; writers publish a fully built snapshot.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *model.Snapshot
	count   int
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Swap publishes a new snapshot, assigning its ID when unset.
func (s *SnapshotStore) Swap(_ context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.current = snap
	s.count++
	s.mu.Unlock()

	metrics.UpdateSnapshot(
		len(snap.Athletes),
		len(snap.Courses),
		len(snap.Setters),
		snap.AllTime.BoardCount(),
	)
	metrics.UpdatePipelineState(string(snap.Health.State))
	return nil
}

// Current returns the latest published snapshot.
func (s *SnapshotStore) Current(_ context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoSnapshot
	}
	return s.current, nil
}

// Count returns the number of snapshots published so far.
func (s *SnapshotStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
