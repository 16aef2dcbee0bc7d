// Package repository defines the snapshot store interface and errors.
package repository

import (
	"context"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

// Store provides read access to the current snapshot and swap-in of a new
// one. Snapshots are immutable after publication; readers never observe a
// partially built snapshot.
type Store interface {
	// Swap publishes a new snapshot atomically.
	Swap(ctx context.Context, snap *model.Snapshot) error

	// Current returns the latest published snapshot.
	// Returns ErrNoSnapshot before the first publish.
	Current(ctx context.Context) (*model.Snapshot, error)

	// Count returns the number of snapshots published so far.
	Count(ctx context.Context) int
}
