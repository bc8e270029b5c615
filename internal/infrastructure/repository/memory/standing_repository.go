package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/weekendbets/internal/domain/standing"
)

type StandingRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]standing.Snapshot
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{snapshots: make(map[string][]standing.Snapshot)}
}

func (r *StandingRepository) ReadSnapshot(_ context.Context, season, asOf string) ([]standing.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.snapshots[snapshotKey(season, asOf)]
	if !ok {
		return nil, false, nil
	}
	out := make([]standing.Snapshot, 0, len(rows))
	out = append(out, rows...)
	return out, true, nil
}

// Store replaces the snapshot set of one (season, asOf) pair.
func (r *StandingRepository) Store(season, asOf string, rows []standing.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshotKey(season, asOf)] = append([]standing.Snapshot{}, rows...)
}

func (r *StandingRepository) WriteSnapshot(_ context.Context, season, asOf string, rows []standing.Snapshot) error {
	r.Store(season, asOf, rows)
	return nil
}

func snapshotKey(season, asOf string) string {
	return season + ":" + asOf
}
