package document

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
)

// StandingRepository reads pre-computed snapshot documents from the partition store.
type StandingRepository struct {
	store partition.Store
}

func NewStandingRepository(store partition.Store) *StandingRepository {
	return &StandingRepository{store: store}
}

func (r *StandingRepository) ReadSnapshot(ctx context.Context, season, asOf string) ([]standing.Snapshot, bool, error) {
	key := partition.StandingsKey(season, asOf)
	blob, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("read standings %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var rows []standing.Snapshot
	if err := jsoniter.Unmarshal(blob, &rows); err != nil {
		return nil, false, fmt.Errorf("decode standings %s: %w", key, err)
	}
	for idx := range rows {
		if rows[idx].Season == "" {
			rows[idx].Season = season
		}
		if rows[idx].AsOf == "" {
			rows[idx].AsOf = asOf
		}
		if err := rows[idx].Validate(); err != nil {
			return nil, false, fmt.Errorf("standings %s row %d: %w", key, idx, err)
		}
	}
	return rows, true, nil
}

// WriteSnapshot stores a snapshot set so later reads for (season, asOf) find it.
func (r *StandingRepository) WriteSnapshot(ctx context.Context, season, asOf string, rows []standing.Snapshot) error {
	if rows == nil {
		rows = []standing.Snapshot{}
	}
	blob, err := jsoniter.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode standings %s/%s: %w", season, asOf, err)
	}
	key := partition.StandingsKey(season, asOf)
	if err := r.store.Put(ctx, key, blob); err != nil {
		return fmt.Errorf("write standings %s: %w", key, err)
	}
	return nil
}
