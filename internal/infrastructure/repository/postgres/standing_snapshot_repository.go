package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
)

// StandingSnapshotRepository stores snapshot rows in standing_snapshots. A row in
// standing_snapshot_sets marks the (season, as_of) pair as present, so an empty set can exist.
type StandingSnapshotRepository struct {
	db *sqlx.DB
}

func NewStandingSnapshotRepository(db *sqlx.DB) *StandingSnapshotRepository {
	return &StandingSnapshotRepository{db: db}
}

func (r *StandingSnapshotRepository) ReadSnapshot(ctx context.Context, season, asOf string) ([]standing.Snapshot, bool, error) {
	existsQuery, existsArgs, err := qb.Select("season").From("standing_snapshot_sets").
		Where(
			qb.Eq("season", season),
			qb.Eq("as_of", asOf),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get snapshot set query: %w", err)
	}

	var marker string
	if err := r.db.GetContext(ctx, &marker, existsQuery, existsArgs...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot set season=%s as_of=%s: %w", season, asOf, err)
	}

	query, args, err := qb.Select("*").From("standing_snapshots").
		Where(
			qb.Eq("season", season),
			qb.Eq("as_of", asOf),
		).
		OrderBy("league_id", "rank", "team_id").
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build list snapshot rows query: %w", err)
	}

	var rows []standingSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, false, fmt.Errorf("list snapshot rows season=%s as_of=%s: %w", season, asOf, err)
	}

	out := make([]standing.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, true, nil
}

// WriteSnapshot replaces the snapshot set of one (season, asOf) pair.
func (r *StandingSnapshotRepository) WriteSnapshot(ctx context.Context, season, asOf string, rows []standing.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx write snapshot: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	setQuery, setArgs, err := qb.InsertModel(qb.Postgres, "standing_snapshot_sets", standingSnapshotSetInsertModel{
		Season: season,
		AsOf:   asOf,
	}, snapshotSetConflict)
	if err != nil {
		return fmt.Errorf("build upsert snapshot set query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, setQuery, setArgs...); err != nil {
		return fmt.Errorf("upsert snapshot set season=%s as_of=%s: %w", season, asOf, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM standing_snapshots WHERE season = $1 AND as_of = $2`, season, asOf); err != nil {
		return fmt.Errorf("clear snapshot rows season=%s as_of=%s: %w", season, asOf, err)
	}

	models := make([]standingSnapshotInsertModel, 0, len(rows))
	for _, item := range rows {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		models = append(models, snapshotInsertModel(season, asOf, item))
	}
	for _, batch := range qb.Chunk(models, snapshotInsertColumns, maxBindArgs) {
		query, args, err := qb.InsertModels(qb.Postgres, "standing_snapshots", batch, nil)
		if err != nil {
			return fmt.Errorf("build insert snapshot rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert snapshot rows season=%s as_of=%s batch size=%d: %w", season, asOf, len(batch), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write snapshot tx: %w", err)
	}
	return nil
}
