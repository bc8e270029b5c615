package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekendbets/internal/domain/league"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) ListAll(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{
			ID:      row.ID,
			Name:    strings.TrimSpace(row.Name),
			Country: strings.TrimSpace(row.Country),
		})
	}
	return out, nil
}

func (r *LeagueRepository) UpsertLeagues(ctx context.Context, items []league.League) error {
	rows, err := leagueInsertModels(items)
	if err != nil {
		return fmt.Errorf("upsert leagues: %w", err)
	}

	for _, batch := range qb.Chunk(rows, leagueInsertColumns, maxBindArgs) {
		query, args, err := qb.InsertModels(qb.Postgres, "leagues", batch, leagueConflict)
		if err != nil {
			return fmt.Errorf("build upsert leagues query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert leagues batch size=%d: %w", len(batch), err)
		}
	}
	return nil
}
