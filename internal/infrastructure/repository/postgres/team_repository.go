package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: strings.TrimSpace(row.Name)})
	}
	return out, nil
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	rows, err := teamInsertModels(items)
	if err != nil {
		return fmt.Errorf("upsert teams: %w", err)
	}

	for _, batch := range qb.Chunk(rows, teamInsertColumns, maxBindArgs) {
		query, args, err := qb.InsertModels(qb.Postgres, "teams", batch, teamConflict)
		if err != nil {
			return fmt.Errorf("build upsert teams query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert teams batch size=%d: %w", len(batch), err)
		}
	}
	return nil
}
