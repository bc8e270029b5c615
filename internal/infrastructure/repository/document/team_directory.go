package document

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
)

// TeamDirectory reads the team list document, a JSON array of {team_id, team_name}.
type TeamDirectory struct {
	store partition.Store
	key   string
}

func NewTeamDirectory(store partition.Store, key string) *TeamDirectory {
	return &TeamDirectory{store: store, key: key}
}

func (r *TeamDirectory) ListAll(ctx context.Context) ([]team.Team, error) {
	blob, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read team directory %s: %w", r.key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", team.ErrDirectoryMissing, r.key)
	}

	var rows []teamDocument
	if err := jsoniter.Unmarshal(blob, &rows); err != nil {
		return nil, fmt.Errorf("decode team directory %s: %w", r.key, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		item := team.Team{ID: row.TeamID, Name: strings.TrimSpace(row.TeamName)}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("team directory %s: %w", r.key, err)
		}
		out = append(out, item)
	}
	return out, nil
}

type teamDocument struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
}
