package postgres

import (
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
)

// maxBindArgs stays under the Postgres limit of 65535 bind parameters per statement.
const maxBindArgs = 60000

const (
	teamInsertColumns   = 2
	leagueInsertColumns = 3
)

var (
	teamConflict   = &qb.OnConflict{Target: []string{"id"}, Touch: []string{"updated_at"}}
	leagueConflict = &qb.OnConflict{Target: []string{"id"}, Touch: []string{"updated_at"}}
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type leagueTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Country   string    `db:"country"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Country string `db:"country"`
}

// teamInsertModels validates items and keeps the first entry per id, matching team.Index.
// One upsert statement cannot touch the same row twice.
func teamInsertModels(items []team.Team) ([]teamInsertModel, error) {
	out := make([]teamInsertModel, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, teamInsertModel{ID: item.ID, Name: item.Name})
	}
	return out, nil
}

func leagueInsertModels(items []league.League) ([]leagueInsertModel, error) {
	out := make([]leagueInsertModel, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, leagueInsertModel{ID: item.ID, Name: item.Name, Country: item.Country})
	}
	return out, nil
}
