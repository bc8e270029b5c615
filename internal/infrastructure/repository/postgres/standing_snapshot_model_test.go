package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
	"github.com/shopspring/decimal"
)

func TestSnapshotFromRow(t *testing.T) {
	row := standingSnapshotTableModel{
		Season:         "2024",
		AsOf:           time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		TeamID:         42,
		LeagueID:       39,
		Rank:           3,
		Points:         7,
		GoalDifference: 4,
		Form:           " WWD ",
		AttackStrength: decimal.RequireFromString("1.25"),
	}

	got := snapshotFromRow(row)
	if got.AsOf != "2024-08-15" {
		t.Fatalf("unexpected as-of: %s", got.AsOf)
	}
	if got.Form != "WWD" {
		t.Fatalf("expected trimmed form, got %q", got.Form)
	}
	if !got.AttackStrength.Equal(decimal.RequireFromString("1.25")) {
		t.Fatalf("unexpected attack strength: %s", got.AttackStrength)
	}
}

func TestSnapshotInsertModelColumns(t *testing.T) {
	model := snapshotInsertModel("2024", "2024-08-15", standing.Snapshot{TeamID: 42, LeagueID: 39, Rank: 1})

	query, args, err := qb.InsertModel(qb.Postgres, "standing_snapshots", model, nil)
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	want := "INSERT INTO standing_snapshots (season, as_of, team_id, league_id, rank, points, goal_difference, form, attack_strength, defense_strength, league_home_avg_goals, league_away_avg_goals) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
	if len(args) != snapshotInsertColumns || args[0] != "2024" || args[2] != int64(42) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSnapshotSetConflict(t *testing.T) {
	query, _, err := qb.InsertModel(qb.Postgres, "standing_snapshot_sets", standingSnapshotSetInsertModel{Season: "2024", AsOf: "2024-08-15"}, snapshotSetConflict)
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	want := "INSERT INTO standing_snapshot_sets (season, as_of) VALUES ($1, $2) ON CONFLICT (season, as_of) DO UPDATE SET updated_at = CURRENT_TIMESTAMP"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}
}

func TestReferenceInsertModels_FirstEntryWins(t *testing.T) {
	rows, err := teamInsertModels([]team.Team{{ID: 1, Name: "Arsenal"}, {ID: 2, Name: "Chelsea"}, {ID: 1, Name: "Arsenal FC"}})
	if err != nil {
		t.Fatalf("team models: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Arsenal" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	query, _, err := qb.InsertModels(qb.Postgres, "teams", rows, teamConflict)
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}
	want := "INSERT INTO teams (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = CURRENT_TIMESTAMP"
	if query != want {
		t.Fatalf("unexpected query:\n%s", query)
	}

	if _, err := leagueInsertModels([]league.League{{ID: 0, Name: "Premier League"}}); err == nil {
		t.Fatalf("expected validation error for league without id")
	}
}
