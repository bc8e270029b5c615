package postgres

import (
	"strings"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	qb "github.com/riskibarqy/weekendbets/internal/platform/querybuilder"
	"github.com/shopspring/decimal"
)

const snapshotInsertColumns = 12

var snapshotSetConflict = &qb.OnConflict{Target: []string{"season", "as_of"}, Touch: []string{"updated_at"}}

type standingSnapshotTableModel struct {
	ID                 int64           `db:"id"`
	Season             string          `db:"season"`
	AsOf               time.Time       `db:"as_of"`
	TeamID             int64           `db:"team_id"`
	LeagueID           int64           `db:"league_id"`
	Rank               int             `db:"rank"`
	Points             int             `db:"points"`
	GoalDifference     int             `db:"goal_difference"`
	Form               string          `db:"form"`
	AttackStrength     decimal.Decimal `db:"attack_strength"`
	DefenseStrength    decimal.Decimal `db:"defense_strength"`
	LeagueHomeAvgGoals decimal.Decimal `db:"league_home_avg_goals"`
	LeagueAwayAvgGoals decimal.Decimal `db:"league_away_avg_goals"`
	CreatedAt          time.Time       `db:"created_at"`
}

type standingSnapshotInsertModel struct {
	Season             string          `db:"season"`
	AsOf               string          `db:"as_of"`
	TeamID             int64           `db:"team_id"`
	LeagueID           int64           `db:"league_id"`
	Rank               int             `db:"rank"`
	Points             int             `db:"points"`
	GoalDifference     int             `db:"goal_difference"`
	Form               string          `db:"form"`
	AttackStrength     decimal.Decimal `db:"attack_strength"`
	DefenseStrength    decimal.Decimal `db:"defense_strength"`
	LeagueHomeAvgGoals decimal.Decimal `db:"league_home_avg_goals"`
	LeagueAwayAvgGoals decimal.Decimal `db:"league_away_avg_goals"`
}

type standingSnapshotSetInsertModel struct {
	Season string `db:"season"`
	AsOf   string `db:"as_of"`
}

func snapshotFromRow(row standingSnapshotTableModel) standing.Snapshot {
	return standing.Snapshot{
		TeamID:             row.TeamID,
		LeagueID:           row.LeagueID,
		Season:             row.Season,
		AsOf:               row.AsOf.Format("2006-01-02"),
		Rank:               row.Rank,
		Points:             row.Points,
		GoalDifference:     row.GoalDifference,
		Form:               strings.TrimSpace(row.Form),
		AttackStrength:     row.AttackStrength,
		DefenseStrength:    row.DefenseStrength,
		LeagueHomeAvgGoals: row.LeagueHomeAvgGoals,
		LeagueAwayAvgGoals: row.LeagueAwayAvgGoals,
	}
}

func snapshotInsertModel(season, asOf string, item standing.Snapshot) standingSnapshotInsertModel {
	return standingSnapshotInsertModel{
		Season:             season,
		AsOf:               asOf,
		TeamID:             item.TeamID,
		LeagueID:           item.LeagueID,
		Rank:               item.Rank,
		Points:             item.Points,
		GoalDifference:     item.GoalDifference,
		Form:               item.Form,
		AttackStrength:     item.AttackStrength,
		DefenseStrength:    item.DefenseStrength,
		LeagueHomeAvgGoals: item.LeagueHomeAvgGoals,
		LeagueAwayAvgGoals: item.LeagueAwayAvgGoals,
	}
}
