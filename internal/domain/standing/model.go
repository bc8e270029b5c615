package standing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Snapshot is one team's table position and strength factors as of an anchor date.
// League averages are repeated on every team row of that league.
type Snapshot struct {
	TeamID             int64           `json:"team_id"`
	LeagueID           int64           `json:"league_id"`
	Season             string          `json:"season"`
	AsOf               string          `json:"as_of"`
	Rank               int             `json:"rank"`
	Points             int             `json:"points"`
	GoalDifference     int             `json:"goal_difference"`
	Form               string          `json:"form"`
	AttackStrength     decimal.Decimal `json:"attack_strength"`
	DefenseStrength    decimal.Decimal `json:"defense_strength"`
	LeagueHomeAvgGoals decimal.Decimal `json:"league_home_avg_goals"`
	LeagueAwayAvgGoals decimal.Decimal `json:"league_away_avg_goals"`
}

func (s Snapshot) Validate() error {
	if s.TeamID <= 0 {
		return fmt.Errorf("snapshot team id is required")
	}
	if s.AsOf == "" {
		return fmt.Errorf("snapshot %d as-of date is required", s.TeamID)
	}
	return nil
}
