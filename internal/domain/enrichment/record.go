package enrichment

import "github.com/shopspring/decimal"

// Record is one denormalized match row of the per-day blob read by the dashboard.
// Field names are the public column names; missing values encode as null.
type Record struct {
	Fixture   int64  `json:"Fixture"`
	Date      string `json:"Date"`
	LeagueID  int64  `json:"League id"`
	Season    int    `json:"Season"`
	HomeID    int64  `json:"Home id"`
	AwayID    int64  `json:"Away id"`
	HomeGoals *int   `json:"Home goals"`
	AwayGoals *int   `json:"Away goals"`

	HomeTeam *string `json:"Home team"`
	AwayTeam *string `json:"Away team"`
	League   *string `json:"League"`
	Country  *string `json:"Country"`

	HomeOdd decimal.NullDecimal `json:"Home odd"`
	DrawOdd decimal.NullDecimal `json:"Draw odd"`
	AwayOdd decimal.NullDecimal `json:"Away odd"`

	HomeRank            *int                `json:"Home rank"`
	HomePoints          *int                `json:"Home points"`
	HomeGoalDifference  *int                `json:"Home goal difference"`
	HomeForm            *string             `json:"Home team form"`
	HomeAttackStrength  decimal.NullDecimal `json:"Home attack strength"`
	HomeDefenseStrength decimal.NullDecimal `json:"Home defense strength"`

	AwayRank            *int                `json:"Away rank"`
	AwayPoints          *int                `json:"Away points"`
	AwayGoalDifference  *int                `json:"Away goal difference"`
	AwayForm            *string             `json:"Away team form"`
	AwayAttackStrength  decimal.NullDecimal `json:"Away attack strength"`
	AwayDefenseStrength decimal.NullDecimal `json:"Away defense strength"`

	LeagueHomeAvgGoals decimal.NullDecimal `json:"League home avg goals"`
	LeagueAwayAvgGoals decimal.NullDecimal `json:"League away avg goals"`

	ExpectedHomeGoals decimal.NullDecimal `json:"Expected home goals"`
	ExpectedAwayGoals decimal.NullDecimal `json:"Expected away goals"`
}
