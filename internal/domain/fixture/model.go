package fixture

import (
	"fmt"
	"time"
)

// Fixture is one scheduled or played match as returned by the fixtures feed.
type Fixture struct {
	ID int64
	// Date keeps the kickoff timestamp exactly as the feed sent it.
	Date       string
	KickoffAt  time.Time
	LeagueID   int64
	Season     int
	HomeTeamID int64
	AwayTeamID int64
	HomeGoals  *int
	AwayGoals  *int
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture %d home and away team ids are required", f.ID)
	}
	if f.LeagueID <= 0 {
		return fmt.Errorf("fixture %d league id is required", f.ID)
	}

	return nil
}

func (f Fixture) IsPlayed() bool {
	return f.HomeGoals != nil && f.AwayGoals != nil
}
