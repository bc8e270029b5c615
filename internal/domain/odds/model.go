package odds

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Profile selects one odds configuration: a season, a bookmaker and a bet market.
type Profile struct {
	Season    string `validate:"required,numeric"`
	Bookmaker string `validate:"required,numeric"`
	Bet       string `validate:"required,numeric"`
}

func (p Profile) Normalize() Profile {
	return Profile{
		Season:    strings.TrimSpace(p.Season),
		Bookmaker: strings.TrimSpace(p.Bookmaker),
		Bet:       strings.TrimSpace(p.Bet),
	}
}

func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("odds profile: %w", err)
	}
	return nil
}

func (p Profile) String() string {
	return p.Season + "_" + p.Bookmaker + "_" + p.Bet
}

// Quote is the collapsed home/draw/away price triple for one fixture.
// League id and season are carried for cross-checks only.
type Quote struct {
	LeagueID  int64           `json:"league.id"`
	Season    int             `json:"league.season"`
	FixtureID int64           `json:"fixture.id"`
	Home      decimal.Decimal `json:"home_odd"`
	Draw      decimal.Decimal `json:"draw_odd"`
	Away      decimal.Decimal `json:"away_odd"`
	UpdatedAt string          `json:"update,omitempty"`
}

// Outcome is one priced result inside a bet market, e.g. {"Home", "1.45"}.
type Outcome struct {
	Label string
	Odd   string
}

type Market struct {
	ID       int64
	Name     string
	Outcomes []Outcome
}

type Bookmaker struct {
	ID      int64
	Name    string
	Markets []Market
}

// Row is one fixture entry of an odds feed page.
type Row struct {
	FixtureID  int64
	LeagueID   int64
	Season     int
	UpdatedAt  string
	Bookmakers []Bookmaker
}
