package partition

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/odds"
)

const DateLayout = "2006-01-02"

// Store is a key-value blob store. Put fully replaces the value at key.
// Get reports false for a missing key; a present but empty blob is returned as is.
type Store interface {
	Put(ctx context.Context, key string, blob []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

func FormatDate(day time.Time) string {
	return day.Format(DateLayout)
}

func ParseDate(raw string) (time.Time, error) {
	day, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return day, nil
}

// RawFixturesKey addresses the unmodified fixtures feed response of a day.
func RawFixturesKey(date string) string {
	return "json/fixtures/fixtures_" + date + ".json"
}

// OddsKey addresses the collapsed quotes of a day for one odds profile.
func OddsKey(date string, profile odds.Profile) string {
	return fmt.Sprintf("json/transformed/odds/odds_%s_%s_%s_%s.json", date, profile.Season, profile.Bookmaker, profile.Bet)
}

// EnrichedKey addresses the per-day record set read by the dashboard.
func EnrichedKey(date string) string {
	return "json/transformed/fixtures_with_odds/fixture_with_odds_" + date + ".json"
}

func StandingsKey(season, asOf string) string {
	return "json/standings/standings_" + season + "_" + asOf + ".json"
}
