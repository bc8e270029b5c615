package fixture

import "context"

// DayResult is one day of fixtures together with the untouched feed response.
type DayResult struct {
	Raw      []byte
	Fixtures []Fixture
}

// Feed exposes the upstream fixtures source.
type Feed interface {
	FetchFixturesByDate(ctx context.Context, date string) (DayResult, error)
}
