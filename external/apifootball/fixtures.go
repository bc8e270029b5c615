package apifootball

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/fixture"
	"github.com/riskibarqy/weekendbets/internal/usecase"
)

// FetchFixturesByDate returns every fixture kicking off on date plus the raw response body.
// Entries without ids are dropped and logged.
func (c *Client) FetchFixturesByDate(ctx context.Context, date string) (fixture.DayResult, error) {
	query := url.Values{}
	query.Set("date", date)

	var payload fixturesEnvelope
	raw, err := c.doJSON(ctx, "/fixtures", query, &payload)
	if err != nil {
		return fixture.DayResult{}, fmt.Errorf("fetch fixtures date=%s: %w", date, err)
	}
	if errs := payload.providerErrors(); len(errs) > 0 {
		return fixture.DayResult{}, fmt.Errorf("%w: fixtures date=%s: %s", usecase.ErrDependencyUnavailable, date, formatProviderErrors(errs))
	}

	out := make([]fixture.Fixture, 0, len(payload.Response))
	for _, item := range payload.Response {
		mapped := mapFixture(item)
		if err := mapped.Validate(); err != nil {
			c.logger.WarnContext(ctx, "skip fixture without identifiers", "date", date, "error", err)
			continue
		}
		out = append(out, mapped)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return fixture.DayResult{Raw: raw, Fixtures: out}, nil
}

func mapFixture(item fixtureItem) fixture.Fixture {
	out := fixture.Fixture{
		ID:         item.Fixture.ID,
		Date:       item.Fixture.Date,
		LeagueID:   item.League.ID,
		Season:     item.League.Season,
		HomeTeamID: item.Teams.Home.ID,
		AwayTeamID: item.Teams.Away.ID,
		HomeGoals:  item.Goals.Home,
		AwayGoals:  item.Goals.Away,
	}
	if parsed, err := time.Parse(time.RFC3339, item.Fixture.Date); err == nil {
		out.KickoffAt = parsed.UTC()
	} else if item.Fixture.Timestamp > 0 {
		out.KickoffAt = time.Unix(item.Fixture.Timestamp, 0).UTC()
	}
	return out
}
