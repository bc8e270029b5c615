package apifootball

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/usecase"
)

// FetchOddsPage returns one page of pre-match odds for a date. A page past
// the last one comes back empty, whether the provider answers with an empty
// response or with a paging error.
func (c *Client) FetchOddsPage(ctx context.Context, q odds.PageQuery) ([]odds.Row, error) {
	if q.Page < 1 {
		return nil, fmt.Errorf("%w: odds page must be >= 1", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("date", q.Date)
	query.Set("season", q.Profile.Season)
	query.Set("bookmaker", q.Profile.Bookmaker)
	query.Set("bet", q.Profile.Bet)
	query.Set("page", strconv.Itoa(q.Page))

	var payload oddsEnvelope
	if _, err := c.doJSON(ctx, "/odds", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch odds date=%s page=%d: %w", q.Date, q.Page, err)
	}

	if errs := payload.providerErrors(); len(errs) > 0 {
		if _, pageOnly := errs["page"]; pageOnly && len(errs) == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: odds date=%s page=%d: %s", usecase.ErrDependencyUnavailable, q.Date, q.Page, formatProviderErrors(errs))
	}

	out := make([]odds.Row, 0, len(payload.Response))
	for _, item := range payload.Response {
		out = append(out, mapOddsRow(item))
	}
	return out, nil
}

func mapOddsRow(item oddsItem) odds.Row {
	row := odds.Row{
		FixtureID:  item.Fixture.ID,
		LeagueID:   item.League.ID,
		Season:     item.League.Season,
		UpdatedAt:  item.Update,
		Bookmakers: make([]odds.Bookmaker, 0, len(item.Bookmakers)),
	}
	for _, bm := range item.Bookmakers {
		bookmaker := odds.Bookmaker{ID: bm.ID, Name: bm.Name, Markets: make([]odds.Market, 0, len(bm.Bets))}
		for _, bet := range bm.Bets {
			market := odds.Market{ID: bet.ID, Name: bet.Name, Outcomes: make([]odds.Outcome, 0, len(bet.Values))}
			for _, value := range bet.Values {
				market.Outcomes = append(market.Outcomes, odds.Outcome{Label: value.Value, Odd: value.Odd})
			}
			bookmaker.Markets = append(bookmaker.Markets, market)
		}
		row.Bookmakers = append(row.Bookmakers, bookmaker)
	}
	return row
}
