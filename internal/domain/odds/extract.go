package odds

import (
	"sort"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

const (
	LabelHome = "Home"
	LabelDraw = "Draw"
	LabelAway = "Away"
)

var ErrMalformedQuote = crerr.New("malformed odds quote")

// Collapse keeps the first row seen per fixture and extracts its quote.
// Rows for a fixture that already has a quote are ignored, so repeated
// fixtures across pages never multiply the result.
func Collapse(rows []Row, profile Profile) ([]Quote, error) {
	seen := make(map[int64]struct{}, len(rows))
	out := make([]Quote, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.FixtureID]; ok {
			continue
		}
		seen[row.FixtureID] = struct{}{}

		quote, err := Extract(row, profile)
		if err != nil {
			return nil, err
		}
		out = append(out, quote)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out, nil
}

// Extract maps the outcome labels of the profile's bookmaker and bet market to prices.
// All three of Home, Draw and Away must be present.
func Extract(row Row, profile Profile) (Quote, error) {
	if row.FixtureID <= 0 {
		return Quote{}, crerr.Wrap(ErrMalformedQuote, "odds row has no fixture id")
	}

	if len(row.Bookmakers) == 0 {
		return Quote{}, crerr.Wrapf(ErrMalformedQuote, "fixture %d has no bookmaker entries", row.FixtureID)
	}
	bookmaker, ok := pickBookmaker(row.Bookmakers, profile.Bookmaker)
	if !ok {
		return Quote{}, crerr.Wrapf(ErrMalformedQuote, "fixture %d has no entry for bookmaker %s", row.FixtureID, profile.Bookmaker)
	}
	market, ok := pickMarket(bookmaker.Markets, profile.Bet)
	if !ok {
		return Quote{}, crerr.Wrapf(ErrMalformedQuote, "fixture %d bookmaker %d has no bet entries", row.FixtureID, bookmaker.ID)
	}

	prices := make(map[string]decimal.Decimal, len(market.Outcomes))
	for _, outcome := range market.Outcomes {
		label := strings.TrimSpace(outcome.Label)
		if _, exists := prices[label]; exists {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(outcome.Odd))
		if err != nil {
			return Quote{}, crerr.Wrapf(ErrMalformedQuote, "fixture %d outcome %q price %q: %v", row.FixtureID, label, outcome.Odd, err)
		}
		prices[label] = price
	}

	quote := Quote{
		LeagueID:  row.LeagueID,
		Season:    row.Season,
		FixtureID: row.FixtureID,
		UpdatedAt: row.UpdatedAt,
	}
	var missing []string
	for _, item := range []struct {
		label  string
		target *decimal.Decimal
	}{
		{LabelHome, &quote.Home},
		{LabelDraw, &quote.Draw},
		{LabelAway, &quote.Away},
	} {
		price, exists := prices[item.label]
		if !exists {
			missing = append(missing, item.label)
			continue
		}
		*item.target = price
	}
	if len(missing) > 0 {
		return Quote{}, crerr.Wrapf(ErrMalformedQuote, "fixture %d market %d missing outcomes %s", row.FixtureID, market.ID, strings.Join(missing, ","))
	}

	return quote, nil
}

// pickBookmaker only accepts the configured bookmaker; quotes are stored under
// its id, so another bookmaker's prices must never stand in for it.
func pickBookmaker(items []Bookmaker, wanted string) (Bookmaker, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(wanted), 10, 64)
	if err != nil {
		return Bookmaker{}, false
	}
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Bookmaker{}, false
}

func pickMarket(items []Market, wanted string) (Market, bool) {
	if len(items) == 0 {
		return Market{}, false
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(wanted), 10, 64); err == nil {
		for _, item := range items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return items[0], true
}

// Index maps quotes by fixture id.
func Index(items []Quote) map[int64]Quote {
	out := make(map[int64]Quote, len(items))
	for _, item := range items {
		if _, exists := out[item.FixtureID]; exists {
			continue
		}
		out[item.FixtureID] = item
	}
	return out
}
