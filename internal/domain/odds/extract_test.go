package odds

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func matchWinnerRow(fixtureID int64, home, draw, away string) Row {
	return Row{
		FixtureID: fixtureID,
		LeagueID:  39,
		Season:    2024,
		UpdatedAt: "2024-08-15T09:00:00+00:00",
		Bookmakers: []Bookmaker{
			{
				ID:   8,
				Name: "Bet365",
				Markets: []Market{
					{
						ID:   1,
						Name: "Match Winner",
						Outcomes: []Outcome{
							{Label: "Home", Odd: home},
							{Label: "Draw", Odd: draw},
							{Label: "Away", Odd: away},
						},
					},
				},
			},
		},
	}
}

var defaultProfile = Profile{Season: "2024", Bookmaker: "8", Bet: "1"}

func TestExtract_MapsOutcomeLabels(t *testing.T) {
	t.Parallel()

	row := matchWinnerRow(1001, "1.45", "4.50", "7.00")
	// Reorder the values: mapping must follow labels, not positions.
	outcomes := row.Bookmakers[0].Markets[0].Outcomes
	outcomes[0], outcomes[2] = outcomes[2], outcomes[0]

	got, err := Extract(row, defaultProfile)
	require.NoError(t, err)
	require.Equal(t, "1.45", got.Home.String())
	require.Equal(t, "4.5", got.Draw.String())
	require.Equal(t, "7", got.Away.String())
	require.Equal(t, int64(39), got.LeagueID)
}

func TestExtract_FailsWhenLabelMissing(t *testing.T) {
	t.Parallel()

	row := matchWinnerRow(1001, "1.45", "4.50", "7.00")
	row.Bookmakers[0].Markets[0].Outcomes = row.Bookmakers[0].Markets[0].Outcomes[:2]

	_, err := Extract(row, defaultProfile)
	if !errors.Is(err, ErrMalformedQuote) {
		t.Fatalf("expected ErrMalformedQuote, got %v", err)
	}
}

func TestExtract_FailsOnUnparsablePrice(t *testing.T) {
	t.Parallel()

	_, err := Extract(matchWinnerRow(1001, "n/a", "4.50", "7.00"), defaultProfile)
	if !errors.Is(err, ErrMalformedQuote) {
		t.Fatalf("expected ErrMalformedQuote, got %v", err)
	}
}

func TestExtract_PrefersConfiguredBookmakerAndMarket(t *testing.T) {
	t.Parallel()

	row := matchWinnerRow(1001, "1.45", "4.50", "7.00")
	row.Bookmakers = append([]Bookmaker{{
		ID: 6,
		Markets: []Market{{ID: 1, Outcomes: []Outcome{
			{Label: "Home", Odd: "1.10"}, {Label: "Draw", Odd: "9.00"}, {Label: "Away", Odd: "20.00"},
		}}},
	}}, row.Bookmakers...)
	row.Bookmakers[1].Markets = append([]Market{{ID: 5, Name: "Goals Over/Under", Outcomes: []Outcome{
		{Label: "Over 2.5", Odd: "1.80"},
	}}}, row.Bookmakers[1].Markets...)

	got, err := Extract(row, defaultProfile)
	require.NoError(t, err)
	require.Equal(t, "1.45", got.Home.String())
}

func TestExtract_FallsBackToFirstMarket(t *testing.T) {
	t.Parallel()

	got, err := Extract(matchWinnerRow(1001, "2.10", "3.30", "3.60"), Profile{Season: "2024", Bookmaker: "8", Bet: "42"})
	require.NoError(t, err)
	require.Equal(t, "2.1", got.Home.String())
}

func TestExtract_FailsWhenBookmakerAbsent(t *testing.T) {
	t.Parallel()

	_, err := Extract(matchWinnerRow(1001, "2.10", "3.30", "3.60"), Profile{Season: "2024", Bookmaker: "99", Bet: "1"})
	if !errors.Is(err, ErrMalformedQuote) {
		t.Fatalf("expected ErrMalformedQuote, got %v", err)
	}

	row := matchWinnerRow(1001, "2.10", "3.30", "3.60")
	row.Bookmakers = nil
	if _, err := Extract(row, defaultProfile); !errors.Is(err, ErrMalformedQuote) {
		t.Fatalf("expected ErrMalformedQuote for empty bookmakers, got %v", err)
	}
}

func TestCollapse_FirstRowPerFixtureWins(t *testing.T) {
	t.Parallel()

	rows := []Row{
		matchWinnerRow(2002, "2.00", "3.20", "3.90"),
		matchWinnerRow(1001, "1.45", "4.50", "7.00"),
		matchWinnerRow(1001, "1.50", "4.20", "6.50"),
	}

	got, err := Collapse(rows, defaultProfile)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1001), got[0].FixtureID)
	require.Equal(t, "1.45", got[0].Home.String())
	require.Equal(t, int64(2002), got[1].FixtureID)
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	if err := defaultProfile.Validate(); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}
	if err := (Profile{Season: "2024", Bookmaker: "", Bet: "1"}).Validate(); err == nil {
		t.Fatalf("expected error for empty bookmaker")
	}
	if err := (Profile{Season: "twenty", Bookmaker: "8", Bet: "1"}).Validate(); err == nil {
		t.Fatalf("expected error for non numeric season")
	}
}

func TestQuoteCodec(t *testing.T) {
	t.Parallel()

	quotes := []Quote{{
		LeagueID:  39,
		Season:    2024,
		FixtureID: 7,
		Home:      decimal.RequireFromString("1.80"),
		Draw:      decimal.RequireFromString("3.6"),
		Away:      decimal.RequireFromString("4.2"),
	}}

	blob, err := EncodeQuotes(quotes)
	if err != nil {
		t.Fatalf("encode quotes: %v", err)
	}
	want := `[{"league.id":39,"league.season":2024,"fixture.id":7,"home_odd":"1.8","draw_odd":"3.6","away_odd":"4.2"}]`
	if string(blob) != want {
		t.Fatalf("unexpected blob:\n got %s\nwant %s", blob, want)
	}

	decoded, err := DecodeQuotes(blob)
	if err != nil {
		t.Fatalf("decode quotes: %v", err)
	}
	if len(decoded) != 1 || !decoded[0].Home.Equal(quotes[0].Home) {
		t.Fatalf("unexpected decoded quotes: %+v", decoded)
	}

	empty, err := EncodeQuotes(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected [] for nil quotes, got %q err=%v", empty, err)
	}
}
