package enrichment

import (
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/weekendbets/internal/domain/fixture"
	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	"github.com/shopspring/decimal"
)

var ErrJoinCardinality = crerr.New("join cardinality violation")

// FromFixtures builds one record per fixture and left-joins the team directory
// in both roles and the league directory. Unknown ids leave names null.
func FromFixtures(fixtures []fixture.Fixture, teams map[int64]team.Team, leagues map[int64]league.League) []Record {
	out := make([]Record, 0, len(fixtures))
	seen := make(map[int64]struct{}, len(fixtures))
	for _, item := range fixtures {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}

		rec := Record{
			Fixture:   item.ID,
			Date:      item.Date,
			LeagueID:  item.LeagueID,
			Season:    item.Season,
			HomeID:    item.HomeTeamID,
			AwayID:    item.AwayTeamID,
			HomeGoals: copyInt(item.HomeGoals),
			AwayGoals: copyInt(item.AwayGoals),
		}
		if home, ok := teams[item.HomeTeamID]; ok {
			rec.HomeTeam = stringPtr(home.Name)
		}
		if away, ok := teams[item.AwayTeamID]; ok {
			rec.AwayTeam = stringPtr(away.Name)
		}
		if lg, ok := leagues[item.LeagueID]; ok {
			rec.League = stringPtr(lg.Name)
			if country := strings.TrimSpace(lg.Country); country != "" {
				rec.Country = stringPtr(country)
			}
		}
		out = append(out, rec)
	}

	SortByFixture(out)
	return out
}

// AttachOdds left-joins quotes on fixture id and drops rows left without a draw price.
func AttachOdds(records []Record, quotes []odds.Quote) []Record {
	byFixture := odds.Index(quotes)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if quote, ok := byFixture[rec.Fixture]; ok {
			rec.HomeOdd = decimal.NewNullDecimal(quote.Home)
			rec.DrawOdd = decimal.NewNullDecimal(quote.Draw)
			rec.AwayOdd = decimal.NewNullDecimal(quote.Away)
		}
		if !rec.DrawOdd.Valid {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// JoinHome attaches the home-role projection of snaps. Home-role fields and both
// league averages are cleared first, so values from an earlier snapshot never
// survive a rerun. Each team may appear at most once in snaps; otherwise nothing
// is joined and ErrJoinCardinality is returned.
func JoinHome(records []Record, snaps []standing.Snapshot) ([]Record, error) {
	byTeam, err := indexSnapshots(snaps)
	if err != nil {
		return nil, crerr.Wrap(err, "home standings merge")
	}

	out := cloneRecords(records)
	for idx := range out {
		clearHome(&out[idx])
		snap, ok := byTeam[out[idx].HomeID]
		if !ok {
			continue
		}
		out[idx].HomeRank = intPtr(snap.Rank)
		out[idx].HomePoints = intPtr(snap.Points)
		out[idx].HomeGoalDifference = intPtr(snap.GoalDifference)
		out[idx].HomeForm = stringPtr(snap.Form)
		out[idx].HomeAttackStrength = decimal.NewNullDecimal(snap.AttackStrength)
		out[idx].HomeDefenseStrength = decimal.NewNullDecimal(snap.DefenseStrength)
		out[idx].LeagueHomeAvgGoals = decimal.NewNullDecimal(snap.LeagueHomeAvgGoals)
		out[idx].LeagueAwayAvgGoals = decimal.NewNullDecimal(snap.LeagueAwayAvgGoals)
	}
	return out, nil
}

// JoinAway is the away-role counterpart of JoinHome. It clears away-role fields
// only; league averages are filled when the home merge did not provide them.
func JoinAway(records []Record, snaps []standing.Snapshot) ([]Record, error) {
	byTeam, err := indexSnapshots(snaps)
	if err != nil {
		return nil, crerr.Wrap(err, "away standings merge")
	}

	out := cloneRecords(records)
	for idx := range out {
		clearAway(&out[idx])
		snap, ok := byTeam[out[idx].AwayID]
		if !ok {
			continue
		}
		out[idx].AwayRank = intPtr(snap.Rank)
		out[idx].AwayPoints = intPtr(snap.Points)
		out[idx].AwayGoalDifference = intPtr(snap.GoalDifference)
		out[idx].AwayForm = stringPtr(snap.Form)
		out[idx].AwayAttackStrength = decimal.NewNullDecimal(snap.AttackStrength)
		out[idx].AwayDefenseStrength = decimal.NewNullDecimal(snap.DefenseStrength)
		if !out[idx].LeagueHomeAvgGoals.Valid {
			out[idx].LeagueHomeAvgGoals = decimal.NewNullDecimal(snap.LeagueHomeAvgGoals)
		}
		if !out[idx].LeagueAwayAvgGoals.Valid {
			out[idx].LeagueAwayAvgGoals = decimal.NewNullDecimal(snap.LeagueAwayAvgGoals)
		}
	}
	return out, nil
}

// ComputeExpectedGoals fills both expected-goal fields. A field stays null when
// any of its three factors is null.
func ComputeExpectedGoals(records []Record) []Record {
	out := cloneRecords(records)
	for idx := range out {
		out[idx].ExpectedHomeGoals = product(out[idx].HomeAttackStrength, out[idx].AwayDefenseStrength, out[idx].LeagueHomeAvgGoals)
		out[idx].ExpectedAwayGoals = product(out[idx].AwayAttackStrength, out[idx].HomeDefenseStrength, out[idx].LeagueAwayAvgGoals)
	}
	return out
}

func SortByFixture(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Fixture < records[j].Fixture })
}

func clearHome(rec *Record) {
	rec.HomeRank = nil
	rec.HomePoints = nil
	rec.HomeGoalDifference = nil
	rec.HomeForm = nil
	rec.HomeAttackStrength = decimal.NullDecimal{}
	rec.HomeDefenseStrength = decimal.NullDecimal{}
	rec.LeagueHomeAvgGoals = decimal.NullDecimal{}
	rec.LeagueAwayAvgGoals = decimal.NullDecimal{}
}

func clearAway(rec *Record) {
	rec.AwayRank = nil
	rec.AwayPoints = nil
	rec.AwayGoalDifference = nil
	rec.AwayForm = nil
	rec.AwayAttackStrength = decimal.NullDecimal{}
	rec.AwayDefenseStrength = decimal.NullDecimal{}
}

func indexSnapshots(snaps []standing.Snapshot) (map[int64]standing.Snapshot, error) {
	out := make(map[int64]standing.Snapshot, len(snaps))
	var duplicated []int64
	for _, snap := range snaps {
		if _, exists := out[snap.TeamID]; exists {
			duplicated = append(duplicated, snap.TeamID)
			continue
		}
		out[snap.TeamID] = snap
	}
	if len(duplicated) > 0 {
		return nil, crerr.Wrapf(ErrJoinCardinality, "snapshot has duplicate rows for team ids %v", duplicated)
	}
	return out, nil
}

func product(factors ...decimal.NullDecimal) decimal.NullDecimal {
	result := decimal.NewFromInt(1)
	for _, factor := range factors {
		if !factor.Valid {
			return decimal.NullDecimal{}
		}
		result = result.Mul(factor.Decimal)
	}
	return decimal.NewNullDecimal(result)
}

func cloneRecords(records []Record) []Record {
	return append(make([]Record, 0, len(records)), records...)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}
