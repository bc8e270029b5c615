package enrichment

import (
	"bytes"
	"errors"
	"testing"

	"github.com/riskibarqy/weekendbets/internal/domain/fixture"
	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sampleFixtures() []fixture.Fixture {
	two, one := 2, 1
	return []fixture.Fixture{
		{ID: 2002, Date: "2024-08-17T14:00:00+00:00", LeagueID: 39, Season: 2024, HomeTeamID: 40, AwayTeamID: 49},
		{ID: 1001, Date: "2024-08-17T11:30:00+00:00", LeagueID: 39, Season: 2024, HomeTeamID: 33, AwayTeamID: 36, HomeGoals: &two, AwayGoals: &one},
	}
}

func sampleDirectories() (map[int64]team.Team, map[int64]league.League) {
	teams := team.Index([]team.Team{
		{ID: 33, Name: "Manchester United"},
		{ID: 36, Name: "Fulham"},
		{ID: 40, Name: "Liverpool"},
	})
	leagues := league.Index([]league.League{{ID: 39, Name: "Premier League", Country: "England"}})
	return teams, leagues
}

func TestFromFixtures_LeftJoinsDirectories(t *testing.T) {
	t.Parallel()

	teams, leagues := sampleDirectories()
	got := FromFixtures(sampleFixtures(), teams, leagues)

	require.Len(t, got, 2)
	require.Equal(t, int64(1001), got[0].Fixture)
	require.Equal(t, "Manchester United", *got[0].HomeTeam)
	require.Equal(t, "Fulham", *got[0].AwayTeam)
	require.Equal(t, "Premier League", *got[0].League)
	require.Equal(t, "England", *got[0].Country)
	require.Equal(t, 2, *got[0].HomeGoals)

	// Team 49 is not in the directory: the fixture stays, the name is null.
	require.Equal(t, int64(2002), got[1].Fixture)
	require.Equal(t, "Liverpool", *got[1].HomeTeam)
	require.Nil(t, got[1].AwayTeam)
	require.Nil(t, got[1].HomeGoals)
}

func TestAttachOdds_DropsRowsWithoutDrawOdd(t *testing.T) {
	t.Parallel()

	teams, leagues := sampleDirectories()
	records := FromFixtures(sampleFixtures(), teams, leagues)
	quotes := []odds.Quote{{FixtureID: 1001, Home: dec("1.45"), Draw: dec("4.5"), Away: dec("7")}}

	got := AttachOdds(records, quotes)
	require.Len(t, got, 1)
	require.Equal(t, int64(1001), got[0].Fixture)
	require.True(t, got[0].DrawOdd.Valid)
	require.Equal(t, "1.45", got[0].HomeOdd.Decimal.String())

	require.Empty(t, AttachOdds(records, nil))
}

func TestJoin_ComputesExpectedGoals(t *testing.T) {
	t.Parallel()

	records := []Record{{Fixture: 1001, HomeID: 33, AwayID: 36, DrawOdd: decimal.NewNullDecimal(dec("4.5"))}}
	snaps := []standing.Snapshot{
		{TeamID: 33, Rank: 3, Points: 40, GoalDifference: 12, Form: "WWDLW", AttackStrength: dec("1.2"), DefenseStrength: dec("0.8"), LeagueHomeAvgGoals: dec("1.5"), LeagueAwayAvgGoals: dec("1.2")},
		{TeamID: 36, Rank: 11, Points: 27, GoalDifference: -3, Form: "LDLWD", AttackStrength: dec("0.95"), DefenseStrength: dec("0.9"), LeagueHomeAvgGoals: dec("1.5"), LeagueAwayAvgGoals: dec("1.2")},
	}

	home, err := JoinHome(records, snaps)
	require.NoError(t, err)
	away, err := JoinAway(home, snaps)
	require.NoError(t, err)
	got := ComputeExpectedGoals(away)

	require.Len(t, got, 1)
	assert.Equal(t, "1.62", got[0].ExpectedHomeGoals.Decimal.String())
	assert.Equal(t, "0.912", got[0].ExpectedAwayGoals.Decimal.String())
	assert.Equal(t, 3, *got[0].HomeRank)
	assert.Equal(t, "LDLWD", *got[0].AwayForm)

	// Inputs are left untouched.
	assert.Nil(t, records[0].HomeRank)
}

func TestJoin_DuplicateSnapshotRowsAbortMerge(t *testing.T) {
	t.Parallel()

	records := []Record{{Fixture: 1001, HomeID: 33, AwayID: 36}}
	snaps := []standing.Snapshot{
		{TeamID: 33, Rank: 3},
		{TeamID: 33, Rank: 4},
		{TeamID: 36, Rank: 11},
	}

	got, err := JoinHome(records, snaps)
	if !errors.Is(err, ErrJoinCardinality) {
		t.Fatalf("expected ErrJoinCardinality, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no records on failed merge, got %d", len(got))
	}
	if _, err := JoinAway(records, snaps); !errors.Is(err, ErrJoinCardinality) {
		t.Fatalf("expected ErrJoinCardinality on away merge, got %v", err)
	}
}

func TestJoin_UnmatchedTeamsClearEarlierValues(t *testing.T) {
	t.Parallel()

	rank, form := 1, "WWWWW"
	records := []Record{{
		Fixture:             1001,
		HomeID:              33,
		AwayID:              36,
		HomeRank:            &rank,
		HomeForm:            &form,
		HomeAttackStrength:  decimal.NewNullDecimal(dec("1.2")),
		AwayRank:            &rank,
		AwayDefenseStrength: decimal.NewNullDecimal(dec("0.8")),
		LeagueHomeAvgGoals:  decimal.NewNullDecimal(dec("9.9")),
		LeagueAwayAvgGoals:  decimal.NewNullDecimal(dec("9.9")),
	}}
	snaps := []standing.Snapshot{
		{TeamID: 36, Rank: 11, AttackStrength: dec("0.95"), DefenseStrength: dec("0.9"), LeagueHomeAvgGoals: dec("1.5"), LeagueAwayAvgGoals: dec("1.2")},
	}

	home, err := JoinHome(records, snaps)
	require.NoError(t, err)
	away, err := JoinAway(home, snaps)
	require.NoError(t, err)
	got := ComputeExpectedGoals(away)

	require.Len(t, got, 1)
	assert.Nil(t, got[0].HomeRank)
	assert.Nil(t, got[0].HomeForm)
	assert.False(t, got[0].HomeAttackStrength.Valid)
	assert.Equal(t, 11, *got[0].AwayRank)
	assert.Equal(t, "1.5", got[0].LeagueHomeAvgGoals.Decimal.String())
	assert.Equal(t, "1.2", got[0].LeagueAwayAvgGoals.Decimal.String())
	assert.False(t, got[0].ExpectedHomeGoals.Valid)
	assert.False(t, got[0].ExpectedAwayGoals.Valid)
}

func TestComputeExpectedGoals_NullFactorLeavesNull(t *testing.T) {
	t.Parallel()

	records := []Record{{
		Fixture:             1001,
		HomeAttackStrength:  decimal.NewNullDecimal(dec("1.2")),
		LeagueHomeAvgGoals:  decimal.NewNullDecimal(dec("1.5")),
		HomeDefenseStrength: decimal.NewNullDecimal(dec("0.8")),
	}}

	got := ComputeExpectedGoals(records)
	require.False(t, got[0].ExpectedHomeGoals.Valid)
	require.False(t, got[0].ExpectedAwayGoals.Valid)
}

func TestCodec_IsDeterministic(t *testing.T) {
	t.Parallel()

	teams, leagues := sampleDirectories()
	records := AttachOdds(FromFixtures(sampleFixtures(), teams, leagues), []odds.Quote{
		{FixtureID: 1001, Home: dec("1.45"), Draw: dec("4.50"), Away: dec("7.00")},
	})

	first, err := Encode(records)
	require.NoError(t, err)

	decoded, err := Decode(first)
	require.NoError(t, err)
	second, err := Encode(decoded)
	require.NoError(t, err)

	require.True(t, bytes.Equal(first, second), "re-encoding changed the blob:\n%s\n%s", first, second)
	require.Contains(t, string(first), `"Draw odd":"4.5"`)
	require.Contains(t, string(first), `"Home rank":null`)

	empty, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(empty))
}
