package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/enrichment"
	"github.com/riskibarqy/weekendbets/internal/domain/fixture"
	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/memory"
	fixturemock "github.com/riskibarqy/weekendbets/internal/mocks/domain/fixture"
	oddsmock "github.com/riskibarqy/weekendbets/internal/mocks/domain/odds"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineHarness struct {
	oddsFeed    *oddsmock.Feed
	fixtureFeed *fixturemock.Feed
	store       *memory.PartitionStore
	service     *PipelineService
}

func newPipelineHarness(t *testing.T, window Window) pipelineHarness {
	t.Helper()

	oddsFeed := oddsmock.NewFeed(t)
	fixtureFeed := fixturemock.NewFeed(t)
	store := memory.NewPartitionStore()
	standings := memory.NewStandingRepository()
	standings.Store("2024", "2024-08-15", testSnapshots())

	service := NewPipelineService(
		NewOddsExtractionService(oddsFeed, store, nil),
		NewFixtureExtractionService(fixtureFeed, memory.NewTeamDirectory(testTeams()), memory.NewLeagueDirectory(testLeagues()), store, nil),
		NewEnrichmentService(store, NewStandingSnapshotService(standings, time.Thursday), nil),
		PipelineConfig{
			Profile:       testProfile,
			OddsWindow:    window,
			FixtureWindow: window,
			EnrichWindow:  window,
		},
		nil,
	)
	return pipelineHarness{oddsFeed: oddsFeed, fixtureFeed: fixtureFeed, store: store, service: service}
}

func TestWindow_Dates(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 8, 17, 23, 30, 0, 0, time.UTC)
	require.Equal(t, []string{"2024-08-15", "2024-08-16", "2024-08-17", "2024-08-18"}, Window{StartOffset: -2, EndOffset: 1}.Dates(today))
	require.Len(t, Window{StartOffset: -2, EndOffset: 8}.Dates(today), 11)
	require.Empty(t, Window{StartOffset: 2, EndOffset: 1}.Dates(today))
}

func TestPipelineService_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	date := "2024-08-17"
	h := newPipelineHarness(t, Window{})

	h.oddsFeed.On("FetchOddsPage", mock.Anything, pageQuery(date, 1)).
		Return([]odds.Row{oddsRow(101, "1.45", "4.50", "7.00")}, nil).Once()
	h.oddsFeed.On("FetchOddsPage", mock.Anything, pageQuery(date, 2)).Return(nil, nil).Once()
	h.fixtureFeed.On("FetchFixturesByDate", mock.Anything, date).
		Return(fixture.DayResult{Raw: []byte(rawFixturesPayload), Fixtures: testFixtures(date)}, nil).Once()

	report, err := h.service.Run(ctx, time.Date(2024, 8, 17, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.False(t, report.Aborted)
	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Dates, 3)
	require.Equal(t, 3, report.Count(DateStatusSuccess))

	blob, found, err := h.store.Get(ctx, partition.EnrichedKey(date))
	require.NoError(t, err)
	require.True(t, found)
	records, err := enrichment.Decode(blob)
	require.NoError(t, err)
	require.Len(t, records, 1, "fixture without odds is dropped")

	rec := records[0]
	assert.Equal(t, int64(101), rec.Fixture)
	assert.True(t, rec.HomeOdd.Valid && rec.DrawOdd.Valid && rec.AwayOdd.Valid)
	assert.True(t, rec.ExpectedHomeGoals.Decimal.Equal(decimal.RequireFromString("1.62")))
	assert.True(t, rec.ExpectedAwayGoals.Decimal.Equal(decimal.RequireFromString("0.96")))
}

func TestPipelineService_Run_RerunReplacesBlob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	date := "2024-08-17"
	h := newPipelineHarness(t, Window{})
	today := time.Date(2024, 8, 17, 6, 0, 0, 0, time.UTC)
	resets := 0
	h.service.BeforeRun(func(context.Context) { resets++ })

	h.oddsFeed.On("FetchOddsPage", mock.Anything, pageQuery(date, 1)).
		Return([]odds.Row{oddsRow(101, "1.45", "4.50", "7.00")}, nil).Once()
	h.oddsFeed.On("FetchOddsPage", mock.Anything, pageQuery(date, 2)).Return(nil, nil).Once()
	h.fixtureFeed.On("FetchFixturesByDate", mock.Anything, date).
		Return(fixture.DayResult{Raw: []byte(rawFixturesPayload), Fixtures: testFixtures(date)}, nil).Twice()

	_, err := h.service.Run(ctx, today)
	require.NoError(t, err)

	h.oddsFeed.On("FetchOddsPage", mock.Anything, pageQuery(date, 1)).
		Return([]odds.Row{oddsRow(101, "1.50", "4.40", "6.50"), oddsRow(102, "2.50", "3.20", "2.90")}, nil).Once()
	h.oddsFeed.On("FetchOddsPage", mock.Anything, pageQuery(date, 2)).Return(nil, nil).Once()

	_, err = h.service.Run(ctx, today)
	require.NoError(t, err)

	blob, _, err := h.store.Get(ctx, partition.EnrichedKey(date))
	require.NoError(t, err)
	records, err := enrichment.Decode(blob)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].HomeOdd.Decimal.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 2, resets)
}

func TestPipelineService_RunStage_UnknownStage(t *testing.T) {
	t.Parallel()

	h := newPipelineHarness(t, Window{})
	if _, err := h.service.RunStage(context.Background(), Stage("standings"), []string{"2024-08-17"}); err == nil {
		t.Fatalf("expected error for unknown stage")
	}
}
