package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestRunDates_IsolatesPanicsAndErrors(t *testing.T) {
	t.Parallel()

	var calls []string
	task := func(_ context.Context, date string) (DateReport, error) {
		calls = append(calls, date)
		switch date {
		case "2024-08-16":
			panic("unexpected nil snapshot")
		case "2024-08-17":
			return DateReport{}, errors.New("feed timeout")
		}
		return DateReport{Records: 3}, nil
	}

	reports, err := runDates(context.Background(), logging.NewNop(), StageOdds, []string{"2024-08-18", "2024-08-16", "2024-08-17"}, 1, task)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-08-16", "2024-08-17", "2024-08-18"}, calls)
	require.Len(t, reports, 3)
	require.Equal(t, DateStatusFailed, reports[0].Status)
	require.Contains(t, reports[0].Message, "panic")
	require.Equal(t, DateStatusFailed, reports[1].Status)
	require.Equal(t, DateStatusSuccess, reports[2].Status)
	require.Equal(t, StageOdds, reports[2].Stage)
}

func TestRunDates_ReferenceFaultStopsLoop(t *testing.T) {
	t.Parallel()

	task := func(_ context.Context, date string) (DateReport, error) {
		if date == "2024-08-17" {
			return DateReport{}, ErrReferenceDataMissing
		}
		return DateReport{}, nil
	}

	reports, err := runDates(context.Background(), logging.NewNop(), StageFixtures, []string{"2024-08-16", "2024-08-17", "2024-08-18"}, 1, task)
	if !errors.Is(err, ErrReferenceDataMissing) {
		t.Fatalf("expected ErrReferenceDataMissing, got %v", err)
	}
	require.Len(t, reports, 2)
}

func TestRunDates_WorkerPoolKeepsDateOrder(t *testing.T) {
	t.Parallel()

	var processed atomic.Int32
	task := func(_ context.Context, _ string) (DateReport, error) {
		processed.Add(1)
		return DateReport{Records: 1}, nil
	}
	dates := []string{"2024-08-20", "2024-08-18", "2024-08-19", "2024-08-16", "2024-08-17"}

	reports, err := runDates(context.Background(), logging.NewNop(), StageEnrich, dates, 3, task)
	require.NoError(t, err)
	require.Equal(t, int32(len(dates)), processed.Load())
	require.Len(t, reports, len(dates))
	for i := 1; i < len(reports); i++ {
		if reports[i-1].Date >= reports[i].Date {
			t.Fatalf("reports out of order: %s before %s", reports[i-1].Date, reports[i].Date)
		}
	}
}
