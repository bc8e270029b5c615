package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

// dateTask runs one stage for one date. A report with an empty status counts as success.
type dateTask func(ctx context.Context, date string) (DateReport, error)

// runDates executes task for every date in ascending order. A failing or
// panicking date is reported and the loop moves on; ErrReferenceDataMissing
// stops the loop and is returned with the reports gathered so far.
// With workers > 1 dates run on an ants pool and reports are re-sorted by date.
func runDates(ctx context.Context, logger *logging.Logger, stage Stage, dates []string, workers int, task dateTask) ([]DateReport, error) {
	ordered := append([]string(nil), dates...)
	sort.Strings(ordered)

	if workers <= 1 || len(ordered) <= 1 {
		reports := make([]DateReport, 0, len(ordered))
		for _, date := range ordered {
			if err := ctx.Err(); err != nil {
				return reports, err
			}
			report, err := runDate(ctx, logger, stage, date, task)
			reports = append(reports, report)
			if errors.Is(err, ErrReferenceDataMissing) {
				return reports, err
			}
		}
		return reports, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create date worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		reports  = make([]DateReport, 0, len(ordered))
		abortErr error
		wg       sync.WaitGroup
	)
	for _, date := range ordered {
		date := date
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			report, err := runDate(ctx, logger, stage, date, task)

			mu.Lock()
			defer mu.Unlock()
			reports = append(reports, report)
			if errors.Is(err, ErrReferenceDataMissing) && abortErr == nil {
				abortErr = err
				cancel()
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return reports, fmt.Errorf("submit date to worker pool: %w", err)
		}
	}
	wg.Wait()

	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Date < reports[j].Date })
	return reports, abortErr
}

func runDate(ctx context.Context, logger *logging.Logger, stage Stage, date string, task dateTask) (DateReport, error) {
	start := time.Now()
	ctx, span := startUsecaseSpan(ctx, "usecase.date."+string(stage),
		attribute.String("pipeline.stage", string(stage)),
		attribute.String("pipeline.date", date),
	)

	var (
		catcher panics.Catcher
		report  DateReport
		err     error
	)
	catcher.Try(func() {
		report, err = task(ctx, date)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = fmt.Errorf("panic in %s stage: %w", stage, recovered.AsError())
	}

	report.Stage = stage
	report.Date = date
	report.Duration = time.Since(start)
	switch {
	case err != nil:
		report.Status = DateStatusFailed
		report.Message = err.Error()
		logger.ErrorContext(ctx, "date failed", "stage", string(stage), "date", date, "error", err)
	case report.Status == "":
		report.Status = DateStatusSuccess
	}
	if err == nil {
		logger.InfoContext(ctx, "date finished",
			"stage", string(stage),
			"date", date,
			"status", string(report.Status),
			"records", report.Records,
			"duration", report.Duration,
		)
	}
	finishDateSpan(span, report, err)
	return report, err
}
