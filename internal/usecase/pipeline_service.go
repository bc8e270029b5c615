package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/platform/id"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
)

// Window is a range of day offsets relative to the run day, both ends inclusive.
type Window struct {
	StartOffset int
	EndOffset   int
}

// Dates lists the window's days in ascending order.
func (w Window) Dates(today time.Time) []string {
	if w.EndOffset < w.StartOffset {
		return nil
	}
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	out := make([]string, 0, w.EndOffset-w.StartOffset+1)
	for offset := w.StartOffset; offset <= w.EndOffset; offset++ {
		out = append(out, partition.FormatDate(base.AddDate(0, 0, offset)))
	}
	return out
}

type PipelineConfig struct {
	Profile       odds.Profile
	OddsWindow    Window
	FixtureWindow Window
	EnrichWindow  Window
	DateWorkers   int
}

type PipelineService struct {
	odds      *OddsExtractionService
	fixtures  *FixtureExtractionService
	enrichers *EnrichmentService
	cfg       PipelineConfig
	runIDs    id.Generator
	logger    *logging.Logger
	now       func() time.Time
	beforeRun []func(context.Context)
}

func NewPipelineService(
	oddsSvc *OddsExtractionService,
	fixtureSvc *FixtureExtractionService,
	enrichSvc *EnrichmentService,
	cfg PipelineConfig,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DateWorkers <= 0 {
		cfg.DateWorkers = 1
	}
	cfg.Profile = cfg.Profile.Normalize()
	return &PipelineService{
		odds:      oddsSvc,
		fixtures:  fixtureSvc,
		enrichers: enrichSvc,
		cfg:       cfg,
		runIDs:    id.NewRunIDGenerator(),
		logger:    logger,
		now:       time.Now,
	}
}

// BeforeRun registers fn to be called at the start of every Run, such as
// dropping reference data cached by the previous run.
func (s *PipelineService) BeforeRun(fn func(context.Context)) {
	if fn != nil {
		s.beforeRun = append(s.beforeRun, fn)
	}
}

func (s *PipelineService) Stages() []Stage {
	return []Stage{StageOdds, StageFixtures, StageEnrich}
}

func (s *PipelineService) Window(stage Stage) (Window, error) {
	switch stage {
	case StageOdds:
		return s.cfg.OddsWindow, nil
	case StageFixtures:
		return s.cfg.FixtureWindow, nil
	case StageEnrich:
		return s.cfg.EnrichWindow, nil
	default:
		return Window{}, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}
}

// Run executes every stage over its own window, one stage after the other.
// Only ErrReferenceDataMissing or a cancelled context stop the run early.
func (s *PipelineService) Run(ctx context.Context, today time.Time) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	runID, err := s.runIDs.NewID()
	if err != nil {
		return RunReport{}, fmt.Errorf("generate run id: %w", err)
	}
	report := RunReport{
		RunID:     runID,
		Today:     partition.FormatDate(today),
		StartedAt: s.now().UTC(),
	}
	logger := s.logger.With("run_id", runID)
	for _, fn := range s.beforeRun {
		fn(ctx)
	}
	logger.InfoContext(ctx, "pipeline run started", "today", report.Today, "profile", s.cfg.Profile.String())

	for _, stage := range s.Stages() {
		window, _ := s.Window(stage)
		dates := window.Dates(today)
		items, err := s.RunStage(ctx, stage, dates)
		report.Dates = append(report.Dates, items...)
		if err != nil {
			report.Aborted = true
			report.FinishedAt = s.now().UTC()
			logger.ErrorContext(ctx, "pipeline run aborted", "stage", string(stage), "error", err)
			return report, err
		}
	}

	report.FinishedAt = s.now().UTC()
	logger.InfoContext(ctx, "pipeline run finished",
		"today", report.Today,
		"success", report.Count(DateStatusSuccess),
		"skipped", report.Count(DateStatusSkipped),
		"failed", report.Count(DateStatusFailed),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

// RunStage runs one stage for the given dates.
func (s *PipelineService) RunStage(ctx context.Context, stage Stage, dates []string) ([]DateReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.RunStage")
	defer span.End()

	var task dateTask
	switch stage {
	case StageOdds:
		task = s.odds.dateTask(s.cfg.Profile)
	case StageFixtures:
		task = s.fixtures.dateTask(s.cfg.Profile)
	case StageEnrich:
		task = s.enrichers.dateTask(s.cfg.Profile.Season)
	default:
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}

	for _, date := range dates {
		if _, err := partition.ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	reports, err := runDates(ctx, s.logger, stage, dates, s.cfg.DateWorkers, task)
	if err != nil && !errors.Is(err, ErrReferenceDataMissing) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return reports, fmt.Errorf("run %s stage: %w", stage, err)
	}
	return reports, err
}
