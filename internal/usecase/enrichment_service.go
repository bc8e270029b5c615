package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/weekendbets/internal/domain/enrichment"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type EnrichResult struct {
	Date    string
	AsOf    string
	Records []enrichment.Record
	Written bool
	Skipped bool
}

type EnrichmentService struct {
	store     partition.Store
	standings *StandingSnapshotService
	logger    *logging.Logger
}

func NewEnrichmentService(store partition.Store, standings *StandingSnapshotService, logger *logging.Logger) *EnrichmentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EnrichmentService{store: store, standings: standings, logger: logger}
}

// EnrichDate joins the current standings into the record set of date and
// rewrites it with expected goals. When a merge fails the partially joined
// records are returned and nothing is written.
func (s *EnrichmentService) EnrichDate(ctx context.Context, date, season string) (EnrichResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.EnrichDate")
	defer span.End()

	result := EnrichResult{Date: date}
	if _, err := partition.ParseDate(date); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	span.SetAttributes(attribute.String("pipeline.date", date), attribute.String("standing.season", season))

	key := partition.EnrichedKey(date)
	blob, found, err := s.store.Get(ctx, key)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return result, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	records, err := enrichment.Decode(blob)
	if err != nil {
		return result, err
	}
	result.Records = records

	current, err := s.standings.CurrentSnapshot(ctx, season, date)
	if err != nil {
		return result, err
	}
	result.AsOf = current.AsOf
	if !current.Found {
		s.logger.WarnContext(ctx, "standings snapshot not available, leaving records unchanged",
			"date", date,
			"season", season,
			"as_of", current.AsOf,
		)
		result.Skipped = true
		return result, nil
	}

	var mergeErrs []error
	joined, err := enrichment.JoinHome(result.Records, current.Rows)
	if err != nil {
		s.logger.ErrorContext(ctx, "home standings merge failed", "date", date, "as_of", current.AsOf, "error", err)
		mergeErrs = append(mergeErrs, err)
	} else {
		result.Records = joined
	}

	joined, err = enrichment.JoinAway(result.Records, current.Rows)
	if err != nil {
		s.logger.ErrorContext(ctx, "away standings merge failed", "date", date, "as_of", current.AsOf, "error", err)
		mergeErrs = append(mergeErrs, err)
	} else {
		result.Records = joined
	}

	if len(mergeErrs) > 0 {
		s.logger.ErrorContext(ctx, "error storing data", "date", date, "key", key)
		return result, fmt.Errorf("enrich date=%s: %w", date, errors.Join(mergeErrs...))
	}

	result.Records = enrichment.ComputeExpectedGoals(result.Records)
	enriched, err := enrichment.Encode(result.Records)
	if err != nil {
		return result, err
	}
	if err := s.store.Put(ctx, key, enriched); err != nil {
		return result, fmt.Errorf("store %s: %w", key, err)
	}
	result.Written = true

	s.logger.InfoContext(ctx, "enriched records stored",
		"date", date,
		"key", key,
		"as_of", current.AsOf,
		"records", len(result.Records),
	)
	return result, nil
}

func (s *EnrichmentService) EnrichWindow(ctx context.Context, dates []string, season string) ([]DateReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.EnrichWindow")
	defer span.End()

	return runDates(ctx, s.logger, StageEnrich, dates, 1, s.dateTask(season))
}

func (s *EnrichmentService) dateTask(season string) dateTask {
	return func(ctx context.Context, date string) (DateReport, error) {
		result, err := s.EnrichDate(ctx, date, season)
		if err != nil {
			return DateReport{}, err
		}
		report := DateReport{Records: len(result.Records)}
		if result.Skipped {
			report.Status = DateStatusSkipped
			report.Message = "no standings snapshot as of " + result.AsOf
		}
		return report, nil
	}
}
