package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/weekendbets/internal/domain/enrichment"
	"github.com/riskibarqy/weekendbets/internal/domain/fixture"
	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type FixtureExtractResult struct {
	Date     string
	Fixtures int
	Records  int
	HasOdds  bool
}

type FixtureExtractionService struct {
	feed    fixture.Feed
	teams   team.Directory
	leagues league.Directory
	store   partition.Store
	logger  *logging.Logger
}

func NewFixtureExtractionService(
	feed fixture.Feed,
	teams team.Directory,
	leagues league.Directory,
	store partition.Store,
	logger *logging.Logger,
) *FixtureExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureExtractionService{
		feed:    feed,
		teams:   teams,
		leagues: leagues,
		store:   store,
		logger:  logger,
	}
}

// ExtractDate stores the raw fixtures response for date, resolves team and
// league names, attaches the same-date odds and writes the record set.
func (s *FixtureExtractionService) ExtractDate(ctx context.Context, date string, profile odds.Profile) (FixtureExtractResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureExtractionService.ExtractDate")
	defer span.End()

	profile = profile.Normalize()
	if err := validateDateAndProfile(date, profile); err != nil {
		return FixtureExtractResult{}, err
	}
	span.SetAttributes(attribute.String("pipeline.date", date))

	result := FixtureExtractResult{Date: date}
	day, err := s.feed.FetchFixturesByDate(ctx, date)
	if err != nil {
		return result, fmt.Errorf("fetch fixtures: %w", err)
	}

	rawKey := partition.RawFixturesKey(date)
	if err := s.store.Put(ctx, rawKey, day.Raw); err != nil {
		return result, fmt.Errorf("store raw fixtures %s: %w", rawKey, err)
	}
	result.Fixtures = len(day.Fixtures)

	teams, err := s.teams.ListAll(ctx)
	if err != nil {
		return result, referenceError("team", err)
	}
	leagues, err := s.leagues.ListAll(ctx)
	if err != nil {
		return result, referenceError("league", err)
	}

	records := enrichment.FromFixtures(day.Fixtures, team.Index(teams), league.Index(leagues))

	quotes, found, err := s.readQuotes(ctx, date, profile)
	if err != nil {
		return result, err
	}
	if !found {
		s.logger.WarnContext(ctx, "odds not available for date, using empty placeholder",
			"date", date,
			"profile", profile.String(),
		)
	}
	result.HasOdds = found

	records = enrichment.AttachOdds(records, quotes)
	blob, err := enrichment.Encode(records)
	if err != nil {
		return result, err
	}
	key := partition.EnrichedKey(date)
	if err := s.store.Put(ctx, key, blob); err != nil {
		return result, fmt.Errorf("store fixtures with odds %s: %w", key, err)
	}

	result.Records = len(records)
	s.logger.InfoContext(ctx, "fixtures stored",
		"date", date,
		"key", key,
		"fixtures", result.Fixtures,
		"records", result.Records,
	)
	return result, nil
}

func (s *FixtureExtractionService) ExtractWindow(ctx context.Context, dates []string, profile odds.Profile) ([]DateReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureExtractionService.ExtractWindow")
	defer span.End()

	return runDates(ctx, s.logger, StageFixtures, dates, 1, s.dateTask(profile))
}

func (s *FixtureExtractionService) dateTask(profile odds.Profile) dateTask {
	return func(ctx context.Context, date string) (DateReport, error) {
		result, err := s.ExtractDate(ctx, date, profile)
		if err != nil {
			return DateReport{}, err
		}
		report := DateReport{Records: result.Records}
		if !result.HasOdds {
			report.Message = "no odds blob"
		}
		return report, nil
	}
}

func (s *FixtureExtractionService) readQuotes(ctx context.Context, date string, profile odds.Profile) ([]odds.Quote, bool, error) {
	key := partition.OddsKey(date, profile)
	blob, found, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("read odds %s: %w", key, err)
	}
	if !found {
		return []odds.Quote{}, false, nil
	}
	quotes, err := odds.DecodeQuotes(blob)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrMalformedFeed, key, err)
	}
	return quotes, true, nil
}

func referenceError(name string, err error) error {
	if errors.Is(err, team.ErrDirectoryMissing) || errors.Is(err, league.ErrDirectoryMissing) {
		return fmt.Errorf("%w: %s directory: %v", ErrReferenceDataMissing, name, err)
	}
	return fmt.Errorf("load %s directory: %w", name, err)
}
