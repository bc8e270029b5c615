package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type ReferenceSource struct {
	Teams     team.Directory
	Leagues   league.Directory
	Standings standing.Reader
}

type ReferenceTarget struct {
	Teams     team.Writer
	Leagues   league.Writer
	Standings standing.Writer
}

type ReferenceSyncResult struct {
	Teams     int      `json:"teams"`
	Leagues   int      `json:"leagues"`
	Snapshots []string `json:"snapshots"`
	Missing   []string `json:"missing,omitempty"`
}

// ReferenceSyncService copies team, league and standings reference data from
// one backend into another, typically documents into Postgres.
type ReferenceSyncService struct {
	source ReferenceSource
	target ReferenceTarget
	logger *logging.Logger
}

func NewReferenceSyncService(source ReferenceSource, target ReferenceTarget, logger *logging.Logger) *ReferenceSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReferenceSyncService{source: source, target: target, logger: logger}
}

// Sync copies both directories, then every listed snapshot set of season.
// Snapshot sets absent at the source are reported as missing, not failed.
func (s *ReferenceSyncService) Sync(ctx context.Context, season string, asOfs []string) (ReferenceSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.Sync", attribute.String("standing.season", season))
	defer span.End()

	if season == "" {
		return ReferenceSyncResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	ordered := append([]string(nil), asOfs...)
	sort.Strings(ordered)
	for _, asOf := range ordered {
		if _, err := partition.ParseDate(asOf); err != nil {
			return ReferenceSyncResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	result := ReferenceSyncResult{Snapshots: []string{}}

	teams, err := s.source.Teams.ListAll(ctx)
	if err != nil {
		return result, referenceError("team", err)
	}
	if err := s.target.Teams.UpsertTeams(ctx, teams); err != nil {
		return result, fmt.Errorf("sync teams: %w", err)
	}
	result.Teams = len(teams)

	leagues, err := s.source.Leagues.ListAll(ctx)
	if err != nil {
		return result, referenceError("league", err)
	}
	if err := s.target.Leagues.UpsertLeagues(ctx, leagues); err != nil {
		return result, fmt.Errorf("sync leagues: %w", err)
	}
	result.Leagues = len(leagues)

	for _, asOf := range ordered {
		rows, found, err := s.source.Standings.ReadSnapshot(ctx, season, asOf)
		if err != nil {
			return result, fmt.Errorf("read snapshot season=%s as_of=%s: %w", season, asOf, err)
		}
		if !found {
			s.logger.WarnContext(ctx, "standings snapshot not found at source", "season", season, "as_of", asOf)
			result.Missing = append(result.Missing, asOf)
			continue
		}
		if err := s.target.Standings.WriteSnapshot(ctx, season, asOf, rows); err != nil {
			return result, fmt.Errorf("write snapshot season=%s as_of=%s: %w", season, asOf, err)
		}
		result.Snapshots = append(result.Snapshots, asOf)
	}

	s.logger.InfoContext(ctx, "reference data synced",
		"season", season,
		"teams", result.Teams,
		"leagues", result.Leagues,
		"snapshots", len(result.Snapshots),
		"missing", len(result.Missing),
	)
	return result, nil
}
