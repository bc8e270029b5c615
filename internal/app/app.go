package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekendbets/external/apifootball"
	"github.com/riskibarqy/weekendbets/internal/config"
	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/odds"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	cacherepo "github.com/riskibarqy/weekendbets/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/document"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/weekendbets/internal/platform/cache"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
	"github.com/riskibarqy/weekendbets/internal/platform/resilience"
	"github.com/riskibarqy/weekendbets/internal/usecase"
)

// App holds the wired pipeline and the resources it owns.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Store    partition.Store
	Pipeline *usecase.PipelineService

	db      *sqlx.DB
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Store = store

	teams, leagues, standings, cache, err := a.referenceSources()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	feed := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		APIKey:     cfg.FeedAPIKey,
		APIHost:    cfg.FeedAPIHost,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	pipelineLogger := logger.Named("pipeline")
	a.Pipeline = usecase.NewPipelineService(
		usecase.NewOddsExtractionService(feed, store, pipelineLogger),
		usecase.NewFixtureExtractionService(feed, teams, leagues, store, pipelineLogger),
		usecase.NewEnrichmentService(store, usecase.NewStandingSnapshotService(standings, cfg.AnchorWeekday), pipelineLogger),
		PipelineConfig(cfg),
		pipelineLogger,
	)
	if cache != nil {
		a.Pipeline.BeforeRun(func(ctx context.Context) { cacherepo.Reset(ctx, cache) })
	}

	logger.Info("pipeline wired",
		"store_backend", cfg.StoreBackend,
		"reference_backend", cfg.ReferenceBackend,
		"cache_enabled", cfg.CacheEnabled,
		"date_workers", cfg.DateWorkers,
	)
	return a, nil
}

// PipelineConfig maps runtime configuration onto the pipeline's run parameters.
func PipelineConfig(cfg config.Config) usecase.PipelineConfig {
	return usecase.PipelineConfig{
		Profile: odds.Profile{
			Season:    cfg.Season,
			Bookmaker: cfg.Bookmaker,
			Bet:       cfg.Bet,
		},
		OddsWindow:    usecase.Window(cfg.OddsWindow),
		FixtureWindow: usecase.Window(cfg.FixtureWindow),
		EnrichWindow:  usecase.Window(cfg.EnrichWindow),
		DateWorkers:   cfg.DateWorkers,
	}
}

// ReferenceSync copies the document reference data held in the partition store
// into the Postgres reference tables.
func (a *App) ReferenceSync() (*usecase.ReferenceSyncService, error) {
	target, err := a.postgresReferenceTarget()
	if err != nil {
		return nil, err
	}
	source := usecase.ReferenceSource{
		Teams:     document.NewTeamDirectory(a.Store, a.Config.TeamsKey),
		Leagues:   document.NewLeagueDirectory(a.Store, a.Config.LeaguesKey),
		Standings: document.NewStandingRepository(a.Store),
	}
	return usecase.NewReferenceSyncService(source, target, a.Logger.Named("reference_sync")), nil
}

// Today is the current day in the configured pipeline timezone.
func (a *App) Today() time.Time {
	loc := a.Config.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) referenceSources() (team.Directory, league.Directory, standing.Reader, *basecache.Store, error) {
	var (
		teams     team.Directory
		leagues   league.Directory
		standings standing.Reader
	)

	switch a.Config.ReferenceBackend {
	case config.ReferenceDocument:
		teams = document.NewTeamDirectory(a.Store, a.Config.TeamsKey)
		leagues = document.NewLeagueDirectory(a.Store, a.Config.LeaguesKey)
		standings = document.NewStandingRepository(a.Store)
	case config.ReferencePostgres:
		db, err := a.postgres()
		if err != nil {
			return nil, nil, nil, nil, err
		}
		teams = postgres.NewTeamRepository(db)
		leagues = postgres.NewLeagueRepository(db)
		standings = postgres.NewStandingSnapshotRepository(db)
	default:
		return nil, nil, nil, nil, fmt.Errorf("unsupported REFERENCE_BACKEND %q", a.Config.ReferenceBackend)
	}

	if !a.Config.CacheEnabled {
		return teams, leagues, standings, nil, nil
	}
	cache := basecache.NewStore(a.Config.CacheTTL)
	return cacherepo.NewTeamDirectory(teams, cache),
		cacherepo.NewLeagueDirectory(leagues, cache),
		cacherepo.NewStandingReader(standings, cache),
		cache,
		nil
}
