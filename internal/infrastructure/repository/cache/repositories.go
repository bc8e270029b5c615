package cache

import (
	"context"

	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
	basecache "github.com/riskibarqy/weekendbets/internal/platform/cache"
)

const (
	teamKeyPrefix     = "team:"
	leagueKeyPrefix   = "league:"
	standingKeyPrefix = "standing:"
)

// Reset drops every reference entry the decorators in this package cached in store.
func Reset(ctx context.Context, store *basecache.Store) {
	if store == nil {
		return
	}
	for _, prefix := range []string{teamKeyPrefix, leagueKeyPrefix, standingKeyPrefix} {
		store.DeletePrefix(ctx, prefix)
	}
}

type TeamDirectory struct {
	next  team.Directory
	cache *basecache.Store
}

func NewTeamDirectory(next team.Directory, cache *basecache.Store) *TeamDirectory {
	return &TeamDirectory{next: next, cache: cache}
}

func (r *TeamDirectory) ListAll(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamKeyPrefix+"all", func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

type LeagueDirectory struct {
	next  league.Directory
	cache *basecache.Store
}

func NewLeagueDirectory(next league.Directory, cache *basecache.Store) *LeagueDirectory {
	return &LeagueDirectory{next: next, cache: cache}
}

func (r *LeagueDirectory) ListAll(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, leagueKeyPrefix+"all", func(ctx context.Context) ([]league.League, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

type StandingReader struct {
	next  standing.Reader
	cache *basecache.Store
}

func NewStandingReader(next standing.Reader, cache *basecache.Store) *StandingReader {
	return &StandingReader{next: next, cache: cache}
}

// ReadSnapshot caches absent results too, so dates sharing an anchor read once.
func (r *StandingReader) ReadSnapshot(ctx context.Context, season, asOf string) ([]standing.Snapshot, bool, error) {
	key := standingKeyPrefix + season + ":" + asOf
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedSnapshot, error) {
		rows, exists, err := r.next.ReadSnapshot(ctx, season, asOf)
		if err != nil {
			return cachedSnapshot{}, err
		}
		return cachedSnapshot{rows: append([]standing.Snapshot(nil), rows...), exists: exists}, nil
	})
	if err != nil {
		return nil, false, err
	}
	if !cached.exists {
		return nil, false, nil
	}
	return append([]standing.Snapshot{}, cached.rows...), true, nil
}

type cachedSnapshot struct {
	rows   []standing.Snapshot
	exists bool
}
