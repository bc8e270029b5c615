package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/team"
)

type TeamDirectory struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamDirectory(teams []team.Team) *TeamDirectory {
	return &TeamDirectory{teams: append([]team.Team(nil), teams...)}
}

func (r *TeamDirectory) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)
	return out, nil
}

// UpsertTeams overwrites entries with a matching id and appends the rest.
func (r *TeamDirectory) UpsertTeams(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		idx := slices.IndexFunc(r.teams, func(t team.Team) bool { return t.ID == item.ID })
		if idx >= 0 {
			r.teams[idx] = item
			continue
		}
		r.teams = append(r.teams, item)
	}
	return nil
}

type LeagueDirectory struct {
	mu      sync.RWMutex
	leagues []league.League
}

func NewLeagueDirectory(leagues []league.League) *LeagueDirectory {
	return &LeagueDirectory{leagues: append([]league.League(nil), leagues...)}
}

func (r *LeagueDirectory) ListAll(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.leagues))
	out = append(out, r.leagues...)
	return out, nil
}

func (r *LeagueDirectory) UpsertLeagues(_ context.Context, items []league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		idx := slices.IndexFunc(r.leagues, func(l league.League) bool { return l.ID == item.ID })
		if idx >= 0 {
			r.leagues[idx] = item
			continue
		}
		r.leagues = append(r.leagues, item)
	}
	return nil
}
