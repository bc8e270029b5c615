package app

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/weekendbets/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/weekendbets/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

var (
	traceWhitespace = regexp.MustCompile(`\s+`)
	traceLiteral    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// postgresTarget is the resolved connection string plus the database name
// reported on spans.
type postgresTarget struct {
	DSN  string
	Name string
}

// resolvePostgresTarget accepts URL or key=value DSNs. With disablePreparedBinary
// URL DSNs get disable_prepared_binary_result=yes unless already set, which
// pgbouncer transaction pooling needs.
func resolvePostgresTarget(raw string, disablePreparedBinary bool) (postgresTarget, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return postgresTarget{}, fmt.Errorf("DB_URL is required for postgres backends")
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return postgresTarget{DSN: raw, Name: keywordDBName(raw)}, nil
	}

	target := postgresTarget{DSN: raw, Name: strings.TrimPrefix(parsed.Path, "/")}
	if disablePreparedBinary {
		query := parsed.Query()
		if query.Get("disable_prepared_binary_result") == "" {
			query.Set("disable_prepared_binary_result", "yes")
			parsed.RawQuery = query.Encode()
			target.DSN = parsed.String()
		}
	}
	return target, nil
}

func keywordDBName(dsn string) string {
	for _, token := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace and masks string literals so
// inlined blob keys do not end up in span attributes.
func formatDBQueryForTrace(query string) string {
	query = traceWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	query = traceLiteral.ReplaceAllString(query, "'?'")
	if len(query) <= maxTracedQueryLength {
		return query
	}
	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}

// postgres opens the shared Postgres handle on first use.
func (a *App) postgres() (*sqlx.DB, error) {
	if a.db != nil {
		return a.db, nil
	}

	target, err := resolvePostgresTarget(a.Config.DBURL, a.Config.DBDisablePreparedBinary)
	if err != nil {
		return nil, err
	}

	db, err := otelsqlx.Open(
		"postgres",
		target.DSN,
		otelsql.WithDBName(target.Name),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	a.db = db
	a.closers = append(a.closers, db.Close)
	a.Logger.Info("postgres connection configured", "db_name", target.Name)
	return db, nil
}

// postgresReferenceTarget is where sync-reference writes teams, leagues and snapshots.
func (a *App) postgresReferenceTarget() (usecase.ReferenceTarget, error) {
	db, err := a.postgres()
	if err != nil {
		return usecase.ReferenceTarget{}, err
	}
	return usecase.ReferenceTarget{
		Teams:     postgres.NewTeamRepository(db),
		Leagues:   postgres.NewLeagueRepository(db),
		Standings: postgres.NewStandingSnapshotRepository(db),
	}, nil
}
