package document

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/riskibarqy/weekendbets/internal/domain/league"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
)

const (
	leagueIDColumn      = "league.id"
	leagueNameColumn    = "league.name"
	leagueCountryColumn = "country.name"
)

// LeagueDirectory reads the league CSV with a league.id,league.name header and an
// optional country.name column. Column order is taken from the header; extra
// columns are ignored. Without a country column every country is empty.
type LeagueDirectory struct {
	store partition.Store
	key   string
}

func NewLeagueDirectory(store partition.Store, key string) *LeagueDirectory {
	return &LeagueDirectory{store: store, key: key}
}

func (r *LeagueDirectory) ListAll(ctx context.Context) ([]league.League, error) {
	blob, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read league directory %s: %w", r.key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", league.ErrDirectoryMissing, r.key)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(blob, []byte("\ufeff"))))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read league directory header %s: %w", r.key, err)
	}
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}
	for _, required := range []string{leagueIDColumn, leagueNameColumn} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("league directory %s: missing column %q", r.key, required)
		}
	}

	countryIdx, ok := columns[leagueCountryColumn]
	if !ok {
		countryIdx = -1
	}

	var out []league.League
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read league directory %s line %d: %w", r.key, line, err)
		}

		rawID := field(record, columns[leagueIDColumn])
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("league directory %s line %d: invalid league id %q", r.key, line, rawID)
		}
		item := league.League{
			ID:      id,
			Name:    field(record, columns[leagueNameColumn]),
			Country: field(record, countryIdx),
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("league directory %s line %d: %w", r.key, line, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
