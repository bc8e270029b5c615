package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
)

// CurrentSnapshot is the snapshot set in force for a date.
type CurrentSnapshot struct {
	Season string
	AsOf   string
	Rows   []standing.Snapshot
	Found  bool
}

type StandingSnapshotService struct {
	reader  standing.Reader
	weekday time.Weekday
}

func NewStandingSnapshotService(reader standing.Reader, weekday time.Weekday) *StandingSnapshotService {
	return &StandingSnapshotService{reader: reader, weekday: weekday}
}

// CurrentSnapshot reads the snapshot anchored at the latest configured weekday at or before date.
func (s *StandingSnapshotService) CurrentSnapshot(ctx context.Context, season, date string) (CurrentSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingSnapshotService.CurrentSnapshot")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return CurrentSnapshot{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	day, err := partition.ParseDate(date)
	if err != nil {
		return CurrentSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	asOf := partition.FormatDate(standing.AnchorDate(day, s.weekday))
	rows, found, err := s.reader.ReadSnapshot(ctx, season, asOf)
	if err != nil {
		return CurrentSnapshot{}, fmt.Errorf("read standings season=%s as_of=%s: %w", season, asOf, err)
	}

	return CurrentSnapshot{Season: season, AsOf: asOf, Rows: rows, Found: found}, nil
}
