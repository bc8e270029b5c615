package standing

import "context"

// Reader loads a pre-computed snapshot set. The bool is false when no
// snapshot exists for the pair, which is different from an empty set.
type Reader interface {
	ReadSnapshot(ctx context.Context, season, asOf string) ([]Snapshot, bool, error)
}

// Writer replaces the snapshot set of one (season, asOf) pair. An empty rows
// slice still marks the pair as present.
type Writer interface {
	WriteSnapshot(ctx context.Context, season, asOf string, rows []Snapshot) error
}
