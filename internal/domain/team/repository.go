package team

import (
	"context"
	"errors"
)

// ErrDirectoryMissing is returned when the directory source does not exist at all.
var ErrDirectoryMissing = errors.New("team directory missing")

// Directory is the full team reference table.
type Directory interface {
	ListAll(ctx context.Context) ([]Team, error)
}

// Writer persists directory entries, replacing existing ones by id.
type Writer interface {
	UpsertTeams(ctx context.Context, items []Team) error
}
