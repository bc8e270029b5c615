package league

import (
	"context"
	"errors"
)

var ErrDirectoryMissing = errors.New("league directory missing")

// Directory is the full league reference table.
type Directory interface {
	ListAll(ctx context.Context) ([]League, error)
}

type Writer interface {
	UpsertLeagues(ctx context.Context, items []League) error
}
