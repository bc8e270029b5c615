package usecase

import (
	"errors"

	"github.com/riskibarqy/weekendbets/internal/domain/enrichment"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrReferenceDataMissing aborts a whole run, not only the current date.
	ErrReferenceDataMissing = errors.New("reference data missing")
	ErrMalformedFeed        = errors.New("malformed feed payload")
	ErrJoinCardinality      = enrichment.ErrJoinCardinality
)
