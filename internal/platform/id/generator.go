package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates opaque identifiers for pipeline runs.
type Generator interface {
	NewID() (string, error)
}

// RunIDGenerator yields ids that sort by start time, e.g. 20240817T060000Z-9f86d081.
type RunIDGenerator struct {
	now func() time.Time
}

func NewRunIDGenerator() *RunIDGenerator {
	return &RunIDGenerator{now: time.Now}
}

func (g *RunIDGenerator) NewID() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.now().UTC().Format("20060102T150405Z") + "-" + hex.EncodeToString(buf), nil
}
