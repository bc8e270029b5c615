package main

import (
	"testing"
	"time"
)

func TestRunDay(t *testing.T) {
	t.Parallel()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	now := time.Date(2024, 8, 17, 20, 0, 0, 0, time.UTC)

	got, err := runDay("", now, jakarta)
	if err != nil {
		t.Fatalf("resolve today: %v", err)
	}
	if got.Format("2006-01-02") != "2024-08-18" {
		t.Fatalf("expected run day in pipeline timezone, got %s", got)
	}

	got, err = runDay("2024-08-10", now, jakarta)
	if err != nil {
		t.Fatalf("resolve explicit date: %v", err)
	}
	if got.Format("2006-01-02") != "2024-08-10" || got.Location() != jakarta {
		t.Fatalf("unexpected explicit run day: %s", got)
	}

	if _, err := runDay("10/08/2024", now, jakarta); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestRootCommand_RegistersStages(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	for _, name := range []string{"run", "odds", "fixtures", "enrich", "schedule", "sync-reference"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil || root.PersistentFlags().Lookup("date") == nil {
		t.Fatalf("expected persistent config and date flags")
	}
}
