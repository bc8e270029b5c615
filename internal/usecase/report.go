package usecase

import "time"

type Stage string

const (
	StageOdds     Stage = "odds"
	StageFixtures Stage = "fixtures"
	StageEnrich   Stage = "enrich"
)

type DateStatus string

const (
	DateStatusSuccess DateStatus = "success"
	DateStatusSkipped DateStatus = "skipped"
	DateStatusFailed  DateStatus = "failed"
)

// DateReport is the outcome of one stage for one date.
type DateReport struct {
	Stage    Stage         `json:"stage"`
	Date     string        `json:"date"`
	Status   DateStatus    `json:"status"`
	Records  int           `json:"records"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

type RunReport struct {
	RunID      string       `json:"run_id"`
	Today      string       `json:"today"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Aborted    bool         `json:"aborted"`
	Dates      []DateReport `json:"dates"`
}

func (r RunReport) Count(status DateStatus) int {
	total := 0
	for _, item := range r.Dates {
		if item.Status == status {
			total++
		}
	}
	return total
}
