package reconciler

import (
	"sync"
	"time"
)

// RunReport summarises one reconciler pass.
type RunReport struct {
	RunID            string        `json:"run_id"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	Duration         time.Duration `json:"duration_ns"`
	Candidates       int           `json:"candidates"`
	Unique           int           `json:"unique"`
	ThreeDayReminder int           `json:"reminders_3d"`
	OneDayReminder   int           `json:"reminders_1d"`
	Expired          int           `json:"expired"`
	RevokeFailures   int           `json:"revoke_failures"`
	SkippedRenewals  int           `json:"skipped_renewals"`
	NoAction         int           `json:"no_action"`
	RowErrors        int           `json:"row_errors"`
	ArchiveKey       string        `json:"archive_key,omitempty"`

	mu sync.Mutex
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeReminder3d
	outcomeReminder1d
	outcomeExpired
	outcomeRevokeFailed
	outcomeRenewed
	outcomeError
)

func (r *RunReport) record(o outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch o {
	case outcomeReminder3d:
		r.ThreeDayReminder++
	case outcomeReminder1d:
		r.OneDayReminder++
	case outcomeExpired:
		r.Expired++
	case outcomeRevokeFailed:
		r.RevokeFailures++
	case outcomeRenewed:
		r.SkippedRenewals++
	case outcomeError:
		r.RowErrors++
	default:
		r.NoAction++
	}
}

func (r *RunReport) finish(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinishedAt = at
	r.Duration = at.Sub(r.StartedAt)
}
