package model

import "time"

// RunStatus is the lifecycle state of an analysis run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusPartial RunStatus = "partial"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID        string    `json:"id"`
	DataFile  string    `json:"data_file"`
	Status    RunStatus `json:"status"`
	Summary   *Summary  `json:"summary,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunResult is what the pipeline returns upward: the outcome, the summary
// when one was produced, and any accumulated warnings.
type RunResult struct {
	RunID    string    `json:"run_id"`
	Status   RunStatus `json:"status"`
	Summary  *Summary  `json:"summary,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
	Error    string    `json:"error,omitempty"`
}
