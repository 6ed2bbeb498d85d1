package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusPartial   RunStatus = "partial"
	RunStatusFailed    RunStatus = "failed"
)

// HarvestRun is the journal record for one pipeline execution. It holds
// operational metadata only, never listing content.
type HarvestRun struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	StartedAt      time.Time  `json:"started_at" db:"started_at"`
	FinishedAt     *time.Time `json:"finished_at" db:"finished_at"`
	Status         RunStatus  `json:"status" db:"status"`
	PagesFetched   int        `json:"pages_fetched" db:"pages_fetched"`
	SummariesFound int        `json:"summaries_found" db:"summaries_found"`
	Enriched       int        `json:"enriched" db:"enriched"`
	Dropped        int        `json:"dropped" db:"dropped"`
	ErrorsCount    int        `json:"errors_count" db:"errors_count"`
	SnapshotPath   string     `json:"snapshot_path" db:"snapshot_path"`
}

type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
