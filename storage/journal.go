package storage

import (
	"context"

	"github.com/google/uuid"
	"mls_harvester/models"
)

// RunJournal records harvest run metadata and log lines. It never stores
// listing content; the snapshot file is the only place listings live.
type RunJournal interface {
	CreateRun(ctx context.Context, run *models.HarvestRun) error
	UpdateRun(ctx context.Context, run *models.HarvestRun) error
	Log(ctx context.Context, runID uuid.UUID, level models.LogLevel, message string) error
	RecentRuns(ctx context.Context, limit int) ([]models.HarvestRun, error)
	Close() error
}

// IndexSink receives the finished snapshot file. Implementations are
// external collaborators; only the file-path contract is modeled here.
type IndexSink interface {
	Publish(ctx context.Context, path string) error
}
