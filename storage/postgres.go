package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"mls_harvester/models"
)

// PostgresJournal keeps run metadata in Postgres, selected when the journal
// DSN is a postgres:// URL.
type PostgresJournal struct {
	pool *pgxpool.Pool
}

func NewPostgresJournal(ctx context.Context, connString string) (*PostgresJournal, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	j := &PostgresJournal{pool: pool}
	if err := j.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return j, nil
}

func (j *PostgresJournal) Close() error {
	j.pool.Close()
	return nil
}

func (j *PostgresJournal) migrate(ctx context.Context) error {
	// pgx uses the extended protocol, so each statement runs on its own.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS harvest_runs (
			id UUID PRIMARY KEY,
			started_at TIMESTAMPTZ,
			finished_at TIMESTAMPTZ,
			status TEXT,
			pages_fetched INTEGER DEFAULT 0,
			summaries_found INTEGER DEFAULT 0,
			enriched INTEGER DEFAULT 0,
			dropped INTEGER DEFAULT 0,
			errors_count INTEGER DEFAULT 0,
			snapshot_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS harvest_logs (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID,
			timestamp TIMESTAMPTZ,
			level TEXT,
			message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON harvest_runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_run ON harvest_logs(run_id, timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := j.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (j *PostgresJournal) CreateRun(ctx context.Context, run *models.HarvestRun) error {
	_, err := j.pool.Exec(ctx, `
		INSERT INTO harvest_runs (id, started_at, status)
		VALUES ($1, $2, $3)`,
		run.ID, run.StartedAt, run.Status)
	return err
}

func (j *PostgresJournal) UpdateRun(ctx context.Context, run *models.HarvestRun) error {
	_, err := j.pool.Exec(ctx, `
		UPDATE harvest_runs SET finished_at = $1, status = $2, pages_fetched = $3,
			summaries_found = $4, enriched = $5, dropped = $6, errors_count = $7, snapshot_path = $8
		WHERE id = $9`,
		run.FinishedAt, run.Status, run.PagesFetched, run.SummariesFound,
		run.Enriched, run.Dropped, run.ErrorsCount, run.SnapshotPath, run.ID)
	return err
}

func (j *PostgresJournal) Log(ctx context.Context, runID uuid.UUID, level models.LogLevel, message string) error {
	_, err := j.pool.Exec(ctx, `
		INSERT INTO harvest_logs (run_id, timestamp, level, message)
		VALUES ($1, $2, $3, $4)`,
		runID, time.Now(), level, message)
	return err
}

func (j *PostgresJournal) RecentRuns(ctx context.Context, limit int) ([]models.HarvestRun, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT id, started_at, finished_at, status, pages_fetched, summaries_found,
			enriched, dropped, errors_count, COALESCE(snapshot_path, '')
		FROM harvest_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.HarvestRun
	for rows.Next() {
		var run models.HarvestRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status,
			&run.PagesFetched, &run.SummariesFound, &run.Enriched, &run.Dropped,
			&run.ErrorsCount, &run.SnapshotPath); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
