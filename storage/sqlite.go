package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"mls_harvester/models"
)

// SQLiteJournal is the default run journal, a single local file.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return j, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func (j *SQLiteJournal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS harvest_runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		pages_fetched INTEGER DEFAULT 0,
		summaries_found INTEGER DEFAULT 0,
		enriched INTEGER DEFAULT 0,
		dropped INTEGER DEFAULT 0,
		errors_count INTEGER DEFAULT 0,
		snapshot_path TEXT
	);

	CREATE TABLE IF NOT EXISTS harvest_logs (
		id INTEGER PRIMARY KEY,
		run_id TEXT,
		timestamp DATETIME,
		level TEXT,
		message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON harvest_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_logs_run ON harvest_logs(run_id, timestamp);
	`
	_, err := j.db.Exec(schema)
	return err
}

func (j *SQLiteJournal) CreateRun(ctx context.Context, run *models.HarvestRun) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO harvest_runs (id, started_at, status)
		VALUES (?, ?, ?)`,
		run.ID.String(), run.StartedAt, run.Status)
	return err
}

func (j *SQLiteJournal) UpdateRun(ctx context.Context, run *models.HarvestRun) error {
	_, err := j.db.ExecContext(ctx, `
		UPDATE harvest_runs SET finished_at = ?, status = ?, pages_fetched = ?,
			summaries_found = ?, enriched = ?, dropped = ?, errors_count = ?, snapshot_path = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, run.PagesFetched, run.SummariesFound,
		run.Enriched, run.Dropped, run.ErrorsCount, run.SnapshotPath, run.ID.String())
	return err
}

func (j *SQLiteJournal) Log(ctx context.Context, runID uuid.UUID, level models.LogLevel, message string) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO harvest_logs (run_id, timestamp, level, message)
		VALUES (?, ?, ?, ?)`,
		runID.String(), time.Now(), level, message)
	return err
}

func (j *SQLiteJournal) RecentRuns(ctx context.Context, limit int) ([]models.HarvestRun, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, status, pages_fetched, summaries_found,
			enriched, dropped, errors_count, COALESCE(snapshot_path, '')
		FROM harvest_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.HarvestRun
	for rows.Next() {
		var run models.HarvestRun
		var id string
		if err := rows.Scan(&id, &run.StartedAt, &run.FinishedAt, &run.Status,
			&run.PagesFetched, &run.SummariesFound, &run.Enriched, &run.Dropped,
			&run.ErrorsCount, &run.SnapshotPath); err != nil {
			return nil, err
		}
		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
