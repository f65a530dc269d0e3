package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed-width UTC timestamps so that text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var ErrRunNotFound = errors.New("run not found")

// RunStatus is the outcome of a pipeline run
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord represents a pipeline run in the database
type RunRecord struct {
	ID            string    `json:"id" example:"6f1c2a9e-8d4b-4a55-9a43-2f0e8c9b1d20"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Status        RunStatus `json:"status" example:"succeeded"`
	LocationIDs   []string  `json:"location_ids"`
	Rows          int       `json:"rows" example:"80"`
	RawPath       string    `json:"raw_path,omitempty" example:"data/raw_data.csv"`
	ProcessedPath string    `json:"processed_path,omitempty" example:"data/data_processed.csv"`
	FailedStage   string    `json:"failed_stage,omitempty" example:"fetch"`
	ErrorKind     string    `json:"error_kind,omitempty" example:"transport"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// RunStorage is the run ledger
type RunStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRunStorage opens (or creates) the run ledger at dbPath
func NewRunStorage(dbPath string, logger *slog.Logger) (*RunStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}

	s := &RunStorage{
		db:     db,
		logger: logger.With("component", "run-storage"),
	}

	if err := s.initDB(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Debug("run ledger ready", "path", dbPath)
	return s, nil
}

// initDB initializes the database tables
func (s *RunStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			status TEXT NOT NULL,
			location_ids TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			raw_path TEXT,
			processed_path TEXT,
			failed_stage TEXT,
			error_kind TEXT,
			error_message TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`)
	if err != nil {
		return fmt.Errorf("failed to create started_at index: %w", err)
	}

	return nil
}

// Close closes the database
func (s *RunStorage) Close() error {
	return s.db.Close()
}

// SaveRun stores a run record, replacing any record with the same id
func (s *RunStorage) SaveRun(ctx context.Context, run *RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
		(id, started_at, finished_at, status, location_ids, row_count, raw_path, processed_path, failed_stage, error_kind, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		string(run.Status),
		strings.Join(run.LocationIDs, ","),
		run.Rows,
		run.RawPath,
		run.ProcessedPath,
		run.FailedStage,
		run.ErrorKind,
		run.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// GetRun returns the run with the given id
func (s *RunStorage) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, status, location_ids, row_count, raw_path, processed_path, failed_stage, error_kind, error_message
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first
func (s *RunStorage) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, status, location_ids, row_count, raw_path, processed_path, failed_stage, error_kind, error_message
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*RunRecord, error) {
	var (
		run                    RunRecord
		startedAt, finishedAt  string
		status, locationIDs    string
		rawPath, processedPath sql.NullString
		failedStage, errorKind sql.NullString
		errorMessage           sql.NullString
	)

	if err := sc.Scan(&run.ID, &startedAt, &finishedAt, &status, &locationIDs, &run.Rows,
		&rawPath, &processedPath, &failedStage, &errorKind, &errorMessage); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
		return nil, fmt.Errorf("invalid finished_at %q: %w", finishedAt, err)
	}

	run.Status = RunStatus(status)
	if locationIDs != "" {
		run.LocationIDs = strings.Split(locationIDs, ",")
	}
	run.RawPath = rawPath.String
	run.ProcessedPath = processedPath.String
	run.FailedStage = failedStage.String
	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMessage.String

	return &run, nil
}
