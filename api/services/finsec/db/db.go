package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Works on both PostgreSQL and SQLite: TEXT timestamps in UTC RFC 3339 sort correctly.
const schema = `
CREATE TABLE IF NOT EXISTS harness_run (
    id TEXT PRIMARY KEY,
    base_url TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    stage TEXT NOT NULL,
    bills_attempted INTEGER NOT NULL,
    bills_created INTEGER NOT NULL,
    failure_count INTEGER NOT NULL,
    report TEXT NOT NULL
)`

// RunSummary is one row of run history.
type RunSummary struct {
	ID           string    `json:"id"`
	BaseURL      string    `json:"base_url"`
	StartedAt    time.Time `json:"started_at"`
	Stage        app.Stage `json:"stage"`
	BillsCreated int       `json:"bills_created"`
	FailureCount int       `json:"failure_count"`
}

// RunStore persists harness run reports.
type RunStore interface {
	SaveRun(ctx context.Context, report app.RunReport) error
	GetRun(ctx context.Context, id string) (app.RunReport, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

type sqlStore struct{ db *sql.DB }

func NewRunStore(db *sql.DB) RunStore { return sqlStore{db: db} }

// Migrate creates the run table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: create harness_run: %v", app.ErrDatabase, err)
	}
	return nil
}

func (s sqlStore) SaveRun(ctx context.Context, report app.RunReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: encode run %s: %v", app.ErrDatabase, report.ID, err)
	}
	failures := len(report.Failures)
	if report.SetupError != "" {
		failures++
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO harness_run (id, base_url, started_at, finished_at, stage, bills_attempted, bills_created, failure_count, report)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		report.ID, report.BaseURL, formatTime(report.StartedAt), formatTime(report.FinishedAt), string(report.Stage),
		report.Seed.Attempted, report.Seed.Created, failures, string(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: insert run %s: %v", app.ErrDatabase, report.ID, err)
	}
	return nil
}

func (s sqlStore) GetRun(ctx context.Context, id string) (app.RunReport, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM harness_run WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return app.RunReport{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return app.RunReport{}, fmt.Errorf("%w: get run %s: %v", app.ErrDatabase, id, err)
	}
	var report app.RunReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return app.RunReport{}, fmt.Errorf("%w: decode run %s: %v", app.ErrDatabase, id, err)
	}
	return report, nil
}

func (s sqlStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, base_url, started_at, stage, bills_created, failure_count
		 FROM harness_run ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list runs: %v", app.ErrDatabase, err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r       RunSummary
			started string
			stage   string
		)
		if err := rows.Scan(&r.ID, &r.BaseURL, &started, &stage, &r.BillsCreated, &r.FailureCount); err != nil {
			return nil, fmt.Errorf("%w: scan run: %v", app.ErrDatabase, err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("%w: run %s has bad started_at %q", app.ErrDatabase, r.ID, started)
		}
		r.Stage = app.Stage(stage)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list runs: %v", app.ErrDatabase, err)
	}
	return out, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
