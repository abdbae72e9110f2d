package db_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "github.com/tbeaudouin05/finsec-harness/api/database"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
	finsecdb "github.com/tbeaudouin05/finsec-harness/api/services/finsec/db"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

func sampleReport(id string, started time.Time, stage app.Stage) app.RunReport {
	return app.RunReport{
		ID:         id,
		BaseURL:    "http://localhost:5000/api",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Stage:      stage,
		Seed:       app.SeedResult{Attempted: 60, Created: 59, Failures: []string{"Failed to add bill due 2026-10-01 (status 500): "}},
		Verdicts: []app.PeriodVerdict{
			{Period: models.PeriodWeek, StatusCode: 200, OK: true},
			{Period: models.PeriodMonth, StatusCode: 200, OK: true},
			{Period: models.PeriodYear, StatusCode: 500, Message: "Period 'year' failed with status 500: boom"},
		},
		Failures: []string{"Period 'year' failed with status 500: boom"},
	}
}

func newSQLiteStore(t *testing.T) finsecdb.RunStore {
	t.Helper()
	conn, err := database.Open("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, finsecdb.Migrate(context.Background(), conn))
	return finsecdb.NewRunStore(conn)
}

func TestRunStore_SaveAndGet(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	started := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	want := sampleReport("run-a", started, app.StageFailed)

	require.NoError(t, store.SaveRun(ctx, want))
	got, err := store.GetRun(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Stage, got.Stage)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, want.Verdicts, got.Verdicts)
	assert.Equal(t, want.Failures, got.Failures)
	assert.Equal(t, []models.Period{models.PeriodYear}, got.FailedPeriods())
}

func TestRunStore_GetUnknown(t *testing.T) {
	store := newSQLiteStore(t)
	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, finsecdb.ErrRunNotFound)
}

func TestRunStore_ListNewestFirst(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, store.SaveRun(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Hour), app.StagePassed)))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
	assert.Equal(t, 59, runs[0].BillsCreated)
	assert.Equal(t, 1, runs[0].FailureCount)
	assert.Equal(t, app.StagePassed, runs[0].Stage)
}

func TestRunStore_DuplicateIDFails(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	r := sampleReport("dup", time.Now(), app.StagePassed)
	require.NoError(t, store.SaveRun(ctx, r))
	assert.ErrorIs(t, store.SaveRun(ctx, r), app.ErrDatabase)
}

func TestSaveRun_SQL(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	started := time.Date(2026, 10, 14, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	r := sampleReport("run-sql", started, app.StageFailed)
	r.SetupError = ""

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO harness_run")).
		WithArgs("run-sql", r.BaseURL, "2026-10-14T07:00:00Z", "2026-10-14T07:00:03Z", "failed", 60, 59, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, finsecdb.NewRunStore(conn).SaveRun(context.Background(), r))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRuns_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, base_url, started_at")).
		WithArgs(20).
		WillReturnError(errors.New("relation does not exist"))

	_, err = finsecdb.NewRunStore(conn).ListRuns(context.Background(), 0)
	assert.ErrorIs(t, err, app.ErrDatabase)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_WrapsError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS harness_run").WillReturnError(errors.New("permission denied"))
	assert.ErrorIs(t, finsecdb.Migrate(context.Background(), conn), app.ErrDatabase)
}
