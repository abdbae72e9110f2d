package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/db"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

var started = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func okVerdicts() []app.PeriodVerdict {
	return []app.PeriodVerdict{
		{Period: models.PeriodWeek, StatusCode: 200, OK: true},
		{Period: models.PeriodMonth, StatusCode: 200, OK: true},
		{Period: models.PeriodYear, StatusCode: 200, OK: true},
	}
}

func TestWriteReport_Text(t *testing.T) {
	failed := okVerdicts()
	failed[2] = app.PeriodVerdict{
		Period: models.PeriodYear, StatusCode: 500,
		Message: `Period 'year' failed with status 500: {"error":"boom"}`,
	}

	tests := []struct {
		name   string
		report app.RunReport
	}{
		{
			name: "report_passed",
			report: app.RunReport{
				ID: "3f1c2a9e-0000-4000-8000-000000000001", BaseURL: "http://localhost:5000/api",
				StartedAt: started, FinishedAt: started.Add(1500 * time.Millisecond),
				Stage: app.StagePassed, Seed: app.SeedResult{Attempted: 60, Created: 60},
				Verdicts: okVerdicts(),
			},
		},
		{
			name: "report_failed",
			report: app.RunReport{
				ID: "3f1c2a9e-0000-4000-8000-000000000002", BaseURL: "http://localhost:5000/api",
				StartedAt: started, FinishedAt: started.Add(1500 * time.Millisecond),
				Stage: app.StageFailed, Seed: app.SeedResult{Attempted: 60, Created: 58},
				Verdicts: failed,
				Failures: []string{failed[2].Message},
			},
		},
		{
			name: "report_setup_error",
			report: app.RunReport{
				ID: "3f1c2a9e-0000-4000-8000-000000000003", BaseURL: "http://localhost:5000/api",
				StartedAt: started, FinishedAt: started.Add(20 * time.Millisecond),
				Stage:      app.StageStart,
				SetupError: "setup failed: unexpected status: login returned 401",
			},
		},
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeReport(&buf, "text", tt.report))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestWriteReport_JSON(t *testing.T) {
	report := app.RunReport{ID: "r1", Stage: app.StagePassed, Verdicts: okVerdicts()}
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "json", report))

	var got app.RunReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "r1", got.ID)
	assert.Len(t, got.Verdicts, 3)
}

func TestWriteRuns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRuns(&buf, "json", nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	runs := []db.RunSummary{{ID: "r1", BaseURL: "http://x/api", StartedAt: started, Stage: app.StagePassed, BillsCreated: 60}}
	require.NoError(t, writeRuns(&buf, "text", runs))
	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "r1")
	assert.Contains(t, buf.String(), "2026-10-14T12:00:00Z")
}

func TestWriteToken_OpaqueShowsLengthOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeToken(&buf, "text", app.TokenInfo{Length: 12}))
	assert.Equal(t, "login ok: token length 12\n", buf.String())
}
