package router

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/gateway/httpgw"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Local HTTP integration tests: the real gateway and service against the stub.

func newHarness(base string, creds models.Credentials) app.Service {
	return app.NewService(httpgw.New(base+"/api", httpgw.Options{}), app.Options{
		Credentials: creds,
		BaseURL:     base + "/api",
		Rand:        app.NewRand(1),
		Clock:       func() time.Time { return stubNow },
	})
}

var stubCreds = models.Credentials{Email: "layla.hassan@example.com", Password: "password123"}

func TestSpendingAnalyticsHTTP_Integration(t *testing.T) {
	stub, ts := newStubServer(t)

	report, err := newHarness(ts.URL, stubCreds).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed(), "failures: %v", report.Failures)
	assert.Equal(t, 1, stub.Logins())
	assert.Len(t, stub.Bills(), 60)
	assert.Equal(t, 60, report.Seed.Created)
	for _, v := range report.Verdicts {
		assert.Equal(t, http.StatusOK, v.StatusCode)
	}
}

func TestSpendingAnalyticsHTTP_YearFailure_Integration(t *testing.T) {
	_, ts := newStubServer(t, WithPeriodStatus(models.PeriodYear, http.StatusInternalServerError))

	report, err := newHarness(ts.URL, stubCreds).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Passed())
	assert.Equal(t, []models.Period{models.PeriodYear}, report.FailedPeriods())
	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), "Period 'year' failed with status 500")
}

func TestSpendingAnalyticsHTTP_LoginFailure_Integration(t *testing.T) {
	stub, ts := newStubServer(t)

	_, err := newHarness(ts.URL, models.Credentials{Email: "layla.hassan@example.com", Password: "wrong"}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrSetup)
	assert.Empty(t, stub.Bills(), "no seeding after failed login")
}

func TestSpendingAnalyticsHTTP_SeedingRejected_Integration(t *testing.T) {
	stub, ts := newStubServer(t, WithBillStatus(http.StatusServiceUnavailable))

	report, err := newHarness(ts.URL, stubCreds).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed(), "seeding failures are soft")
	assert.Zero(t, report.Seed.Created)
	assert.Len(t, report.Seed.Failures, 60)
	assert.Empty(t, stub.Bills())
}
