package app

import (
	"errors"
	"strings"
	"time"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Session carries the access token from login to every later call.
// It is passed by value; nothing about it is global.
type Session struct {
	Token           models.AccessToken
	AuthenticatedAt time.Time
}

// SeedResult summarizes one best-effort seeding batch.
type SeedResult struct {
	Attempted int      `json:"attempted"`
	Created   int      `json:"created"`
	Failures  []string `json:"failures,omitempty"`
}

// PeriodVerdict is the outcome of checking one analytics period.
type PeriodVerdict struct {
	Period     models.Period `json:"period"`
	StatusCode int           `json:"status_code"`
	OK         bool          `json:"ok"`
	Message    string        `json:"message,omitempty"`
}

type Stage string

const (
	StageStart         Stage = "start"
	StageAuthenticated Stage = "authenticated"
	StageSeeded        Stage = "seeded"
	StageVerified      Stage = "verified"
	StagePassed        Stage = "passed"
	StageFailed        Stage = "failed"
)

// FailureHeader prefixes the aggregated failure report.
const FailureHeader = "Failures occurred during spending analytics test:"

// RunReport is the full record of one harness run.
type RunReport struct {
	ID         string          `json:"id"`
	BaseURL    string          `json:"base_url"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Stage      Stage           `json:"stage"`
	Seed       SeedResult      `json:"seed"`
	Verdicts   []PeriodVerdict `json:"verdicts"`
	Failures   []string        `json:"failures"`
	SetupError string          `json:"setup_error,omitempty"`
}

// Passed reports whether the run completed with no accumulated failures.
func (r RunReport) Passed() bool { return r.Stage == StagePassed }

// Err returns nil for a passing run, otherwise every failure in one error.
func (r RunReport) Err() error {
	if r.SetupError != "" {
		return errors.New(r.SetupError)
	}
	if len(r.Failures) == 0 {
		return nil
	}
	return errors.New(FailureHeader + "\n" + strings.Join(r.Failures, "\n"))
}

// FailedPeriods lists the periods whose verdict was not OK, in check order.
func (r RunReport) FailedPeriods() []models.Period {
	var out []models.Period
	for _, v := range r.Verdicts {
		if !v.OK {
			out = append(out, v.Period)
		}
	}
	return out
}
