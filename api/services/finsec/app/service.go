package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	gw "github.com/tbeaudouin05/finsec-harness/api/services/finsec/gateway"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Service defines the harness operations against the API under test.
type Service interface {
	Authenticate(ctx context.Context) (Session, error)
	Seed(ctx context.Context, sess Session) (SeedResult, error)
	Verify(ctx context.Context, sess Session) ([]PeriodVerdict, error)
	Run(ctx context.Context) (RunReport, error)
}

// Options configures a Service. Zero values fall back to the default plan,
// the wall clock, a clock-seeded generator and random UUIDs.
type Options struct {
	Credentials models.Credentials
	Plan        models.Plan
	BaseURL     string
	// StrictSeeding turns any seeding failure into a run failure.
	StrictSeeding bool
	Rand          *rand.Rand
	Clock         func() time.Time
	NewID         func() string
}

// serviceImpl is not safe for concurrent use; rng is shared across calls.
type serviceImpl struct {
	gw      gw.FinsecGateway
	creds   models.Credentials
	plan    models.Plan
	baseURL string
	strict  bool
	rng     *rand.Rand
	clock   func() time.Time
	newID   func() string
}

func NewService(g gw.FinsecGateway, opts Options) Service {
	s := serviceImpl{
		gw:      g,
		creds:   opts.Credentials,
		plan:    opts.Plan,
		baseURL: opts.BaseURL,
		strict:  opts.StrictSeeding,
		rng:     opts.Rand,
		clock:   opts.Clock,
		newID:   opts.NewID,
	}
	if s.plan.Days == 0 {
		s.plan = models.DefaultPlan()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.rng == nil {
		s.rng = NewRand(uint64(s.clock().UnixNano()))
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	return s
}

// NewRand returns the generator used for seeding, fully determined by seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run walks start → authenticated → seeded → verified → passed|failed.
// The returned error is non-nil only for a setup failure, in which case no
// seeding or verification was attempted. Verification failures are in the
// report; see RunReport.Err.
func (s serviceImpl) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{
		ID:        s.newID(),
		BaseURL:   s.baseURL,
		StartedAt: s.clock(),
		Stage:     StageStart,
		Failures:  []string{},
	}
	slog.Info("run started", "run_id", report.ID, "base_url", s.baseURL)

	sess, err := s.Authenticate(ctx)
	if err != nil {
		return s.abort(report, err)
	}
	report.Stage = StageAuthenticated

	seed, err := s.Seed(ctx, sess)
	if err != nil {
		return s.abort(report, err)
	}
	report.Seed = seed
	report.Stage = StageSeeded
	if s.strict && len(seed.Failures) > 0 {
		report.Failures = append(report.Failures, fmt.Sprintf("seeding: %d of %d bills failed", len(seed.Failures), seed.Attempted))
	}

	verdicts, err := s.Verify(ctx, sess)
	if err != nil {
		return s.abort(report, err)
	}
	report.Verdicts = verdicts
	report.Stage = StageVerified
	for _, v := range verdicts {
		if !v.OK {
			report.Failures = append(report.Failures, v.Message)
		}
	}

	report.FinishedAt = s.clock()
	if len(report.Failures) == 0 {
		report.Stage = StagePassed
		slog.Info("run passed", "run_id", report.ID)
	} else {
		report.Stage = StageFailed
		slog.Warn("run failed", "run_id", report.ID, "failures", len(report.Failures), "failed_periods", report.FailedPeriods())
	}
	return report, nil
}

func (s serviceImpl) abort(report RunReport, err error) (RunReport, error) {
	report.FinishedAt = s.clock()
	report.SetupError = err.Error()
	slog.Error("run aborted", "run_id", report.ID, "stage", report.Stage, "error", err)
	return report, err
}
