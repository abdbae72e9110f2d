package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tbeaudouin05/finsec-harness/api/config"
	"github.com/tbeaudouin05/finsec-harness/api/database"
	"github.com/tbeaudouin05/finsec-harness/api/metrics"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
	finsecdb "github.com/tbeaudouin05/finsec-harness/api/services/finsec/db"
	gw "github.com/tbeaudouin05/finsec-harness/api/services/finsec/gateway"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/gateway/httpgw"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Harness bundles the wired dependencies of one harness process.
// Nothing here is global; callers pass it where it is needed.
type Harness struct {
	Config  *config.Config
	Plan    models.Plan
	Seed    uint64
	Service app.Service
	Metrics *metrics.Recorder
	// Store is nil unless RESULTS_DATABASE_URL is set.
	Store finsecdb.RunStore

	db *sql.DB
}

type settings struct {
	gateway gw.FinsecGateway
	clock   func() time.Time
}

type Option func(*settings)

// WithGateway replaces the HTTP gateway, e.g. with a mock in tests.
func WithGateway(g gw.FinsecGateway) Option { return func(s *settings) { s.gateway = g } }

func WithClock(clock func() time.Time) Option { return func(s *settings) { s.clock = clock } }

// Init loads the plan, opens the optional run store and wires the service.
func Init(ctx context.Context, cfg *config.Config, opts ...Option) (*Harness, error) {
	st := settings{clock: time.Now}
	for _, opt := range opts {
		opt(&st)
	}

	plan, err := config.LoadPlan(cfg.PlanFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	h := &Harness{Config: cfg, Plan: plan, Metrics: metrics.New()}

	h.Seed = uint64(cfg.Seed)
	if h.Seed == 0 {
		h.Seed = uint64(st.clock().UnixNano())
	}
	slog.Info("seeding generator", "seed", h.Seed)

	if st.gateway == nil {
		st.gateway = httpgw.New(cfg.BaseURL, httpgw.Options{
			LoginTimeout: cfg.LoginTimeout,
			WriteTimeout: cfg.WriteTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			Observer:     h.Metrics,
		})
	}

	if cfg.ResultsDatabaseURL != "" {
		conn, err := database.Open(cfg.ResultsDatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize results database: %w", err)
		}
		if err := finsecdb.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, err
		}
		h.db = conn
		h.Store = finsecdb.NewRunStore(conn)
	}

	h.Service = app.NewService(st.gateway, app.Options{
		Credentials:   models.Credentials{Email: cfg.Email, Password: cfg.Password},
		Plan:          plan,
		BaseURL:       cfg.BaseURL,
		StrictSeeding: cfg.StrictSeeding,
		Rand:          app.NewRand(h.Seed),
		Clock:         st.clock,
	})
	return h, nil
}

// Record publishes a finished run: metrics always, the run store and
// Pushgateway when configured. It never changes the run's verdict.
func (h *Harness) Record(ctx context.Context, report app.RunReport) error {
	h.Metrics.ObserveRun(report)

	var errs []error
	if h.Store != nil {
		if err := h.Store.SaveRun(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	if h.Config.PushgatewayURL != "" {
		if err := h.Metrics.Push(ctx, h.Config.PushgatewayURL, metrics.DefaultJob); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the run store connection, if any.
func (h *Harness) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}
