package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
)

// DefaultJob is the Pushgateway job name for harness runs.
const DefaultJob = "finsec_harness"

// Recorder collects request and run metrics on a private registry.
// It satisfies httpgw.Observer.
type Recorder struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	runs           *prometheus.CounterVec
	periodFailures *prometheus.CounterVec
	billsSeeded    prometheus.Gauge
	lastRun        prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finsec_harness_requests_total",
			Help: "Requests sent to the API under test by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "finsec_harness_request_duration_seconds",
			Help:    "Latency of requests sent to the API under test.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finsec_harness_runs_total",
			Help: "Harness runs by final stage.",
		}, []string{"stage"}),
		periodFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finsec_harness_period_failures_total",
			Help: "Analytics periods that failed verification.",
		}, []string{"period"}),
		billsSeeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "finsec_harness_bills_seeded",
			Help: "Bills created by the most recent run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "finsec_harness_last_run_timestamp_seconds",
			Help: "Finish time of the most recent run.",
		}),
	}
	r.registry.MustRegister(r.requests, r.duration, r.runs, r.periodFailures, r.billsSeeded, r.lastRun)
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) ObserveRequest(endpoint string, status int, err error, elapsed time.Duration) {
	r.requests.WithLabelValues(endpoint, outcome(status, err)).Inc()
	r.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveRun records the final state of a run.
func (r *Recorder) ObserveRun(report app.RunReport) {
	r.runs.WithLabelValues(string(report.Stage)).Inc()
	r.billsSeeded.Set(float64(report.Seed.Created))
	for _, p := range report.FailedPeriods() {
		r.periodFailures.WithLabelValues(string(p)).Inc()
	}
	if !report.FinishedAt.IsZero() {
		r.lastRun.Set(float64(report.FinishedAt.Unix()))
	}
}

// Push sends the registry to a Pushgateway, replacing the job's previous metrics.
func (r *Recorder) Push(ctx context.Context, gatewayURL, job string) error {
	if job == "" {
		job = DefaultJob
	}
	if err := push.New(gatewayURL, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}

func outcome(status int, err error) string {
	if err != nil {
		return "error"
	}
	return fmt.Sprintf("%dxx", status/100)
}
