package observability

import (
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the rent ledger service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	billsGenerated  *prometheus.CounterVec
	backlogRuns     *prometheus.CounterVec
	emailsSent      *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rentledger_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentledger_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentledger_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentledger_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		billsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentledger_bills_generated_total",
				Help: "Total bills created or backfilled by the generator.",
			},
			[]string{"kind"},
		),
		backlogRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentledger_backlog_runs_total",
				Help: "Total backlog generation runs by outcome.",
			},
			[]string{"outcome"},
		),
		emailsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentledger_emails_sent_total",
				Help: "Total notification emails sent.",
			},
			[]string{"kind"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// AddBillsGenerated records bills written by a generator run.
// kind is "created" or "backfilled".
func (m *Metrics) AddBillsGenerated(kind string, n int) {
	m.billsGenerated.WithLabelValues(kind).Add(float64(n))
}

// IncrBacklogRun records one generator run outcome:
// "generated", "skipped" or "error".
func (m *Metrics) IncrBacklogRun(outcome string) {
	m.backlogRuns.WithLabelValues(outcome).Inc()
}

// IncrEmailSent increments the sent-email counter.
func (m *Metrics) IncrEmailSent(kind string) {
	m.emailsSent.WithLabelValues(kind).Inc()
}

// GetBillingSnapshot returns a snapshot of generator metrics suitable
// for the GET /v1/metrics/billing endpoint.
func (m *Metrics) GetBillingSnapshot() *domain.BillingMetrics {
	created := getCounterValue(m.billsGenerated, "created")
	backfilled := getCounterValue(m.billsGenerated, "backfilled")
	generated := getCounterValue(m.backlogRuns, "generated")
	skipped := getCounterValue(m.backlogRuns, "skipped")
	failed := getCounterValue(m.backlogRuns, "error")
	cacheHits := getCounterValue(m.cacheHits, "tenants")
	cacheMisses := getCounterValue(m.cacheMisses, "tenants")

	totalRuns := generated + skipped + failed
	errorRate := float64(0)
	cacheHitRate := float64(0)

	if totalRuns > 0 {
		errorRate = failed / totalRuns
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.BillingMetrics{
		TotalRuns:       int64(totalRuns),
		RunsGenerated:   int64(generated),
		RunsSkipped:     int64(skipped),
		RunsFailed:      int64(failed),
		BillsCreated:    int64(created),
		BillsBackfilled: int64(backfilled),
		ErrorRate:       errorRate,
		CacheHitRate:    cacheHitRate,
		Period:          "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
