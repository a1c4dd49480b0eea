// Package metrics exposes Prometheus instrumentation for rebuilds and audits.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rebuild results.
const (
	ResultComplete = "complete"
	ResultDryRun   = "dry_run"
	ResultFailed   = "failed"
	ResultCanceled = "canceled"
)

// Manager owns the engine metrics. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	rebuilds        *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	eventsReplayed  prometheus.Counter
	recordsSkipped  *prometheus.CounterVec
	entriesWritten  prometheus.Counter
	auditReports    *prometheus.CounterVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "jass",
		subsystem:        "rating",
		histogramBuckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	m.rebuilds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rebuilds_total",
		Help:      "Rebuild runs by result",
	}, []string{"result"})
	m.rebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rebuild_duration_seconds",
		Help:      "Wall time of rebuild runs",
		Buckets:   m.histogramBuckets,
	})
	m.eventsReplayed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_replayed_total",
		Help:      "Events folded through the rating replay",
	})
	m.recordsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_skipped_total",
		Help:      "Source sub-results skipped during normalization by reason",
	}, []string{"reason"})
	m.entriesWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_entries_written_total",
		Help:      "Rating ledger entries persisted",
	})
	m.auditReports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_reports_total",
		Help:      "Audit reports by status",
	}, []string{"status"})
}

// Gatherer returns the registry the metrics are registered on.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Manager) RecordRebuild(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.rebuilds.WithLabelValues(result).Inc()
	m.rebuildDuration.Observe(d.Seconds())
}

func (m *Manager) AddEventsReplayed(n int) {
	if m == nil {
		return
	}
	m.eventsReplayed.Add(float64(n))
}

func (m *Manager) AddSkipped(reason string) {
	if m == nil {
		return
	}
	m.recordsSkipped.WithLabelValues(reason).Inc()
}

func (m *Manager) AddEntriesWritten(n int) {
	if m == nil {
		return
	}
	m.entriesWritten.Add(float64(n))
}

func (m *Manager) RecordAudit(status string) {
	if m == nil {
		return
	}
	m.auditReports.WithLabelValues(status).Inc()
}
