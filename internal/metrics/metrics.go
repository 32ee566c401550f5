package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "starmap"

// Attempt outcomes recorded by the generation worker
const (
	OutcomeOK            = "ok"
	OutcomeTimeout       = "timeout"
	OutcomeUnsatisfiable = "unsatisfiable"
	OutcomeError         = "error"
)

// Collector holds the generation and simulation metrics.
// A nil *Collector is valid and records nothing.
type Collector struct {
	attemptsTotal      *prometheus.CounterVec
	generationDuration prometheus.Histogram
	exhaustedTotal     prometheus.Counter
	ticksTotal         prometheus.Counter
	savesTotal         *prometheus.CounterVec
	systemsScanned     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewCollector registers the metrics with reg; pass prometheus.NewRegistry() in tests
func NewCollector(reg *prometheus.Registry) *Collector {
	m := &Collector{
		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_attempts_total",
				Help:      "Star system generation attempts by outcome",
			},
			[]string{"outcome"},
		),
		generationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Time spent producing one star system, retries included",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
			},
		),
		exhaustedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_exhausted_total",
				Help:      "Star systems abandoned after the attempt limit",
			},
		),
		ticksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulation_ticks_total",
				Help:      "Simulation steps executed",
			},
		),
		savesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "galaxy_saves_total",
				Help:      "Galaxy persistence attempts by result",
			},
			[]string{"result"},
		),
		systemsScanned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "systems_scanned",
				Help:      "Star systems whose contents have been generated",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.attemptsTotal,
		m.generationDuration,
		m.exhaustedTotal,
		m.ticksTotal,
		m.savesTotal,
		m.systemsScanned,
	)

	return m
}

func (m *Collector) RecordAttempt(outcome string) {
	if m == nil {
		return
	}
	m.attemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *Collector) RecordGeneration(duration time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.Observe(duration.Seconds())
}

func (m *Collector) RecordExhausted() {
	if m == nil {
		return
	}
	m.exhaustedTotal.Inc()
}

func (m *Collector) RecordTick() {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
}

func (m *Collector) RecordSave(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.savesTotal.WithLabelValues(result).Inc()
}

func (m *Collector) SetScanned(count int) {
	if m == nil {
		return
	}
	m.systemsScanned.Set(float64(count))
}

// Attempts returns the counter for one outcome, for inspection in tests
func (m *Collector) Attempts(outcome string) prometheus.Counter {
	return m.attemptsTotal.WithLabelValues(outcome)
}

func (m *Collector) Ticks() prometheus.Counter {
	return m.ticksTotal
}

// Handler serves the registry in the Prometheus exposition format
func (m *Collector) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
