package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Load outcomes used as the "outcome" label.
const (
	OutcomeSuccess         = "success"
	OutcomeTransport       = "transport"
	OutcomeDataUnavailable = "data_unavailable"
	OutcomeUnexpected      = "unexpected"
)

// Metrics records backcast loads on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	loadDurationSeconds *prometheus.HistogramVec
	loadsTotal          *prometheus.CounterVec
	daysEmitted         prometheus.Histogram
	staleLoadsTotal     prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		loadDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backcast_load_duration_seconds",
			Help:    "Duration of backcast loads including the archive request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backcast_loads_total",
			Help: "Total number of backcast loads by outcome.",
		}, []string{"outcome"}),
		daysEmitted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "backcast_days_emitted",
			Help:    "Number of day records produced per successful load.",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),
		staleLoadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backcast_stale_loads_total",
			Help: "Loads whose result was dropped because a newer load superseded them.",
		}),
	}

	registry.MustRegister(m.loadDurationSeconds)
	registry.MustRegister(m.loadsTotal)
	registry.MustRegister(m.daysEmitted)
	registry.MustRegister(m.staleLoadsTotal)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLoad records a finished load. days is ignored unless outcome is a success.
func (m *Metrics) RecordLoad(outcome string, duration time.Duration, days int) {
	if m == nil {
		return
	}
	m.loadDurationSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
	m.loadsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.daysEmitted.Observe(float64(days))
	}
}

func (m *Metrics) RecordStaleLoad() {
	if m == nil {
		return
	}
	m.staleLoadsTotal.Inc()
}
