package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics groups the store collectors. A nil *metrics records nothing.
type metrics struct {
	operations      *prometheus.CounterVec
	persistFailures prometheus.Counter
	droppedEvents   prometheus.Counter
	notes           prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_store_operations_total",
			Help: "Store operations by name and result (ok, error, skipped)",
		}, []string{"op", "result"}),
		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "notes_store_persist_failures_total",
			Help: "Snapshot writes to local storage that failed",
		}),
		droppedEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "notes_store_dropped_events_total",
			Help: "Change events dropped because a subscriber was not reading",
		}),
		notes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "notes_store_notes",
			Help: "Notes currently held in the store",
		}),
	}
}

func (m *metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *metrics) persistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *metrics) eventDropped() {
	if m == nil {
		return
	}
	m.droppedEvents.Inc()
}

func (m *metrics) setNotes(n int) {
	if m == nil {
		return
	}
	m.notes.Set(float64(n))
}
