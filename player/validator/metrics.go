package validator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the prometheus collectors of a Validator.
type metrics struct {
	classifications prometheus.Counter
	unavailable     prometheus.Counter
	moves           *prometheus.CounterVec
	envelopes       *prometheus.CounterVec
	violations      *prometheus.CounterVec
	trackers        prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		classifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncp",
			Name:      "classifications_total",
			Help:      "Environment classifications requested.",
		}),
		unavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ncp",
			Name:      "shape_unavailable_total",
			Help:      "Snapshots that consulted at least one unavailable block.",
		}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ncp",
			Name:      "moves_total",
			Help:      "Evaluated moves by outcome.",
		}, []string{"outcome"}),
		envelopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ncp",
			Name:      "envelope_results_total",
			Help:      "Envelope tests by envelope and result.",
		}, []string{"envelope", "result"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ncp",
			Name:      "violations_total",
			Help:      "Moves that broke an envelope without allowance.",
		}, []string{"envelope"}),
		trackers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ncp",
			Name:      "tracked_entities",
			Help:      "Entities with a move history.",
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.classifications, m.unavailable, m.moves, m.envelopes, m.violations, m.trackers}
}

// register registers every collector on r, leaving out collectors that are registered already.
func (m *metrics) register(r prometheus.Registerer) error {
	if r == nil {
		return nil
	}
	for _, c := range m.collectors() {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

func (m *metrics) envelope(name string, passed bool) {
	result := "fail"
	if passed {
		result = "pass"
	}
	m.envelopes.WithLabelValues(name, result).Inc()
}
