package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification engine.
type Metrics struct {
	// Remote call latencies by call name
	RemoteLatency *prometheus.HistogramVec

	// Operation results by operation and outcome
	OperationOutcome *prometheus.CounterVec

	// Optimistic updates rolled back after a failed primary call
	Rollbacks *prometheus.CounterVec

	// Late remote results discarded because the view was torn down
	StaleDiscards prometheus.Counter
}

// New creates a new Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		RemoteLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetgate_remote_call_duration_seconds",
			Help:    "Duration of remote calls against the authoritative case store",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"call"}), // call: "fetch_case", "verify_tax", "review", "suspend"

		OperationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_operation_outcomes_total",
			Help: "Total engine operation results by operation and outcome",
		}, []string{"operation", "outcome"}),

		Rollbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_rollbacks_total",
			Help: "Total optimistic updates reverted after a failed remote call",
		}, []string{"operation"}),

		StaleDiscards: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vetgate_stale_results_discarded_total",
			Help: "Total late remote results discarded after view teardown",
		}),
	}
}

// ObserveRemoteLatency records the duration of one remote call.
func (m *Metrics) ObserveRemoteLatency(call string, d time.Duration) {
	if m != nil {
		m.RemoteLatency.WithLabelValues(call).Observe(d.Seconds())
	}
}

// IncrementOutcome records an operation result.
func (m *Metrics) IncrementOutcome(operation, outcome string) {
	if m != nil {
		m.OperationOutcome.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementRollback records a reverted optimistic update.
func (m *Metrics) IncrementRollback(operation string) {
	if m != nil {
		m.Rollbacks.WithLabelValues(operation).Inc()
	}
}

// IncrementStaleDiscard records a discarded late result.
func (m *Metrics) IncrementStaleDiscard() {
	if m != nil {
		m.StaleDiscards.Inc()
	}
}
