package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks notification persistence and queue delivery.
type Metrics struct {
	Persisted       prometheus.Counter
	PersistFailures prometheus.Counter
	Queued          prometheus.Counter
	QueueFailures   prometheus.Counter
	QueueSkipped    prometheus.Counter
	CircuitOpen     prometheus.Gauge
}

// New registers the notification metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Persisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_notifications_persisted_total",
			Help: "Notifications written to the inbox store",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_notifications_persist_failures_total",
			Help: "Notifications that could not be written to the inbox store",
		}),
		Queued: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_notifications_queued_total",
			Help: "Notifications pushed to the delivery queue",
		}),
		QueueFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_notifications_queue_failures_total",
			Help: "Failed pushes to the delivery queue",
		}),
		QueueSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_notifications_queue_skipped_total",
			Help: "Pushes skipped while the queue circuit was open",
		}),
		CircuitOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "parrainage_notifications_queue_circuit_open",
			Help: "1 while the delivery queue circuit breaker is open",
		}),
	}
}
