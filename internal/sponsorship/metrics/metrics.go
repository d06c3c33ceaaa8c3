package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the sponsorship lifecycle.
// Tracks transition outcomes, degraded post-commit effects and compensations.
type Metrics struct {
	Transitions          *prometheus.CounterVec
	TransitionDuration   *prometheus.HistogramVec
	AuditWarnings        prometheus.Counter
	NotificationFailures prometheus.Counter
	FeedFailures         prometheus.Counter
	Compensations        *prometheus.CounterVec
	Reconciliations      prometheus.Counter
}

// New registers the sponsorship metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the sponsorship metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parrainage_sponsorship_transitions_total",
			Help: "Sponsorship lifecycle operations by action and outcome",
		}, []string{"action", "outcome"}),
		TransitionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parrainage_sponsorship_transition_duration_seconds",
			Help:    "Duration of sponsorship lifecycle operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"action"}),
		AuditWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_sponsorship_audit_write_failures_total",
			Help: "Committed transitions whose history entry could not be written",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_sponsorship_notification_failures_total",
			Help: "Notifications that could not be enqueued after a transition",
		}),
		FeedFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_sponsorship_feed_failures_total",
			Help: "History entries that could not be published to the feed",
		}),
		Compensations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parrainage_sponsorship_compensations_total",
			Help: "Compensating writes run after a failed step, by outcome",
		}, []string{"outcome"}),
		Reconciliations: factory.NewCounter(prometheus.CounterOpts{
			Name: "parrainage_sponsorship_child_repairs_total",
			Help: "Child rows rewritten because their sponsorship fields drifted",
		}),
	}
}

// ObserveTransition records the outcome and duration of one operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTransition(action, outcome string, start time.Time) {
	m.Transitions.WithLabelValues(action, outcome).Inc()
	m.TransitionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementAuditWarning() {
	m.AuditWarnings.Inc()
}

func (m *Metrics) IncrementNotificationFailure() {
	m.NotificationFailures.Inc()
}

func (m *Metrics) IncrementFeedFailure() {
	m.FeedFailures.Inc()
}

// IncrementCompensation records one compensating write; ok is false when the
// compensation itself failed and the entities may need reconciliation.
func (m *Metrics) IncrementCompensation(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.Compensations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementReconciliation() {
	m.Reconciliations.Inc()
}
