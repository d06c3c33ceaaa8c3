package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransitionCountsByActionAndOutcome(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.ObserveTransition("pause", "success", time.Now())
	m.ObserveTransition("pause", "success", time.Now())
	m.ObserveTransition("pause", "invalid_state", time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.Transitions.WithLabelValues("pause", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Transitions.WithLabelValues("pause", "invalid_state")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.TransitionDuration))
}

func TestCompensationOutcomes(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementCompensation(true)
	m.IncrementCompensation(false)
	m.IncrementCompensation(false)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Compensations.WithLabelValues("ok")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Compensations.WithLabelValues("failed")), 0)
}
