package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"parrainage/internal/notification/metrics"
	"parrainage/internal/notification/models"
	"parrainage/internal/notification/store"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/circuit"
)

type fakeQueue struct {
	mu     sync.Mutex
	err    error
	pushed []*models.Notification
}

func (q *fakeQueue) Push(_ context.Context, n *models.Notification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.pushed = append(q.pushed, n)
	return nil
}

func (q *fakeQueue) fail(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.err = err
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pushed)
}

type failingStore struct {
	*store.InMemory
}

func (failingStore) Create(context.Context, *models.Notification) error {
	return errors.New("disk full")
}

type NotificationServiceSuite struct {
	suite.Suite
	ctx       context.Context
	store     *store.InMemory
	queue     *fakeQueue
	metrics   *metrics.Metrics
	svc       *Service
	recipient id.Actor
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.queue = &fakeQueue{}
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.recipient = id.Actor{ID: id.NewSponsorID(), Role: id.RoleSponsor}

	svc, err := New(s.store,
		WithQueue(s.queue),
		WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.svc = svc
}

func (s *NotificationServiceSuite) notice() *models.Notification {
	return models.New(s.recipient.ID, models.TypeSponsorshipPaused, "Sponsorship paused", "Your sponsorship is paused.", "", time.Now())
}

func (s *NotificationServiceSuite) TestEnqueueStoresAndPushes() {
	n := s.notice()
	s.Require().NoError(s.svc.Enqueue(s.ctx, n))

	inbox, err := s.svc.Inbox(s.ctx, s.recipient)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.Equal(n.ID, inbox[0].ID)
	s.Equal(1, s.queue.count())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Queued), 0)
}

func (s *NotificationServiceSuite) TestQueueFailureKeepsInboxEntry() {
	s.queue.fail(errors.New("connection refused"))

	s.Require().NoError(s.svc.Enqueue(s.ctx, s.notice()))

	inbox, err := s.svc.Inbox(s.ctx, s.recipient)
	s.Require().NoError(err)
	s.Len(inbox, 1)
	s.InDelta(1, testutil.ToFloat64(s.metrics.QueueFailures), 0)
	s.InDelta(0, testutil.ToFloat64(s.metrics.CircuitOpen), 0)
}

func (s *NotificationServiceSuite) TestCircuitOpensThenProbesAndCloses() {
	s.queue.fail(errors.New("connection refused"))
	for range 2 {
		s.Require().NoError(s.svc.Enqueue(s.ctx, s.notice()))
	}
	s.InDelta(1, testutil.ToFloat64(s.metrics.CircuitOpen), 0)

	s.queue.fail(nil)
	for range probeInterval - 1 {
		s.Require().NoError(s.svc.Enqueue(s.ctx, s.notice()))
	}
	s.Equal(0, s.queue.count(), "pushes are skipped while open")
	s.InDelta(probeInterval-1, testutil.ToFloat64(s.metrics.QueueSkipped), 0)

	s.Require().NoError(s.svc.Enqueue(s.ctx, s.notice()))
	s.Equal(1, s.queue.count(), "probe reaches the queue")
	s.InDelta(0, testutil.ToFloat64(s.metrics.CircuitOpen), 0)

	s.Require().NoError(s.svc.Enqueue(s.ctx, s.notice()))
	s.Equal(2, s.queue.count())

	inbox, err := s.svc.Inbox(s.ctx, s.recipient)
	s.Require().NoError(err)
	s.Len(inbox, 2+probeInterval+1)
}

func (s *NotificationServiceSuite) TestStoreFailureFailsEnqueue() {
	svc, err := New(failingStore{store.NewInMemory()}, WithQueue(s.queue), WithMetrics(s.metrics))
	s.Require().NoError(err)

	err = svc.Enqueue(s.ctx, s.notice())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(0, s.queue.count())
	s.InDelta(1, testutil.ToFloat64(s.metrics.PersistFailures), 0)
}

func (s *NotificationServiceSuite) TestMarkRead() {
	n := s.notice()
	s.Require().NoError(s.svc.Enqueue(s.ctx, n))

	s.Require().NoError(s.svc.MarkRead(s.ctx, s.recipient, n.ID))
	inbox, err := s.svc.Inbox(s.ctx, s.recipient)
	s.Require().NoError(err)
	s.True(inbox[0].IsRead)

	other := id.Actor{ID: id.NewSponsorID(), Role: id.RoleSponsor}
	err = s.svc.MarkRead(s.ctx, other, n.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *NotificationServiceSuite) TestSystemActorHasNoInbox() {
	_, err := s.svc.Inbox(s.ctx, id.System)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *NotificationServiceSuite) TestNewRequiresStore() {
	_, err := New(nil)
	s.Error(err)
}
