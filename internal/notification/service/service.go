// Package service records notifications in the recipient's inbox and hands
// them to the delivery queue.
//
// The inbox write is the durable part: Enqueue fails only when it fails.
// Queue pushes are best effort and guarded by a circuit breaker; while the
// circuit is open only every probeInterval-th push reaches the queue, and a
// run of successful probes closes it again.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"parrainage/internal/notification/metrics"
	"parrainage/internal/notification/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/circuit"
	"parrainage/pkg/platform/sentinel"
)

const probeInterval = 10

// Store persists the inbox.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipient id.SponsorID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, recipient id.SponsorID, notificationID id.NotificationID) error
}

// Queue transports notifications to the delivery worker.
type Queue interface {
	Push(ctx context.Context, n *models.Notification) error
}

type Service struct {
	store   Store
	queue   Queue
	breaker *circuit.Breaker
	skipped atomic.Uint64
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

// WithQueue enables delivery. Without a queue notifications are only stored.
func WithQueue(q Queue) Option {
	return func(s *Service) {
		s.queue = q
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("notification store is required")
	}
	s := &Service{
		store:   store,
		breaker: circuit.New("notification-queue"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Enqueue stores n and pushes it to the delivery queue.
func (s *Service) Enqueue(ctx context.Context, n *models.Notification) error {
	if err := s.store.Create(ctx, n); err != nil {
		if s.metrics != nil {
			s.metrics.PersistFailures.Inc()
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store notification")
	}
	if s.metrics != nil {
		s.metrics.Persisted.Inc()
	}
	s.push(ctx, n)
	return nil
}

func (s *Service) push(ctx context.Context, n *models.Notification) {
	if s.queue == nil {
		return
	}
	if s.breaker.IsOpen() && s.skipped.Add(1)%probeInterval != 0 {
		if s.metrics != nil {
			s.metrics.QueueSkipped.Inc()
		}
		return
	}

	if err := s.queue.Push(ctx, n); err != nil {
		_, change := s.breaker.RecordFailure()
		s.logger.WarnContext(ctx, "notification queue push failed",
			"notification_id", n.ID.String(),
			"type", string(n.Type),
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.QueueFailures.Inc()
		}
		s.observe(ctx, change)
		return
	}
	_, change := s.breaker.RecordSuccess()
	if s.metrics != nil {
		s.metrics.Queued.Inc()
	}
	s.observe(ctx, change)
}

func (s *Service) observe(ctx context.Context, change circuit.Change) {
	switch {
	case change.Opened:
		s.logger.ErrorContext(ctx, "notification queue circuit opened",
			"breaker", s.breaker.Name(),
		)
		if s.metrics != nil {
			s.metrics.CircuitOpen.Set(1)
		}
	case change.Closed:
		s.skipped.Store(0)
		s.logger.InfoContext(ctx, "notification queue circuit closed",
			"breaker", s.breaker.Name(),
		)
		if s.metrics != nil {
			s.metrics.CircuitOpen.Set(0)
		}
	}
}

// Inbox lists the actor's notifications, newest first.
func (s *Service) Inbox(ctx context.Context, actor id.Actor) ([]*models.Notification, error) {
	if actor.IsSystem() {
		return nil, dErrors.New(dErrors.CodeForbidden, "inbox requires an authenticated user")
	}
	list, err := s.store.ListByRecipient(ctx, actor.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return list, nil
}

// MarkRead marks one of the actor's notifications as read.
func (s *Service) MarkRead(ctx context.Context, actor id.Actor, notificationID id.NotificationID) error {
	if actor.IsSystem() {
		return dErrors.New(dErrors.CodeForbidden, "inbox requires an authenticated user")
	}
	err := s.store.MarkRead(ctx, actor.ID, notificationID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "notification not found")
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update notification")
	}
	return nil
}
