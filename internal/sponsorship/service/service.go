// Package service implements the sponsorship lifecycle: request intake, the
// staff decision, the sponsorship state machine, bulk pause/resume and child
// reconciliation.
//
// Every operation takes the acting user explicitly. Mutations are expressed as
// write plans executed by the coordinator (coordinator.go), which owns
// transaction boundaries, compensation and post-commit effects.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"parrainage/internal/sponsorship/metrics"
	"parrainage/internal/sponsorship/ports"
	"parrainage/pkg/attrs"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/requestcontext"
)

const (
	tracerName = "parrainage/internal/sponsorship/service"

	// defaultEffectsTimeout bounds the post-commit effects of one transition.
	defaultEffectsTimeout = 5 * time.Second
)

// Stores groups the entity store ports the service reads and writes.
type Stores struct {
	Children     ports.ChildStore
	Sponsors     ports.SponsorStore
	Sponsorships ports.SponsorshipStore
	Requests     ports.RequestStore
	History      ports.HistoryStore
	Notes        ports.NoteStore
}

func (s Stores) validate() error {
	switch {
	case s.Children == nil:
		return errors.New("child store is required")
	case s.Sponsors == nil:
		return errors.New("sponsor store is required")
	case s.Sponsorships == nil:
		return errors.New("sponsorship store is required")
	case s.Requests == nil:
		return errors.New("request store is required")
	case s.History == nil:
		return errors.New("history store is required")
	case s.Notes == nil:
		return errors.New("note store is required")
	}
	return nil
}

// Service orchestrates the sponsorship lifecycle.
type Service struct {
	children     ports.ChildStore
	sponsors     ports.SponsorStore
	sponsorships ports.SponsorshipStore
	requests     ports.RequestStore
	history      ports.HistoryStore
	notes        ports.NoteStore
	tx           StoreTx

	notifier ports.Notifier
	feed     ports.HistoryFeed
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	effectsTimeout time.Duration
}

type Option func(*Service)

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

// WithNotifier sets the collaborator that receives transition notifications.
// Without one, notifications are dropped.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithHistoryFeed publishes every appended history entry to f.
func WithHistoryFeed(f ports.HistoryFeed) Option {
	return func(s *Service) {
		s.feed = f
	}
}

// WithEffectsTimeout bounds the post-commit effects (history, feed, notes,
// notifications) of one transition. Non-positive values keep the default.
func WithEffectsTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.effectsTimeout = d
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service. tx decides whether a failed plan is rolled back by
// the store or compensated step by step.
func New(stores Stores, tx StoreTx, opts ...Option) (*Service, error) {
	if err := stores.validate(); err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.New("store transaction runner is required")
	}
	s := &Service{
		children:     stores.Children,
		sponsors:     stores.Sponsors,
		sponsorships: stores.Sponsorships,
		requests:     stores.Requests,
		history:      stores.History,
		notes:        stores.Notes,
		tx:           tx,
		logger:       slog.Default(),
		tracer:       otel.Tracer(tracerName),

		effectsTimeout: defaultEffectsTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// startOp opens a span for an operation and returns a finisher that records
// the outcome on the span and in metrics.
func (s *Service) startOp(ctx context.Context, action string, actor id.Actor) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "sponsorship."+action, trace.WithAttributes(
		attribute.String("actor.role", actor.Role.String()),
	))
	return ctx, func(err error) {
		outcome := "success"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			if reason := dErrors.ReasonOf(err); reason != "" {
				span.SetAttributes(attribute.String("error.reason", reason))
			}
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if s.metrics != nil {
			s.metrics.ObserveTransition(action, outcome, start)
		}
	}
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	var spanAttrs []attribute.KeyValue
	for _, key := range auditSpanKeys {
		if v := attrs.ExtractString(attributes, key); v != "" {
			spanAttrs = append(spanAttrs, attribute.String(key, v))
		}
	}
	span.AddEvent(event, trace.WithAttributes(spanAttrs...))
}

// auditSpanKeys are the audit attributes copied onto the active span.
var auditSpanKeys = []string{"sponsorship_id", "sponsorship_request_id", "child_id", "sponsor_id"}

func (s *Service) now(ctx context.Context) time.Time {
	return requestcontext.Now(ctx).UTC()
}

func requireStaff(actor id.Actor) error {
	if !actor.Role.IsStaff() {
		return dErrors.New(dErrors.CodeForbidden, "operation requires an admin or assistant")
	}
	return nil
}

func requireAdmin(actor id.Actor) error {
	if actor.Role != id.RoleAdmin {
		return dErrors.New(dErrors.CodeForbidden, "operation requires an admin")
	}
	return nil
}

// requireSponsorAccess allows staff, and sponsors acting on their own data.
func requireSponsorAccess(actor id.Actor, owner id.SponsorID) error {
	if actor.Role.IsStaff() || (!actor.IsSystem() && actor.ID == owner) {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "sponsorship belongs to another sponsor")
}
