package service

import (
	"context"

	notification "parrainage/internal/notification/models"
	"parrainage/internal/sponsorship/models"
	dErrors "parrainage/pkg/domain-errors"
)

// step is one mandatory write of a plan. compensate undoes apply and is only
// used on backends whose transactions are not atomic.
type step struct {
	name       string
	apply      func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// effects run after the plan commits. None of them can fail the transition.
type effects struct {
	history       []*models.HistoryEntry
	notes         []*models.Note
	notifications []*notification.Notification
}

// plan is the ordered write set of one transition. Sponsorship writes always
// precede child writes so that a lagging child flag, never a phantom claim,
// is the only possible partial state.
type plan struct {
	action string
	// shard is the child the plan touches; it serializes in-memory plans.
	shard string
	steps []step
	after effects
}

// execute runs the steps of p in one transaction, then the post-commit
// effects. Business errors returned by a step are passed through; anything
// else becomes a transition_failed internal error.
func (s *Service) execute(ctx context.Context, p *plan) ([]models.Warning, error) {
	err := s.tx.RunInTx(withShardKey(ctx, p.shard), func(ctx context.Context) error {
		for i, st := range p.steps {
			if err := st.apply(ctx); err != nil {
				s.logger.WarnContext(ctx, "transition step failed",
					"action", p.action,
					"step", st.name,
					"error", err,
				)
				if !s.tx.Atomic() {
					s.compensate(ctx, p, p.steps[:i])
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, transitionFailed(p.action, err)
	}
	return s.applyEffects(context.WithoutCancel(ctx), p.action, p.after), nil
}

// bounded runs one post-commit effect under its own effectsTimeout, so a
// stalled broker or queue cannot hold a committed transition's response.
func (s *Service) bounded(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.effectsTimeout)
	defer cancel()
	return fn(ctx)
}

// compensate undoes applied steps in reverse order. A failed compensation is
// logged and counted; the child can be repaired later by ReconcileChild.
func (s *Service) compensate(ctx context.Context, p *plan, applied []step) {
	ctx = context.WithoutCancel(ctx)
	for i := len(applied) - 1; i >= 0; i-- {
		st := applied[i]
		if st.compensate == nil {
			continue
		}
		err := st.compensate(ctx)
		if s.metrics != nil {
			s.metrics.IncrementCompensation(err == nil)
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "compensation failed",
				"action", p.action,
				"step", st.name,
				"child_id", p.shard,
				"error", err,
			)
		}
	}
}

func (s *Service) applyEffects(ctx context.Context, action string, eff effects) []models.Warning {
	var warnings []models.Warning
	for _, entry := range eff.history {
		if err := s.bounded(ctx, func(ctx context.Context) error { return s.history.Append(ctx, entry) }); err != nil {
			s.logger.ErrorContext(ctx, "history append failed",
				"action", action,
				"sponsorship_id", entry.SponsorshipID.String(),
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.IncrementAuditWarning()
			}
			warnings = append(warnings, models.Warning{
				Code:    models.WarningAuditWriteFailed,
				Message: "transition applied but its history entry could not be written",
			})
			continue
		}
		s.publishHistory(ctx, entry)
	}
	for _, note := range eff.notes {
		if err := s.bounded(ctx, func(ctx context.Context) error { return s.notes.Append(ctx, note) }); err != nil {
			s.logger.ErrorContext(ctx, "note append failed",
				"action", action,
				"sponsorship_id", note.SponsorshipID.String(),
				"error", err,
			)
			warnings = append(warnings, models.Warning{
				Code:    models.WarningNoteWriteFailed,
				Message: "transition applied but its note could not be written",
			})
		}
	}
	for _, n := range eff.notifications {
		s.notify(ctx, n)
	}
	return warnings
}

func (s *Service) publishHistory(ctx context.Context, entry *models.HistoryEntry) {
	if s.feed == nil {
		return
	}
	if err := s.bounded(ctx, func(ctx context.Context) error { return s.feed.Publish(ctx, entry) }); err != nil {
		s.logger.WarnContext(ctx, "history feed publish failed",
			"sponsorship_id", entry.SponsorshipID.String(),
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.IncrementFeedFailure()
		}
	}
}

// notify hands n to the notifier. Failures are logged and counted only.
func (s *Service) notify(ctx context.Context, n *notification.Notification) {
	if s.notifier == nil || n == nil {
		return
	}
	if err := s.bounded(ctx, func(ctx context.Context) error { return s.notifier.Enqueue(ctx, n) }); err != nil {
		s.logger.WarnContext(ctx, "notification enqueue failed",
			"recipient_id", n.RecipientID.String(),
			"type", string(n.Type),
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.IncrementNotificationFailure()
		}
	}
}

// transitionFailed keeps coded errors and wraps store failures.
func transitionFailed(action string, err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action+" failed").
		WithReason(models.ReasonTransitionFailed)
}
