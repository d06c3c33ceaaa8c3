package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/sentinel"
)

// TerminateInput carries the payload of a termination.
type TerminateInput struct {
	SponsorshipID id.SponsorshipID
	// Date is the effective end date; it must not be before today.
	Date   time.Time
	Reason string
	// Comment is optional free text stored as a note on the sponsorship.
	Comment string
}

// transitionInput describes one single-sponsorship transition.
type transitionInput struct {
	action string
	event  models.Event
	args   models.TransitionArgs
	reason string
	note   string
}

// MarkTemporary flags an active sponsorship with a planned end date, which
// must be strictly in the future.
func (s *Service) MarkTemporary(ctx context.Context, sponsorshipID id.SponsorshipID, endPlanned time.Time, actor id.Actor) (res *models.TransitionResult, err error) {
	ctx, finish := s.startOp(ctx, "mark_temporary", actor)
	defer func() { finish(err) }()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if !endPlanned.After(s.now(ctx)) {
		return nil, dErrors.New(dErrors.CodeValidation, "planned end date must be in the future")
	}

	current, err := s.sponsorships.FindByID(ctx, sponsorshipID)
	if err != nil {
		return nil, loadFailed(err, "sponsorship")
	}
	return s.transition(ctx, current, actor, transitionInput{
		action: "mark_temporary",
		event:  models.EventMarkTemporary,
		args:   models.TransitionArgs{Date: endPlanned.UTC()},
	})
}

// Terminate ends a sponsorship and releases its child. Staff may terminate any
// sponsorship; a sponsor only their own.
func (s *Service) Terminate(ctx context.Context, in TerminateInput, actor id.Actor) (res *models.TransitionResult, err error) {
	ctx, finish := s.startOp(ctx, "terminate", actor)
	defer func() { finish(err) }()

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "termination reason is required")
	}
	if in.Date.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "termination date is required")
	}
	date := in.Date.UTC()
	if startOfDay(date).Before(startOfDay(s.now(ctx))) {
		return nil, dErrors.New(dErrors.CodeValidation, "termination date must not be in the past")
	}

	current, err := s.sponsorships.FindByID(ctx, in.SponsorshipID)
	if err != nil {
		return nil, loadFailed(err, "sponsorship")
	}
	if err := requireSponsorAccess(actor, current.SponsorID); err != nil {
		return nil, err
	}
	return s.transition(ctx, current, actor, transitionInput{
		action: "terminate",
		event:  models.EventTerminate,
		args:   models.TransitionArgs{Date: date, Reason: reason},
		reason: reason,
		note:   strings.TrimSpace(in.Comment),
	})
}

// transition applies in.event to current through a write plan: a conditional
// update of the sponsorship, then the child release when the sponsorship stops
// holding its child.
func (s *Service) transition(ctx context.Context, current *models.Sponsorship, actor id.Actor, in transitionInput) (*models.TransitionResult, error) {
	if err := current.Can(in.event); err != nil {
		return nil, err
	}
	now := s.now(ctx)
	expected := current.State()
	before := current.Snapshot()
	next := current.Snapshot()
	if err := next.Apply(in.event, now, in.args); err != nil {
		return nil, err
	}

	p := &plan{
		action: in.action,
		shard:  current.ChildID.String(),
		steps: []step{{
			name: "update_sponsorship",
			apply: func(ctx context.Context) error {
				return updateFailed(s.sponsorships.Update(ctx, &next, expected))
			},
			compensate: func(ctx context.Context) error {
				return s.sponsorships.Update(ctx, &before, next.State())
			},
		}},
		after: effects{
			history: []*models.HistoryEntry{
				models.NewHistoryEntry(current.ID, models.HistoryActionFor(in.event), in.reason, actor.PerformedBy(), now),
			},
		},
	}
	if expected.HoldsChild() && !next.HoldsChild() {
		p.steps = append(p.steps, step{
			name: "release_child",
			apply: func(ctx context.Context) error {
				err := s.children.Release(ctx, current.ChildID, current.SponsorID, now)
				if errors.Is(err, sentinel.ErrConflict) {
					return dErrors.New(dErrors.CodeConflict, "the child is held by another sponsor; reconcile the child first")
				}
				return err
			},
			compensate: func(ctx context.Context) error {
				return s.children.Claim(ctx, current.ChildID, current.SponsorID, now)
			},
		})
	}
	if in.note != "" {
		p.after.notes = append(p.after.notes, models.NewNote(current.ID, actor.PerformedBy(), in.note, now))
	}
	if n := transitionNotice(&next, in.event, in.reason, now); n != nil {
		p.after.notifications = append(p.after.notifications, n)
	}

	warnings, err := s.execute(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "sponsorship_"+in.action,
		"sponsorship_id", current.ID.String(),
		"child_id", current.ChildID.String(),
		"from_state", expected.String(),
		"to_state", next.State().String(),
	)
	return &models.TransitionResult{Sponsorship: &next, Warnings: warnings}, nil
}

func updateFailed(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrConflict):
		return errConcurrentUpdate("sponsorship")
	case errors.Is(err, sentinel.ErrNotFound):
		return loadFailed(err, "sponsorship")
	}
	return err
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
