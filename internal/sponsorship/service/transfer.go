package service

import (
	"context"
	"errors"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/sentinel"
)

// TransferChild ends the child's current sponsorship with from and opens a new
// active one with to. The child must be held by from in the active or
// temporary state. One transferred history entry, attached to the new
// sponsorship, references both parties.
func (s *Service) TransferChild(ctx context.Context, childID id.ChildID, from, to id.SponsorID, actor id.Actor) (res *models.TransferResult, err error) {
	ctx, finish := s.startOp(ctx, "transfer", actor)
	defer func() { finish(err) }()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if from == to {
		return nil, dErrors.New(dErrors.CodeValidation, "source and target sponsors must differ")
	}

	target, err := s.sponsors.FindByID(ctx, to)
	if err != nil {
		return nil, loadFailed(err, "target sponsor")
	}
	if !target.Active {
		return nil, dErrors.New(dErrors.CodeInvalidState, "target sponsor account is inactive")
	}
	if _, err := s.children.FindByID(ctx, childID); err != nil {
		return nil, loadFailed(err, "child")
	}

	current, err := s.sponsorships.FindCurrentByChild(ctx, childID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, errNotCurrentlySponsored()
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load current sponsorship")
	}
	if current.SponsorID != from || !current.State().Allows(models.EventTransfer) {
		return nil, errNotCurrentlySponsored()
	}

	now := s.now(ctx)
	expected := current.State()
	before := current.Snapshot()
	ended := current.Snapshot()
	if err := ended.Apply(models.EventTransfer, now, models.TransitionArgs{}); err != nil {
		return nil, err
	}
	next := models.NewSponsorship(childID, to, now)

	p := &plan{
		action: "transfer",
		shard:  childID.String(),
		steps: []step{
			{
				name: "end_previous_sponsorship",
				apply: func(ctx context.Context) error {
					return updateFailed(s.sponsorships.Update(ctx, &ended, expected))
				},
				compensate: func(ctx context.Context) error {
					return s.sponsorships.Update(ctx, &before, models.StateEnded)
				},
			},
			{
				name: "create_sponsorship",
				apply: func(ctx context.Context) error {
					err := s.sponsorships.Create(ctx, next)
					if errors.Is(err, sentinel.ErrAlreadyUsed) {
						return errChildAlreadyClaimed()
					}
					return err
				},
				compensate: func(ctx context.Context) error {
					return s.sponsorships.Delete(ctx, next.ID)
				},
			},
			{
				name: "reassign_child",
				apply: func(ctx context.Context) error {
					err := s.children.Reassign(ctx, childID, from, to, now)
					if errors.Is(err, sentinel.ErrConflict) {
						return errNotCurrentlySponsored()
					}
					return err
				},
				compensate: func(ctx context.Context) error {
					return s.children.Reassign(ctx, childID, to, from, now)
				},
			},
		},
		after: effects{
			history:       []*models.HistoryEntry{models.NewTransferEntry(&ended, next, actor.PerformedBy(), now)},
			notifications: transferNotices(&ended, next, now),
		},
	}

	warnings, err := s.execute(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "sponsorship_transferred",
		"child_id", childID.String(),
		"previous_sponsorship_id", ended.ID.String(),
		"sponsorship_id", next.ID.String(),
		"from_sponsor_id", from.String(),
		"to_sponsor_id", to.String(),
	)
	return &models.TransferResult{Previous: &ended, Current: next, Warnings: warnings}, nil
}
