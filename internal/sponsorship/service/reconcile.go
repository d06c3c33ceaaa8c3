package service

import (
	"context"
	"errors"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/sentinel"
)

// ReconcileChild recomputes the child's denormalized sponsorship fields from
// its current sponsorship and rewrites the row when they drifted, for example
// after a failed compensation. repaired reports whether a write happened.
func (s *Service) ReconcileChild(ctx context.Context, childID id.ChildID, actor id.Actor) (child *models.Child, repaired bool, err error) {
	ctx, finish := s.startOp(ctx, "reconcile_child", actor)
	defer func() { finish(err) }()

	if err := requireAdmin(actor); err != nil {
		return nil, false, err
	}

	err = s.tx.RunInTx(withShardKey(ctx, childID.String()), func(ctx context.Context) error {
		c, err := s.children.FindByID(ctx, childID)
		if err != nil {
			return loadFailed(err, "child")
		}
		current, err := s.sponsorships.FindCurrentByChild(ctx, childID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			current = nil
		case err != nil:
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load current sponsorship")
		}
		child = c
		if c.InSyncWith(current) {
			return nil
		}

		now := s.now(ctx)
		if current != nil {
			c.ApplyClaim(current.SponsorID, now)
		} else {
			c.ApplyRelease(now)
		}
		if err := s.children.SaveSponsorship(ctx, c); err != nil {
			return err
		}
		repaired = true
		return nil
	})
	if err != nil {
		return nil, false, transitionFailed("reconcile_child", err)
	}

	if repaired {
		if s.metrics != nil {
			s.metrics.IncrementReconciliation()
		}
		s.logAudit(ctx, "child_reconciled",
			"child_id", childID.String(),
			"is_sponsored", child.IsSponsored,
		)
	}
	return child, repaired, nil
}
