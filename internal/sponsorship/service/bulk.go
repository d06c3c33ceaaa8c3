package service

import (
	"context"
	"strings"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	strutil "parrainage/pkg/platform/strings"
)

// Pause moves each active sponsorship in ids to paused. Every id runs its own
// plan; one failure never blocks or undoes another.
func (s *Service) Pause(ctx context.Context, ids []id.SponsorshipID, reason string, actor id.Actor) (*models.BulkResult, error) {
	return s.bulk(ctx, "pause", models.EventPause, ids, reason, actor)
}

// Resume returns each paused or temporary sponsorship in ids to active.
func (s *Service) Resume(ctx context.Context, ids []id.SponsorshipID, reason string, actor id.Actor) (*models.BulkResult, error) {
	return s.bulk(ctx, "resume", models.EventResume, ids, reason, actor)
}

func (s *Service) bulk(ctx context.Context, action string, event models.Event, ids []id.SponsorshipID, reason string, actor id.Actor) (res *models.BulkResult, err error) {
	ctx, finish := s.startOp(ctx, "bulk_"+action, actor)
	defer func() { finish(err) }()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one sponsorship id is required")
	}
	ids = strutil.Dedupe(ids)
	reason = strings.TrimSpace(reason)

	loaded, err := s.sponsorships.ListByIDs(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sponsorships")
	}
	byID := make(map[id.SponsorshipID]*models.Sponsorship, len(loaded))
	for _, sp := range loaded {
		byID[sp.ID] = sp
	}

	res = &models.BulkResult{Outcomes: make([]models.BulkOutcome, 0, len(ids))}
	for _, sid := range ids {
		outcome := s.bulkOne(ctx, action, event, byID[sid], reason, actor)
		outcome.ID = sid.String()
		if outcome.Err != nil {
			res.Failed++
		} else {
			res.Succeeded++
		}
		res.Outcomes = append(res.Outcomes, outcome)
	}
	s.logAudit(ctx, "sponsorship_bulk_"+action,
		"requested", len(ids),
		"succeeded", res.Succeeded,
		"failed", res.Failed,
	)
	return res, nil
}

func (s *Service) bulkOne(ctx context.Context, action string, event models.Event, current *models.Sponsorship, reason string, actor id.Actor) (outcome models.BulkOutcome) {
	ctx, finish := s.startOp(ctx, action, actor)
	defer func() { finish(outcome.Err) }()

	if current == nil {
		outcome.Err = dErrors.New(dErrors.CodeNotFound, "sponsorship not found")
		return outcome
	}
	tr, err := s.transition(ctx, current, actor, transitionInput{
		action: action,
		event:  event,
		reason: reason,
	})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Sponsorship = tr.Sponsorship
	outcome.Warnings = tr.Warnings
	return outcome
}
