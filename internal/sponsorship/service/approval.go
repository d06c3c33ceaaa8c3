package service

import (
	"context"
	"errors"
	"strings"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/sentinel"
)

// ApproveRequest turns a pending request into an active sponsorship and
// claims the child. The request decision, the guard on the child's current
// sponsorship, the sponsorship insert and the child claim form one plan; a
// concurrent approval for the same child loses with child_already_claimed and
// leaves its request pending.
func (s *Service) ApproveRequest(ctx context.Context, requestID id.RequestID, actor id.Actor) (res *models.ApprovalResult, err error) {
	ctx, finish := s.startOp(ctx, "approve_request", actor)
	defer func() { finish(err) }()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, loadFailed(err, "sponsorship request")
	}
	if err := req.CanDecide(); err != nil {
		return nil, err
	}

	now := s.now(ctx)
	approved := *req
	approved.ApplyApproval(actor.PerformedBy(), now)
	sp := models.NewSponsorship(req.ChildID, req.SponsorID, now)

	p := &plan{
		action: "approve_request",
		shard:  req.ChildID.String(),
		steps: []step{
			{
				name: "decide_request",
				apply: func(ctx context.Context) error {
					return decideFailed(s.requests.Decide(ctx, &approved))
				},
				compensate: func(ctx context.Context) error {
					return s.requests.Reopen(ctx, req.ID)
				},
			},
			{
				name: "guard_current_sponsorship",
				apply: func(ctx context.Context) error {
					_, err := s.sponsorships.FindCurrentByChild(ctx, req.ChildID)
					switch {
					case err == nil:
						return errChildAlreadyClaimed()
					case errors.Is(err, sentinel.ErrNotFound):
						return nil
					default:
						return err
					}
				},
			},
			{
				name: "create_sponsorship",
				apply: func(ctx context.Context) error {
					err := s.sponsorships.Create(ctx, sp)
					if errors.Is(err, sentinel.ErrAlreadyUsed) {
						return errChildAlreadyClaimed()
					}
					return err
				},
				compensate: func(ctx context.Context) error {
					return s.sponsorships.Delete(ctx, sp.ID)
				},
			},
			{
				name: "claim_child",
				apply: func(ctx context.Context) error {
					err := s.children.Claim(ctx, req.ChildID, req.SponsorID, now)
					switch {
					case errors.Is(err, sentinel.ErrConflict):
						return errChildAlreadyClaimed()
					case errors.Is(err, sentinel.ErrNotFound):
						return loadFailed(err, "child")
					}
					return err
				},
				compensate: func(ctx context.Context) error {
					return s.children.Release(ctx, req.ChildID, req.SponsorID, now)
				},
			},
		},
		after: effects{
			history: []*models.HistoryEntry{
				models.NewHistoryEntry(sp.ID, models.HistoryActionCreated, "", actor.PerformedBy(), now),
			},
		},
	}
	p.after.notifications = append(p.after.notifications, requestApprovedNotice(&approved, sp, now))

	warnings, err := s.execute(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "sponsorship_request_approved",
		"sponsorship_request_id", req.ID.String(),
		"sponsorship_id", sp.ID.String(),
		"child_id", sp.ChildID.String(),
		"sponsor_id", sp.SponsorID.String(),
	)
	return &models.ApprovalResult{Request: &approved, Sponsorship: sp, Warnings: warnings}, nil
}

// RejectRequest declines a pending request. No child or sponsorship changes.
func (s *Service) RejectRequest(ctx context.Context, requestID id.RequestID, actor id.Actor, reason string) (res *models.SponsorshipRequest, err error) {
	ctx, finish := s.startOp(ctx, "reject_request", actor)
	defer func() { finish(err) }()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, loadFailed(err, "sponsorship request")
	}
	if err := req.CanDecide(); err != nil {
		return nil, err
	}

	now := s.now(ctx)
	rejected := *req
	rejected.ApplyRejection(actor.PerformedBy(), strings.TrimSpace(reason), now)

	p := &plan{
		action: "reject_request",
		shard:  req.ChildID.String(),
		steps: []step{{
			name: "decide_request",
			apply: func(ctx context.Context) error {
				return decideFailed(s.requests.Decide(ctx, &rejected))
			},
		}},
	}
	p.after.notifications = append(p.after.notifications, requestRejectedNotice(&rejected, now))

	if _, err := s.execute(ctx, p); err != nil {
		return nil, err
	}
	s.logAudit(ctx, "sponsorship_request_rejected",
		"sponsorship_request_id", req.ID.String(),
		"child_id", req.ChildID.String(),
		"sponsor_id", req.SponsorID.String(),
	)
	return &rejected, nil
}

// ListRequests lists requests oldest first; an empty status lists all.
func (s *Service) ListRequests(ctx context.Context, actor id.Actor, status models.RequestStatus) ([]*models.SponsorshipRequest, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown request status %q", status)
	}
	reqs, err := s.requests.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sponsorship requests")
	}
	return reqs, nil
}

func decideFailed(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrConflict):
		return errRequestNotPending()
	case errors.Is(err, sentinel.ErrNotFound):
		return loadFailed(err, "sponsorship request")
	}
	return err
}
