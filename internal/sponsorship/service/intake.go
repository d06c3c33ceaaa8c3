package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/email"
	"parrainage/pkg/platform/sentinel"
)

// maxMotivationLength bounds the free-text motivation, in runes.
const maxMotivationLength = 2000

// SubmitRequest records a pending sponsorship request from the acting sponsor.
// The profile is validated before any store access; the child and pair checks
// then run in order: child exists, child free, no pending or approved request
// for the pair.
func (s *Service) SubmitRequest(ctx context.Context, actor id.Actor, childID id.ChildID, profile models.Profile) (req *models.SponsorshipRequest, err error) {
	ctx, finish := s.startOp(ctx, "submit_request", actor)
	defer func() { finish(err) }()

	if actor.IsSystem() {
		return nil, dErrors.New(dErrors.CodeForbidden, "requests must be submitted by a sponsor")
	}
	profile, err = normalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	sponsor, err := s.sponsors.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, loadFailed(err, "sponsor")
	}
	if !sponsor.Active {
		return nil, dErrors.New(dErrors.CodeForbidden, "sponsor account is inactive")
	}
	if err := s.validateIntake(ctx, childID, actor.ID); err != nil {
		return nil, err
	}

	now := s.now(ctx)
	req = models.NewSponsorshipRequest(childID, actor.ID, profile, now)
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, errDuplicateRequest()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record sponsorship request")
	}

	s.logAudit(ctx, "sponsorship_request_submitted",
		"sponsorship_request_id", req.ID.String(),
		"child_id", childID.String(),
		"sponsor_id", actor.ID.String(),
	)
	s.notify(context.WithoutCancel(ctx), requestSubmittedNotice(req, now))
	return req, nil
}

// validateIntake runs the three ordered intake checks.
func (s *Service) validateIntake(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID) error {
	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		return loadFailed(err, "child")
	}
	if child.IsSponsored {
		return errAlreadySponsored()
	}

	latest, err := s.requests.FindLatestForPair(ctx, childID, sponsorID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load previous requests")
	}
	switch latest.Status {
	case models.RequestStatusPending:
		return errDuplicateRequest()
	case models.RequestStatusApproved:
		return errAlreadySponsoredByYou()
	}
	return nil
}

// normalizeProfile trims the profile and fills a blank full name from the
// email address.
func normalizeProfile(p models.Profile) (models.Profile, error) {
	if !p.TermsAccepted {
		return p, dErrors.New(dErrors.CodeValidation, "terms must be accepted")
	}
	p.Email = email.Normalize(p.Email)
	if !email.IsValid(p.Email) {
		return p, dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		p.FullName = email.DeriveFullName(p.Email)
	}
	if p.FullName == "" {
		return p, dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	p.City = strings.TrimSpace(p.City)
	p.Motivation = strings.TrimSpace(p.Motivation)
	if utf8.RuneCountInString(p.Motivation) > maxMotivationLength {
		return p, dErrors.Newf(dErrors.CodeValidation, "motivation must be at most %d characters", maxMotivationLength)
	}
	return p, nil
}
