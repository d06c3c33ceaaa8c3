package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
)

const maxNoteLength = 5000

// GetSponsorship returns one sponsorship. Sponsors may only read their own.
func (s *Service) GetSponsorship(ctx context.Context, sponsorshipID id.SponsorshipID, actor id.Actor) (*models.Sponsorship, error) {
	sp, err := s.sponsorships.FindByID(ctx, sponsorshipID)
	if err != nil {
		return nil, loadFailed(err, "sponsorship")
	}
	if err := requireSponsorAccess(actor, sp.SponsorID); err != nil {
		return nil, err
	}
	return sp, nil
}

// ListHistory returns the audit trail of a sponsorship, oldest first.
func (s *Service) ListHistory(ctx context.Context, sponsorshipID id.SponsorshipID, actor id.Actor) ([]*models.HistoryEntry, error) {
	if _, err := s.GetSponsorship(ctx, sponsorshipID, actor); err != nil {
		return nil, err
	}
	entries, err := s.history.ListBySponsorship(ctx, sponsorshipID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list history")
	}
	return entries, nil
}

// ListSponsorshipsForSponsor backs the sponsor dashboard.
func (s *Service) ListSponsorshipsForSponsor(ctx context.Context, sponsorID id.SponsorID, actor id.Actor) ([]*models.Sponsorship, error) {
	if err := requireSponsorAccess(actor, sponsorID); err != nil {
		return nil, err
	}
	list, err := s.sponsorships.ListBySponsor(ctx, sponsorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sponsorships")
	}
	return list, nil
}

// AddNote attaches a staff note to a sponsorship.
func (s *Service) AddNote(ctx context.Context, sponsorshipID id.SponsorshipID, content string, actor id.Actor) (*models.Note, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "note content is required")
	}
	if utf8.RuneCountInString(content) > maxNoteLength {
		return nil, dErrors.Newf(dErrors.CodeValidation, "note must be at most %d characters", maxNoteLength)
	}
	if _, err := s.sponsorships.FindByID(ctx, sponsorshipID); err != nil {
		return nil, loadFailed(err, "sponsorship")
	}

	note := models.NewNote(sponsorshipID, actor.PerformedBy(), content, s.now(ctx))
	if err := s.notes.Append(ctx, note); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save note")
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, sponsorshipID id.SponsorshipID, actor id.Actor) ([]*models.Note, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if _, err := s.sponsorships.FindByID(ctx, sponsorshipID); err != nil {
		return nil, loadFailed(err, "sponsorship")
	}
	notes, err := s.notes.ListBySponsorship(ctx, sponsorshipID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notes")
	}
	return notes, nil
}
