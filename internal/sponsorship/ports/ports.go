// Package ports declares what the sponsorship service needs from the outside:
// the entity store, the notification collaborator and the history feed.
//
// Store methods return pkg/platform/sentinel errors. Conditional writes
// (Claim, Release, Reassign, Update, Decide) affect zero rows when their
// precondition no longer holds and report sentinel.ErrConflict; unique
// constraint violations report sentinel.ErrAlreadyUsed.
package ports

import (
	"context"
	"time"

	notification "parrainage/internal/notification/models"
	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=../service/mocks/ports_mock.go -package=mocks

type ChildStore interface {
	Create(ctx context.Context, child *models.Child) error
	FindByID(ctx context.Context, childID id.ChildID) (*models.Child, error)
	// Claim marks the child sponsored by sponsorID unless another sponsor holds it.
	Claim(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error
	// Release frees the child unless another sponsor holds it.
	Release(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error
	// Reassign moves the claim from one sponsor to another.
	Reassign(ctx context.Context, childID id.ChildID, from, to id.SponsorID, now time.Time) error
	// SaveSponsorship overwrites the denormalized sponsorship fields unconditionally.
	SaveSponsorship(ctx context.Context, child *models.Child) error
}

type SponsorStore interface {
	Create(ctx context.Context, sponsor *models.Sponsor) error
	FindByID(ctx context.Context, sponsorID id.SponsorID) (*models.Sponsor, error)
}

type SponsorshipStore interface {
	// Create inserts s; ErrAlreadyUsed when the child already has an active or paused sponsorship.
	Create(ctx context.Context, s *models.Sponsorship) error
	FindByID(ctx context.Context, sponsorshipID id.SponsorshipID) (*models.Sponsorship, error)
	// ListByIDs returns the sponsorships that exist among ids, in no particular order.
	ListByIDs(ctx context.Context, ids []id.SponsorshipID) ([]*models.Sponsorship, error)
	// FindCurrentByChild returns the child's active or paused sponsorship.
	FindCurrentByChild(ctx context.Context, childID id.ChildID) (*models.Sponsorship, error)
	ListBySponsor(ctx context.Context, sponsorID id.SponsorID) ([]*models.Sponsorship, error)
	ListByChild(ctx context.Context, childID id.ChildID) ([]*models.Sponsorship, error)
	// Update persists s only if the stored row is still in state expected.
	Update(ctx context.Context, s *models.Sponsorship, expected models.State) error
	// Delete removes a sponsorship. Used only to compensate a failed creation.
	Delete(ctx context.Context, sponsorshipID id.SponsorshipID) error
}

type RequestStore interface {
	// Create inserts r; ErrAlreadyUsed when the pair already has a pending request.
	Create(ctx context.Context, r *models.SponsorshipRequest) error
	FindByID(ctx context.Context, requestID id.RequestID) (*models.SponsorshipRequest, error)
	// FindLatestForPair returns the most recent request for (child, sponsor).
	FindLatestForPair(ctx context.Context, childID id.ChildID, sponsorID id.SponsorID) (*models.SponsorshipRequest, error)
	// ListByStatus lists requests oldest first; an empty status lists all.
	ListByStatus(ctx context.Context, status models.RequestStatus) ([]*models.SponsorshipRequest, error)
	// Decide persists an approval or rejection only if the stored request is still pending.
	Decide(ctx context.Context, r *models.SponsorshipRequest) error
	// Reopen returns a decided request to pending. Used only for compensation.
	Reopen(ctx context.Context, requestID id.RequestID) error
}

type HistoryStore interface {
	Append(ctx context.Context, entry *models.HistoryEntry) error
	ListBySponsorship(ctx context.Context, sponsorshipID id.SponsorshipID) ([]*models.HistoryEntry, error)
}

type NoteStore interface {
	Append(ctx context.Context, note *models.Note) error
	ListBySponsorship(ctx context.Context, sponsorshipID id.SponsorshipID) ([]*models.Note, error)
}

// Notifier enqueues a notification for delivery. Failures never affect the
// transition that produced the notification.
type Notifier interface {
	Enqueue(ctx context.Context, n *notification.Notification) error
}

// HistoryFeed publishes appended history entries to downstream consumers.
type HistoryFeed interface {
	Publish(ctx context.Context, entry *models.HistoryEntry) error
}
