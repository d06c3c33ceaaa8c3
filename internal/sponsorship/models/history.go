package models

import (
	"time"

	id "parrainage/pkg/domain"
)

// HistoryAction names the transition a history entry records.
type HistoryAction string

const (
	HistoryActionCreated     HistoryAction = "created"
	HistoryActionPause       HistoryAction = "pause"
	HistoryActionResume      HistoryAction = "resume"
	HistoryActionTemporary   HistoryAction = "temporary"
	HistoryActionTerminated  HistoryAction = "terminated"
	HistoryActionTransferred HistoryAction = "transferred"
)

// HistoryActionFor maps a state machine event to the action it records.
func HistoryActionFor(e Event) HistoryAction {
	switch e {
	case EventPause:
		return HistoryActionPause
	case EventResume:
		return HistoryActionResume
	case EventMarkTemporary:
		return HistoryActionTemporary
	case EventTerminate:
		return HistoryActionTerminated
	case EventTransfer:
		return HistoryActionTransferred
	}
	return HistoryAction(e)
}

// HistoryEntry is an immutable audit record, created once per transition.
// PerformedBy is nil for system-initiated transitions. Transfer entries
// reference both parties and the sponsorship that was closed.
type HistoryEntry struct {
	ID                    id.HistoryEntryID `json:"id"`
	SponsorshipID         id.SponsorshipID  `json:"sponsorship_id"`
	Action                HistoryAction     `json:"action"`
	Reason                string            `json:"reason,omitempty"`
	PerformedBy           *id.SponsorID     `json:"performed_by,omitempty"`
	FromSponsorID         *id.SponsorID     `json:"from_sponsor_id,omitempty"`
	ToSponsorID           *id.SponsorID     `json:"to_sponsor_id,omitempty"`
	PreviousSponsorshipID *id.SponsorshipID `json:"previous_sponsorship_id,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
}

// NewHistoryEntry builds an entry for a single-sponsorship transition.
func NewHistoryEntry(sponsorshipID id.SponsorshipID, action HistoryAction, reason string, performedBy *id.SponsorID, now time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:            id.NewHistoryEntryID(),
		SponsorshipID: sponsorshipID,
		Action:        action,
		Reason:        reason,
		PerformedBy:   performedBy,
		CreatedAt:     now,
	}
}

// NewTransferEntry builds the single entry recorded for a transfer. It is
// attached to the new sponsorship.
func NewTransferEntry(previous, next *Sponsorship, performedBy *id.SponsorID, now time.Time) *HistoryEntry {
	from := previous.SponsorID
	to := next.SponsorID
	prevID := previous.ID
	entry := NewHistoryEntry(next.ID, HistoryActionTransferred, "", performedBy, now)
	entry.FromSponsorID = &from
	entry.ToSponsorID = &to
	entry.PreviousSponsorshipID = &prevID
	return entry
}
