package models

import (
	"time"

	id "parrainage/pkg/domain"
)

// Note is free text attached to a sponsorship: termination comments and staff
// remarks. Notes are append-only.
type Note struct {
	ID            id.NoteID        `json:"id"`
	SponsorshipID id.SponsorshipID `json:"sponsorship_id"`
	AuthorID      *id.SponsorID    `json:"author_id,omitempty"`
	Content       string           `json:"content"`
	CreatedAt     time.Time        `json:"created_at"`
}

func NewNote(sponsorshipID id.SponsorshipID, authorID *id.SponsorID, content string, now time.Time) *Note {
	return &Note{
		ID:            id.NewNoteID(),
		SponsorshipID: sponsorshipID,
		AuthorID:      authorID,
		Content:       content,
		CreatedAt:     now,
	}
}
