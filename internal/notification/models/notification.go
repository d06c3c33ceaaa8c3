package models

import (
	"time"

	id "parrainage/pkg/domain"
)

// Type classifies a notification for the recipient's inbox.
type Type string

const (
	TypeRequestSubmitted     Type = "sponsorship_request_submitted"
	TypeRequestApproved      Type = "sponsorship_request_approved"
	TypeRequestRejected      Type = "sponsorship_request_rejected"
	TypeSponsorshipPaused    Type = "sponsorship_paused"
	TypeSponsorshipResumed   Type = "sponsorship_resumed"
	TypeSponsorshipTemporary Type = "sponsorship_temporary"
	TypeSponsorshipEnded     Type = "sponsorship_ended"
	TypeTransferredOut       Type = "sponsorship_transferred_out"
	TypeTransferredIn        Type = "sponsorship_transferred_in"
)

// Notification is a best-effort message to one recipient.
type Notification struct {
	ID          id.NotificationID `json:"id"`
	RecipientID id.SponsorID      `json:"recipient_id"`
	Type        Type              `json:"type"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Link        string            `json:"link,omitempty"`
	IsRead      bool              `json:"is_read"`
	CreatedAt   time.Time         `json:"created_at"`
}

// New builds an unread notification.
func New(recipient id.SponsorID, typ Type, title, content, link string, now time.Time) *Notification {
	return &Notification{
		ID:          id.NewNotificationID(),
		RecipientID: recipient,
		Type:        typ,
		Title:       title,
		Content:     content,
		Link:        link,
		CreatedAt:   now,
	}
}
