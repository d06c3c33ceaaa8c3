// Package domain holds typed identifiers and small value types shared across
// modules. Typed IDs keep a ChildID from being passed where a SponsorID is
// expected; construct them via the Parse functions at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "parrainage/pkg/domain-errors"
)

type (
	ChildID        uuid.UUID
	SponsorID      uuid.UUID
	SponsorshipID  uuid.UUID
	RequestID      uuid.UUID
	HistoryEntryID uuid.UUID
	NoteID         uuid.UUID
	NotificationID uuid.UUID
)

// maxIDLength bounds input before it reaches uuid.Parse. The longest accepted
// form is the urn:uuid: prefix plus 36 characters.
const maxIDLength = 45

func parseID[T ~[16]byte](s, field string) (T, error) {
	var zero T
	if s == "" {
		return zero, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", field)
	}
	if len(s) > maxIDLength {
		return zero, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s", field)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return zero, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return zero, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be nil", field)
	}
	return T(u), nil
}

func ParseChildID(s string) (ChildID, error) { return parseID[ChildID](s, "child_id") }
func ParseSponsorID(s string) (SponsorID, error) { return parseID[SponsorID](s, "sponsor_id") }
func ParseSponsorshipID(s string) (SponsorshipID, error) {
	return parseID[SponsorshipID](s, "sponsorship_id")
}
func ParseRequestID(s string) (RequestID, error) { return parseID[RequestID](s, "request_id") }
func ParseNoteID(s string) (NoteID, error) { return parseID[NoteID](s, "note_id") }
func ParseNotificationID(s string) (NotificationID, error) {
	return parseID[NotificationID](s, "notification_id")
}

func NewChildID() ChildID { return ChildID(uuid.New()) }
func NewSponsorID() SponsorID { return SponsorID(uuid.New()) }
func NewSponsorshipID() SponsorshipID { return SponsorshipID(uuid.New()) }
func NewRequestID() RequestID { return RequestID(uuid.New()) }
func NewHistoryEntryID() HistoryEntryID { return HistoryEntryID(uuid.New()) }
func NewNoteID() NoteID { return NoteID(uuid.New()) }
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

func (id ChildID) String() string { return uuid.UUID(id).String() }
func (id SponsorID) String() string { return uuid.UUID(id).String() }
func (id SponsorshipID) String() string { return uuid.UUID(id).String() }
func (id RequestID) String() string { return uuid.UUID(id).String() }
func (id HistoryEntryID) String() string { return uuid.UUID(id).String() }
func (id NoteID) String() string { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

func (id ChildID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SponsorID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SponsorshipID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id HistoryEntryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id NoteID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshaling lets typed IDs appear as canonical UUID strings in JSON
// bodies and map keys.

func (id ChildID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id SponsorID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id SponsorshipID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id RequestID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id HistoryEntryID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NoteID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NotificationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ChildID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SponsorID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SponsorshipID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RequestID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *HistoryEntryID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NoteID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NotificationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
