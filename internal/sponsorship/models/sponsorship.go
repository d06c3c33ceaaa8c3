package models

import (
	"time"

	id "parrainage/pkg/domain"
)

// SponsorshipStatus is the persisted status column.
type SponsorshipStatus string

const (
	SponsorshipStatusPending SponsorshipStatus = "pending"
	SponsorshipStatusActive  SponsorshipStatus = "active"
	SponsorshipStatusPaused  SponsorshipStatus = "paused"
	SponsorshipStatusEnded   SponsorshipStatus = "ended"
)

func (s SponsorshipStatus) IsValid() bool {
	switch s {
	case SponsorshipStatusPending, SponsorshipStatusActive, SponsorshipStatusPaused, SponsorshipStatusEnded:
		return true
	}
	return false
}

func (s SponsorshipStatus) String() string {
	return string(s)
}

// EndReasonTransferred is recorded on a sponsorship closed by a transfer.
const EndReasonTransferred = "transferred"

// Sponsorship links one sponsor to one child for a period.
//
// Invariants:
//   - At most one sponsorship per child is active or paused at any time
//   - EndPlannedDate is set only while IsTemporary is true
//   - EndDate is set only once Status is ended, and never cleared
//   - Status only moves along the transition table in state.go
type Sponsorship struct {
	ID             id.SponsorshipID  `json:"id"`
	ChildID        id.ChildID        `json:"child_id"`
	SponsorID      id.SponsorID      `json:"sponsor_id"`
	Status         SponsorshipStatus `json:"status"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        *time.Time        `json:"end_date,omitempty"`
	IsTemporary    bool              `json:"is_temporary"`
	EndPlannedDate *time.Time        `json:"end_planned_date,omitempty"`
	EndReason      string            `json:"end_reason,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewSponsorship creates an active sponsorship starting now.
func NewSponsorship(childID id.ChildID, sponsorID id.SponsorID, now time.Time) *Sponsorship {
	return &Sponsorship{
		ID:        id.NewSponsorshipID(),
		ChildID:   childID,
		SponsorID: sponsorID,
		Status:    SponsorshipStatusActive,
		StartDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State derives the lifecycle state from the persisted columns.
func (s *Sponsorship) State() State {
	switch s.Status {
	case SponsorshipStatusActive:
		if s.IsTemporary {
			return StateTemporary
		}
		return StateActive
	case SponsorshipStatusPaused:
		return StatePaused
	case SponsorshipStatusEnded:
		return StateEnded
	default:
		return StatePending
	}
}

// HoldsChild reports whether this sponsorship keeps its child claimed.
func (s *Sponsorship) HoldsChild() bool {
	return s.State().HoldsChild()
}

// Can checks whether e is legal in the current state without mutating.
func (s *Sponsorship) Can(e Event) error {
	_, err := s.State().Next(e)
	return err
}

// ApplyPause moves an active sponsorship to paused.
// Call Can(EventPause) first.
func (s *Sponsorship) ApplyPause(now time.Time) {
	s.Status = SponsorshipStatusPaused
	s.UpdatedAt = now
}

// ApplyResume returns a paused or temporary sponsorship to plain active.
// Resuming a temporary sponsorship drops its planned end date.
func (s *Sponsorship) ApplyResume(now time.Time) {
	s.Status = SponsorshipStatusActive
	s.IsTemporary = false
	s.EndPlannedDate = nil
	s.UpdatedAt = now
}

// ApplyMarkTemporary flags an active sponsorship with a planned end date.
func (s *Sponsorship) ApplyMarkTemporary(endPlanned time.Time, now time.Time) {
	s.IsTemporary = true
	s.EndPlannedDate = &endPlanned
	s.UpdatedAt = now
}

// ApplyEnd closes the sponsorship at endDate.
func (s *Sponsorship) ApplyEnd(endDate time.Time, reason string, now time.Time) {
	s.Status = SponsorshipStatusEnded
	s.EndDate = &endDate
	s.EndReason = reason
	s.IsTemporary = false
	s.EndPlannedDate = nil
	s.UpdatedAt = now
}

// Apply validates e against the transition table and mutates s accordingly.
// args carries the event payload: the planned end for mark_temporary and the
// end date for terminate. Transfer ends the sponsorship at now.
func (s *Sponsorship) Apply(e Event, now time.Time, args TransitionArgs) error {
	if err := s.Can(e); err != nil {
		return err
	}
	switch e {
	case EventPause:
		s.ApplyPause(now)
	case EventResume:
		s.ApplyResume(now)
	case EventMarkTemporary:
		s.ApplyMarkTemporary(args.Date, now)
	case EventTerminate:
		s.ApplyEnd(args.Date, args.Reason, now)
	case EventTransfer:
		s.ApplyEnd(now, EndReasonTransferred, now)
	}
	return nil
}

// TransitionArgs is the optional payload of an Event.
type TransitionArgs struct {
	Date   time.Time
	Reason string
}

// Snapshot returns a copy safe to keep while s is mutated.
func (s *Sponsorship) Snapshot() Sponsorship {
	cp := *s
	if s.EndDate != nil {
		d := *s.EndDate
		cp.EndDate = &d
	}
	if s.EndPlannedDate != nil {
		d := *s.EndPlannedDate
		cp.EndPlannedDate = &d
	}
	return cp
}
