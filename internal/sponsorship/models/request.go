package models

import (
	"time"

	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
)

// RequestStatus is the lifecycle of a sponsorship request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	return s == RequestStatusPending || s == RequestStatusApproved || s == RequestStatusRejected
}

// CanTransitionTo allows pending → approved and pending → rejected only.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	return s == RequestStatusPending && (target == RequestStatusApproved || target == RequestStatusRejected)
}

func (s RequestStatus) String() string {
	return string(s)
}

// Profile is what a prospective sponsor submits with a request.
type Profile struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	City          string `json:"city"`
	Motivation    string `json:"motivation"`
	IsLongTerm    bool   `json:"is_long_term"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// SponsorshipRequest is a prospective claim awaiting a staff decision.
// At most one request per (child, sponsor) pair is pending at any time.
type SponsorshipRequest struct {
	ID        id.RequestID  `json:"id"`
	ChildID   id.ChildID    `json:"child_id"`
	SponsorID id.SponsorID  `json:"sponsor_id"`
	Status    RequestStatus `json:"status"`
	Profile
	CreatedAt       time.Time     `json:"created_at"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	DecidedBy       *id.SponsorID `json:"decided_by,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
}

// NewSponsorshipRequest creates a pending request.
func NewSponsorshipRequest(childID id.ChildID, sponsorID id.SponsorID, profile Profile, now time.Time) *SponsorshipRequest {
	return &SponsorshipRequest{
		ID:        id.NewRequestID(),
		ChildID:   childID,
		SponsorID: sponsorID,
		Status:    RequestStatusPending,
		Profile:   profile,
		CreatedAt: now,
	}
}

// CanDecide checks that the request is still pending.
func (r *SponsorshipRequest) CanDecide() error {
	if !r.Status.CanTransitionTo(RequestStatusApproved) {
		return dErrors.Newf(dErrors.CodeInvalidState, "request is %s, not pending", r.Status).
			WithReason(ReasonRequestNotPending)
	}
	return nil
}

// ApplyApproval records the approval.
func (r *SponsorshipRequest) ApplyApproval(decidedBy *id.SponsorID, now time.Time) {
	r.Status = RequestStatusApproved
	r.DecidedAt = &now
	r.DecidedBy = decidedBy
}

// ApplyRejection records the rejection and its reason.
func (r *SponsorshipRequest) ApplyRejection(decidedBy *id.SponsorID, reason string, now time.Time) {
	r.Status = RequestStatusRejected
	r.DecidedAt = &now
	r.DecidedBy = decidedBy
	r.RejectionReason = reason
}
