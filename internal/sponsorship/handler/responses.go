package handler

import (
	"time"

	"parrainage/internal/sponsorship/models"
	dErrors "parrainage/pkg/domain-errors"
)

// ListResponse wraps collection responses.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// SponsorshipResponse is the wire form of a sponsorship. Calendar dates use
// DateLayout; audit timestamps are RFC 3339.
type SponsorshipResponse struct {
	ID             string    `json:"id"`
	ChildID        string    `json:"child_id"`
	SponsorID      string    `json:"sponsor_id"`
	State          string    `json:"state"`
	Status         string    `json:"status"`
	IsTemporary    bool      `json:"is_temporary"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date,omitempty"`
	EndPlannedDate string    `json:"end_planned_date,omitempty"`
	EndReason      string    `json:"end_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RequestResponse struct {
	ID              string     `json:"id"`
	ChildID         string     `json:"child_id"`
	SponsorID       string     `json:"sponsor_id"`
	Status          string     `json:"status"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	City            string     `json:"city,omitempty"`
	Motivation      string     `json:"motivation,omitempty"`
	IsLongTerm      bool       `json:"is_long_term"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	DecidedBy       string     `json:"decided_by,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type HistoryResponse struct {
	ID                    string    `json:"id"`
	SponsorshipID         string    `json:"sponsorship_id"`
	Action                string    `json:"action"`
	Reason                string    `json:"reason,omitempty"`
	PerformedBy           string    `json:"performed_by,omitempty"`
	FromSponsorID         string    `json:"from_sponsor_id,omitempty"`
	ToSponsorID           string    `json:"to_sponsor_id,omitempty"`
	PreviousSponsorshipID string    `json:"previous_sponsorship_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type NoteResponse struct {
	ID            string    `json:"id"`
	SponsorshipID string    `json:"sponsorship_id"`
	AuthorID      string    `json:"author_id,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChildResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsSponsored bool   `json:"is_sponsored"`
	SponsorID   string `json:"sponsor_id,omitempty"`
	Status      string `json:"status"`
}

type TransitionResponse struct {
	Sponsorship SponsorshipResponse `json:"sponsorship"`
	Warnings    []models.Warning    `json:"warnings,omitempty"`
}

type ApprovalResponse struct {
	Request     RequestResponse     `json:"request"`
	Sponsorship SponsorshipResponse `json:"sponsorship"`
	Warnings    []models.Warning    `json:"warnings,omitempty"`
}

type TransferResponse struct {
	Previous SponsorshipResponse `json:"previous"`
	Current  SponsorshipResponse `json:"current"`
	Warnings []models.Warning    `json:"warnings,omitempty"`
}

type ReconcileResponse struct {
	Child    ChildResponse `json:"child"`
	Repaired bool          `json:"repaired"`
}

// BulkOutcomeResponse reports one id of a bulk operation: either the updated
// sponsorship or the error code, reason and message.
type BulkOutcomeResponse struct {
	ID          string               `json:"id"`
	Sponsorship *SponsorshipResponse `json:"sponsorship,omitempty"`
	Warnings    []models.Warning     `json:"warnings,omitempty"`
	Error       string               `json:"error,omitempty"`
	Reason      string               `json:"reason,omitempty"`
	Description string               `json:"error_description,omitempty"`
}

type BulkResponse struct {
	Outcomes  []BulkOutcomeResponse `json:"outcomes"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

func toSponsorshipResponse(sp *models.Sponsorship) SponsorshipResponse {
	return SponsorshipResponse{
		ID:             sp.ID.String(),
		ChildID:        sp.ChildID.String(),
		SponsorID:      sp.SponsorID.String(),
		State:          sp.State().String(),
		Status:         string(sp.Status),
		IsTemporary:    sp.IsTemporary,
		StartDate:      sp.StartDate.Format(DateLayout),
		EndDate:        formatDate(sp.EndDate),
		EndPlannedDate: formatDate(sp.EndPlannedDate),
		EndReason:      sp.EndReason,
		CreatedAt:      sp.CreatedAt,
		UpdatedAt:      sp.UpdatedAt,
	}
}

func toRequestResponse(r *models.SponsorshipRequest) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID.String(),
		ChildID:         r.ChildID.String(),
		SponsorID:       r.SponsorID.String(),
		Status:          r.Status.String(),
		FullName:        r.FullName,
		Email:           r.Email,
		City:            r.City,
		Motivation:      r.Motivation,
		IsLongTerm:      r.IsLongTerm,
		CreatedAt:       r.CreatedAt,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
	}
	if r.DecidedBy != nil {
		resp.DecidedBy = r.DecidedBy.String()
	}
	return resp
}

func toHistoryResponse(e *models.HistoryEntry) HistoryResponse {
	resp := HistoryResponse{
		ID:            e.ID.String(),
		SponsorshipID: e.SponsorshipID.String(),
		Action:        string(e.Action),
		Reason:        e.Reason,
		CreatedAt:     e.CreatedAt,
	}
	if e.PerformedBy != nil {
		resp.PerformedBy = e.PerformedBy.String()
	}
	if e.FromSponsorID != nil {
		resp.FromSponsorID = e.FromSponsorID.String()
	}
	if e.ToSponsorID != nil {
		resp.ToSponsorID = e.ToSponsorID.String()
	}
	if e.PreviousSponsorshipID != nil {
		resp.PreviousSponsorshipID = e.PreviousSponsorshipID.String()
	}
	return resp
}

func toNoteResponse(n *models.Note) NoteResponse {
	resp := NoteResponse{
		ID:            n.ID.String(),
		SponsorshipID: n.SponsorshipID.String(),
		Content:       n.Content,
		CreatedAt:     n.CreatedAt,
	}
	if n.AuthorID != nil {
		resp.AuthorID = n.AuthorID.String()
	}
	return resp
}

func toChildResponse(c *models.Child) ChildResponse {
	resp := ChildResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		IsSponsored: c.IsSponsored,
		Status:      string(c.Status),
	}
	if c.SponsorID != nil {
		resp.SponsorID = c.SponsorID.String()
	}
	return resp
}

func toTransitionResponse(res *models.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Sponsorship: toSponsorshipResponse(res.Sponsorship),
		Warnings:    res.Warnings,
	}
}

func toBulkResponse(res *models.BulkResult) BulkResponse {
	out := BulkResponse{
		Outcomes:  make([]BulkOutcomeResponse, 0, len(res.Outcomes)),
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
	}
	for _, o := range res.Outcomes {
		item := BulkOutcomeResponse{ID: o.ID, Warnings: o.Warnings}
		if o.Err != nil {
			item.Error = string(dErrors.CodeOf(o.Err))
			item.Reason = dErrors.ReasonOf(o.Err)
			if item.Error != string(dErrors.CodeInternal) {
				if de, ok := dErrors.As(o.Err); ok {
					item.Description = de.Message
				}
			}
		} else if o.Sponsorship != nil {
			sp := toSponsorshipResponse(o.Sponsorship)
			item.Sponsorship = &sp
		}
		out.Outcomes = append(out.Outcomes, item)
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
