package handler

import (
	"strings"
	"time"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// maxBulkIDs bounds one bulk request.
const maxBulkIDs = 500

const maxReasonLength = 500

// SubmitRequestRequest is the body of POST /v1/sponsorship-requests.
type SubmitRequestRequest struct {
	ChildID       string `json:"child_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	City          string `json:"city"`
	Motivation    string `json:"motivation"`
	IsLongTerm    bool   `json:"is_long_term"`
	TermsAccepted bool   `json:"terms_accepted"`

	childID id.ChildID
}

// Validate parses the child ID. Profile rules are enforced by the service.
func (r *SubmitRequestRequest) Validate() error {
	childID, err := id.ParseChildID(strings.TrimSpace(r.ChildID))
	if err != nil {
		return err
	}
	r.childID = childID
	return nil
}

// Profile returns the applicant profile carried by the request.
func (r *SubmitRequestRequest) Profile() models.Profile {
	return models.Profile{
		FullName:      r.FullName,
		Email:         r.Email,
		City:          r.City,
		Motivation:    r.Motivation,
		IsLongTerm:    r.IsLongTerm,
		TermsAccepted: r.TermsAccepted,
	}
}

// RejectRequest is the body of POST /v1/sponsorship-requests/{id}/reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if len(r.Reason) > maxReasonLength {
		return dErrors.Newf(dErrors.CodeValidation, "reason must be at most %d characters", maxReasonLength)
	}
	return nil
}

// BulkRequest is the body of the bulk pause and resume endpoints.
type BulkRequest struct {
	SponsorshipIDs []string `json:"sponsorship_ids"`
	Reason         string   `json:"reason"`

	ids []id.SponsorshipID
	// keys holds one canonical key per submitted id, in order; malformed
	// maps the keys that failed to parse to their error.
	keys      []string
	malformed map[string]error
}

func (r *BulkRequest) Validate() error {
	if len(r.SponsorshipIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "sponsorship_ids is required")
	}
	if len(r.SponsorshipIDs) > maxBulkIDs {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d sponsorship_ids per request", maxBulkIDs)
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if len(r.Reason) > maxReasonLength {
		return dErrors.Newf(dErrors.CodeValidation, "reason must be at most %d characters", maxReasonLength)
	}
	r.ids = make([]id.SponsorshipID, 0, len(r.SponsorshipIDs))
	r.keys = make([]string, 0, len(r.SponsorshipIDs))
	r.malformed = make(map[string]error)
	for _, raw := range r.SponsorshipIDs {
		key := strings.TrimSpace(raw)
		sid, err := id.ParseSponsorshipID(key)
		if err != nil {
			r.malformed[key] = err
			r.keys = append(r.keys, key)
			continue
		}
		r.ids = append(r.ids, sid)
		r.keys = append(r.keys, sid.String())
	}
	return nil
}

// merge folds the malformed ids into res as failed outcomes, keeping the
// submitted order and dropping repeats.
func (r *BulkRequest) merge(res *models.BulkResult) *models.BulkResult {
	if len(r.malformed) == 0 {
		return res
	}
	byKey := make(map[string]models.BulkOutcome, len(res.Outcomes))
	for _, o := range res.Outcomes {
		byKey[o.ID] = o
	}
	out := &models.BulkResult{
		Outcomes:  make([]models.BulkOutcome, 0, len(r.keys)),
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
	}
	seen := make(map[string]bool, len(r.keys))
	for _, key := range r.keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if err, bad := r.malformed[key]; bad {
			out.Outcomes = append(out.Outcomes, models.BulkOutcome{ID: key, Err: err})
			out.Failed++
			continue
		}
		if o, ok := byKey[key]; ok {
			out.Outcomes = append(out.Outcomes, o)
		}
	}
	return out
}

// TemporaryRequest is the body of POST /v1/sponsorships/{id}/temporary.
type TemporaryRequest struct {
	EndPlannedDate string `json:"end_planned_date"`

	endPlanned time.Time
}

func (r *TemporaryRequest) Validate() error {
	d, err := parseDate("end_planned_date", r.EndPlannedDate)
	if err != nil {
		return err
	}
	r.endPlanned = d
	return nil
}

// TerminateRequest is the body of POST /v1/sponsorships/{id}/terminate.
type TerminateRequest struct {
	EndDate string `json:"end_date"`
	Reason  string `json:"reason"`
	Comment string `json:"comment,omitempty"`

	endDate time.Time
}

func (r *TerminateRequest) Validate() error {
	d, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return err
	}
	r.endDate = d
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	if len(r.Reason) > maxReasonLength {
		return dErrors.Newf(dErrors.CodeValidation, "reason must be at most %d characters", maxReasonLength)
	}
	return nil
}

// NoteRequest is the body of POST /v1/sponsorships/{id}/notes.
type NoteRequest struct {
	Content string `json:"content"`
}

func (r *NoteRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return dErrors.New(dErrors.CodeValidation, "content is required")
	}
	return nil
}

// TransferRequest is the body of POST /v1/children/{id}/transfer.
type TransferRequest struct {
	FromSponsorID string `json:"from_sponsor_id"`
	ToSponsorID   string `json:"to_sponsor_id"`

	from id.SponsorID
	to   id.SponsorID
}

func (r *TransferRequest) Validate() error {
	from, err := id.ParseSponsorID(strings.TrimSpace(r.FromSponsorID))
	if err != nil {
		return err
	}
	to, err := id.ParseSponsorID(strings.TrimSpace(r.ToSponsorID))
	if err != nil {
		return err
	}
	r.from, r.to = from, to
	return nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "%s is required", field)
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeValidation, field+" must be a YYYY-MM-DD date")
	}
	return d, nil
}
