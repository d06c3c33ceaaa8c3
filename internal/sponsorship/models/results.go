package models

// Named business outcomes carried as dErrors reasons.
const (
	ReasonAlreadySponsored      = "already_sponsored"
	ReasonDuplicateRequest      = "duplicate_request"
	ReasonAlreadySponsoredByYou = "already_sponsored_by_you"
	ReasonChildAlreadyClaimed   = "child_already_claimed"
	ReasonNotCurrentlySponsored = "not_currently_sponsored"
	ReasonRequestNotPending     = "request_not_pending"
	ReasonTransitionFailed      = "transition_failed"
)

// WarningAuditWriteFailed marks a committed transition whose history entry
// could not be written.
const WarningAuditWriteFailed = "audit_write_failed"

// WarningNoteWriteFailed marks a committed transition whose accompanying note
// could not be written.
const WarningNoteWriteFailed = "note_write_failed"

// Warning is a non-fatal problem observed after a transition committed.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TransitionResult is returned by every single-sponsorship transition.
type TransitionResult struct {
	Sponsorship *Sponsorship `json:"sponsorship"`
	Warnings    []Warning    `json:"warnings,omitempty"`
}

// TransferResult carries both sides of a transfer.
type TransferResult struct {
	Previous *Sponsorship `json:"previous"`
	Current  *Sponsorship `json:"current"`
	Warnings []Warning    `json:"warnings,omitempty"`
}

// ApprovalResult carries the decided request and the sponsorship it created.
type ApprovalResult struct {
	Request     *SponsorshipRequest `json:"request"`
	Sponsorship *Sponsorship        `json:"sponsorship"`
	Warnings    []Warning           `json:"warnings,omitempty"`
}

// BulkOutcome is the per-id result of a bulk operation. Exactly one of
// Sponsorship and Err is set.
type BulkOutcome struct {
	ID          string
	Sponsorship *Sponsorship
	Warnings    []Warning
	Err         error
}

// BulkResult aggregates a bulk operation. Outcomes keep the order of the
// deduplicated input.
type BulkResult struct {
	Outcomes  []BulkOutcome
	Succeeded int
	Failed    int
}
