package domain

import dErrors "parrainage/pkg/domain-errors"

// Role is one of the three coarse access roles of the platform.
// Invariant: the value must be one of the supported roles.
//
// Usage: construct via ParseRole at trust boundaries (token claims, admin
// input); direct casting bypasses validation.
type Role string

const (
	RoleSponsor   Role = "sponsor"
	RoleAssistant Role = "assistant"
	RoleAdmin     Role = "admin"
)

var validRoles = map[Role]bool{
	RoleSponsor:   true,
	RoleAssistant: true,
	RoleAdmin:     true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

// IsStaff reports whether the role may run back-office operations.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleAssistant
}

func (r Role) String() string {
	return string(r)
}

// Actor is whoever performs an operation. Every service call takes the actor
// explicitly instead of reading it from ambient session state.
type Actor struct {
	ID   SponsorID
	Role Role
}

// System is the actor for unattended operations (reconciliation jobs, tests).
// Its nil ID is persisted as a NULL performed_by.
var System = Actor{Role: RoleAdmin}

func (a Actor) IsSystem() bool {
	return a.ID.IsNil()
}

// PerformedBy returns the actor ID for audit columns, nil for the system actor.
func (a Actor) PerformedBy() *SponsorID {
	if a.IsSystem() {
		return nil
	}
	id := a.ID
	return &id
}
