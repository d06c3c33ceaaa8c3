package models

import (
	"time"

	id "parrainage/pkg/domain"
)

// Sponsor is a donor account. Assistants and admins are sponsors with a
// staff role.
type Sponsor struct {
	ID        id.SponsorID `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      id.Role      `json:"role"`
	Active    bool         `json:"active"`
	Verified  bool         `json:"verified"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewSponsor creates an active, unverified sponsor.
func NewSponsor(name, email string, role id.Role, now time.Time) *Sponsor {
	return &Sponsor{
		ID:        id.NewSponsorID(),
		Name:      name,
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
	}
}
