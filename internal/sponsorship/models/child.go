package models

import (
	"time"

	id "parrainage/pkg/domain"
)

// ChildStatus mirrors IsSponsored for listing filters.
type ChildStatus string

const (
	ChildStatusAvailable ChildStatus = "available"
	ChildStatusSponsored ChildStatus = "sponsored"
)

// Need is one entry of a child's ordered needs list.
type Need struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Urgent      bool   `json:"urgent"`
}

// Child is a sponsorable minor. The sponsorship fields are denormalized from
// the child's current sponsorship:
//
//   - IsSponsored is true iff exactly one sponsorship for the child is active or paused
//   - SponsorID equals that sponsorship's sponsor, nil otherwise
//   - Status is sponsored iff IsSponsored
type Child struct {
	ID          id.ChildID    `json:"id"`
	Name        string        `json:"name"`
	BirthDate   time.Time     `json:"birth_date"`
	City        string        `json:"city"`
	Gender      string        `json:"gender"`
	IsSponsored bool          `json:"is_sponsored"`
	SponsorID   *id.SponsorID `json:"sponsor_id,omitempty"`
	Status      ChildStatus   `json:"status"`
	Needs       []Need        `json:"needs"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewChild creates an available child.
func NewChild(name string, birthDate time.Time, city, gender string, now time.Time) *Child {
	return &Child{
		ID:        id.NewChildID(),
		Name:      name,
		BirthDate: birthDate,
		City:      city,
		Gender:    gender,
		Status:    ChildStatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ClaimedBy reports whether the child is currently sponsored by sponsorID.
func (c *Child) ClaimedBy(sponsorID id.SponsorID) bool {
	return c.IsSponsored && c.SponsorID != nil && *c.SponsorID == sponsorID
}

// ApplyClaim marks the child sponsored by sponsorID.
func (c *Child) ApplyClaim(sponsorID id.SponsorID, now time.Time) {
	c.IsSponsored = true
	c.SponsorID = &sponsorID
	c.Status = ChildStatusSponsored
	c.UpdatedAt = now
}

// ApplyRelease returns the child to available.
func (c *Child) ApplyRelease(now time.Time) {
	c.IsSponsored = false
	c.SponsorID = nil
	c.Status = ChildStatusAvailable
	c.UpdatedAt = now
}

// InSyncWith reports whether the denormalized fields agree with current,
// the child's active or paused sponsorship (nil when there is none).
func (c *Child) InSyncWith(current *Sponsorship) bool {
	if current == nil {
		return !c.IsSponsored && c.SponsorID == nil && c.Status == ChildStatusAvailable
	}
	return c.ClaimedBy(current.SponsorID) && c.Status == ChildStatusSponsored
}
