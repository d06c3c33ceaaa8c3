package child

import (
	"context"
	"slices"
	"sync"
	"time"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// InMemory keeps children in a map. Conditional writes check and mutate under
// one lock so they behave like single-row conditional updates.
type InMemory struct {
	mu       sync.RWMutex
	children map[id.ChildID]*models.Child
}

func NewInMemory() *InMemory {
	return &InMemory{children: make(map[id.ChildID]*models.Child)}
}

func (s *InMemory) Create(_ context.Context, c *models.Child) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.children[c.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.children[c.ID] = clone(c)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, childID id.ChildID) (*models.Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.children[childID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(c), nil
}

func (s *InMemory) Claim(_ context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error {
	return s.mutate(childID, func(c *models.Child) error {
		if c.IsSponsored && !c.ClaimedBy(sponsorID) {
			return sentinel.ErrConflict
		}
		c.ApplyClaim(sponsorID, now)
		return nil
	})
}

func (s *InMemory) Release(_ context.Context, childID id.ChildID, sponsorID id.SponsorID, now time.Time) error {
	return s.mutate(childID, func(c *models.Child) error {
		if c.IsSponsored && !c.ClaimedBy(sponsorID) {
			return sentinel.ErrConflict
		}
		c.ApplyRelease(now)
		return nil
	})
}

func (s *InMemory) Reassign(_ context.Context, childID id.ChildID, from, to id.SponsorID, now time.Time) error {
	return s.mutate(childID, func(c *models.Child) error {
		if !c.ClaimedBy(from) {
			return sentinel.ErrConflict
		}
		c.ApplyClaim(to, now)
		return nil
	})
}

func (s *InMemory) SaveSponsorship(_ context.Context, updated *models.Child) error {
	return s.mutate(updated.ID, func(c *models.Child) error {
		c.IsSponsored = updated.IsSponsored
		c.SponsorID = updated.SponsorID
		c.Status = updated.Status
		c.UpdatedAt = updated.UpdatedAt
		return nil
	})
}

func (s *InMemory) mutate(childID id.ChildID, fn func(c *models.Child) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.children[childID]
	if !ok {
		return sentinel.ErrNotFound
	}
	next := clone(c)
	if err := fn(next); err != nil {
		return err
	}
	s.children[childID] = next
	return nil
}

func clone(c *models.Child) *models.Child {
	cp := *c
	if c.SponsorID != nil {
		sid := *c.SponsorID
		cp.SponsorID = &sid
	}
	cp.Needs = slices.Clone(c.Needs)
	return &cp
}
