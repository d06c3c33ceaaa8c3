package sponsorship

import (
	"context"
	"slices"
	"sync"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// InMemory keeps sponsorships in a map. Create enforces the one-current-
// sponsorship-per-child rule that SQL backends get from a partial unique index.
type InMemory struct {
	mu           sync.RWMutex
	sponsorships map[id.SponsorshipID]*models.Sponsorship
}

func NewInMemory() *InMemory {
	return &InMemory{sponsorships: make(map[id.SponsorshipID]*models.Sponsorship)}
}

func (s *InMemory) Create(_ context.Context, sp *models.Sponsorship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sponsorships[sp.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if sp.HoldsChild() {
		for _, existing := range s.sponsorships {
			if existing.ChildID == sp.ChildID && existing.HoldsChild() {
				return sentinel.ErrAlreadyUsed
			}
		}
	}
	cp := sp.Snapshot()
	s.sponsorships[sp.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, sponsorshipID id.SponsorshipID) (*models.Sponsorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.sponsorships[sponsorshipID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := sp.Snapshot()
	return &cp, nil
}

func (s *InMemory) ListByIDs(_ context.Context, ids []id.SponsorshipID) ([]*models.Sponsorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Sponsorship, 0, len(ids))
	for _, sid := range ids {
		if sp, ok := s.sponsorships[sid]; ok {
			cp := sp.Snapshot()
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemory) FindCurrentByChild(_ context.Context, childID id.ChildID) (*models.Sponsorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.sponsorships {
		if sp.ChildID == childID && sp.HoldsChild() {
			cp := sp.Snapshot()
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListBySponsor(_ context.Context, sponsorID id.SponsorID) ([]*models.Sponsorship, error) {
	return s.list(func(sp *models.Sponsorship) bool { return sp.SponsorID == sponsorID }), nil
}

func (s *InMemory) ListByChild(_ context.Context, childID id.ChildID) ([]*models.Sponsorship, error) {
	return s.list(func(sp *models.Sponsorship) bool { return sp.ChildID == childID }), nil
}

func (s *InMemory) Update(_ context.Context, sp *models.Sponsorship, expected models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sponsorships[sp.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.State() != expected {
		return sentinel.ErrConflict
	}
	cp := sp.Snapshot()
	s.sponsorships[sp.ID] = &cp
	return nil
}

func (s *InMemory) Delete(_ context.Context, sponsorshipID id.SponsorshipID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sponsorships[sponsorshipID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sponsorships, sponsorshipID)
	return nil
}

func (s *InMemory) list(match func(*models.Sponsorship) bool) []*models.Sponsorship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Sponsorship
	for _, sp := range s.sponsorships {
		if match(sp) {
			cp := sp.Snapshot()
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Sponsorship) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}
