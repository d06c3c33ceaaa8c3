package sponsor

import (
	"context"
	"strings"
	"sync"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// InMemory keeps sponsors in a map with a case-insensitive email index.
type InMemory struct {
	mu       sync.RWMutex
	sponsors map[id.SponsorID]*models.Sponsor
	byEmail  map[string]id.SponsorID
}

func NewInMemory() *InMemory {
	return &InMemory{
		sponsors: make(map[id.SponsorID]*models.Sponsor),
		byEmail:  make(map[string]id.SponsorID),
	}
}

func (s *InMemory) Create(_ context.Context, sp *models.Sponsor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(sp.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.sponsors[sp.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *sp
	s.sponsors[sp.ID] = &cp
	s.byEmail[key] = sp.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, sponsorID id.SponsorID) (*models.Sponsor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.sponsors[sponsorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *sp
	return &cp, nil
}
