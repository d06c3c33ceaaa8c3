package note

import (
	"context"
	"sync"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
)

// InMemory keeps sponsorship notes per sponsorship in insertion order.
type InMemory struct {
	mu    sync.RWMutex
	notes map[id.SponsorshipID][]models.Note
}

func NewInMemory() *InMemory {
	return &InMemory{notes: make(map[id.SponsorshipID][]models.Note)}
}

func (s *InMemory) Append(_ context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.SponsorshipID] = append(s.notes[n.SponsorshipID], *n)
	return nil
}

func (s *InMemory) ListBySponsorship(_ context.Context, sponsorshipID id.SponsorshipID) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.notes[sponsorshipID]
	out := make([]*models.Note, len(stored))
	for i := range stored {
		n := stored[i]
		out[i] = &n
	}
	return out, nil
}
