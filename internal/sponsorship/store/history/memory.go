package history

import (
	"context"
	"sync"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// InMemory is an append-only history log.
type InMemory struct {
	mu      sync.RWMutex
	entries map[id.SponsorshipID][]models.HistoryEntry
	ids     map[id.HistoryEntryID]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{
		entries: make(map[id.SponsorshipID][]models.HistoryEntry),
		ids:     make(map[id.HistoryEntryID]struct{}),
	}
}

func (s *InMemory) Append(_ context.Context, entry *models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ids[entry.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.ids[entry.ID] = struct{}{}
	s.entries[entry.SponsorshipID] = append(s.entries[entry.SponsorshipID], *entry)
	return nil
}

func (s *InMemory) ListBySponsorship(_ context.Context, sponsorshipID id.SponsorshipID) ([]*models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.entries[sponsorshipID]
	out := make([]*models.HistoryEntry, len(stored))
	for i := range stored {
		entry := stored[i]
		out[i] = &entry
	}
	return out, nil
}
