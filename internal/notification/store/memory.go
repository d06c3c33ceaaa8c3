// Package store persists notifications. Every backend keeps a recipient's
// inbox newest first.
package store

import (
	"context"
	"sync"

	"parrainage/internal/notification/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// InMemory is the notification store of the in-memory deployment.
type InMemory struct {
	mu    sync.RWMutex
	inbox map[id.SponsorID][]models.Notification
}

func NewInMemory() *InMemory {
	return &InMemory{inbox: make(map[id.SponsorID][]models.Notification)}
}

func (s *InMemory) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox[n.RecipientID] = append(s.inbox[n.RecipientID], *n)
	return nil
}

func (s *InMemory) ListByRecipient(_ context.Context, recipient id.SponsorID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.inbox[recipient]
	out := make([]*models.Notification, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		n := stored[i]
		out = append(out, &n)
	}
	return out, nil
}

func (s *InMemory) MarkRead(_ context.Context, recipient id.SponsorID, notificationID id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.inbox[recipient]
	for i := range stored {
		if stored[i].ID == notificationID {
			stored[i].IsRead = true
			return nil
		}
	}
	return sentinel.ErrNotFound
}
