package request

import (
	"context"
	"slices"
	"sync"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

// InMemory keeps sponsorship requests in insertion order.
type InMemory struct {
	mu       sync.RWMutex
	requests map[id.RequestID]*models.SponsorshipRequest
	order    []id.RequestID
}

func NewInMemory() *InMemory {
	return &InMemory{requests: make(map[id.RequestID]*models.SponsorshipRequest)}
}

func (s *InMemory) Create(_ context.Context, r *models.SponsorshipRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if r.Status == models.RequestStatusPending {
		for _, existing := range s.requests {
			if existing.ChildID == r.ChildID && existing.SponsorID == r.SponsorID &&
				existing.Status == models.RequestStatusPending {
				return sentinel.ErrAlreadyUsed
			}
		}
	}
	s.requests[r.ID] = clone(r)
	s.order = append(s.order, r.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, requestID id.RequestID) (*models.SponsorshipRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

func (s *InMemory) FindLatestForPair(_ context.Context, childID id.ChildID, sponsorID id.SponsorID) (*models.SponsorshipRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rid := range slices.Backward(s.order) {
		r := s.requests[rid]
		if r.ChildID == childID && r.SponsorID == sponsorID {
			return clone(r), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListByStatus(_ context.Context, status models.RequestStatus) ([]*models.SponsorshipRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.SponsorshipRequest
	for _, rid := range s.order {
		r := s.requests[rid]
		if status == "" || r.Status == status {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (s *InMemory) Decide(_ context.Context, r *models.SponsorshipRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[r.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Status != models.RequestStatusPending {
		return sentinel.ErrConflict
	}
	s.requests[r.ID] = clone(r)
	return nil
}

func (s *InMemory) Reopen(_ context.Context, requestID id.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok {
		return sentinel.ErrNotFound
	}
	cp := clone(r)
	cp.Status = models.RequestStatusPending
	cp.DecidedAt = nil
	cp.DecidedBy = nil
	cp.RejectionReason = ""
	s.requests[requestID] = cp
	return nil
}

func clone(r *models.SponsorshipRequest) *models.SponsorshipRequest {
	cp := *r
	if r.DecidedAt != nil {
		t := *r.DecidedAt
		cp.DecidedAt = &t
	}
	if r.DecidedBy != nil {
		by := *r.DecidedBy
		cp.DecidedBy = &by
	}
	return &cp
}
