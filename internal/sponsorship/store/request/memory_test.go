package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

type RequestStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *RequestStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Now()
}

func TestRequestStoreSuite(t *testing.T) {
	suite.Run(t, new(RequestStoreSuite))
}

func (s *RequestStoreSuite) submit(childID id.ChildID, sponsorID id.SponsorID) *models.SponsorshipRequest {
	r := models.NewSponsorshipRequest(childID, sponsorID, models.Profile{FullName: "Marie"}, s.now)
	s.Require().NoError(s.store.Create(s.ctx, r))
	return r
}

func (s *RequestStoreSuite) TestOnePendingPerPair() {
	childID, sponsorID := id.NewChildID(), id.NewSponsorID()
	first := s.submit(childID, sponsorID)

	dup := models.NewSponsorshipRequest(childID, sponsorID, models.Profile{}, s.now)
	s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrAlreadyUsed)

	s.submit(childID, id.NewSponsorID())

	first.ApplyRejection(nil, "no", s.now)
	s.Require().NoError(s.store.Decide(s.ctx, first))
	s.submit(childID, sponsorID)
}

func (s *RequestStoreSuite) TestFindLatestForPair() {
	childID, sponsorID := id.NewChildID(), id.NewSponsorID()
	_, err := s.store.FindLatestForPair(s.ctx, childID, sponsorID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	first := s.submit(childID, sponsorID)
	first.ApplyRejection(nil, "no", s.now)
	s.Require().NoError(s.store.Decide(s.ctx, first))
	second := s.submit(childID, sponsorID)

	latest, err := s.store.FindLatestForPair(s.ctx, childID, sponsorID)
	s.Require().NoError(err)
	s.Equal(second.ID, latest.ID)
}

func (s *RequestStoreSuite) TestDecideIsConditional() {
	r := s.submit(id.NewChildID(), id.NewSponsorID())
	admin := id.NewSponsorID()

	approved := *r
	approved.ApplyApproval(&admin, s.now)
	s.Require().NoError(s.store.Decide(s.ctx, &approved))

	rejected := *r
	rejected.ApplyRejection(&admin, "late", s.now)
	s.ErrorIs(s.store.Decide(s.ctx, &rejected), sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(models.RequestStatusApproved, found.Status)
}

func (s *RequestStoreSuite) TestReopen() {
	r := s.submit(id.NewChildID(), id.NewSponsorID())
	r.ApplyApproval(nil, s.now)
	s.Require().NoError(s.store.Decide(s.ctx, r))

	s.Require().NoError(s.store.Reopen(s.ctx, r.ID))
	found, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(models.RequestStatusPending, found.Status)
	s.Nil(found.DecidedAt)

	s.ErrorIs(s.store.Reopen(s.ctx, id.NewRequestID()), sentinel.ErrNotFound)
}

func (s *RequestStoreSuite) TestListByStatus() {
	a := s.submit(id.NewChildID(), id.NewSponsorID())
	s.submit(id.NewChildID(), id.NewSponsorID())
	a.ApplyRejection(nil, "no", s.now)
	s.Require().NoError(s.store.Decide(s.ctx, a))

	pending, err := s.store.ListByStatus(s.ctx, models.RequestStatusPending)
	s.Require().NoError(err)
	s.Len(pending, 1)

	all, err := s.store.ListByStatus(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal(a.ID, all[0].ID)
}
