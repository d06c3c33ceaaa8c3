package sponsorship

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"parrainage/internal/sponsorship/models"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/sentinel"
)

type SponsorshipStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *SponsorshipStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Now()
}

func TestSponsorshipStoreSuite(t *testing.T) {
	suite.Run(t, new(SponsorshipStoreSuite))
}

func (s *SponsorshipStoreSuite) create(childID id.ChildID, sponsorID id.SponsorID) *models.Sponsorship {
	sp := models.NewSponsorship(childID, sponsorID, s.now)
	s.Require().NoError(s.store.Create(s.ctx, sp))
	return sp
}

func (s *SponsorshipStoreSuite) TestOneCurrentSponsorshipPerChild() {
	childID := id.NewChildID()
	first := s.create(childID, id.NewSponsorID())

	s.Run("second active sponsorship is rejected", func() {
		err := s.store.Create(s.ctx, models.NewSponsorship(childID, id.NewSponsorID(), s.now))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("paused sponsorship still holds the child", func() {
		first.ApplyPause(s.now)
		s.Require().NoError(s.store.Update(s.ctx, first, models.StateActive))
		err := s.store.Create(s.ctx, models.NewSponsorship(childID, id.NewSponsorID(), s.now))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("ended sponsorship frees the child", func() {
		first.ApplyEnd(s.now, "done", s.now)
		s.Require().NoError(s.store.Update(s.ctx, first, models.StatePaused))
		s.create(childID, id.NewSponsorID())
	})
}

func (s *SponsorshipStoreSuite) TestFindCurrentByChild() {
	childID := id.NewChildID()
	_, err := s.store.FindCurrentByChild(s.ctx, childID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	sp := s.create(childID, id.NewSponsorID())
	found, err := s.store.FindCurrentByChild(s.ctx, childID)
	s.Require().NoError(err)
	s.Equal(sp.ID, found.ID)
}

func (s *SponsorshipStoreSuite) TestUpdateIsConditional() {
	sp := s.create(id.NewChildID(), id.NewSponsorID())

	stale := sp.Snapshot()
	sp.ApplyPause(s.now)
	s.Require().NoError(s.store.Update(s.ctx, sp, models.StateActive))

	stale.ApplyMarkTemporary(s.now.Add(time.Hour), s.now)
	s.ErrorIs(s.store.Update(s.ctx, &stale, models.StateActive), sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, sp.ID)
	s.Require().NoError(err)
	s.Equal(models.StatePaused, found.State())

	ghost := models.NewSponsorship(id.NewChildID(), id.NewSponsorID(), s.now)
	s.ErrorIs(s.store.Update(s.ctx, ghost, models.StateActive), sentinel.ErrNotFound)
}

func (s *SponsorshipStoreSuite) TestListings() {
	sponsorID := id.NewSponsorID()
	a := s.create(id.NewChildID(), sponsorID)
	b := s.create(id.NewChildID(), sponsorID)
	other := s.create(id.NewChildID(), id.NewSponsorID())

	bySponsor, err := s.store.ListBySponsor(s.ctx, sponsorID)
	s.Require().NoError(err)
	s.Len(bySponsor, 2)

	byChild, err := s.store.ListByChild(s.ctx, other.ChildID)
	s.Require().NoError(err)
	s.Len(byChild, 1)

	byIDs, err := s.store.ListByIDs(s.ctx, []id.SponsorshipID{a.ID, b.ID, id.NewSponsorshipID()})
	s.Require().NoError(err)
	s.Len(byIDs, 2)
}

func (s *SponsorshipStoreSuite) TestDelete() {
	sp := s.create(id.NewChildID(), id.NewSponsorID())
	s.Require().NoError(s.store.Delete(s.ctx, sp.ID))
	s.ErrorIs(s.store.Delete(s.ctx, sp.ID), sentinel.ErrNotFound)
	_, err := s.store.FindByID(s.ctx, sp.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
