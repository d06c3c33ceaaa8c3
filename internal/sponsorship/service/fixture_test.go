package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	notification "parrainage/internal/notification/models"
	platformsqlite "parrainage/internal/platform/sqlite"
	"parrainage/internal/sponsorship/models"
	"parrainage/internal/sponsorship/store/child"
	"parrainage/internal/sponsorship/store/history"
	"parrainage/internal/sponsorship/store/note"
	"parrainage/internal/sponsorship/store/request"
	"parrainage/internal/sponsorship/store/sponsor"
	"parrainage/internal/sponsorship/store/sponsorship"
	sqlitestore "parrainage/internal/sponsorship/store/sqlite"
	id "parrainage/pkg/domain"
	"parrainage/pkg/requestcontext"
)

const (
	backendMemory = "memory"
	backendSQLite = "sqlite"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

// recordingNotifier keeps every enqueued notification.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []*notification.Notification
}

func (n *recordingNotifier) Enqueue(_ context.Context, msg *notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) types() []notification.Type {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.Type, 0, len(n.sent))
	for _, msg := range n.sent {
		out = append(out, msg.Type)
	}
	return out
}

// fixture is a service over real stores of one backend.
type fixture struct {
	t        *testing.T
	svc      *Service
	stores   Stores
	notifier *recordingNotifier
	ctx      context.Context
	admin    id.Actor
}

func newFixture(t *testing.T, backend string) *fixture {
	t.Helper()
	var (
		stores Stores
		tx     StoreTx
	)
	switch backend {
	case backendSQLite:
		db, err := platformsqlite.Open("")
		require.NoError(t, err)
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		require.NoError(t, sqlitestore.Migrate(db))
		s := sqlitestore.New(db)
		stores = Stores{
			Children:     s.Children,
			Sponsors:     s.Sponsors,
			Sponsorships: s.Sponsorships,
			Requests:     s.Requests,
			History:      s.History,
			Notes:        s.Notes,
		}
		tx = platformsqlite.NewTxRunner(db)
	default:
		stores = Stores{
			Children:     child.NewInMemory(),
			Sponsors:     sponsor.NewInMemory(),
			Sponsorships: sponsorship.NewInMemory(),
			Requests:     request.NewInMemory(),
			History:      history.NewInMemory(),
			Notes:        note.NewInMemory(),
		}
		tx = NewShardedTx(0)
	}

	notifier := &recordingNotifier{}
	svc, err := New(stores, tx,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNotifier(notifier),
	)
	require.NoError(t, err)

	f := &fixture{
		t:        t,
		svc:      svc,
		stores:   stores,
		notifier: notifier,
		ctx:      requestcontext.WithTime(context.Background(), fixedNow),
	}
	f.admin = f.actor(f.seedSponsor("admin@parrainage.org", id.RoleAdmin))
	return f
}

func (f *fixture) actor(s *models.Sponsor) id.Actor {
	return id.Actor{ID: s.ID, Role: s.Role}
}

func (f *fixture) seedSponsor(address string, role id.Role) *models.Sponsor {
	f.t.Helper()
	s := models.NewSponsor("Sponsor", address, role, fixedNow)
	require.NoError(f.t, f.stores.Sponsors.Create(f.ctx, s))
	return s
}

func (f *fixture) seedChild() *models.Child {
	f.t.Helper()
	c := models.NewChild("Awa", fixedNow.AddDate(-8, 0, 0), "Dakar", "f", fixedNow)
	c.Needs = []models.Need{{Category: "school", Description: "uniform"}}
	require.NoError(f.t, f.stores.Children.Create(f.ctx, c))
	return c
}

func (f *fixture) profile(address string) models.Profile {
	return models.Profile{Email: address, City: "Lyon", Motivation: "help", TermsAccepted: true}
}

// sponsorChild runs intake and approval and returns the active sponsorship.
func (f *fixture) sponsorChild(c *models.Child, s *models.Sponsor) *models.Sponsorship {
	f.t.Helper()
	req, err := f.svc.SubmitRequest(f.ctx, f.actor(s), c.ID, f.profile(s.Email))
	require.NoError(f.t, err)
	res, err := f.svc.ApproveRequest(f.ctx, req.ID, f.admin)
	require.NoError(f.t, err)
	return res.Sponsorship
}

func (f *fixture) sponsorship(sid id.SponsorshipID) *models.Sponsorship {
	f.t.Helper()
	sp, err := f.stores.Sponsorships.FindByID(f.ctx, sid)
	require.NoError(f.t, err)
	return sp
}

func (f *fixture) child(cid id.ChildID) *models.Child {
	f.t.Helper()
	c, err := f.stores.Children.FindByID(f.ctx, cid)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) history(sid id.SponsorshipID) []*models.HistoryEntry {
	f.t.Helper()
	entries, err := f.stores.History.ListBySponsorship(f.ctx, sid)
	require.NoError(f.t, err)
	return entries
}

// requireChildConsistent checks that the child is sponsored iff exactly one of
// its sponsorships holds it, and by that sponsorship's sponsor.
func (f *fixture) requireChildConsistent(cid id.ChildID) {
	f.t.Helper()
	all, err := f.stores.Sponsorships.ListByChild(f.ctx, cid)
	require.NoError(f.t, err)
	var holding []*models.Sponsorship
	for _, sp := range all {
		if sp.Status == models.SponsorshipStatusActive || sp.Status == models.SponsorshipStatusPaused {
			holding = append(holding, sp)
		}
	}
	require.LessOrEqual(f.t, len(holding), 1, "at most one current sponsorship per child")

	c := f.child(cid)
	if len(holding) == 0 {
		require.True(f.t, c.InSyncWith(nil), "child without a current sponsorship must be available")
		return
	}
	require.True(f.t, c.InSyncWith(holding[0]), "child must be claimed by its current sponsor")
}

func countActions(entries []*models.HistoryEntry, action models.HistoryAction) int {
	n := 0
	for _, e := range entries {
		if e.Action == action {
			n++
		}
	}
	return n
}
