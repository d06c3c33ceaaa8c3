package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parrainage/internal/notification/models"
	"parrainage/internal/notification/service"
	"parrainage/internal/notification/store"
	"parrainage/pkg/testutil"
)

func newInboxRouter(t *testing.T) (http.Handler, *service.Service) {
	t.Helper()
	svc, err := service.New(store.NewInMemory())
	require.NoError(t, err)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, svc
}

func TestInbox(t *testing.T) {
	router, svc := newInboxRouter(t)
	actor := testutil.SponsorActor()
	n := models.New(actor.ID, models.TypeRequestApproved, "Request approved", "Welcome.", "/sponsorships/x", time.Now())
	require.NoError(t, svc.Enqueue(context.Background(), n))

	testutil.Given(t, "an unread notification", func(t *testing.T) {
		testutil.When(t, "the recipient lists the inbox", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/v1/me/notifications"), actor))
			testutil.AssertStatusOK(t, rr)
			resp := testutil.UnmarshalResponse[InboxResponse](t, rr)
			testutil.Then(t, "it is listed as unread", func(t *testing.T) {
				require.Len(t, resp.Items, 1)
				assert.Equal(t, n.ID.String(), resp.Items[0].ID)
				assert.Equal(t, 1, resp.Unread)
			})
		})

		testutil.When(t, "the recipient marks it read", func(t *testing.T) {
			path := "/v1/me/notifications/" + n.ID.String() + "/read"
			rr := testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodPost, path), actor))
			testutil.AssertStatus(t, rr, http.StatusNoContent)

			rr = testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/v1/me/notifications"), actor))
			resp := testutil.UnmarshalResponse[InboxResponse](t, rr)
			testutil.Then(t, "the unread count drops", func(t *testing.T) {
				assert.Equal(t, 0, resp.Unread)
			})
		})
	})

	t.Run("another user cannot mark it", func(t *testing.T) {
		path := "/v1/me/notifications/" + n.ID.String() + "/read"
		rr := testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodPost, path), testutil.SponsorActor()))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/v1/me/notifications"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.WithActor(testutil.NewRequest(t, http.MethodPost, "/v1/me/notifications/abc/read"), actor))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})
}
