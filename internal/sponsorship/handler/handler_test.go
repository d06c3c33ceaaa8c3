package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"parrainage/internal/sponsorship/models"
	"parrainage/internal/sponsorship/service"
	"parrainage/internal/sponsorship/store/child"
	"parrainage/internal/sponsorship/store/history"
	"parrainage/internal/sponsorship/store/note"
	"parrainage/internal/sponsorship/store/request"
	"parrainage/internal/sponsorship/store/sponsor"
	"parrainage/internal/sponsorship/store/sponsorship"
	id "parrainage/pkg/domain"
	"parrainage/pkg/platform/middleware/auth"
	"parrainage/pkg/platform/middleware/requesttime"
	"parrainage/pkg/testutil"
)

// tokenValidator accepts tokens of the form "<role>:<sponsor id>".
type tokenValidator struct{}

func (tokenValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	role, subject, ok := strings.Cut(token, ":")
	if !ok {
		return nil, errors.New("malformed token")
	}
	return &auth.JWTClaims{SubjectID: subject, Role: role}, nil
}

type HandlerSuite struct {
	suite.Suite
	router    http.Handler
	sponsors  *sponsor.InMemory
	children  *child.InMemory
	admin     *models.Sponsor
	assistant *models.Sponsor
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.sponsors = sponsor.NewInMemory()
	s.children = child.NewInMemory()
	svc, err := service.New(service.Stores{
		Children:     s.children,
		Sponsors:     s.sponsors,
		Sponsorships: sponsorship.NewInMemory(),
		Requests:     request.NewInMemory(),
		History:      history.NewInMemory(),
		Notes:        note.NewInMemory(),
	}, service.NewShardedTx(0))
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Use(requesttime.Middleware)
	r.Use(auth.RequireAuth(tokenValidator{}, logger))
	New(svc, logger).Register(r)
	s.router = r

	s.admin = s.seedSponsor("admin@parrainage.org", id.RoleAdmin)
	s.assistant = s.seedSponsor("assistant@parrainage.org", id.RoleAssistant)
}

func (s *HandlerSuite) seedSponsor(address string, role id.Role) *models.Sponsor {
	sp := models.NewSponsor("Sponsor", address, role, time.Now().UTC())
	s.Require().NoError(s.sponsors.Create(context.Background(), sp))
	return sp
}

func (s *HandlerSuite) seedChild() *models.Child {
	c := models.NewChild("Awa", time.Now().AddDate(-8, 0, 0), "Dakar", "f", time.Now().UTC())
	s.Require().NoError(s.children.Create(context.Background(), c))
	return c
}

func (s *HandlerSuite) do(as *models.Sponsor, method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if as != nil {
		testutil.WithBearer(req, as.Role.String()+":"+as.ID.String())
	}
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) submit(as *models.Sponsor, c *models.Child) RequestResponse {
	rr := s.do(as, http.MethodPost, "/v1/sponsorship-requests", map[string]any{
		"child_id":       c.ID.String(),
		"full_name":      "Marie Curie",
		"email":          as.Email,
		"terms_accepted": true,
	})
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return *testutil.UnmarshalResponse[RequestResponse](s.T(), rr)
}

func (s *HandlerSuite) approve(requestID string) ApprovalResponse {
	rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorship-requests/"+requestID+"/approve", nil)
	testutil.AssertStatusOK(s.T(), rr)
	return *testutil.UnmarshalResponse[ApprovalResponse](s.T(), rr)
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format(DateLayout)
}

func (s *HandlerSuite) TestRequiresAuthentication() {
	rr := s.do(nil, http.MethodGet, "/v1/me/sponsorships", nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *HandlerSuite) TestSubmitApproveTerminate() {
	owner := s.seedSponsor("marie@example.org", id.RoleSponsor)
	c := s.seedChild()

	req := s.submit(owner, c)
	s.Equal("pending", req.Status)

	s.Run("staff lists pending requests", func() {
		rr := s.do(s.assistant, http.MethodGet, "/v1/sponsorship-requests?status=pending", nil)
		testutil.AssertStatusOK(s.T(), rr)
		list := testutil.UnmarshalResponse[ListResponse[RequestResponse]](s.T(), rr)
		s.Require().Len(list.Items, 1)
		s.Equal(req.ID, list.Items[0].ID)
	})

	s.Run("sponsor cannot approve", func() {
		rr := s.do(owner, http.MethodPost, "/v1/sponsorship-requests/"+req.ID+"/approve", nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	approval := s.approve(req.ID)
	s.Equal("approved", approval.Request.Status)
	s.Equal("active", approval.Sponsorship.State)
	sid := approval.Sponsorship.ID

	s.Run("other sponsors cannot read it", func() {
		stranger := s.seedSponsor("stranger@example.org", id.RoleSponsor)
		rr := s.do(stranger, http.MethodGet, "/v1/sponsorships/"+sid, nil)
		testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
	})

	rr := s.do(owner, http.MethodPost, "/v1/sponsorships/"+sid+"/terminate", map[string]any{
		"end_date": tomorrow(),
		"reason":   "moving abroad",
	})
	testutil.AssertStatusOK(s.T(), rr)
	terminated := testutil.UnmarshalResponse[TransitionResponse](s.T(), rr)
	s.Equal("ended", terminated.Sponsorship.State)
	s.Equal(tomorrow(), terminated.Sponsorship.EndDate)
	s.Equal("moving abroad", terminated.Sponsorship.EndReason)

	rr = s.do(owner, http.MethodGet, "/v1/sponsorships/"+sid+"/history", nil)
	testutil.AssertStatusOK(s.T(), rr)
	hist := testutil.UnmarshalResponse[ListResponse[HistoryResponse]](s.T(), rr)
	s.Require().Len(hist.Items, 2)
	s.Equal("created", hist.Items[0].Action)
	s.Equal("terminated", hist.Items[1].Action)

	rr = s.do(owner, http.MethodGet, "/v1/me/sponsorships", nil)
	testutil.AssertStatusOK(s.T(), rr)
	mine := testutil.UnmarshalResponse[ListResponse[SponsorshipResponse]](s.T(), rr)
	s.Require().Len(mine.Items, 1)

	rr = s.do(owner, http.MethodPost, "/v1/sponsorships/"+sid+"/terminate", map[string]any{
		"end_date": tomorrow(),
		"reason":   "again",
	})
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "invalid_state")
}

func (s *HandlerSuite) TestDuplicateRequestCarriesReason() {
	owner := s.seedSponsor("marie@example.org", id.RoleSponsor)
	c := s.seedChild()
	s.submit(owner, c)

	rr := s.do(owner, http.MethodPost, "/v1/sponsorship-requests", map[string]any{
		"child_id":       c.ID.String(),
		"full_name":      "Marie Curie",
		"email":          owner.Email,
		"terms_accepted": true,
	})
	testutil.AssertReason(s.T(), rr, http.StatusConflict, "duplicate_request")
}

func (s *HandlerSuite) TestRejectsMalformedInput() {
	owner := s.seedSponsor("marie@example.org", id.RoleSponsor)

	s.Run("invalid child id", func() {
		rr := s.do(owner, http.MethodPost, "/v1/sponsorship-requests", map[string]any{"child_id": "nope"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown field", func() {
		rr := s.do(owner, http.MethodPost, "/v1/sponsorship-requests", map[string]any{"child": "x"})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("termination date format", func() {
		rr := s.do(owner, http.MethodPost, "/v1/sponsorships/"+id.NewSponsorshipID().String()+"/terminate", map[string]any{
			"end_date": "10/03/2026",
			"reason":   "moving",
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("termination reason required", func() {
		rr := s.do(owner, http.MethodPost, "/v1/sponsorships/"+id.NewSponsorshipID().String()+"/terminate", map[string]any{
			"end_date": tomorrow(),
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("unknown sponsorship", func() {
		rr := s.do(owner, http.MethodGet, "/v1/sponsorships/"+id.NewSponsorshipID().String(), nil)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestBulkPauseReportsPerID() {
	owner := s.seedSponsor("marie@example.org", id.RoleSponsor)
	approval := s.approve(s.submit(owner, s.seedChild()).ID)
	missing := id.NewSponsorshipID().String()

	rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorships/pause", map[string]any{
		"sponsorship_ids": []string{approval.Sponsorship.ID, missing},
		"reason":          "school holidays",
	})
	testutil.AssertStatusOK(s.T(), rr)
	res := testutil.UnmarshalResponse[BulkResponse](s.T(), rr)
	s.Equal(1, res.Succeeded)
	s.Equal(1, res.Failed)
	s.Require().Len(res.Outcomes, 2)
	s.Require().NotNil(res.Outcomes[0].Sponsorship)
	s.Equal("paused", res.Outcomes[0].Sponsorship.State)
	s.Equal(missing, res.Outcomes[1].ID)
	s.Equal("not_found", res.Outcomes[1].Error)

	rr = s.do(s.assistant, http.MethodPost, "/v1/sponsorships/resume", map[string]any{
		"sponsorship_ids": []string{approval.Sponsorship.ID},
	})
	testutil.AssertStatusOK(s.T(), rr)
	res = testutil.UnmarshalResponse[BulkResponse](s.T(), rr)
	s.Equal(1, res.Succeeded)
	s.Equal("active", res.Outcomes[0].Sponsorship.State)
}

func (s *HandlerSuite) TestBulkPauseReportsMalformedIDsPerID() {
	owner := s.seedSponsor("marie@example.org", id.RoleSponsor)
	approval := s.approve(s.submit(owner, s.seedChild()).ID)

	rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorships/pause", map[string]any{
		"sponsorship_ids": []string{"not-a-uuid", approval.Sponsorship.ID, "not-a-uuid"},
		"reason":          "school holidays",
	})
	testutil.AssertStatusOK(s.T(), rr)
	res := testutil.UnmarshalResponse[BulkResponse](s.T(), rr)
	s.Equal(1, res.Succeeded)
	s.Equal(1, res.Failed)
	s.Require().Len(res.Outcomes, 2)
	s.Equal("not-a-uuid", res.Outcomes[0].ID)
	s.Equal("invalid_input", res.Outcomes[0].Error)
	s.NotEmpty(res.Outcomes[0].Description)
	s.Require().NotNil(res.Outcomes[1].Sponsorship)
	s.Equal("paused", res.Outcomes[1].Sponsorship.State)

	s.Run("only malformed ids", func() {
		rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorships/resume", map[string]any{
			"sponsorship_ids": []string{"nope"},
		})
		testutil.AssertStatusOK(s.T(), rr)
		res := testutil.UnmarshalResponse[BulkResponse](s.T(), rr)
		s.Equal(0, res.Succeeded)
		s.Equal(1, res.Failed)
		s.Require().Len(res.Outcomes, 1)
		s.Equal("invalid_input", res.Outcomes[0].Error)
	})

	s.Run("empty list is still rejected", func() {
		rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorships/resume", map[string]any{
			"sponsorship_ids": []string{},
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestRejectWithoutBody() {
	owner := s.seedSponsor("marie@example.org", id.RoleSponsor)
	req := s.submit(owner, s.seedChild())

	rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorship-requests/"+req.ID+"/reject", nil)
	testutil.AssertStatusOK(s.T(), rr)
	rejected := testutil.UnmarshalResponse[RequestResponse](s.T(), rr)
	s.Equal("rejected", rejected.Status)
}

func (s *HandlerSuite) TestTemporaryTransferAndNotes() {
	from := s.seedSponsor("from@example.org", id.RoleSponsor)
	to := s.seedSponsor("to@example.org", id.RoleSponsor)
	c := s.seedChild()
	approval := s.approve(s.submit(from, c).ID)
	sid := approval.Sponsorship.ID

	rr := s.do(s.assistant, http.MethodPost, "/v1/sponsorships/"+sid+"/temporary", map[string]any{
		"end_planned_date": time.Now().UTC().AddDate(0, 2, 0).Format(DateLayout),
	})
	testutil.AssertStatusOK(s.T(), rr)
	tr := testutil.UnmarshalResponse[TransitionResponse](s.T(), rr)
	s.Equal("temporary", tr.Sponsorship.State)
	s.True(tr.Sponsorship.IsTemporary)

	rr = s.do(s.assistant, http.MethodPost, "/v1/sponsorships/"+sid+"/notes", map[string]any{"content": "called the family"})
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	rr = s.do(from, http.MethodGet, "/v1/sponsorships/"+sid+"/notes", nil)
	testutil.AssertStatus(s.T(), rr, http.StatusForbidden)

	rr = s.do(s.assistant, http.MethodPost, "/v1/children/"+c.ID.String()+"/transfer", map[string]any{
		"from_sponsor_id": from.ID.String(),
		"to_sponsor_id":   to.ID.String(),
	})
	testutil.AssertStatusOK(s.T(), rr)
	transfer := testutil.UnmarshalResponse[TransferResponse](s.T(), rr)
	s.Equal("ended", transfer.Previous.State)
	s.Equal("active", transfer.Current.State)
	s.Equal(to.ID.String(), transfer.Current.SponsorID)

	rr = s.do(s.assistant, http.MethodGet, "/v1/sponsorships/"+sid+"/notes", nil)
	testutil.AssertStatusOK(s.T(), rr)
	notes := testutil.UnmarshalResponse[ListResponse[NoteResponse]](s.T(), rr)
	s.Require().Len(notes.Items, 1)
	s.Equal("called the family", notes.Items[0].Content)
}

func (s *HandlerSuite) TestReconcileRequiresAdmin() {
	c := s.seedChild()
	path := "/v1/children/" + c.ID.String() + "/reconcile"

	rr := s.do(s.assistant, http.MethodPost, path, nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")

	rr = s.do(s.admin, http.MethodPost, path, nil)
	testutil.AssertStatusOK(s.T(), rr)
	res := testutil.UnmarshalResponse[ReconcileResponse](s.T(), rr)
	s.False(res.Repaired)
	s.False(res.Child.IsSponsored)
}
