package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "parrainage/pkg/domain"
	"parrainage/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

func serve(t *testing.T, v JWTValidator, header string) (*httptest.ResponseRecorder, *id.Actor) {
	t.Helper()
	var seen *id.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor, ok := requestcontext.Actor(r.Context()); ok {
			seen = &actor
		}
		w.WriteHeader(http.StatusNoContent)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	RequireAuth(v, logger)(next).ServeHTTP(rr, req)
	return rr, seen
}

func TestRequireAuth(t *testing.T) {
	sponsorID := id.NewSponsorID()

	t.Run("valid token stores actor", func(t *testing.T) {
		rr, actor := serve(t, stubValidator{claims: &JWTClaims{SubjectID: sponsorID.String(), Role: "sponsor"}}, "Bearer tok")
		assert.Equal(t, http.StatusNoContent, rr.Code)
		require.NotNil(t, actor)
		assert.Equal(t, sponsorID, actor.ID)
		assert.Equal(t, id.RoleSponsor, actor.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		rr, actor := serve(t, stubValidator{}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, actor)
	})

	t.Run("invalid token", func(t *testing.T) {
		rr, _ := serve(t, stubValidator{err: errors.New("bad")}, "Bearer tok")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid or expired token")
	})

	t.Run("unknown role", func(t *testing.T) {
		rr, _ := serve(t, stubValidator{claims: &JWTClaims{SubjectID: sponsorID.String(), Role: "root"}}, "Bearer tok")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed subject", func(t *testing.T) {
		rr, _ := serve(t, stubValidator{claims: &JWTClaims{SubjectID: "nope", Role: "sponsor"}}, "Bearer tok")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
