package testutil

import (
	"net/http"

	id "parrainage/pkg/domain"
	"parrainage/pkg/requestcontext"
)

// WithActor adds an authenticated actor to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithActor(req *http.Request, actor id.Actor) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// SponsorActor returns a fresh sponsor actor.
func SponsorActor() id.Actor {
	return id.Actor{ID: id.NewSponsorID(), Role: id.RoleSponsor}
}

// AdminActor returns a fresh admin actor.
func AdminActor() id.Actor {
	return id.Actor{ID: id.NewSponsorID(), Role: id.RoleAdmin}
}

// AssistantActor returns a fresh assistant actor.
func AssistantActor() id.Actor {
	return id.Actor{ID: id.NewSponsorID(), Role: id.RoleAssistant}
}
