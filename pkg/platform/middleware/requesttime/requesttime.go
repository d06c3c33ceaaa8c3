// Package requesttime pins "now" for the lifetime of a request so that every
// timestamp written by one transition (sponsorship, child, history) agrees.
package requesttime

import (
	"net/http"
	"time"

	"parrainage/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
