// Package requesttime pins a single "now" to each request so that every
// timestamp taken while serving it (audit events, verification times) agrees.
package requesttime

import (
	"net/http"
	"time"

	"vetgate/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
