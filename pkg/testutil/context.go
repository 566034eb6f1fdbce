package testutil

import (
	"net/http"
	"time"

	"vetgate/pkg/requestcontext"
)

// WithActor adds an actor id to the request context, simulating what the
// auth middleware does for authenticated requests.
func WithActor(req *http.Request, actorID string) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actorID)
	return req.WithContext(ctx)
}

// WithRequestMetadata adds a request id and client metadata to the request
// context, simulating the full middleware chain.
func WithRequestMetadata(req *http.Request, requestID, clientIP, userAgent string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	ctx = requestcontext.WithClientMetadata(ctx, clientIP, userAgent)
	return req.WithContext(ctx)
}

// WithFrozenTime pins the request-scoped clock to a fixed instant.
func WithFrozenTime(req *http.Request, at time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), at)
	return req.WithContext(ctx)
}
