// Package backend talks to the authoritative remote store for verification
// cases. Transport details stay here; the engine only sees the Client port
// and canonical payloads.
package backend

import "context"

// Client is the port for the four remote calls the engine issues.
type Client interface {
	// FetchCase retrieves the full case payload for a subject.
	FetchCase(ctx context.Context, subjectID string) (*CasePayload, error)

	// VerifyTaxID marks the subject's tax identifier verified or unverified.
	VerifyTaxID(ctx context.Context, subjectID string, verified bool) error

	// ReviewDocuments applies a review decision for the given scope. The
	// response may echo authoritative per-kind statuses; Statuses is nil
	// when it does not.
	ReviewDocuments(ctx context.Context, subjectID string, req ReviewRequest) (*ReviewResponse, error)

	// SuspendSubject suspends the subject. Returns a not-found error when
	// the subject does not exist upstream.
	SuspendSubject(ctx context.Context, subjectID string) error
}
