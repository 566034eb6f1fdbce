// Package casestore caches embedded case payloads. A hosting page that
// already holds the subject's document payload seeds the cache so the next
// bootstrap skips the remote fetch; entries expire quickly because the
// remote store stays the source of truth.
package casestore

import (
	"context"

	"vetgate/internal/backend"
)

// Store is the embedded-payload cache port. Find returns
// sentinel.ErrNotFound (wrapped) on a miss or an expired entry.
type Store interface {
	Find(ctx context.Context, subjectID string) (*backend.CasePayload, error)
	Save(ctx context.Context, subjectID string, payload *backend.CasePayload) error
	Delete(ctx context.Context, subjectID string) error
}
