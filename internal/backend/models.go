package backend

import (
	"time"

	"vetgate/internal/domain"
)

// DocumentPayload is the canonical raw representation of one uploaded
// document as the authoritative store reports it. Status carries the
// backend's status string verbatim; translation into domain statuses happens
// in the verification mapper.
type DocumentPayload struct {
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Status    string `json:"status"`
}

// CasePayload is the canonical raw case representation produced by
// normalization. It is the single shape the rest of the engine sees,
// regardless of which of the backend's historical layouts the response used.
// It is JSON-serializable so the case cache can hold it.
type CasePayload struct {
	SubjectID   string    `json:"subject_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`

	TaxID       string `json:"tax_id"`
	TaxVerified bool   `json:"tax_verified"`

	Documents map[domain.DocumentKind]DocumentPayload `json:"documents"`

	CompletedJobs int     `json:"completed_jobs"`
	Rating        float64 `json:"rating"`
	Tier          string  `json:"tier"`
}

// ReviewRequest carries a review decision to the authoritative store.
type ReviewRequest struct {
	Decision domain.ReviewDecision
	Scope    domain.ReviewScope
	Reason   string
}

// ReviewResponse optionally echoes authoritative per-kind status strings.
// Statuses is nil when the backend acknowledges without a payload.
type ReviewResponse struct {
	Statuses map[domain.DocumentKind]string
}
