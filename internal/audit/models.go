package audit

import "time"

// Action names a recorded engine operation.
type Action string

// Actions recorded by the verification engine.
const (
	ActionTaxVerified      Action = "tax_verified"
	ActionTaxUnverified    Action = "tax_unverified"
	ActionTaxRolledBack    Action = "tax_verification_rolled_back"
	ActionDocsReviewed     Action = "documents_reviewed"
	ActionReviewRolledBack Action = "review_rolled_back"
	ActionCaseRefetched    Action = "case_refetched"
	ActionSubjectSuspended Action = "subject_suspended"
)

// Event is emitted from the engine to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Timestamp time.Time
	SubjectID string
	ActorID   string
	Action    Action
	Scope     string
	Decision  string
	Reason    string
	RequestID string
	ClientIP  string
	UserAgent string
}
