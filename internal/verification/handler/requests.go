package handler

import "vetgate/internal/domain"

// TaxVerificationRequest is the body of POST /cases/{id}/tax-verification.
type TaxVerificationRequest struct {
	Verified bool `json:"verified"`
}

// ReviewRequest is the body of POST /cases/{id}/reviews. Scope is either
// "all" or a document kind.
type ReviewRequest struct {
	Decision string `json:"decision"`
	Scope    string `json:"scope"`
	Reason   string `json:"reason,omitempty"`
}

func (r ReviewRequest) ParsedDecision() domain.ReviewDecision {
	return domain.ReviewDecision(r.Decision)
}

func (r ReviewRequest) ParsedScope() domain.ReviewScope {
	if r.Scope == "all" {
		return domain.ScopeAll()
	}
	return domain.ScopeKind(domain.DocumentKind(r.Scope))
}

// ActionRequest is the body of POST /cases/{id}/actions.
type ActionRequest struct {
	Action string `json:"action"`
}

// SubmitRequest is the body of POST /cases/{id}/actions/submit.
type SubmitRequest struct {
	Reason string `json:"reason,omitempty"`
}
