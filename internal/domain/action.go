package domain

// ActionKind is a top-level user action on a case.
type ActionKind string

const (
	ActionApprove ActionKind = "approve"
	ActionReject  ActionKind = "reject"
	ActionSuspend ActionKind = "suspend"
)

// ValidAction reports whether a names a known action kind.
func ValidAction(a ActionKind) bool {
	switch a {
	case ActionApprove, ActionReject, ActionSuspend:
		return true
	}
	return false
}

// ReviewDecision is the judgement applied to one or more documents.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// ReviewScope targets either a single document kind or every non-tax kind.
// The tax identifier is never part of a review scope.
type ReviewScope struct {
	All  bool
	Kind DocumentKind
}

// ScopeAll targets every non-tax document.
func ScopeAll() ReviewScope {
	return ReviewScope{All: true}
}

// ScopeKind targets a single document kind.
func ScopeKind(kind DocumentKind) ReviewScope {
	return ReviewScope{Kind: kind}
}

// Kinds expands the scope into concrete document kinds.
func (s ReviewScope) Kinds() []DocumentKind {
	if s.All {
		return UploadKinds()
	}
	return []DocumentKind{s.Kind}
}

// ActionRequest describes a pending user action. It is created when the user
// initiates an action and discarded once the mutation settles.
type ActionRequest struct {
	Kind   ActionKind
	Scope  ReviewScope
	Reason string
}
