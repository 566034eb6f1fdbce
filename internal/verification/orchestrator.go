package verification

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"vetgate/internal/domain"
	domainerrors "vetgate/pkg/domain-errors"
)

// ActionState is the orchestrator's position in the action flow.
type ActionState string

const (
	StateIdle           ActionState = "idle"
	StateActionChosen   ActionState = "action_chosen"
	StateConfirming     ActionState = "confirming"
	StateAwaitingReason ActionState = "awaiting_reason"
	StateInFlight       ActionState = "in_flight"
)

// SubmitResult tells the hosting view what to do after a submit settles.
type SubmitResult struct {
	// ReasonRequired means the reject flow now needs a reason before any
	// remote call is made.
	ReasonRequired bool
	// NavigateAway means the subject was suspended and the case no longer
	// exists in-context.
	NavigateAway bool
}

// Orchestrator is the per-view state machine coordinating top-level actions,
// their confirmation step, and their settlement. Success and failure both
// return to idle, except a failed suspension which stays at confirming so
// the user can retry.
type Orchestrator struct {
	mu     sync.Mutex
	state  ActionState
	action domain.ActionKind

	controller *Controller
	session    *CaseSession
	logger     *slog.Logger
}

func newOrchestrator(controller *Controller, session *CaseSession, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		state:      StateIdle,
		controller: controller,
		session:    session,
		logger:     logger,
	}
}

// State returns the current action state.
func (o *Orchestrator) State() ActionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Action returns the action currently being worked, if any.
func (o *Orchestrator) Action() domain.ActionKind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.action
}

// Choose picks an action from the menu. No side effects.
func (o *Orchestrator) Choose(action domain.ActionKind) error {
	if !domain.ValidAction(action) {
		return domainerrors.New(domainerrors.CodeBadRequest, "unknown action")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return domainerrors.New(domainerrors.CodeConflict, "an action is already in progress")
	}
	o.state = StateActionChosen
	o.action = action
	return nil
}

// Confirm shows the confirmation surface for the chosen action.
func (o *Orchestrator) Confirm() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateActionChosen {
		return domainerrors.New(domainerrors.CodeConflict, "no action chosen")
	}
	o.state = StateConfirming
	return nil
}

// Cancel discards the in-progress action without remote effect. An action
// that already went in flight cannot be cancelled.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateInFlight {
		return domainerrors.New(domainerrors.CodeConflict, "cannot cancel an in-flight action")
	}
	o.state = StateIdle
	o.action = ""
	return nil
}

// Submit executes the confirmed action. For reject flows the first submit
// without a reason transitions to awaiting-reason instead of calling out.
func (o *Orchestrator) Submit(ctx context.Context, reason string) (SubmitResult, error) {
	o.mu.Lock()
	if o.state != StateConfirming && o.state != StateAwaitingReason {
		o.mu.Unlock()
		return SubmitResult{}, domainerrors.New(domainerrors.CodeConflict, "nothing to submit")
	}
	action := o.action

	switch action {
	case domain.ActionApprove:
		return o.submitApprove(ctx)
	case domain.ActionReject:
		return o.submitReject(ctx, reason)
	case domain.ActionSuspend:
		return o.submitSuspend(ctx)
	default:
		o.mu.Unlock()
		return SubmitResult{}, domainerrors.New(domainerrors.CodeConflict, "nothing to submit")
	}
}

// submitApprove runs the approve-all sequence: verify the tax identifier if
// it is not already permanent, bulk-approve the uploads, then refetch. The
// three remote interactions are not atomic; the unconditional trailing
// refetch is what recovers a mixed state when a later step fails.
func (o *Orchestrator) submitApprove(ctx context.Context) (SubmitResult, error) {
	// Entered with o.mu held.
	snap := o.session.Snapshot()
	if !ReadyForApproval(&snap) {
		o.mu.Unlock()
		return SubmitResult{}, domainerrors.New(domainerrors.CodeBadRequest,
			"case is not ready for approval: every document must be uploaded and a tax identifier supplied")
	}
	alreadyVerified := false
	if tax := snap.TaxID(); tax != nil {
		alreadyVerified = tax.ImmutableOnceVerified
	}
	o.state = StateInFlight
	o.mu.Unlock()

	var verifyErr, reviewErr error
	if !alreadyVerified {
		verifyErr = o.controller.SetTaxVerification(ctx, o.session, true)
	}
	if verifyErr == nil {
		reviewErr = o.controller.ReviewDocuments(ctx, o.session, domain.DecisionApprove, domain.ScopeAll(), "")
	}
	if err := o.controller.Refetch(ctx, o.session); err != nil {
		o.logger.ErrorContext(ctx, "post-approval refetch failed",
			"subject_id", o.session.SubjectID(),
			"error", err,
		)
	}

	o.settle()
	if verifyErr != nil {
		return SubmitResult{}, verifyErr
	}
	return SubmitResult{}, reviewErr
}

func (o *Orchestrator) submitReject(ctx context.Context, reason string) (SubmitResult, error) {
	// Entered with o.mu held.
	reason = strings.TrimSpace(reason)
	if o.state == StateConfirming && reason == "" {
		o.state = StateAwaitingReason
		o.mu.Unlock()
		return SubmitResult{ReasonRequired: true}, nil
	}
	if reason == "" {
		o.mu.Unlock()
		return SubmitResult{}, domainerrors.New(domainerrors.CodeBadRequest, "rejection requires a reason")
	}
	o.state = StateInFlight
	o.mu.Unlock()

	err := o.controller.ReviewDocuments(ctx, o.session, domain.DecisionReject, domain.ScopeAll(), reason)
	o.settle()
	return SubmitResult{}, err
}

func (o *Orchestrator) submitSuspend(ctx context.Context) (SubmitResult, error) {
	// Entered with o.mu held.
	o.state = StateInFlight
	o.mu.Unlock()

	err := o.controller.SuspendSubject(ctx, o.session.SubjectID())

	o.mu.Lock()
	if err != nil {
		// Stay at confirming so the user can retry from the same surface.
		o.state = StateConfirming
		o.mu.Unlock()
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = "could not suspend this account"
		}
		return SubmitResult{}, domainerrors.Wrap(domainerrors.CodeUnavailable, msg, err)
	}
	o.state = StateIdle
	o.action = ""
	o.mu.Unlock()
	return SubmitResult{NavigateAway: true}, nil
}

func (o *Orchestrator) settle() {
	o.mu.Lock()
	o.state = StateIdle
	o.action = ""
	o.mu.Unlock()
}
