// Package verification implements the onboarding document review workflow:
// mapping raw backend payloads into a canonical case, deriving the aggregate
// status, and reconciling every status change between the optimistic local
// view and the authoritative remote store.
package verification

import (
	"context"
	"log/slog"

	"vetgate/internal/domain"
	domainerrors "vetgate/pkg/domain-errors"
)

// CaseView is the read model handed to the hosting application.
type CaseView struct {
	Subject     domain.Subject
	Documents   []domain.DocumentRecord
	Overall     domain.OverallStatus
	Ready       bool
	ActionState ActionState
}

// Service is the engine facade: one live session per case, all mutation
// routed through the controller, top-level actions through the per-session
// orchestrator.
type Service struct {
	controller *Controller
	sessions   *Sessions
	logger     *slog.Logger
}

func NewService(controller *Controller, logger *slog.Logger) *Service {
	return &Service{
		controller: controller,
		sessions:   NewSessions(),
		logger:     logger,
	}
}

// GetCase bootstraps (or reuses) the session for a subject and returns the
// current view. Overall status and readiness are recomputed on every read.
func (s *Service) GetCase(ctx context.Context, subjectID string) (*CaseView, error) {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// SetTaxVerification flips the subject's tax identifier verification.
func (s *Service) SetTaxVerification(ctx context.Context, subjectID string, verified bool) error {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return err
	}
	return s.controller.SetTaxVerification(ctx, sess, verified)
}

// Review applies a review decision directly, bypassing the action menu.
// Used for per-document approve/reject; reject still requires a reason.
func (s *Service) Review(ctx context.Context, subjectID string, decision domain.ReviewDecision, scope domain.ReviewScope, reason string) error {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return err
	}
	return s.controller.ReviewDocuments(ctx, sess, decision, scope, reason)
}

// Refetch replaces the local case with remote ground truth.
func (s *Service) Refetch(ctx context.Context, subjectID string) error {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return err
	}
	return s.controller.Refetch(ctx, sess)
}

// ChooseAction starts the top-level action flow.
func (s *Service) ChooseAction(ctx context.Context, subjectID string, action domain.ActionKind) error {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return err
	}
	return sess.Orchestrator(s.controller, s.logger).Choose(action)
}

// ConfirmAction advances the chosen action to its confirmation surface.
func (s *Service) ConfirmAction(ctx context.Context, subjectID string) error {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return err
	}
	return sess.Orchestrator(s.controller, s.logger).Confirm()
}

// SubmitAction executes the confirmed action. When the result says to
// navigate away the session is torn down here: the case no longer exists
// in-context.
func (s *Service) SubmitAction(ctx context.Context, subjectID string, reason string) (SubmitResult, error) {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return SubmitResult{}, err
	}
	result, err := sess.Orchestrator(s.controller, s.logger).Submit(ctx, reason)
	if err == nil && result.NavigateAway {
		s.sessions.Close(subjectID)
	}
	return result, err
}

// CancelAction discards the in-progress action.
func (s *Service) CancelAction(ctx context.Context, subjectID string) error {
	sess, err := s.session(ctx, subjectID)
	if err != nil {
		return err
	}
	return sess.Orchestrator(s.controller, s.logger).Cancel()
}

// CloseCase tears down the view session. A late-settling remote response
// will be discarded rather than applied to the closed case.
func (s *Service) CloseCase(_ context.Context, subjectID string) error {
	if subjectID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "subject id is required")
	}
	s.sessions.Close(subjectID)
	return nil
}

func (s *Service) session(ctx context.Context, subjectID string) (*CaseSession, error) {
	if subjectID == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "subject id is required")
	}
	return s.sessions.GetOrCreate(subjectID, func() *domain.VerificationCase {
		return s.controller.Bootstrap(ctx, subjectID)
	}), nil
}

func (s *Service) view(sess *CaseSession) *CaseView {
	snap := sess.Snapshot()
	return &CaseView{
		Subject:     snap.Subject,
		Documents:   snap.Documents,
		Overall:     Overall(&snap),
		Ready:       ReadyForApproval(&snap),
		ActionState: sess.Orchestrator(s.controller, s.logger).State(),
	}
}
