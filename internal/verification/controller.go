package verification

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"vetgate/internal/audit"
	"vetgate/internal/backend"
	"vetgate/internal/domain"
	"vetgate/internal/verification/casestore"
	"vetgate/internal/verification/metrics"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/requestcontext"
)

// Controller applies local state changes optimistically, issues the
// corresponding remote calls, reconciles the responses, and rolls back on
// failure. It is the only component allowed to mutate a case.
type Controller struct {
	backend backend.Client
	cache   casestore.Store
	audit   *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewController(client backend.Client, cache casestore.Store, auditor *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) *Controller {
	return &Controller{
		backend: client,
		cache:   cache,
		audit:   auditor,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("vetgate/verification"),
	}
}

// Bootstrap constructs the initial case for a subject. An embedded payload
// from the cache wins over a remote fetch; a failed or empty fetch falls
// back to the empty mapping rather than erroring the view.
func (c *Controller) Bootstrap(ctx context.Context, subjectID string) *domain.VerificationCase {
	if c.cache != nil {
		if payload, err := c.cache.Find(ctx, subjectID); err == nil {
			return MapCase(subjectID, payload)
		}
	}
	payload, err := c.fetchPayload(ctx, subjectID)
	if err != nil {
		c.logger.WarnContext(ctx, "case bootstrap fetch failed, starting from empty mapping",
			"subject_id", subjectID,
			"error", err,
		)
		return MapCase(subjectID, nil)
	}
	return MapCase(subjectID, payload)
}

// SetTaxVerification flips the tax identifier's verified state. A no-op once
// the identifier is permanently verified. The local status is set
// optimistically before the remote call; a failed call restores the prior
// status.
func (c *Controller) SetTaxVerification(ctx context.Context, s *CaseSession, verified bool) error {
	ctx, span := c.tracer.Start(ctx, "verification.set_tax")
	defer span.End()

	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	var skip bool
	var prior domain.DocumentStatus
	s.apply(gen, func(vc *domain.VerificationCase) {
		tax := vc.TaxID()
		if tax.ImmutableOnceVerified {
			skip = true
			return
		}
		prior = tax.Status
		// Optimistic: flip before the remote call settles.
		if verified {
			tax.Status = domain.StatusVerified
		} else {
			tax.Status = domain.StatusPending
		}
	})
	if skip {
		c.logger.DebugContext(ctx, "tax identifier already verified, ignoring",
			"subject_id", s.SubjectID(),
		)
		return nil
	}

	start := time.Now()
	err = c.backend.VerifyTaxID(ctx, s.SubjectID(), verified)
	c.metrics.ObserveRemoteLatency("verify_tax", time.Since(start))
	if err != nil {
		span.RecordError(err)
		if s.apply(gen, func(vc *domain.VerificationCase) { vc.TaxID().Status = prior }) {
			c.metrics.IncrementRollback("set_tax_verification")
			c.audit.Emit(ctx, audit.Event{SubjectID: s.SubjectID(), Action: audit.ActionTaxRolledBack})
		} else {
			c.metrics.IncrementStaleDiscard()
		}
		c.metrics.IncrementOutcome("set_tax_verification", "failure")
		c.logger.ErrorContext(ctx, "tax verification call failed, local status reverted",
			"subject_id", s.SubjectID(),
			"verified", verified,
			"error", err,
		)
		return domainerrors.Wrap(domainerrors.CodeUnavailable, "tax verification failed", err)
	}

	now := requestcontext.Now(ctx)
	applied := s.apply(gen, func(vc *domain.VerificationCase) {
		tax := vc.TaxID()
		if verified {
			tax.Status = domain.StatusVerified
			tax.ImmutableOnceVerified = true
			tax.VerifiedAt = &now
		} else {
			tax.Status = domain.StatusPending
			tax.VerifiedAt = nil
		}
	})
	if !applied {
		c.metrics.IncrementStaleDiscard()
		return nil
	}

	c.invalidateCachedPayload(ctx, s.SubjectID())
	c.metrics.IncrementOutcome("set_tax_verification", "success")
	action := audit.ActionTaxVerified
	if !verified {
		action = audit.ActionTaxUnverified
	}
	c.audit.Emit(ctx, audit.Event{SubjectID: s.SubjectID(), Action: action})

	c.syncOverallStatus(ctx, s, gen)
	return nil
}

// ReviewDocuments applies an approve/reject decision for a single kind or
// every upload at once. The tax identifier is never part of this path. On
// failure, a single-kind review reverts that document to pending; a bulk
// review forces a full refetch because the optimistic edits cannot be
// trusted.
func (c *Controller) ReviewDocuments(ctx context.Context, s *CaseSession, decision domain.ReviewDecision, scope domain.ReviewScope, reason string) error {
	ctx, span := c.tracer.Start(ctx, "verification.review_documents")
	defer span.End()

	if decision != domain.DecisionApprove && decision != domain.DecisionReject {
		return domainerrors.New(domainerrors.CodeBadRequest, "unknown review decision")
	}
	if !scope.All {
		if !domain.ValidKind(scope.Kind) {
			return domainerrors.New(domainerrors.CodeBadRequest, "unknown document kind")
		}
		if scope.Kind == domain.KindTaxID {
			return domainerrors.New(domainerrors.CodeBadRequest, "tax identifier is not reviewable")
		}
	}
	reason = strings.TrimSpace(reason)
	if decision == domain.DecisionReject && reason == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "rejection requires a reason")
	}

	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	start := time.Now()
	resp, err := c.backend.ReviewDocuments(ctx, s.SubjectID(), backend.ReviewRequest{
		Decision: decision,
		Scope:    scope,
		Reason:   reason,
	})
	c.metrics.ObserveRemoteLatency("review", time.Since(start))
	if err != nil {
		span.RecordError(err)
		c.metrics.IncrementOutcome("review_documents", "failure")
		if scope.All {
			// Bulk edits are untrustworthy after a failure; ground truth
			// comes back via a forced refetch.
			c.logger.ErrorContext(ctx, "bulk review failed, refetching case",
				"subject_id", s.SubjectID(),
				"error", err,
			)
			if refetchErr := c.refetchLocked(ctx, s, gen); refetchErr != nil {
				c.logger.ErrorContext(ctx, "recovery refetch failed",
					"subject_id", s.SubjectID(),
					"error", refetchErr,
				)
			}
		} else {
			if s.apply(gen, func(vc *domain.VerificationCase) {
				if doc := vc.Document(scope.Kind); doc != nil {
					doc.Status = domain.StatusPending
				}
			}) {
				c.invalidateCachedPayload(ctx, s.SubjectID())
				c.metrics.IncrementRollback("review_documents")
				c.audit.Emit(ctx, audit.Event{
					SubjectID: s.SubjectID(),
					Action:    audit.ActionReviewRolledBack,
					Scope:     scopeLabel(scope),
				})
			} else {
				c.metrics.IncrementStaleDiscard()
			}
			c.logger.ErrorContext(ctx, "document review failed, status reverted to pending",
				"subject_id", s.SubjectID(),
				"kind", scope.Kind,
				"error", err,
			)
		}
		return domainerrors.Wrap(domainerrors.CodeUnavailable, "document review failed", err)
	}

	applied := s.apply(gen, func(vc *domain.VerificationCase) {
		if resp != nil && len(resp.Statuses) > 0 {
			// Authoritative echo: overwrite exactly the kinds present,
			// never the tax identifier.
			for kind, raw := range resp.Statuses {
				if kind == domain.KindTaxID {
					continue
				}
				if doc := vc.Document(kind); doc != nil {
					doc.Status = MapStatus(raw)
				}
			}
			return
		}
		status := domain.StatusApproved
		if decision == domain.DecisionReject {
			status = domain.StatusRejected
		}
		for _, kind := range scope.Kinds() {
			if doc := vc.Document(kind); doc != nil {
				doc.Status = status
			}
		}
	})
	if !applied {
		c.metrics.IncrementStaleDiscard()
		return nil
	}

	c.invalidateCachedPayload(ctx, s.SubjectID())
	c.metrics.IncrementOutcome("review_documents", "success")
	c.audit.Emit(ctx, audit.Event{
		SubjectID: s.SubjectID(),
		Action:    audit.ActionDocsReviewed,
		Scope:     scopeLabel(scope),
		Decision:  string(decision),
		Reason:    reason,
	})

	c.syncOverallStatus(ctx, s, gen)
	return nil
}

// Refetch unconditionally replaces the case with a freshly fetched and
// re-mapped copy. Used as recovery after failed bulk mutations and to
// confirm ground truth after an approve-all.
func (c *Controller) Refetch(ctx context.Context, s *CaseSession) error {
	ctx, span := c.tracer.Start(ctx, "verification.refetch")
	defer span.End()

	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	if err := c.refetchLocked(ctx, s, gen); err != nil {
		span.RecordError(err)
		c.metrics.IncrementOutcome("refetch", "failure")
		return domainerrors.Wrap(domainerrors.CodeUnavailable, "case refetch failed", err)
	}
	c.metrics.IncrementOutcome("refetch", "success")
	c.audit.Emit(ctx, audit.Event{SubjectID: s.SubjectID(), Action: audit.ActionCaseRefetched})
	return nil
}

// SuspendSubject calls the external suspension collaborator. The case itself
// is not mutated; the orchestrator navigates away on success.
func (c *Controller) SuspendSubject(ctx context.Context, subjectID string) error {
	ctx, span := c.tracer.Start(ctx, "verification.suspend_subject")
	defer span.End()

	start := time.Now()
	err := c.backend.SuspendSubject(ctx, subjectID)
	c.metrics.ObserveRemoteLatency("suspend", time.Since(start))
	if err != nil {
		span.RecordError(err)
		c.metrics.IncrementOutcome("suspend", "failure")
		return err
	}
	c.metrics.IncrementOutcome("suspend", "success")
	c.audit.Emit(ctx, audit.Event{SubjectID: subjectID, Action: audit.ActionSubjectSuspended})
	return nil
}

// syncOverallStatus is the non-critical sync step: once the case derives as
// fully verified, nudge the backend's aggregate with an approve-all review.
// Failure here is logged and never surfaced; it does not roll anything back.
func (c *Controller) syncOverallStatus(ctx context.Context, s *CaseSession, gen uint64) {
	var overall domain.OverallStatus
	s.apply(gen, func(vc *domain.VerificationCase) {
		overall = Overall(vc)
	})
	if overall != domain.OverallVerified {
		return
	}

	start := time.Now()
	_, err := c.backend.ReviewDocuments(ctx, s.SubjectID(), backend.ReviewRequest{
		Decision: domain.DecisionApprove,
		Scope:    domain.ScopeAll(),
	})
	c.metrics.ObserveRemoteLatency("review", time.Since(start))
	if err != nil {
		c.logger.WarnContext(ctx, "overall status sync failed",
			"subject_id", s.SubjectID(),
			"error", err,
		)
	}
}

func (c *Controller) refetchLocked(ctx context.Context, s *CaseSession, gen uint64) error {
	payload, err := c.fetchPayload(ctx, s.SubjectID())
	if err != nil {
		return err
	}
	if !s.replace(gen, MapCase(s.SubjectID(), payload)) {
		c.metrics.IncrementStaleDiscard()
	}
	return nil
}

func (c *Controller) fetchPayload(ctx context.Context, subjectID string) (*backend.CasePayload, error) {
	start := time.Now()
	payload, err := c.backend.FetchCase(ctx, subjectID)
	c.metrics.ObserveRemoteLatency("fetch_case", time.Since(start))
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if saveErr := c.cache.Save(ctx, subjectID, payload); saveErr != nil {
			c.logger.WarnContext(ctx, "case payload cache save failed",
				"subject_id", subjectID,
				"error", saveErr,
			)
		}
	}
	return payload, nil
}

// invalidateCachedPayload drops the embedded payload after a mutation settles
// locally without a refetch. A reopened view must not bootstrap from the
// pre-mutation payload while the cache entry is still inside its TTL.
func (c *Controller) invalidateCachedPayload(ctx context.Context, subjectID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, subjectID); err != nil {
		c.logger.WarnContext(ctx, "case payload cache invalidation failed",
			"subject_id", subjectID,
			"error", err,
		)
	}
}

func scopeLabel(scope domain.ReviewScope) string {
	if scope.All {
		return "all"
	}
	return string(scope.Kind)
}
