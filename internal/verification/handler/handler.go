package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vetgate/internal/domain"
	"vetgate/internal/verification"
	domainerrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
	"vetgate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/engine_mock.go -package=mocks Engine

// Engine defines the interface for verification workflow operations.
type Engine interface {
	GetCase(ctx context.Context, subjectID string) (*verification.CaseView, error)
	SetTaxVerification(ctx context.Context, subjectID string, verified bool) error
	Review(ctx context.Context, subjectID string, decision domain.ReviewDecision, scope domain.ReviewScope, reason string) error
	Refetch(ctx context.Context, subjectID string) error
	ChooseAction(ctx context.Context, subjectID string, action domain.ActionKind) error
	ConfirmAction(ctx context.Context, subjectID string) error
	SubmitAction(ctx context.Context, subjectID string, reason string) (verification.SubmitResult, error)
	CancelAction(ctx context.Context, subjectID string) error
	CloseCase(ctx context.Context, subjectID string) error
}

// Handler wires the verification engine to its HTTP surface.
type Handler struct {
	engine Engine
	logger *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(engine Engine, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/cases/{subjectID}", func(r chi.Router) {
		r.Get("/", h.HandleGetCase)
		r.Delete("/", h.HandleCloseCase)
		r.Post("/tax-verification", h.HandleTaxVerification)
		r.Post("/reviews", h.HandleReview)
		r.Post("/refetch", h.HandleRefetch)
		r.Post("/actions", h.HandleChooseAction)
		r.Post("/actions/confirm", h.HandleConfirmAction)
		r.Post("/actions/submit", h.HandleSubmitAction)
		r.Post("/actions/cancel", h.HandleCancelAction)
	})
}

// HandleGetCase handles GET /cases/{subjectID}.
func (h *Handler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	view, err := h.engine.GetCase(ctx, subjectID)
	if err != nil {
		h.fail(ctx, w, "get case", subjectID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromView(subjectID, view))
}

// HandleTaxVerification handles POST /cases/{subjectID}/tax-verification.
func (h *Handler) HandleTaxVerification(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	start := time.Now()
	req, ok := httputil.DecodeAndPrepare[TaxVerificationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.engine.SetTaxVerification(ctx, subjectID, req.Verified); err != nil {
		h.fail(ctx, w, "tax verification", subjectID, err)
		return
	}
	h.logger.InfoContext(ctx, "tax verification updated",
		"subject_id", subjectID,
		"verified", req.Verified,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.writeCase(ctx, w, subjectID)
}

// HandleReview handles POST /cases/{subjectID}/reviews.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	start := time.Now()
	req, ok := httputil.DecodeAndPrepare[ReviewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.engine.Review(ctx, subjectID, req.ParsedDecision(), req.ParsedScope(), req.Reason); err != nil {
		h.fail(ctx, w, "document review", subjectID, err)
		return
	}
	h.logger.InfoContext(ctx, "documents reviewed",
		"subject_id", subjectID,
		"decision", req.Decision,
		"scope", req.Scope,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.writeCase(ctx, w, subjectID)
}

// HandleRefetch handles POST /cases/{subjectID}/refetch.
func (h *Handler) HandleRefetch(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	if err := h.engine.Refetch(ctx, subjectID); err != nil {
		h.fail(ctx, w, "refetch", subjectID, err)
		return
	}
	h.writeCase(ctx, w, subjectID)
}

// HandleChooseAction handles POST /cases/{subjectID}/actions.
func (h *Handler) HandleChooseAction(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ActionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.engine.ChooseAction(ctx, subjectID, domain.ActionKind(req.Action)); err != nil {
		h.fail(ctx, w, "choose action", subjectID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// HandleConfirmAction handles POST /cases/{subjectID}/actions/confirm.
func (h *Handler) HandleConfirmAction(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	if err := h.engine.ConfirmAction(ctx, subjectID); err != nil {
		h.fail(ctx, w, "confirm action", subjectID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// HandleSubmitAction handles POST /cases/{subjectID}/actions/submit.
func (h *Handler) HandleSubmitAction(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	start := time.Now()
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.engine.SubmitAction(ctx, subjectID, req.Reason)
	if err != nil {
		h.fail(ctx, w, "submit action", subjectID, err)
		return
	}
	h.logger.InfoContext(ctx, "action submitted",
		"subject_id", subjectID,
		"reason_required", result.ReasonRequired,
		"navigate_away", result.NavigateAway,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{
		ReasonRequired: result.ReasonRequired,
		NavigateAway:   result.NavigateAway,
	})
}

// HandleCancelAction handles POST /cases/{subjectID}/actions/cancel.
func (h *Handler) HandleCancelAction(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	if err := h.engine.CancelAction(ctx, subjectID); err != nil {
		h.fail(ctx, w, "cancel action", subjectID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// HandleCloseCase handles DELETE /cases/{subjectID}.
func (h *Handler) HandleCloseCase(w http.ResponseWriter, r *http.Request) {
	ctx, subjectID, ok := h.prepare(w, r)
	if !ok {
		return
	}
	if err := h.engine.CloseCase(ctx, subjectID); err != nil {
		h.fail(ctx, w, "close case", subjectID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// prepare enforces authentication and extracts the subject id.
func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) (context.Context, string, bool) {
	ctx := r.Context()
	if requestcontext.ActorID(ctx) == "" {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "authentication required"))
		return ctx, "", false
	}
	subjectID := chi.URLParam(r, "subjectID")
	if subjectID == "" {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "subject id is required"))
		return ctx, "", false
	}
	return ctx, subjectID, true
}

func (h *Handler) writeCase(ctx context.Context, w http.ResponseWriter, subjectID string) {
	view, err := h.engine.GetCase(ctx, subjectID)
	if err != nil {
		h.fail(ctx, w, "get case", subjectID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromView(subjectID, view))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op, subjectID string, err error) {
	h.logger.ErrorContext(ctx, op+" failed",
		"request_id", requestcontext.RequestID(ctx),
		"subject_id", subjectID,
		"error", err,
	)
	httputil.WriteError(w, err)
}
