package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vetgate/pkg/requestcontext"
)

// Publisher captures structured audit events. Persistence failures are
// logged, never surfaced: the audit trail must not block review operations.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Emit records an event, filling identity and request metadata from the
// context when the caller left them empty.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil || p.store == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.ActorID(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil && p.logger != nil {
		p.logger.ErrorContext(ctx, "audit append failed",
			"action", event.Action,
			"subject_id", event.SubjectID,
			"error", err,
		)
	}
}

// List returns the audit trail for one subject.
func (p *Publisher) List(ctx context.Context, subjectID string) ([]Event, error) {
	return p.store.ListBySubject(ctx, subjectID)
}
