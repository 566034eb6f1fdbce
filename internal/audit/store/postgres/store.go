package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	audit "vetgate/internal/audit"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table and published to Kafka by the relay
// worker; Kafka is the downstream source of truth for audit events.
type Store struct {
	db *sql.DB
}

// Schema creates the outbox table. Applied at startup; the table is
// append-only and rows are marked rather than deleted once relayed.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_outbox (
	id           TEXT PRIMARY KEY,
	subject_id   TEXT NOT NULL,
	action       TEXT NOT NULL,
	payload      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	published_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS audit_outbox_subject_idx ON audit_outbox (subject_id, created_at);
CREATE INDEX IF NOT EXISTS audit_outbox_unpublished_idx ON audit_outbox (created_at) WHERE published_at IS NULL;
`

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("apply audit outbox schema: %w", err)
	}
	return &Store{db: db}, nil
}

// outboxPayload is the JSON structure relayed to Kafka. Field names match
// audit.Event for proper deserialization by consumers.
type outboxPayload struct {
	ID        string       `json:"ID"`
	Timestamp time.Time    `json:"Timestamp"`
	SubjectID string       `json:"SubjectID"`
	ActorID   string       `json:"ActorID,omitempty"`
	Action    audit.Action `json:"Action"`
	Scope     string       `json:"Scope,omitempty"`
	Decision  string       `json:"Decision,omitempty"`
	Reason    string       `json:"Reason,omitempty"`
	RequestID string       `json:"RequestID,omitempty"`
	ClientIP  string       `json:"ClientIP,omitempty"`
	UserAgent string       `json:"UserAgent,omitempty"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(outboxPayload(event))
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_outbox (id, subject_id, action, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.SubjectID, string(event.Action), payload, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListBySubject returns the audit trail for a subject, oldest first.
func (s *Store) ListBySubject(ctx context.Context, subjectID string) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM audit_outbox WHERE subject_id = $1 ORDER BY created_at`,
		subjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		var p outboxPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode audit payload: %w", err)
		}
		events = append(events, audit.Event(p))
	}
	return events, rows.Err()
}

// Unpublished returns up to limit outbox rows not yet relayed to Kafka.
func (s *Store) Unpublished(ctx context.Context, limit int) ([]OutboxRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject_id, payload FROM audit_outbox WHERE published_at IS NULL ORDER BY created_at LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list unpublished events: %w", err)
	}
	defer rows.Close()

	var out []OutboxRow
	for rows.Next() {
		var row OutboxRow
		if err := rows.Scan(&row.ID, &row.SubjectID, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MarkPublished stamps a relayed outbox row.
func (s *Store) MarkPublished(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE audit_outbox SET published_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("mark outbox row published: %w", err)
	}
	return nil
}

// OutboxRow is one pending relay entry.
type OutboxRow struct {
	ID        string
	SubjectID string
	Payload   []byte
}
