//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "vetgate/internal/audit"
	"vetgate/pkg/testutil/containers"
)

func TestStore_OutboxLifecycle(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store, err := New(pc.DB)
	require.NoError(t, err)

	ctx := context.Background()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	events := []audit.Event{
		{ID: "ev-1", Timestamp: at, SubjectID: "subject-1", ActorID: "reviewer-7", Action: audit.ActionTaxVerified},
		{ID: "ev-2", Timestamp: at.Add(time.Second), SubjectID: "subject-1", Action: audit.ActionDocsReviewed, Scope: "all", Decision: "approve"},
		{ID: "ev-3", Timestamp: at.Add(2 * time.Second), SubjectID: "subject-2", Action: audit.ActionSubjectSuspended},
	}
	for _, e := range events {
		require.NoError(t, store.Append(ctx, e))
	}

	trail, err := store.ListBySubject(ctx, "subject-1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "ev-1", trail[0].ID)
	assert.Equal(t, "reviewer-7", trail[0].ActorID)
	assert.Equal(t, audit.ActionDocsReviewed, trail[1].Action)

	pending, err := store.Unpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(pending[0].Payload, &decoded))
	assert.Equal(t, "ev-1", decoded.ID)

	require.NoError(t, store.MarkPublished(ctx, "ev-1", time.Now()))
	require.NoError(t, store.MarkPublished(ctx, "ev-2", time.Now()))

	pending, err = store.Unpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ev-3", pending[0].ID)

	// Published rows stay in the trail; the outbox is append-only.
	trail, err = store.ListBySubject(ctx, "subject-1")
	require.NoError(t, err)
	assert.Len(t, trail, 2)
}

func TestStore_UnpublishedRespectsLimit(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store, err := New(pc.DB)
	require.NoError(t, err)

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, audit.Event{
			ID:        string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			SubjectID: "subject-1",
			Action:    audit.ActionCaseRefetched,
		}))
	}

	pending, err := store.Unpublished(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID, "oldest rows drain first")
}
