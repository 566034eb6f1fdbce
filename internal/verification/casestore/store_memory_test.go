package casestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/backend"
	"vetgate/pkg/platform/sentinel"
	"vetgate/pkg/requestcontext"
)

func TestMemoryStore_SaveAndFind(t *testing.T) {
	store := NewMemoryStore(5 * time.Minute)
	ctx := context.Background()

	_, err := store.Find(ctx, "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	payload := &backend.CasePayload{SubjectID: "subject-1", TaxID: "51824753556"}
	require.NoError(t, store.Save(ctx, "subject-1", payload))

	found, err := store.Find(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, "51824753556", found.TaxID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(5 * time.Minute)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	saveCtx := requestcontext.WithTime(context.Background(), base)
	require.NoError(t, store.Save(saveCtx, "subject-1", &backend.CasePayload{SubjectID: "subject-1"}))

	fresh := requestcontext.WithTime(context.Background(), base.Add(4*time.Minute))
	_, err := store.Find(fresh, "subject-1")
	require.NoError(t, err)

	stale := requestcontext.WithTime(context.Background(), base.Add(6*time.Minute))
	_, err = store.Find(stale, "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(5 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "subject-1", &backend.CasePayload{SubjectID: "subject-1"}))
	require.NoError(t, store.Delete(ctx, "subject-1"))

	_, err := store.Find(ctx, "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "subject-2"), "deleting an absent entry is a no-op")
}

func TestMemoryStore_RejectsNilPayload(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	require.Error(t, store.Save(context.Background(), "subject-1", nil))
}
