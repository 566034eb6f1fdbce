//go:build integration

package casestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/backend"
	"vetgate/internal/domain"
	"vetgate/pkg/platform/sentinel"
	"vetgate/pkg/testutil/containers"
)

func TestRedisStore_Roundtrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedisStore(rc.Client, time.Minute)
	ctx := context.Background()

	_, err := store.Find(ctx, "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	payload := &backend.CasePayload{
		SubjectID: "subject-1",
		TaxID:     "51824753556",
		Documents: map[domain.DocumentKind]backend.DocumentPayload{
			domain.KindPhotoID: {FileName: "id.jpg", MediaType: "image/jpeg", Status: "pending_review"},
		},
	}
	require.NoError(t, store.Save(ctx, "subject-1", payload))

	found, err := store.Find(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, "51824753556", found.TaxID)
	assert.Equal(t, "id.jpg", found.Documents[domain.KindPhotoID].FileName)

	require.NoError(t, store.Delete(ctx, "subject-1"))
	_, err = store.Find(ctx, "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisStore_TTLExpires(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := NewRedisStore(rc.Client, time.Second)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "subject-1", &backend.CasePayload{SubjectID: "subject-1"}))

	require.Eventually(t, func() bool {
		_, err := store.Find(ctx, "subject-1")
		return err != nil
	}, 5*time.Second, 200*time.Millisecond, "entry should expire")
}
