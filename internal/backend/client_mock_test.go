package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/domain"
	"vetgate/pkg/platform/sentinel"
)

func TestMockClient_StatefulLifecycle(t *testing.T) {
	client := NewMockClient(0)
	ctx := context.Background()

	p, err := client.FetchCase(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, "51824753556", p.TaxID)
	assert.False(t, p.TaxVerified)
	require.Len(t, p.Documents, 3)

	require.NoError(t, client.VerifyTaxID(ctx, "subject-1", true))

	resp, err := client.ReviewDocuments(ctx, "subject-1", ReviewRequest{
		Decision: domain.DecisionApprove,
		Scope:    domain.ScopeAll(),
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Statuses[domain.KindPhotoID])

	p, err = client.FetchCase(ctx, "subject-1")
	require.NoError(t, err)
	assert.True(t, p.TaxVerified)
	assert.Equal(t, "approved", p.Documents[domain.KindTrainingCert].Status)

	require.NoError(t, client.SuspendSubject(ctx, "subject-1"))
	err = client.SuspendSubject(ctx, "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound, "a suspended subject is gone")
}

func TestMockClient_FetchIsolatesCallers(t *testing.T) {
	client := NewMockClient(0)
	ctx := context.Background()

	p, err := client.FetchCase(ctx, "subject-1")
	require.NoError(t, err)

	doc := p.Documents[domain.KindPhotoID]
	doc.Status = "approved"
	p.Documents[domain.KindPhotoID] = doc

	again, err := client.FetchCase(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, "pending_review", again.Documents[domain.KindPhotoID].Status,
		"mutating a fetched payload must not leak into the store")
}
