package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/audit"
	"vetgate/internal/backend"
	"vetgate/internal/domain"
	domainerrors "vetgate/pkg/domain-errors"
)

func newTestService(fb *fakeBackend) *Service {
	return NewService(newTestController(fb, audit.NewInMemoryStore()), discardLogger())
}

func TestService_GetCaseRequiresSubjectID(t *testing.T) {
	svc := newTestService(&fakeBackend{})

	_, err := svc.GetCase(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domainerrors.CodeBadRequest, domainerrors.CodeOf(err))
}

func TestService_GetCaseBootstrapsView(t *testing.T) {
	fb := &fakeBackend{payload: &backend.CasePayload{
		SubjectID:   "subject-1",
		DisplayName: "Dana Silva",
		TaxID:       "51824753556",
	}}
	svc := newTestService(fb)

	view, err := svc.GetCase(context.Background(), "subject-1")
	require.NoError(t, err)

	assert.Equal(t, "Dana Silva", view.Subject.DisplayName)
	require.Len(t, view.Documents, 4)
	assert.Equal(t, domain.OverallPending, view.Overall)
	assert.False(t, view.Ready, "no uploads yet")
	assert.Equal(t, StateIdle, view.ActionState)

	// Second read reuses the session instead of refetching.
	_, err = svc.GetCase(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.fetchCalls)
}

func TestService_MutationsFlowThroughSession(t *testing.T) {
	fb := &fakeBackend{payload: &backend.CasePayload{
		SubjectID: "subject-1",
		TaxID:     "51824753556",
		Documents: map[domain.DocumentKind]backend.DocumentPayload{
			domain.KindIdentityCheck: {FileName: "check.pdf", Status: "pending_review"},
			domain.KindPhotoID:       {FileName: "id.jpg", Status: "pending_review"},
			domain.KindTrainingCert:  {FileName: "cert.pdf", Status: "pending_review"},
		},
	}}
	svc := newTestService(fb)
	ctx := context.Background()

	require.NoError(t, svc.SetTaxVerification(ctx, "subject-1", true))
	require.NoError(t, svc.Review(ctx, "subject-1", domain.DecisionApprove, domain.ScopeKind(domain.KindPhotoID), ""))

	view, err := svc.GetCase(ctx, "subject-1")
	require.NoError(t, err)
	taxStatus := domain.StatusNotUploaded
	for _, doc := range view.Documents {
		if doc.Kind == domain.KindTaxID {
			taxStatus = doc.Status
		}
	}
	assert.Equal(t, domain.StatusVerified, taxStatus)
	assert.True(t, view.Ready)
}

func TestService_SuspendNavigationClosesSession(t *testing.T) {
	fb := &fakeBackend{payload: &backend.CasePayload{SubjectID: "subject-1", TaxID: "51824753556"}}
	svc := newTestService(fb)
	ctx := context.Background()

	require.NoError(t, svc.ChooseAction(ctx, "subject-1", domain.ActionSuspend))
	require.NoError(t, svc.ConfirmAction(ctx, "subject-1"))

	result, err := svc.SubmitAction(ctx, "subject-1", "")
	require.NoError(t, err)
	assert.True(t, result.NavigateAway)

	_, ok := svc.sessions.Get("subject-1")
	assert.False(t, ok, "navigating away tears down the session")
}

func TestService_CloseCase(t *testing.T) {
	fb := &fakeBackend{payload: &backend.CasePayload{SubjectID: "subject-1"}}
	svc := newTestService(fb)
	ctx := context.Background()

	_, err := svc.GetCase(ctx, "subject-1")
	require.NoError(t, err)

	require.NoError(t, svc.CloseCase(ctx, "subject-1"))
	_, ok := svc.sessions.Get("subject-1")
	assert.False(t, ok)

	require.Error(t, svc.CloseCase(ctx, ""))
}
