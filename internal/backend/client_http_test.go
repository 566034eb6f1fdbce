package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/domain"
	"vetgate/internal/platform/config"
	"vetgate/pkg/platform/sentinel"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(config.Backend{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestHTTPClient_FetchCase(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/subjects/subject-1/verification", r.URL.Path)
		_, _ = w.Write([]byte(`{"tax_id": "51824753556", "documents": {"photo_id": {"file_name": "id.jpg", "status": "approved"}}}`))
	}))

	p, err := client.FetchCase(context.Background(), "subject-1")
	require.NoError(t, err)
	assert.Equal(t, "51824753556", p.TaxID)
	assert.Equal(t, "approved", p.Documents[domain.KindPhotoID].Status)
}

func TestHTTPClient_FetchCaseNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchCase(context.Background(), "subject-1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestHTTPClient_VerifyTaxID(t *testing.T) {
	var got struct {
		Verified bool `json:"verified"`
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subjects/subject-1/tax-verification", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.VerifyTaxID(context.Background(), "subject-1", true))
	assert.True(t, got.Verified)
}

func TestHTTPClient_ReviewDocumentsEcho(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subjects/subject-1/document-reviews", r.URL.Path)
		var req struct {
			Decision string `json:"decision"`
			Scope    string `json:"scope"`
			Reason   string `json:"reason"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reject", req.Decision)
		assert.Equal(t, "all", req.Scope)
		assert.Equal(t, "blurry scans", req.Reason)
		_, _ = w.Write([]byte(`{"statuses": {"photo_id": "rejected", "identity_check": "rejected"}}`))
	}))

	resp, err := client.ReviewDocuments(context.Background(), "subject-1", ReviewRequest{
		Decision: domain.DecisionReject,
		Scope:    domain.ScopeAll(),
		Reason:   "blurry scans",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Statuses[domain.KindPhotoID])
}

func TestHTTPClient_ReviewDocumentsPlainAck(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`ok`))
	}))

	resp, err := client.ReviewDocuments(context.Background(), "subject-1", ReviewRequest{
		Decision: domain.DecisionApprove,
		Scope:    domain.ScopeKind(domain.KindPhotoID),
	})
	require.NoError(t, err, "an unparseable ack is still an ack")
	assert.Empty(t, resp.Statuses)
}

func TestHTTPClient_ServerErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.SuspendSubject(context.Background(), "subject-1")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}
