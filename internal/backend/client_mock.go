package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vetgate/internal/domain"
	"vetgate/pkg/platform/sentinel"
)

// MockClient is a deterministic in-memory backend for local development.
// Latency is configurable to mimic real-world calls.
type MockClient struct {
	Latency time.Duration

	mu    sync.Mutex
	cases map[string]*CasePayload
}

func NewMockClient(latency time.Duration) *MockClient {
	return &MockClient{
		Latency: latency,
		cases:   map[string]*CasePayload{},
	}
}

func (m *MockClient) FetchCase(_ context.Context, subjectID string) (*CasePayload, error) {
	time.Sleep(m.Latency)
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.payload(subjectID)
	cp := *p
	cp.Documents = map[domain.DocumentKind]DocumentPayload{}
	for k, v := range p.Documents {
		cp.Documents[k] = v
	}
	return &cp, nil
}

func (m *MockClient) VerifyTaxID(_ context.Context, subjectID string, verified bool) error {
	time.Sleep(m.Latency)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload(subjectID).TaxVerified = verified
	return nil
}

func (m *MockClient) ReviewDocuments(_ context.Context, subjectID string, req ReviewRequest) (*ReviewResponse, error) {
	time.Sleep(m.Latency)
	m.mu.Lock()
	defer m.mu.Unlock()

	status := "approved"
	if req.Decision == domain.DecisionReject {
		status = "rejected"
	}

	p := m.payload(subjectID)
	echo := map[domain.DocumentKind]string{}
	for _, kind := range req.Scope.Kinds() {
		doc, ok := p.Documents[kind]
		if !ok {
			continue
		}
		doc.Status = status
		p.Documents[kind] = doc
		echo[kind] = status
	}
	return &ReviewResponse{Statuses: echo}, nil
}

func (m *MockClient) SuspendSubject(_ context.Context, subjectID string) error {
	time.Sleep(m.Latency)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cases[subjectID]; !ok {
		return fmt.Errorf("%w: subject %s", sentinel.ErrNotFound, subjectID)
	}
	delete(m.cases, subjectID)
	return nil
}

func (m *MockClient) payload(subjectID string) *CasePayload {
	if p, ok := m.cases[subjectID]; ok {
		return p
	}
	p := &CasePayload{
		SubjectID:     subjectID,
		DisplayName:   "Sample Provider",
		Role:          "provider",
		JoinedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TaxID:         "51824753556",
		CompletedJobs: 12,
		Rating:        4.7,
		Tier:          "bronze",
		Documents: map[domain.DocumentKind]DocumentPayload{
			domain.KindIdentityCheck: {
				FileName:  "identity-check.pdf",
				URL:       "https://files.example/identity-check.pdf",
				MediaType: "application/pdf",
				Status:    "pending_review",
			},
			domain.KindPhotoID: {
				FileName:  "photo-id.jpg",
				URL:       "https://files.example/photo-id.jpg",
				MediaType: "image/jpeg",
				Status:    "pending_review",
			},
			domain.KindTrainingCert: {
				FileName:  "training-cert.pdf",
				URL:       "https://files.example/training-cert.pdf",
				MediaType: "application/pdf",
				Status:    "pending_review",
			},
		},
	}
	m.cases[subjectID] = p
	return p
}
