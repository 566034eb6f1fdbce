package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"vetgate/internal/domain"
	"vetgate/internal/platform/config"
	"vetgate/pkg/platform/sentinel"
)

// HTTPClient implements Client against the hosting application's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient constructs a backend client from configuration. The HTTP
// client timeout is the only timeout anywhere on these calls.
func NewHTTPClient(cfg config.Backend) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) FetchCase(ctx context.Context, subjectID string) (*CasePayload, error) {
	body, err := c.do(ctx, http.MethodGet, "/subjects/"+subjectID+"/verification", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch case: %w", err)
	}
	return normalizeCase(subjectID, body)
}

func (c *HTTPClient) VerifyTaxID(ctx context.Context, subjectID string, verified bool) error {
	req := struct {
		Verified bool `json:"verified"`
	}{Verified: verified}
	if _, err := c.do(ctx, http.MethodPost, "/subjects/"+subjectID+"/tax-verification", req); err != nil {
		return fmt.Errorf("verify tax id: %w", err)
	}
	return nil
}

func (c *HTTPClient) ReviewDocuments(ctx context.Context, subjectID string, req ReviewRequest) (*ReviewResponse, error) {
	scope := "all"
	if !req.Scope.All {
		scope = string(req.Scope.Kind)
	}
	wireReq := struct {
		Decision string `json:"decision"`
		Scope    string `json:"scope"`
		Reason   string `json:"reason,omitempty"`
	}{
		Decision: string(req.Decision),
		Scope:    scope,
		Reason:   req.Reason,
	}

	body, err := c.do(ctx, http.MethodPost, "/subjects/"+subjectID+"/document-reviews", wireReq)
	if err != nil {
		return nil, fmt.Errorf("review documents: %w", err)
	}

	resp := &ReviewResponse{}
	if len(body) == 0 {
		return resp, nil
	}
	var echo struct {
		Statuses map[string]string `json:"statuses"`
	}
	if err := json.Unmarshal(body, &echo); err != nil || len(echo.Statuses) == 0 {
		// An unparseable or empty ack is still an ack; the engine falls
		// back to its optimistic local update.
		return resp, nil
	}
	resp.Statuses = map[domain.DocumentKind]string{}
	for k, v := range echo.Statuses {
		resp.Statuses[domain.DocumentKind(k)] = v
	}
	return resp, nil
}

func (c *HTTPClient) SuspendSubject(ctx context.Context, subjectID string) error {
	if _, err := c.do(ctx, http.MethodPost, "/subjects/"+subjectID+"/suspension", nil); err != nil {
		return fmt.Errorf("suspend subject: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", sentinel.ErrNotFound, path)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}
