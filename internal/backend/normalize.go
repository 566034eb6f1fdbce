package backend

import (
	"encoding/json"
	"fmt"
	"time"

	"vetgate/internal/domain"
)

// The backend has accumulated several response layouts over time: documents
// arrive as a kind-keyed object or as an array of kinded objects, and the
// tax identifier lives either at the top level or under a nested business
// block. All of that is resolved here, once, so the engine never sniffs
// shapes itself.

type wireCase struct {
	SubjectID   string    `json:"subject_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`

	TaxID       string `json:"tax_id"`
	TaxVerified *bool  `json:"tax_verified"`

	Business *struct {
		TaxID       string `json:"tax_id"`
		TaxVerified *bool  `json:"tax_verified"`
	} `json:"business"`

	Documents json.RawMessage `json:"documents"`

	Stats *struct {
		CompletedJobs int     `json:"completed_jobs"`
		Rating        float64 `json:"rating"`
		Tier          string  `json:"tier"`
	} `json:"stats"`

	CompletedJobs int     `json:"completed_jobs"`
	Rating        float64 `json:"rating"`
	Tier          string  `json:"tier"`
}

type wireDocument struct {
	Kind      string `json:"kind"`
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Status    string `json:"status"`
}

// normalizeCase decodes a raw response body into the canonical CasePayload.
func normalizeCase(subjectID string, body []byte) (*CasePayload, error) {
	var w wireCase
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode case payload: %w", err)
	}

	p := &CasePayload{
		SubjectID:   subjectID,
		DisplayName: w.DisplayName,
		Role:        w.Role,
		JoinedAt:    w.JoinedAt,
		Documents:   map[domain.DocumentKind]DocumentPayload{},
	}
	if w.SubjectID != "" {
		p.SubjectID = w.SubjectID
	}

	p.TaxID = w.TaxID
	if w.TaxVerified != nil {
		p.TaxVerified = *w.TaxVerified
	}
	// Nested business block wins when present; newer backends moved the
	// identifier there.
	if w.Business != nil {
		if w.Business.TaxID != "" {
			p.TaxID = w.Business.TaxID
		}
		if w.Business.TaxVerified != nil {
			p.TaxVerified = *w.Business.TaxVerified
		}
	}

	if w.Stats != nil {
		p.CompletedJobs = w.Stats.CompletedJobs
		p.Rating = w.Stats.Rating
		p.Tier = w.Stats.Tier
	} else {
		p.CompletedJobs = w.CompletedJobs
		p.Rating = w.Rating
		p.Tier = w.Tier
	}

	if err := normalizeDocuments(p, w.Documents); err != nil {
		return nil, err
	}
	return p, nil
}

func normalizeDocuments(p *CasePayload, raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	// Array layout: each element names its kind.
	var list []wireDocument
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, d := range list {
			kind := domain.DocumentKind(d.Kind)
			if !domain.ValidKind(kind) || kind == domain.KindTaxID {
				continue
			}
			p.Documents[kind] = DocumentPayload{
				FileName:  d.FileName,
				URL:       d.URL,
				MediaType: d.MediaType,
				Status:    d.Status,
			}
		}
		return nil
	}

	// Object layout: kind-keyed map.
	var byKind map[string]wireDocument
	if err := json.Unmarshal(raw, &byKind); err != nil {
		return fmt.Errorf("decode documents: %w", err)
	}
	for k, d := range byKind {
		kind := domain.DocumentKind(k)
		if !domain.ValidKind(kind) || kind == domain.KindTaxID {
			continue
		}
		p.Documents[kind] = DocumentPayload{
			FileName:  d.FileName,
			URL:       d.URL,
			MediaType: d.MediaType,
			Status:    d.Status,
		}
	}
	return nil
}
