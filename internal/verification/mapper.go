package verification

import (
	"strings"

	"vetgate/internal/backend"
	"vetgate/internal/domain"
)

// Status strings exchanged with the backend. Anything else falls back to
// pending; unknown values are never rejected.
const (
	rawStatusPending  = "pending_review"
	rawStatusApproved = "approved"
	rawStatusRejected = "rejected"
)

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// MapCase normalizes a raw backend payload into a canonical verification
// case. A nil payload maps to a case with every document NotUploaded and the
// tax identifier absent. Pure: same input, same case.
func MapCase(subjectID string, p *backend.CasePayload) *domain.VerificationCase {
	c := &domain.VerificationCase{
		Subject: domain.Subject{ID: subjectID},
	}
	if p != nil {
		c.Subject.DisplayName = p.DisplayName
		c.Subject.Role = p.Role
		c.Subject.JoinedAt = p.JoinedAt
		c.Subject.Stats = domain.SubjectStats{
			CompletedJobs: p.CompletedJobs,
			Rating:        p.Rating,
			Tier:          p.Tier,
		}
	}

	c.Documents = append(c.Documents, mapTaxID(p))
	for _, kind := range domain.UploadKinds() {
		var doc *backend.DocumentPayload
		if p != nil {
			if d, ok := p.Documents[kind]; ok {
				doc = &d
			}
		}
		c.Documents = append(c.Documents, MapDocument(kind, doc))
	}
	return c
}

// MapDocument maps one raw document representation for kind. An absent
// representation maps to NotUploaded with no value.
func MapDocument(kind domain.DocumentKind, doc *backend.DocumentPayload) domain.DocumentRecord {
	if doc == nil {
		return domain.DocumentRecord{
			Kind:   kind,
			Status: domain.StatusNotUploaded,
		}
	}
	return domain.DocumentRecord{
		Kind:   kind,
		Status: MapStatus(doc.Status),
		Value:  doc.FileName,
		Artifact: &domain.Artifact{
			FileName:  doc.FileName,
			URL:       doc.URL,
			MediaType: doc.MediaType,
			IsImage:   isImage(doc.MediaType, doc.FileName),
		},
	}
}

// MapStatus translates a backend status string into a document status.
// Unknown or empty values map to Pending by contract.
func MapStatus(raw string) domain.DocumentStatus {
	switch raw {
	case rawStatusPending:
		return domain.StatusPending
	case rawStatusApproved:
		return domain.StatusApproved
	case rawStatusRejected:
		return domain.StatusRejected
	default:
		return domain.StatusPending
	}
}

// mapTaxID derives the tax identifier record. Its status comes from the
// verified flag, not the four-way status string: verified means Verified and
// permanently immutable, everything else means Pending.
func mapTaxID(p *backend.CasePayload) domain.DocumentRecord {
	rec := domain.DocumentRecord{
		Kind:   domain.KindTaxID,
		Status: domain.StatusPending,
		Value:  domain.TaxIDAbsent,
	}
	if p == nil {
		return rec
	}
	if p.TaxID != "" {
		rec.Value = p.TaxID
	}
	if p.TaxVerified {
		rec.Status = domain.StatusVerified
		rec.ImmutableOnceVerified = true
	}
	return rec
}

// isImage classifies an artifact as an image by media type or filename
// extension. Rendering hint only; no workflow semantics.
func isImage(mediaType, fileName string) bool {
	if strings.HasPrefix(strings.ToLower(mediaType), "image/") {
		return true
	}
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		return imageExtensions[strings.ToLower(fileName[i+1:])]
	}
	return false
}
