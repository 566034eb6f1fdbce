package domain

import "time"

// DocumentKind identifies one of the four required onboarding documents.
type DocumentKind string

const (
	KindTaxID         DocumentKind = "tax_id"
	KindIdentityCheck DocumentKind = "identity_check"
	KindPhotoID       DocumentKind = "photo_id"
	KindTrainingCert  DocumentKind = "training_certificate"
)

// DocumentKinds returns all kinds in their fixed semantic order: the tax
// identifier first, then the uploaded artifacts in upload order.
func DocumentKinds() []DocumentKind {
	return []DocumentKind{KindTaxID, KindIdentityCheck, KindPhotoID, KindTrainingCert}
}

// ValidKind reports whether k names a known document kind.
func ValidKind(k DocumentKind) bool {
	switch k {
	case KindTaxID, KindIdentityCheck, KindPhotoID, KindTrainingCert:
		return true
	}
	return false
}

// DocumentStatus is the review state of a single document.
type DocumentStatus string

const (
	StatusNotUploaded DocumentStatus = "not_uploaded"
	StatusPending     DocumentStatus = "pending"
	StatusApproved    DocumentStatus = "approved"
	StatusRejected    DocumentStatus = "rejected"
	StatusVerified    DocumentStatus = "verified"
)

// OverallStatus is the aggregate verification state of a case. It is always
// derived from the document set, never stored.
type OverallStatus string

const (
	OverallPending  OverallStatus = "pending"
	OverallApproved OverallStatus = "approved"
	OverallRejected OverallStatus = "rejected"
	OverallVerified OverallStatus = "verified"
)

// TaxIDAbsent is the marker value carried when no tax identifier was
// supplied. The hosting UI renders it verbatim; the engine only consults it
// in the readiness check.
const TaxIDAbsent = "null"

// Artifact describes an uploaded file reference. IsImage is a rendering hint
// for the hosting UI and carries no workflow semantics.
type Artifact struct {
	FileName  string
	URL       string
	MediaType string
	IsImage   bool
}

// DocumentRecord is the review state of one required document.
type DocumentRecord struct {
	Kind     DocumentKind
	Status   DocumentStatus
	Value    string
	Artifact *Artifact

	// ImmutableOnceVerified is true only for the tax identifier: once its
	// status reaches Verified it can never change again.
	ImmutableOnceVerified bool
	VerifiedAt            *time.Time
}

// SubjectStats carries read-only metadata owned by the hosting application.
type SubjectStats struct {
	CompletedJobs int
	Rating        float64
	Tier          string
}

// Subject is the entity under review. The engine reads and updates it in
// place but never creates or destroys it.
type Subject struct {
	ID          string
	DisplayName string
	Role        string
	JoinedAt    time.Time
	Stats       SubjectStats
}

// VerificationCase is the ordered set of exactly four document records for
// one subject. A kind with no uploaded artifact is represented with status
// NotUploaded, never absent.
type VerificationCase struct {
	Subject   Subject
	Documents []DocumentRecord
}

// Document returns the record for kind, or nil for an unknown kind.
func (c *VerificationCase) Document(kind DocumentKind) *DocumentRecord {
	for i := range c.Documents {
		if c.Documents[i].Kind == kind {
			return &c.Documents[i]
		}
	}
	return nil
}

// TaxID returns the tax identifier record.
func (c *VerificationCase) TaxID() *DocumentRecord {
	return c.Document(KindTaxID)
}

// UploadKinds returns the three non-tax kinds in order.
func UploadKinds() []DocumentKind {
	return []DocumentKind{KindIdentityCheck, KindPhotoID, KindTrainingCert}
}
