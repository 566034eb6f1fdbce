package verification

import (
	"strings"

	"vetgate/internal/domain"
)

// Overall computes the aggregate verification status of a case. Pure domain
// logic - no I/O, no side effects. The result is derived on every read and
// never stored.
//
// Rule priority (fail-fast):
//  1. Any rejected upload rejects the whole case.
//  2. Nothing judged yet (all uploads missing) stays pending.
//  3. All uploads approved + tax identifier verified is fully verified.
//  4. All uploads approved without tax verification is approved.
//  5. Anything else is pending.
func Overall(c *domain.VerificationCase) domain.OverallStatus {
	var judged []domain.DocumentStatus
	for _, kind := range domain.UploadKinds() {
		doc := c.Document(kind)
		if doc == nil || doc.Status == domain.StatusNotUploaded {
			continue
		}
		judged = append(judged, doc.Status)
	}

	for _, s := range judged {
		if s == domain.StatusRejected {
			return domain.OverallRejected
		}
	}
	if len(judged) == 0 {
		return domain.OverallPending
	}

	allApproved := true
	for _, s := range judged {
		if s != domain.StatusApproved {
			allApproved = false
			break
		}
	}
	if allApproved {
		if tax := c.TaxID(); tax != nil && tax.Status == domain.StatusVerified {
			return domain.OverallVerified
		}
		return domain.OverallApproved
	}
	return domain.OverallPending
}

// ReadyForApproval reports whether a bulk approval may even be attempted:
// every document must be uploaded and the tax identifier must actually be
// present. Stricter than Overall, which only judges what exists.
func ReadyForApproval(c *domain.VerificationCase) bool {
	for _, kind := range domain.UploadKinds() {
		doc := c.Document(kind)
		if doc == nil || doc.Status == domain.StatusNotUploaded {
			return false
		}
	}
	tax := c.TaxID()
	if tax == nil {
		return false
	}
	value := strings.TrimSpace(tax.Value)
	return value != "" && value != domain.TaxIDAbsent
}
