package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vetgate/internal/domain"
)

func buildCase(tax domain.DocumentStatus, taxValue string, uploads map[domain.DocumentKind]domain.DocumentStatus) *domain.VerificationCase {
	c := &domain.VerificationCase{Subject: domain.Subject{ID: "subject-1"}}
	c.Documents = append(c.Documents, domain.DocumentRecord{
		Kind:   domain.KindTaxID,
		Status: tax,
		Value:  taxValue,
	})
	for _, kind := range domain.UploadKinds() {
		status, ok := uploads[kind]
		if !ok {
			status = domain.StatusNotUploaded
		}
		c.Documents = append(c.Documents, domain.DocumentRecord{Kind: kind, Status: status})
	}
	return c
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name    string
		tax     domain.DocumentStatus
		uploads map[domain.DocumentKind]domain.DocumentStatus
		want    domain.OverallStatus
	}{
		{
			name: "nothing uploaded stays pending",
			tax:  domain.StatusPending,
			want: domain.OverallPending,
		},
		{
			name: "single rejection rejects the case",
			tax:  domain.StatusVerified,
			uploads: map[domain.DocumentKind]domain.DocumentStatus{
				domain.KindIdentityCheck: domain.StatusApproved,
				domain.KindPhotoID:       domain.StatusRejected,
				domain.KindTrainingCert:  domain.StatusApproved,
			},
			want: domain.OverallRejected,
		},
		{
			name: "rejection wins over everything",
			tax:  domain.StatusVerified,
			uploads: map[domain.DocumentKind]domain.DocumentStatus{
				domain.KindIdentityCheck: domain.StatusRejected,
				domain.KindPhotoID:       domain.StatusRejected,
				domain.KindTrainingCert:  domain.StatusRejected,
			},
			want: domain.OverallRejected,
		},
		{
			name: "all approved with verified tax is verified",
			tax:  domain.StatusVerified,
			uploads: map[domain.DocumentKind]domain.DocumentStatus{
				domain.KindIdentityCheck: domain.StatusApproved,
				domain.KindPhotoID:       domain.StatusApproved,
				domain.KindTrainingCert:  domain.StatusApproved,
			},
			want: domain.OverallVerified,
		},
		{
			name: "all approved without verified tax is approved",
			tax:  domain.StatusPending,
			uploads: map[domain.DocumentKind]domain.DocumentStatus{
				domain.KindIdentityCheck: domain.StatusApproved,
				domain.KindPhotoID:       domain.StatusApproved,
				domain.KindTrainingCert:  domain.StatusApproved,
			},
			want: domain.OverallApproved,
		},
		{
			name: "partial approval stays pending",
			tax:  domain.StatusVerified,
			uploads: map[domain.DocumentKind]domain.DocumentStatus{
				domain.KindIdentityCheck: domain.StatusApproved,
				domain.KindPhotoID:       domain.StatusPending,
				domain.KindTrainingCert:  domain.StatusApproved,
			},
			want: domain.OverallPending,
		},
		{
			name: "missing uploads are not judged",
			tax:  domain.StatusVerified,
			uploads: map[domain.DocumentKind]domain.DocumentStatus{
				domain.KindIdentityCheck: domain.StatusApproved,
			},
			want: domain.OverallVerified,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := buildCase(tt.tax, "51824753556", tt.uploads)
			assert.Equal(t, tt.want, Overall(c))
		})
	}
}

func TestOverall_IsDerivedNotStored(t *testing.T) {
	c := buildCase(domain.StatusPending, "51824753556", map[domain.DocumentKind]domain.DocumentStatus{
		domain.KindIdentityCheck: domain.StatusApproved,
		domain.KindPhotoID:       domain.StatusApproved,
		domain.KindTrainingCert:  domain.StatusApproved,
	})
	assert.Equal(t, domain.OverallApproved, Overall(c))

	// Flipping one document re-derives the aggregate on the next read.
	c.Document(domain.KindPhotoID).Status = domain.StatusRejected
	assert.Equal(t, domain.OverallRejected, Overall(c))
}

func TestReadyForApproval(t *testing.T) {
	allUploaded := map[domain.DocumentKind]domain.DocumentStatus{
		domain.KindIdentityCheck: domain.StatusPending,
		domain.KindPhotoID:       domain.StatusPending,
		domain.KindTrainingCert:  domain.StatusPending,
	}

	tests := []struct {
		name     string
		taxValue string
		uploads  map[domain.DocumentKind]domain.DocumentStatus
		want     bool
	}{
		{name: "complete case is ready", taxValue: "51824753556", uploads: allUploaded, want: true},
		{name: "missing upload blocks approval", taxValue: "51824753556", uploads: map[domain.DocumentKind]domain.DocumentStatus{
			domain.KindIdentityCheck: domain.StatusPending,
			domain.KindPhotoID:       domain.StatusPending,
		}, want: false},
		{name: "absent tax identifier blocks approval", taxValue: domain.TaxIDAbsent, uploads: allUploaded, want: false},
		{name: "blank tax identifier blocks approval", taxValue: "   ", uploads: allUploaded, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := buildCase(domain.StatusPending, tt.taxValue, tt.uploads)
			assert.Equal(t, tt.want, ReadyForApproval(c))
		})
	}
}
