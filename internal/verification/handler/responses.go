package handler

import (
	"time"

	"vetgate/internal/domain"
	"vetgate/internal/verification"
)

// CaseResponse is the wire shape of a verification case view.
type CaseResponse struct {
	SubjectID        string             `json:"subject_id"`
	DisplayName      string             `json:"display_name,omitempty"`
	Role             string             `json:"role,omitempty"`
	JoinedAt         *time.Time         `json:"joined_at,omitempty"`
	CompletedJobs    int                `json:"completed_jobs"`
	Rating           float64            `json:"rating"`
	Tier             string             `json:"tier,omitempty"`
	Documents        []DocumentResponse `json:"documents"`
	OverallStatus    string             `json:"overall_status"`
	ReadyForApproval bool               `json:"ready_for_approval"`
	ActionState      string             `json:"action_state"`
}

// DocumentResponse is the wire shape of one document record.
type DocumentResponse struct {
	Kind       string            `json:"kind"`
	Status     string            `json:"status"`
	Value      string            `json:"value,omitempty"`
	Artifact   *ArtifactResponse `json:"artifact,omitempty"`
	VerifiedAt *time.Time        `json:"verified_at,omitempty"`
}

// ArtifactResponse carries rendering hints for an uploaded file.
type ArtifactResponse struct {
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	IsImage   bool   `json:"is_image"`
}

// SubmitResponse reports how an action submit settled.
type SubmitResponse struct {
	ReasonRequired bool `json:"reason_required"`
	NavigateAway   bool `json:"navigate_away"`
}

// FromView converts an engine view into its wire shape.
func FromView(subjectID string, view *verification.CaseView) CaseResponse {
	resp := CaseResponse{
		SubjectID:        subjectID,
		DisplayName:      view.Subject.DisplayName,
		Role:             view.Subject.Role,
		CompletedJobs:    view.Subject.Stats.CompletedJobs,
		Rating:           view.Subject.Stats.Rating,
		Tier:             view.Subject.Stats.Tier,
		OverallStatus:    string(view.Overall),
		ReadyForApproval: view.Ready,
		ActionState:      string(view.ActionState),
	}
	if !view.Subject.JoinedAt.IsZero() {
		joined := view.Subject.JoinedAt
		resp.JoinedAt = &joined
	}
	for _, doc := range view.Documents {
		resp.Documents = append(resp.Documents, fromDocument(doc))
	}
	return resp
}

func fromDocument(doc domain.DocumentRecord) DocumentResponse {
	out := DocumentResponse{
		Kind:       string(doc.Kind),
		Status:     string(doc.Status),
		Value:      doc.Value,
		VerifiedAt: doc.VerifiedAt,
	}
	if doc.Artifact != nil {
		out.Artifact = &ArtifactResponse{
			FileName:  doc.Artifact.FileName,
			URL:       doc.Artifact.URL,
			MediaType: doc.Artifact.MediaType,
			IsImage:   doc.Artifact.IsImage,
		}
	}
	return out
}
