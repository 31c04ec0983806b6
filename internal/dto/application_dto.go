package dto

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
)

// SubmitApplicationRequest holds the multipart form fields of a submission.
type SubmitApplicationRequest struct {
	ProjectID      string `form:"project_id" validate:"required,uuid"`
	CandidateName  string `form:"candidate_name" validate:"max=255"`
	CandidateEmail string `form:"candidate_email" validate:"required,email,max=255"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SUBMITTED REVIEW REJECTED APPROVED"`
}

type ListApplicationsQuery struct {
	ProjectID      string `query:"project_id" validate:"omitempty,uuid"`
	Status         string `query:"status" validate:"omitempty,oneof=SUBMITTED REVIEW REJECTED APPROVED"`
	CandidateEmail string `query:"candidate_email" validate:"omitempty,email"`
}

type ApplicationDTO struct {
	ID             uuid.UUID       `json:"id"`
	ProjectID      uuid.UUID       `json:"project_id"`
	CandidateName  string          `json:"candidate_name"`
	CandidateEmail string          `json:"candidate_email"`
	CVPath         string          `json:"cv_path"`
	Extracted      json.RawMessage `json:"extracted,omitempty"`
	HardSkills     []string        `json:"hard_skills"`
	MatchScore     float64         `json:"match_score"`
	MatchStrategy  string          `json:"match_strategy"`
	Status         string          `json:"status"`
	AIAnalysis     json.RawMessage `json:"ai_analysis,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewApplicationDTO(a *model.Application) ApplicationDTO {
	skills := a.HardSkills
	if skills == nil {
		skills = []string{}
	}
	var extracted json.RawMessage
	if json.Valid([]byte(a.Extracted)) {
		extracted = json.RawMessage(a.Extracted)
	}
	return ApplicationDTO{
		ID:             a.ID,
		ProjectID:      a.ProjectID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		CVPath:         a.CVPath,
		Extracted:      extracted,
		HardSkills:     skills,
		MatchScore:     a.MatchScore,
		MatchStrategy:  a.MatchStrategy,
		Status:         a.Status,
		AIAnalysis:     a.AIAnalysis,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
