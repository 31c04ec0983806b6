package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusSubmitted = "SUBMITTED"
	ApplicationStatusReview    = "REVIEW"
	ApplicationStatusRejected  = "REJECTED"
	ApplicationStatusApproved  = "APPROVED"
)

// ApplicationStatuses lists every valid status.
var ApplicationStatuses = []string{
	ApplicationStatusSubmitted,
	ApplicationStatusReview,
	ApplicationStatusRejected,
	ApplicationStatusApproved,
}

// Application is one candidate applying to one project.
type Application struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_application_candidate_project" json:"project_id"`
	Project        *Project        `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`
	CandidateName  string          `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_application_candidate_project" json:"candidate_email"`
	CVPath         string          `gorm:"type:varchar(512)" json:"cv_path"`
	ParsedText     string          `gorm:"type:text" json:"parsed_text"`
	Extracted      string          `gorm:"type:jsonb" json:"extracted"` // LLM-structured CV
	HardSkills     []string        `gorm:"type:jsonb;serializer:json" json:"hard_skills"`
	MatchScore     float64         `gorm:"type:float;default:0" json:"match_score"`
	MatchStrategy  string          `gorm:"type:varchar(20)" json:"match_strategy"`
	Status         string          `gorm:"type:varchar(20);default:SUBMITTED;index" json:"status"`  // SUBMITTED, REVIEW, REJECTED, APPROVED
	AIAnalysis     json.RawMessage `gorm:"type:jsonb;serializer:json" json:"ai_analysis,omitempty"` // LLM candidate scoring, null until requested
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}

// IsValidApplicationStatus reports whether status is one of ApplicationStatuses.
func IsValidApplicationStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}
