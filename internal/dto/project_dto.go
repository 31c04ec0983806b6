package dto

import (
	"time"

	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateProjectRequest struct {
	Title          string   `json:"title" validate:"required,notblank,max=255"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills" validate:"dive,required,max=100"`
	StartDate      string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Priority       int      `json:"priority" validate:"omitempty,min=1,max=5"`
	ClientName     string   `json:"client_name" validate:"max=255"`
	HourlyRate     float64  `json:"hourly_rate" validate:"gte=0"`
	EstimatedHours float64  `json:"estimated_hours" validate:"gte=0"`
}

// UpdateProjectRequest is a partial update; nil fields are left untouched.
type UpdateProjectRequest struct {
	Title          *string   `json:"title" validate:"omitempty,notblank,max=255"`
	Description    *string   `json:"description"`
	RequiredSkills *[]string `json:"required_skills" validate:"omitempty,dive,required,max=100"`
	StartDate      *string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Priority       *int      `json:"priority" validate:"omitempty,min=1,max=5"`
	ClientName     *string   `json:"client_name" validate:"omitempty,max=255"`
	HourlyRate     *float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
	EstimatedHours *float64  `json:"estimated_hours" validate:"omitempty,gte=0"`
}

type TranscriptProjectRequest struct {
	Title      string  `json:"title" validate:"max=255"`
	ClientName string  `json:"client_name" validate:"max=255"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
	Transcript string  `json:"transcript" validate:"required"`
}

type ProjectDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	StartDate      string    `json:"start_date,omitempty"`
	EndDate        string    `json:"end_date,omitempty"`
	Priority       int       `json:"priority"`
	ClientName     string    `json:"client_name"`
	HourlyRate     float64   `json:"hourly_rate"`
	EstimatedHours float64   `json:"estimated_hours"`
	EstimatedCost  float64   `json:"estimated_cost"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewProjectDTO(p *model.Project) ProjectDTO {
	skills := p.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return ProjectDTO{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		RequiredSkills: skills,
		StartDate:      FormatDate(p.StartDate),
		EndDate:        FormatDate(p.EndDate),
		Priority:       p.Priority,
		ClientName:     p.ClientName,
		HourlyRate:     p.HourlyRate,
		EstimatedHours: p.EstimatedHours,
		EstimatedCost:  p.EstimatedCost,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ParseDate reads a YYYY-MM-DD date; an empty string is a nil date.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
