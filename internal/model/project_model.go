package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	RequiredSkills []string   `gorm:"type:jsonb;serializer:json" json:"required_skills"` // e.g. ["React","Django"]
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`
	Priority       int        `gorm:"default:3" json:"priority"` // 1 = high ... 5 = low
	ClientName     string     `gorm:"type:varchar(255)" json:"client_name"`
	HourlyRate     float64    `gorm:"type:numeric(10,2)" json:"hourly_rate"`
	EstimatedHours float64    `json:"estimated_hours"`
	EstimatedCost  float64    `gorm:"type:numeric(12,2)" json:"estimated_cost"`
	Transcript     string     `gorm:"type:text" json:"transcript,omitempty"`
	AIResult       string     `gorm:"type:jsonb;default:null" json:"ai_result,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (p *Project) TableName() string {
	return "projects"
}
