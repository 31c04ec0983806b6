package repository

import (
	"context"
	"encoding/json"

	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationFilter narrows List; zero fields are ignored.
type ApplicationFilter struct {
	ProjectID      uuid.UUID
	Status         string
	CandidateEmail string
}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return translateError(r.db.WithContext(ctx).Create(app).Error)
}

func (r *ApplicationRepository) Update(ctx context.Context, app *model.Application) error {
	return translateError(r.db.WithContext(ctx).Save(app).Error)
}

// UpdateScore rewrites only the score columns so concurrent status changes survive a rescore.
func (r *ApplicationRepository) UpdateScore(ctx context.Context, id uuid.UUID, score float64, strategy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{"match_score": score, "match_strategy": strategy}).Error
}

// UpdateAIAnalysis stores the LLM rating of the application.
func (r *ApplicationRepository) UpdateAIAnalysis(ctx context.Context, id uuid.UUID, analysis json.RawMessage) error {
	res := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ?", id).
		Update("ai_analysis", string(analysis))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ExistsForCandidate(ctx context.Context, projectID uuid.UUID, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("project_id = ? AND candidate_email = ?", projectID, email).
		Count(&n).Error
	return n > 0, err
}

func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&apps).Error
	return apps, err
}

// List returns one page of applications, newest first, and the total count.
func (r *ApplicationRepository) List(ctx context.Context, filter ApplicationFilter, page, pageSize int) ([]model.Application, int64, error) {
	var (
		apps  []model.Application
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.Application{})
	if filter.ProjectID != uuid.Nil {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CandidateEmail != "" {
		q = q.Where("candidate_email = ?", filter.CandidateEmail)
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(paginate(page, pageSize)).Order("created_at DESC").Find(&apps).Error
	return apps, total, err
}
