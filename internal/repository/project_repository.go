package repository

import (
	"context"

	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return translateError(r.db.WithContext(ctx).Create(project).Error)
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return translateError(r.db.WithContext(ctx).Save(project).Error)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// List returns one page of projects, newest first, and the total count.
func (r *ProjectRepository) List(ctx context.Context, page, pageSize int) ([]model.Project, int64, error) {
	var (
		projects []model.Project
		total    int64
	)
	q := r.db.WithContext(ctx).Model(&model.Project{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(paginate(page, pageSize)).Order("created_at DESC").Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
