package repository

import (
	"context"

	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentFilter narrows List; zero fields are ignored.
type AssessmentFilter struct {
	ApplicationID uuid.UUID
	Status        string
}

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

// Update saves the assessment row only; questions are written separately.
func (r *AssessmentRepository) Update(ctx context.Context, a *model.Assessment) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error)
}

// FindByID loads the assessment with its questions in position order.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

// List returns one page of assessments, newest first, without their questions.
func (r *AssessmentRepository) List(ctx context.Context, filter AssessmentFilter, page, pageSize int) ([]model.Assessment, int64, error) {
	var (
		items []model.Assessment
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.Assessment{})
	if filter.ApplicationID != uuid.Nil {
		q = q.Where("application_id = ?", filter.ApplicationID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(paginate(page, pageSize)).Order("created_at DESC").Find(&items).Error
	return items, total, err
}

// AddQuestions appends questions after the ones the assessment already has.
func (r *AssessmentRepository) AddQuestions(ctx context.Context, assessmentID uuid.UUID, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", assessmentID).
			Count(&next).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].AssessmentID = assessmentID
			questions[i].Position = int(next) + i
		}
		return translateError(tx.Create(&questions).Error)
	})
}

func (r *AssessmentRepository) FindQuestion(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	var q model.Question
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &q, nil
}

func (r *AssessmentRepository) CreateAnswer(ctx context.Context, answer *model.Answer) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(answer).Error)
}

func (r *AssessmentRepository) UpdateAnswer(ctx context.Context, answer *model.Answer) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(answer).Error)
}

// FindAnswer loads the answer with its question.
func (r *AssessmentRepository) FindAnswer(ctx context.Context, id uuid.UUID) (*model.Answer, error) {
	var a model.Answer
	if err := r.db.WithContext(ctx).Preload("Question").First(&a, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

// SumPointsEarned adds up the points of every answer to the assessment's questions.
func (r *AssessmentRepository) SumPointsEarned(ctx context.Context, assessmentID uuid.UUID) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&model.Answer{}).
		Select("COALESCE(SUM(answers.points_earned), 0)").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.assessment_id = ?", assessmentID).
		Scan(&sum).Error
	return sum, err
}
