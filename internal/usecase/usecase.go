package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/service"
	"github.com/google/uuid"
)

var (
	ErrDuplicateApplication = errors.New("candidate has already applied to this project")
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrTranscriptRequired   = errors.New("transcript is required")
	ErrUnsupportedFile      = errors.New("unsupported CV file type")
	ErrFileTooLarge         = errors.New("CV file is too large")
	ErrInvalidDateRange     = errors.New("end date is before start date")

	ErrTopicRequired     = errors.New("topic is required")
	ErrAssessmentStarted = errors.New("assessment has already been started or completed")
	ErrAssessmentClosed  = errors.New("assessment has already been submitted")
	ErrQuestionMismatch  = errors.New("question does not belong to this assessment")
	ErrDuplicateAnswer   = errors.New("question has already been answered")
	ErrNotCodeQuestion   = errors.New("question is not a code question")
	ErrInvalidAssessment = errors.New("invalid assessment type or difficulty")
)

type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, page, pageSize int) ([]model.Project, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	Update(ctx context.Context, app *model.Application) error
	UpdateScore(ctx context.Context, id uuid.UUID, score float64, strategy string) error
	UpdateAIAnalysis(ctx context.Context, id uuid.UUID, analysis json.RawMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	ExistsForCandidate(ctx context.Context, projectID uuid.UUID, email string) (bool, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Application, error)
	List(ctx context.Context, filter repository.ApplicationFilter, page, pageSize int) ([]model.Application, int64, error)
}

type CVParser interface {
	Parse(ctx context.Context, cvText string) (*service.CVExtraction, error)
}

type TranscriptAnalyzer interface {
	Analyze(ctx context.Context, transcript string, hourlyRate float64) *service.TranscriptAnalysis
}

type AssessmentStore interface {
	Create(ctx context.Context, a *model.Assessment) error
	Update(ctx context.Context, a *model.Assessment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	List(ctx context.Context, filter repository.AssessmentFilter, page, pageSize int) ([]model.Assessment, int64, error)
	AddQuestions(ctx context.Context, assessmentID uuid.UUID, questions []model.Question) error
	FindQuestion(ctx context.Context, id uuid.UUID) (*model.Question, error)
	CreateAnswer(ctx context.Context, answer *model.Answer) error
	UpdateAnswer(ctx context.Context, answer *model.Answer) error
	FindAnswer(ctx context.Context, id uuid.UUID) (*model.Answer, error)
	SumPointsEarned(ctx context.Context, assessmentID uuid.UUID) (float64, error)
}

type AssessmentGenerator interface {
	GenerateQuiz(ctx context.Context, topic, difficulty string, count int, language string) ([]model.Question, error)
	GenerateCodingChallenges(ctx context.Context, topic, difficulty string, count int, language string) ([]model.Question, error)
	EvaluateCode(ctx context.Context, q *model.Question, code, difficulty string) (*assessment.CodeEvaluation, error)
	SuggestAssessment(ctx context.Context, req service.SuggestionRequest) *assessment.Suggestion
}

type CandidateScorer interface {
	ScoreCandidate(ctx context.Context, project *model.Project, extracted string) (*service.CandidateScore, error)
}

// TextExtractor turns a stored CV file into plain text.
type TextExtractor func(path string) (string, error)
