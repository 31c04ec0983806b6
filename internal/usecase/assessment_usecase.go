package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeLimitMinutes    = 60
	defaultPassingScore        = 70
	defaultNumQuestions        = 10
	defaultNumChallenges       = 3
	defaultQuestionLanguage    = "es"
	defaultProgrammingLanguage = "python"
)

type AssessmentUsecase struct {
	assessments  AssessmentStore
	projects     ProjectStore
	applications ApplicationStore
	generator    AssessmentGenerator
	scorer       CandidateScorer
	now          func() time.Time
	log          *zap.Logger
}

func NewAssessmentUsecase(
	assessments AssessmentStore,
	projects ProjectStore,
	applications ApplicationStore,
	generator AssessmentGenerator,
	scorer CandidateScorer,
	log *zap.Logger,
) *AssessmentUsecase {
	return &AssessmentUsecase{
		assessments:  assessments,
		projects:     projects,
		applications: applications,
		generator:    generator,
		scorer:       scorer,
		now:          time.Now,
		log:          logger.OrNop(log),
	}
}

func (uc *AssessmentUsecase) Create(ctx context.Context, req dto.CreateAssessmentRequest) (*model.Assessment, error) {
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, ErrInvalidAssessment
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	if !slices.Contains([]string{model.AssessmentTypeQuiz, model.AssessmentTypeCoding}, req.Type) ||
		!slices.Contains([]string{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}, difficulty) {
		return nil, ErrInvalidAssessment
	}
	app, err := uc.applications.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	a := &model.Assessment{
		ID:               uuid.New(),
		ApplicationID:    app.ID,
		Type:             req.Type,
		Difficulty:       difficulty,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassingScore:     defaultPassingScore,
		Status:           model.AssessmentStatusPending,
	}
	if a.TimeLimitMinutes == 0 {
		a.TimeLimitMinutes = defaultTimeLimitMinutes
	}
	if req.PassingScore != nil {
		a.PassingScore = *req.PassingScore
	}
	if err := uc.assessments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	uc.log.Info("assessment created",
		zap.String("assessment_id", a.ID.String()),
		zap.String("application_id", app.ID.String()),
		zap.String("type", a.Type))
	return a, nil
}

func (uc *AssessmentUsecase) Get(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	return uc.assessments.FindByID(ctx, id)
}

func (uc *AssessmentUsecase) List(ctx context.Context, q dto.ListAssessmentsQuery, page, pageSize int) ([]model.Assessment, int64, error) {
	filter := repository.AssessmentFilter{Status: q.Status}
	if q.ApplicationID != "" {
		id, err := uuid.Parse(q.ApplicationID)
		if err != nil {
			return nil, 0, ErrInvalidAssessment
		}
		filter.ApplicationID = id
	}
	return uc.assessments.List(ctx, filter, page, pageSize)
}

// GenerateQuestions asks the model for quiz questions or coding challenges,
// depending on the assessment type, and appends them to the assessment.
func (uc *AssessmentUsecase) GenerateQuestions(ctx context.Context, id uuid.UUID, req dto.GenerateQuestionsRequest) (*model.Assessment, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	a, err := uc.assessments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if closed(a) {
		return nil, ErrAssessmentClosed
	}

	var questions []model.Question
	if a.Type == model.AssessmentTypeCoding {
		questions, err = uc.generator.GenerateCodingChallenges(ctx, topic, a.Difficulty,
			orDefault(req.NumChallenges, defaultNumChallenges),
			orDefaultString(req.ProgrammingLanguage, defaultProgrammingLanguage))
	} else {
		questions, err = uc.generator.GenerateQuiz(ctx, topic, a.Difficulty,
			orDefault(req.NumQuestions, defaultNumQuestions),
			orDefaultString(req.Language, defaultQuestionLanguage))
	}
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if err := uc.assessments.AddQuestions(ctx, a.ID, questions); err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}
	uc.log.Info("assessment questions generated",
		zap.String("assessment_id", a.ID.String()),
		zap.Int("questions", len(questions)))
	return uc.assessments.FindByID(ctx, a.ID)
}

// Start moves a pending assessment to IN_PROGRESS.
func (uc *AssessmentUsecase) Start(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	a, err := uc.assessments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.AssessmentStatusPending {
		return nil, ErrAssessmentStarted
	}
	now := uc.now()
	a.Status = model.AssessmentStatusInProgress
	a.StartedAt = &now
	if err := uc.assessments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("start assessment: %w", err)
	}
	return a, nil
}

// SubmitAnswer records one answer per question. Choice questions are graded
// on the spot; code and short answers wait for evaluation.
func (uc *AssessmentUsecase) SubmitAnswer(ctx context.Context, assessmentID uuid.UUID, req dto.SubmitAnswerRequest) (*model.Answer, error) {
	a, err := uc.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if closed(a) {
		return nil, ErrAssessmentClosed
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, ErrQuestionMismatch
	}
	q, err := uc.assessments.FindQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.AssessmentID != a.ID {
		return nil, ErrQuestionMismatch
	}

	answer := &model.Answer{
		ID:                  uuid.New(),
		QuestionID:          q.ID,
		AnswerText:          req.AnswerText,
		SelectedOptionIndex: req.SelectedOptionIndex,
		TimeSpentSeconds:    req.TimeSpentSeconds,
		CodeOutput:          req.CodeOutput,
	}
	if g := assessment.GradeChoice(q, req.SelectedOptionIndex, req.AnswerText); g.Graded {
		correct := g.IsCorrect
		answer.IsCorrect = &correct
		answer.PointsEarned = g.PointsEarned
	}
	if err := uc.assessments.CreateAnswer(ctx, answer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAnswer
		}
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return answer, nil
}

// Submit closes the assessment and scores it from the points earned so far.
func (uc *AssessmentUsecase) Submit(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	a, err := uc.assessments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if closed(a) {
		return nil, ErrAssessmentClosed
	}
	if err := uc.rescore(ctx, a); err != nil {
		return nil, err
	}
	now := uc.now()
	a.Status = model.AssessmentStatusCompleted
	a.CompletedAt = &now
	if err := uc.assessments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("submit assessment: %w", err)
	}
	uc.log.Info("assessment submitted",
		zap.String("assessment_id", a.ID.String()),
		zap.Float64("score", *a.Score),
		zap.Bool("passed", assessment.Passed(a)))
	return a, nil
}

// EvaluateCode has the model grade a code answer. When the assessment was
// already submitted its score is recomputed and it becomes EVALUATED.
func (uc *AssessmentUsecase) EvaluateCode(ctx context.Context, answerID uuid.UUID) (*model.Answer, error) {
	answer, err := uc.assessments.FindAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}
	q := answer.Question
	if q == nil || q.Type != model.QuestionTypeCode {
		return nil, ErrNotCodeQuestion
	}
	a, err := uc.assessments.FindByID(ctx, q.AssessmentID)
	if err != nil {
		return nil, err
	}

	ev, err := uc.generator.EvaluateCode(ctx, q, answer.AnswerText, a.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("evaluate code: %w", err)
	}
	correct := ev.IsCorrect
	answer.IsCorrect = &correct
	answer.PointsEarned = assessment.PointsEarned(ev.Score, q.Points)
	answer.Feedback = ev.Feedback
	answer.TestResults = ev.TestResults
	if err := uc.assessments.UpdateAnswer(ctx, answer); err != nil {
		return nil, fmt.Errorf("save evaluation: %w", err)
	}

	if closed(a) {
		if err := uc.rescore(ctx, a); err != nil {
			return nil, err
		}
		a.Status = model.AssessmentStatusEvaluated
		if err := uc.assessments.Update(ctx, a); err != nil {
			return nil, fmt.Errorf("update assessment score: %w", err)
		}
	}
	return answer, nil
}

// Suggest proposes assessment parameters for an application.
func (uc *AssessmentUsecase) Suggest(ctx context.Context, applicationID uuid.UUID) (*assessment.Suggestion, error) {
	app, err := uc.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.FindByID(ctx, app.ProjectID)
	if err != nil {
		return nil, err
	}
	return uc.generator.SuggestAssessment(ctx, service.SuggestionRequest{
		Project:         project,
		Application:     app,
		ExperienceYears: service.ExperienceYears(app.Extracted),
	}), nil
}

// AnalyzeApplication rates the candidate with the model and stores the
// result as the application's ai_analysis.
func (uc *AssessmentUsecase) AnalyzeApplication(ctx context.Context, applicationID uuid.UUID) (*service.CandidateScore, error) {
	app, err := uc.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.FindByID(ctx, app.ProjectID)
	if err != nil {
		return nil, err
	}
	score, err := uc.scorer.ScoreCandidate(ctx, project, app.Extracted)
	if err != nil {
		return nil, err
	}
	if err := uc.applications.UpdateAIAnalysis(ctx, app.ID, score.JSON()); err != nil {
		return nil, fmt.Errorf("save ai analysis: %w", err)
	}
	return score, nil
}

func (uc *AssessmentUsecase) rescore(ctx context.Context, a *model.Assessment) error {
	earned, err := uc.assessments.SumPointsEarned(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("sum points: %w", err)
	}
	score := assessment.ComputeScore(assessment.TotalPoints(a.Questions), earned)
	a.Score = &score
	return nil
}

func closed(a *model.Assessment) bool {
	return a.Status == model.AssessmentStatusCompleted || a.Status == model.AssessmentStatusEvaluated
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
