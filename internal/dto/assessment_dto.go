package dto

import (
	"time"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
)

type CreateAssessmentRequest struct {
	ApplicationID    string `json:"application_id" validate:"required,uuid"`
	Type             string `json:"type" validate:"required,oneof=QUIZ CODING"`
	Difficulty       string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Title            string `json:"title" validate:"required,notblank,max=255"`
	Description      string `json:"description"`
	TimeLimitMinutes int    `json:"time_limit_minutes" validate:"omitempty,min=1,max=600"`
	PassingScore     *int   `json:"passing_score" validate:"omitempty,min=0,max=100"`
}

// GenerateQuestionsRequest asks the model for questions; counts and languages
// fall back to 10 questions, 3 challenges, Spanish and python.
type GenerateQuestionsRequest struct {
	Topic               string `json:"topic" validate:"max=255"`
	NumQuestions        int    `json:"num_questions" validate:"omitempty,min=1,max=30"`
	NumChallenges       int    `json:"num_challenges" validate:"omitempty,min=1,max=10"`
	Language            string `json:"language" validate:"omitempty,oneof=es en"`
	ProgrammingLanguage string `json:"programming_language" validate:"omitempty,max=50"`
}

type SubmitAnswerRequest struct {
	QuestionID          string `json:"question_id" validate:"required,uuid"`
	AnswerText          string `json:"answer_text"`
	SelectedOptionIndex *int   `json:"selected_option_index" validate:"omitempty,min=0"`
	TimeSpentSeconds    int    `json:"time_spent_seconds" validate:"gte=0"`
	CodeOutput          string `json:"code_output"`
}

type ListAssessmentsQuery struct {
	ApplicationID string `query:"application_id" validate:"omitempty,uuid"`
	Status        string `query:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED EVALUATED"`
}

type QuestionDTO struct {
	ID                  uuid.UUID        `json:"id"`
	Type                string           `json:"type"`
	Text                string           `json:"text"`
	CodeSnippet         string           `json:"code_snippet,omitempty"`
	Options             []string         `json:"options"`
	CorrectAnswer       string           `json:"correct_answer"`
	ProgrammingLanguage string           `json:"programming_language,omitempty"`
	TestCases           []model.TestCase `json:"test_cases,omitempty"`
	Points              int              `json:"points"`
	Position            int              `json:"position"`
	Explanation         string           `json:"explanation,omitempty"`
	GeneratedByAI       bool             `json:"generated_by_ai"`
}

func NewQuestionDTO(q *model.Question) QuestionDTO {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	return QuestionDTO{
		ID:                  q.ID,
		Type:                q.Type,
		Text:                q.Text,
		CodeSnippet:         q.CodeSnippet,
		Options:             options,
		CorrectAnswer:       q.CorrectAnswer,
		ProgrammingLanguage: q.ProgrammingLanguage,
		TestCases:           q.TestCases,
		Points:              q.Points,
		Position:            q.Position,
		Explanation:         q.Explanation,
		GeneratedByAI:       q.GeneratedByAI,
	}
}

func NewQuestionDTOs(questions []model.Question) []QuestionDTO {
	out := make([]QuestionDTO, len(questions))
	for i := range questions {
		out[i] = NewQuestionDTO(&questions[i])
	}
	return out
}

type AssessmentDTO struct {
	ID               uuid.UUID     `json:"id"`
	ApplicationID    uuid.UUID     `json:"application_id"`
	Type             string        `json:"type"`
	Difficulty       string        `json:"difficulty"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	TimeLimitMinutes int           `json:"time_limit_minutes"`
	PassingScore     int           `json:"passing_score"`
	Status           string        `json:"status"`
	Score            *float64      `json:"score"`
	Passed           *bool         `json:"passed,omitempty"`
	TotalPoints      int           `json:"total_points"`
	StartedAt        *time.Time    `json:"started_at"`
	CompletedAt      *time.Time    `json:"completed_at"`
	Questions        []QuestionDTO `json:"questions,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewAssessmentDTO includes the questions when they were loaded.
func NewAssessmentDTO(a *model.Assessment) AssessmentDTO {
	d := AssessmentDTO{
		ID:               a.ID,
		ApplicationID:    a.ApplicationID,
		Type:             a.Type,
		Difficulty:       a.Difficulty,
		Title:            a.Title,
		Description:      a.Description,
		TimeLimitMinutes: a.TimeLimitMinutes,
		PassingScore:     a.PassingScore,
		Status:           a.Status,
		Score:            a.Score,
		TotalPoints:      assessment.TotalPoints(a.Questions),
		StartedAt:        a.StartedAt,
		CompletedAt:      a.CompletedAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	if a.Score != nil {
		passed := assessment.Passed(a)
		d.Passed = &passed
	}
	if len(a.Questions) > 0 {
		d.Questions = NewQuestionDTOs(a.Questions)
	}
	return d
}

type AnswerDTO struct {
	ID                  uuid.UUID          `json:"id"`
	QuestionID          uuid.UUID          `json:"question_id"`
	AnswerText          string             `json:"answer_text"`
	SelectedOptionIndex *int               `json:"selected_option_index"`
	IsCorrect           *bool              `json:"is_correct"`
	PointsEarned        float64            `json:"points_earned"`
	Feedback            string             `json:"feedback"`
	TimeSpentSeconds    int                `json:"time_spent_seconds"`
	CodeOutput          string             `json:"code_output,omitempty"`
	TestResults         []model.TestResult `json:"test_results"`
	AnsweredAt          time.Time          `json:"answered_at"`
}

func NewAnswerDTO(a *model.Answer) AnswerDTO {
	results := a.TestResults
	if results == nil {
		results = []model.TestResult{}
	}
	return AnswerDTO{
		ID:                  a.ID,
		QuestionID:          a.QuestionID,
		AnswerText:          a.AnswerText,
		SelectedOptionIndex: a.SelectedOptionIndex,
		IsCorrect:           a.IsCorrect,
		PointsEarned:        a.PointsEarned,
		Feedback:            a.Feedback,
		TimeSpentSeconds:    a.TimeSpentSeconds,
		CodeOutput:          a.CodeOutput,
		TestResults:         results,
		AnsweredAt:          a.AnsweredAt,
	}
}

// AssessmentSuggestionDTO is a suggestion stamped with the application it was made for.
type AssessmentSuggestionDTO struct {
	assessment.Suggestion
	ApplicationID uuid.UUID `json:"application_id"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}
