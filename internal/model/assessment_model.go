package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssessmentTypeQuiz   = "QUIZ"
	AssessmentTypeCoding = "CODING"
)

const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

const (
	AssessmentStatusPending    = "PENDING"
	AssessmentStatusInProgress = "IN_PROGRESS"
	AssessmentStatusCompleted  = "COMPLETED"
	AssessmentStatusEvaluated  = "EVALUATED"
)

const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeCode           = "CODE"
	QuestionTypeShortAnswer    = "SHORT_ANSWER"
)

// Assessment is a technical test assigned to the candidate of one application.
type Assessment struct {
	ID               uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicationID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"application_id"`
	Application      *Application `gorm:"constraint:OnDelete:CASCADE" json:"application,omitempty"`
	Type             string       `gorm:"type:varchar(20);not null" json:"type"`             // QUIZ, CODING
	Difficulty       string       `gorm:"type:varchar(20);default:MEDIUM" json:"difficulty"` // EASY, MEDIUM, HARD
	Title            string       `gorm:"type:varchar(255);not null" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	TimeLimitMinutes int          `gorm:"default:60" json:"time_limit_minutes"`
	PassingScore     int          `gorm:"default:70" json:"passing_score"`
	Status           string       `gorm:"type:varchar(20);default:PENDING;index" json:"status"` // PENDING, IN_PROGRESS, COMPLETED, EVALUATED
	Score            *float64     `json:"score"`
	StartedAt        *time.Time   `json:"started_at"`
	CompletedAt      *time.Time   `json:"completed_at"`
	Questions        []Question   `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt        time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (a *Assessment) TableName() string {
	return "assessments"
}

// TestCase is one input/expected-output pair of a coding question. Both sides
// are JSON text.
type TestCase struct {
	Description    string `json:"description"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// TestResult is the grader's verdict on one test case.
type TestResult struct {
	TestCase int    `json:"test_case"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
}

type Question struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Type                string     `gorm:"type:varchar(20);not null" json:"type"`
	Text                string     `gorm:"type:text;not null" json:"text"`
	CodeSnippet         string     `gorm:"type:text" json:"code_snippet"`
	Options             []string   `gorm:"type:jsonb;serializer:json" json:"options"`
	CorrectAnswer       string     `gorm:"type:text" json:"correct_answer"`
	ProgrammingLanguage string     `gorm:"type:varchar(50)" json:"programming_language"`
	TestCases           []TestCase `gorm:"type:jsonb;serializer:json" json:"test_cases"`
	Points              int        `gorm:"default:10" json:"points"`
	Position            int        `gorm:"index" json:"position"`
	Explanation         string     `gorm:"type:text" json:"explanation"`
	GeneratedByAI       bool       `json:"generated_by_ai"`
	AIPrompt            string     `gorm:"type:text" json:"ai_prompt"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (q *Question) TableName() string {
	return "questions"
}

// Answer is the candidate's single answer to a question.
type Answer struct {
	ID                  uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID          uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"question_id"`
	Question            *Question    `gorm:"constraint:OnDelete:CASCADE" json:"question,omitempty"`
	AnswerText          string       `gorm:"type:text" json:"answer_text"`
	SelectedOptionIndex *int         `json:"selected_option_index"`
	IsCorrect           *bool        `json:"is_correct"`
	PointsEarned        float64      `gorm:"default:0" json:"points_earned"`
	Feedback            string       `gorm:"type:text" json:"feedback"`
	TimeSpentSeconds    int          `json:"time_spent_seconds"`
	CodeOutput          string       `gorm:"type:text" json:"code_output"`
	TestResults         []TestResult `gorm:"type:jsonb;serializer:json" json:"test_results"`
	AnsweredAt          time.Time    `gorm:"autoCreateTime" json:"answered_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func (a *Answer) TableName() string {
	return "answers"
}
