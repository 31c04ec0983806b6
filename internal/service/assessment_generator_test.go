package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentGenerator_GenerateQuiz(t *testing.T) {
	gen := &stubGenerator{response: `{"questions": [
		{"question_text": "What does defer do?", "options": ["a","b","c","d"], "correct_answer": 1, "explanation": "runs at return"},
		{"question_text": "  ", "options": ["skipped"]},
		{"question_text": "Goroutines are threads", "question_type": "true_false", "correct_answer": "False", "points": 5}
	]}`}
	g := NewAssessmentGenerator(gen, nil)

	got, err := g.GenerateQuiz(context.Background(), "Go concurrency", model.DifficultyHard, 3, "en")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.QuestionTypeMultipleChoice, got[0].Type)
	assert.Equal(t, "1", got[0].CorrectAnswer)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got[0].Options)
	assert.Equal(t, 10, got[0].Points)
	assert.Equal(t, 0, got[0].Position)
	assert.True(t, got[0].GeneratedByAI)
	assert.Equal(t, "Topic: Go concurrency, Difficulty: HARD", got[0].AIPrompt)

	assert.Equal(t, model.QuestionTypeTrueFalse, got[1].Type)
	assert.Equal(t, 5, got[1].Points)
	assert.Equal(t, 1, got[1].Position)

	assert.Equal(t, float32(0.7), gen.temperature)
	assert.Contains(t, gen.prompt, "Generate 3 multiple choice questions about Go concurrency at the advanced")
	assert.Contains(t, gen.prompt, "Language: English.")
}

func TestAssessmentGenerator_GenerateQuiz_Errors(t *testing.T) {
	g := NewAssessmentGenerator(&stubGenerator{err: errors.New("rate limited")}, nil)
	_, err := g.GenerateQuiz(context.Background(), "SQL", model.DifficultyEasy, 5, "es")
	assert.ErrorContains(t, err, "rate limited")

	g = NewAssessmentGenerator(&stubGenerator{response: `{"questions": []}`}, nil)
	_, err = g.GenerateQuiz(context.Background(), "SQL", model.DifficultyEasy, 5, "es")
	assert.ErrorIs(t, err, ErrNoQuestions)

	g = NewAssessmentGenerator(&stubGenerator{response: `questions: none`}, nil)
	_, err = g.GenerateQuiz(context.Background(), "SQL", model.DifficultyEasy, 5, "es")
	assert.Error(t, err)
}

func TestAssessmentGenerator_GenerateCodingChallenges(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + `{"challenges": [{
		"question_text": "Sum the even numbers",
		"code_snippet": "def solution(xs):\n    pass",
		"test_cases": [
			{"description": "basic", "input": "[1, 2, 3, 4]", "expected_output": "6"},
			{"description": "raw values", "input": [[1, 2], 5], "expected_output": 0}
		]
	}]}` + "\n```"}
	g := NewAssessmentGenerator(gen, nil)

	got, err := g.GenerateCodingChallenges(context.Background(), "arrays", model.DifficultyMedium, 1, "python")

	require.NoError(t, err)
	require.Len(t, got, 1)
	q := got[0]
	assert.Equal(t, model.QuestionTypeCode, q.Type)
	assert.Equal(t, "python", q.ProgrammingLanguage)
	assert.Equal(t, 20, q.Points)
	assert.Equal(t, "Topic: arrays, Difficulty: MEDIUM, Language: python", q.AIPrompt)
	assert.Equal(t, []model.TestCase{
		{Description: "basic", Input: "[1, 2, 3, 4]", ExpectedOutput: "6"},
		{Description: "raw values", Input: "[[1, 2], 5]", ExpectedOutput: "0"},
	}, q.TestCases)
	assert.Contains(t, gen.system, "challenges in python")
	assert.Contains(t, gen.prompt, `"code_snippet": "def solution(param):\n    # your code here\n    pass"`)
}

func TestAssessmentGenerator_EvaluateCode(t *testing.T) {
	gen := &stubGenerator{response: `{
		"is_correct": false,
		"score_percentage": 45,
		"feedback": "Works.",
		"strengths": ["clear"],
		"test_results": [{"passed": true}, {"test_case": 2, "passed": true, "message": "ok"}]
	}`}
	g := NewAssessmentGenerator(gen, nil)
	q := &model.Question{
		ID:                  uuid.New(),
		Type:                model.QuestionTypeCode,
		Text:                "Sum a list",
		ProgrammingLanguage: "python",
		TestCases:           []model.TestCase{{Input: "[1,2]", ExpectedOutput: "3"}},
	}

	got, err := g.EvaluateCode(context.Background(), q, "def solution(xs): return sum(xs)", model.DifficultyEasy)

	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Score)
	assert.True(t, got.IsCorrect)
	assert.Equal(t, "All tests passed (2/2). Works.", got.Feedback)
	assert.Equal(t, 1, got.TestResults[0].TestCase)
	assert.Equal(t, []string{"clear"}, got.Strengths)
	assert.Equal(t, float32(0.2), gen.temperature)
	assert.Contains(t, gen.prompt, "at least 80% (up to 100%)")
	assert.Contains(t, gen.prompt, "```python\ndef solution(xs): return sum(xs)\n```")
	assert.Contains(t, gen.prompt, `"expected_output": "3"`)
	assert.Contains(t, gen.system, "at least 80")
}

func TestAssessmentGenerator_EvaluateCode_Errors(t *testing.T) {
	q := &model.Question{Type: model.QuestionTypeCode}

	_, err := NewAssessmentGenerator(&stubGenerator{err: errors.New("timeout")}, nil).
		EvaluateCode(context.Background(), q, "x", model.DifficultyMedium)
	assert.ErrorContains(t, err, "timeout")

	_, err = NewAssessmentGenerator(&stubGenerator{response: `[1]`}, nil).
		EvaluateCode(context.Background(), q, "x", model.DifficultyMedium)
	assert.Error(t, err)
}

func suggestionRequest() SuggestionRequest {
	return SuggestionRequest{
		Project: &model.Project{
			Title:          "Shop",
			Description:    "Online store",
			RequiredSkills: []string{"React", "Node.js"},
			Priority:       2,
		},
		Application: &model.Application{
			MatchScore: 85,
			HardSkills: []string{"React"},
			ParsedText: "Frontend developer",
			Status:     model.ApplicationStatusReview,
			CreatedAt:  time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		},
		ExperienceYears: 3,
	}
}

func TestAssessmentGenerator_SuggestAssessment(t *testing.T) {
	gen := &stubGenerator{response: `{
		"suggested_title": "React screening",
		"suggested_type": "coding",
		"suggested_difficulty": "LEGENDARY",
		"suggested_time_minutes": 45,
		"suggested_passing_score": 150,
		"suggested_num_questions": 4,
		"suggested_programming_language": null,
		"detected_skills": ["React"],
		"candidate_experience_level": "intermediate",
		"project_complexity": "high"
	}`}
	g := NewAssessmentGenerator(gen, nil)

	got := g.SuggestAssessment(context.Background(), suggestionRequest())

	assert.Equal(t, "React screening", got.Title)
	assert.Equal(t, model.AssessmentTypeCoding, got.Type)
	assert.Equal(t, model.DifficultyEasy, got.Difficulty)
	assert.Equal(t, 45, got.TimeMinutes)
	assert.Equal(t, 65, got.PassingScore)
	assert.Equal(t, 4, got.NumQuestions)
	require.NotNil(t, got.ProgrammingLanguage)
	assert.Equal(t, "JavaScript", *got.ProgrammingLanguage)
	assert.False(t, got.FallbackUsed)

	assert.Contains(t, gen.prompt, "- Match score with the project: 85%")
	assert.Contains(t, gen.prompt, "- Required skills: React, Node.js")
	assert.Contains(t, gen.prompt, "- Applied on: 2026-03-04")
	assert.Contains(t, gen.prompt, "- CV summary: Frontend developer")
}

func TestAssessmentGenerator_SuggestAssessment_Fallback(t *testing.T) {
	for name, gen := range map[string]*stubGenerator{
		"llm error":        {err: errors.New("quota")},
		"not an object":    {response: `"EASY"`},
		"wrong field type": {response: `{"suggested_time_minutes": "sixty"}`},
	} {
		t.Run(name, func(t *testing.T) {
			got := NewAssessmentGenerator(gen, nil).SuggestAssessment(context.Background(), suggestionRequest())

			assert.True(t, got.FallbackUsed)
			assert.Equal(t, model.DifficultyEasy, got.Difficulty)
			assert.Equal(t, model.AssessmentTypeCoding, got.Type)
			assert.Equal(t, "high", got.ProjectComplexity)
			assert.Equal(t, "intermediate", got.ExperienceLevel)
		})
	}
}
