package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var ErrNoQuestions = errors.New("model returned no questions")

var difficultyLevels = map[string]string{
	model.DifficultyEasy:   "easy, basic concepts",
	model.DifficultyMedium: "intermediate, practical application",
	model.DifficultyHard:   "advanced, complex cases and optimization",
}

var snippetTemplates = map[string]string{
	"python":     "def solution(param):\n    # your code here\n    pass",
	"javascript": "function solution(param) {\n  // your code here\n}",
	"java":       "public class Solution {\n  public static int solution(int[] param) {\n    // your code here\n    return 0;\n  }\n}",
}

const quizPromptTemplate = `Generate %d multiple choice questions about %s at the %s level.

Reply ONLY with a JSON object of this shape:
{
  "questions": [
    {
      "question_text": "Question?",
      "question_type": "MULTIPLE_CHOICE",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "0",
      "explanation": "Why the answer is correct",
      "points": 10
    }
  ]
}

Rules:
- Every question has exactly 4 options.
- correct_answer is the index (0-3) of the right option.
- Questions are technical and relevant to %s.
- Vary the difficulty within the level.
- Language: %s.`

const codingPromptTemplate = `Generate %d programming challenges in %s about %s at the %s level.

Reply ONLY with a JSON object of this shape:
{
  "challenges": [
    {
      "question_text": "Clear description of the problem",
      "question_type": "CODE",
      "programming_language": "%s",
      "code_snippet": %s,
      "test_cases": [
        {"description": "What the case checks", "input": "[1, 2, 3]", "expected_output": "6"}
      ],
      "explanation": "The optimal solution",
      "points": 20
    }
  ]
}

Rules:
- At least 4 test cases per challenge, ideally 5-6, covering the typical case, edge cases and limits.
- input and expected_output are JSON text. Several parameters go in one array: "[[1, 2, 3], 6]".
- code_snippet is a starting template that does not solve the problem.`

const codeReviewPromptTemplate = `Evaluate the candidate's code for a %s level exercise.

QUESTION:
%s

CANDIDATE CODE (%s):
%s

TEST CASES:
%s

Scoring scale:
- Works and passes ALL tests: at least %g%% (up to 100%%).
- Works and passes most tests: 60-%g%%.
- Works partially: 40-59%%.
- Serious errors: 0-39%%.

If "is_correct" is true, "score_percentage" must be at least %g.

Reply ONLY with JSON:
{
  "is_correct": true,
  "score_percentage": 0,
  "feedback": "Analysis of the code, strengths first",
  "strengths": ["..."],
  "improvements": ["..."],
  "test_results": [{"test_case": 1, "passed": true, "message": "..."}]
}`

const suggestionPromptTemplate = `Analyze the following data and suggest the parameters of a technical assessment.

PROJECT:
- Title: %s
- Description: %s
- Required skills: %s
- Priority: %d

CANDIDATE:
- Detected years of experience: %g
- CV skills: %s
- Match score with the project: %g%%
- CV summary: %s

APPLICATION:
- Status: %s
- Applied on: %s

Decision rules:
- match score >= 80 -> EASY, 60-79 -> MEDIUM, < 60 -> HARD.
- Programming languages among the required skills -> CODING, otherwise QUIZ.
- Time: EASY 30-45 min, MEDIUM 60 min, HARD 90-120 min.
- Passing score: EASY 65, MEDIUM 70, HARD 75.
- 5-15 questions, fewer for CODING.

Reply ONLY with JSON:
{
  "suggested_title": "...",
  "suggested_description": "...",
  "suggested_type": "QUIZ",
  "suggested_difficulty": "MEDIUM",
  "suggested_time_minutes": 60,
  "suggested_passing_score": 70,
  "suggested_num_questions": 10,
  "suggested_programming_language": "JavaScript",
  "difficulty_reason": "...",
  "time_reason": "...",
  "score_reason": "...",
  "type_reason": "...",
  "detected_skills": ["..."],
  "candidate_experience_level": "intermediate",
  "project_complexity": "medium"
}`

const cvPreviewChars = 500

// AssessmentGenerator writes quiz questions and coding challenges, reviews
// code answers and proposes assessment parameters.
type AssessmentGenerator struct {
	llm JSONGenerator
	log *zap.Logger
}

func NewAssessmentGenerator(llm JSONGenerator, log *zap.Logger) *AssessmentGenerator {
	return &AssessmentGenerator{llm: llm, log: logger.OrNop(log)}
}

// GenerateQuiz returns unsaved multiple choice questions about topic.
func (g *AssessmentGenerator) GenerateQuiz(ctx context.Context, topic, difficulty string, count int, language string) ([]model.Question, error) {
	lang := "English"
	if language == "es" {
		lang = "Spanish"
	}
	prompt := fmt.Sprintf(quizPromptTemplate, count, topic, difficultyLevel(difficulty), topic, lang)

	raw, err := g.llm.GenerateJSON(ctx, "You write technical programming assessments. Reply ONLY with valid JSON.", prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	questions, err := ParseQuizQuestions(raw)
	if err != nil {
		g.log.Warn("quiz reply unreadable", zap.String("raw", logger.TruncateForLog(raw, 200)))
		return nil, err
	}
	for i := range questions {
		questions[i].AIPrompt = fmt.Sprintf("Topic: %s, Difficulty: %s", topic, difficulty)
	}
	return questions, nil
}

// GenerateCodingChallenges returns unsaved CODE questions with test cases.
func (g *AssessmentGenerator) GenerateCodingChallenges(ctx context.Context, topic, difficulty string, count int, language string) ([]model.Question, error) {
	snippet, ok := snippetTemplates[strings.ToLower(language)]
	if !ok {
		snippet = snippetTemplates["python"]
	}
	quoted, _ := json.Marshal(snippet)
	prompt := fmt.Sprintf(codingPromptTemplate, count, language, topic, difficultyLevel(difficulty), language, quoted)

	system := fmt.Sprintf("You write programming challenges in %s. Reply ONLY with valid JSON.", language)
	raw, err := g.llm.GenerateJSON(ctx, system, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("generate coding challenges: %w", err)
	}
	questions, err := ParseCodingChallenges(raw, language)
	if err != nil {
		g.log.Warn("coding challenge reply unreadable", zap.String("raw", logger.TruncateForLog(raw, 200)))
		return nil, err
	}
	for i := range questions {
		questions[i].AIPrompt = fmt.Sprintf("Topic: %s, Difficulty: %s, Language: %s", topic, difficulty, language)
	}
	return questions, nil
}

// EvaluateCode grades a code answer and applies the difficulty floors.
func (g *AssessmentGenerator) EvaluateCode(ctx context.Context, q *model.Question, code, difficulty string) (*assessment.CodeEvaluation, error) {
	minScore := assessment.MinPassingScore(difficulty)
	cases, _ := json.MarshalIndent(q.TestCases, "", "  ")
	fence := "```"
	prompt := fmt.Sprintf(codeReviewPromptTemplate,
		difficultyLevel(difficulty),
		q.Text,
		q.ProgrammingLanguage,
		fence+q.ProgrammingLanguage+"\n"+code+"\n"+fence,
		cases,
		minScore, minScore-1, minScore)
	system := fmt.Sprintf("You review %s code. Working code (is_correct=true) or code passing every test scores at least %g. Reply ONLY with valid JSON. Be fair with working code.",
		q.ProgrammingLanguage, minScore)

	raw, err := g.llm.GenerateJSON(ctx, system, prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("evaluate code: %w", err)
	}
	ev, err := ParseCodeEvaluation(raw)
	if err != nil {
		return nil, err
	}

	clamped := assessment.ClampCodeEvaluation(*ev, difficulty)
	if clamped.Score != ev.Score {
		g.log.Info("code evaluation score adjusted",
			zap.String("question_id", q.ID.String()),
			zap.Float64("model_score", ev.Score),
			zap.Float64("score", clamped.Score))
	}
	return &clamped, nil
}

// SuggestionRequest is the application being assessed.
type SuggestionRequest struct {
	Project         *model.Project
	Application     *model.Application
	ExperienceYears float64
}

// SuggestAssessment never fails: model or parsing errors yield the heuristic suggestion.
func (g *AssessmentGenerator) SuggestAssessment(ctx context.Context, req SuggestionRequest) *assessment.Suggestion {
	fallback := assessment.Suggest(assessment.SuggestionInput{
		ProjectTitle:    req.Project.Title,
		RequiredSkills:  req.Project.RequiredSkills,
		Priority:        req.Project.Priority,
		MatchScore:      req.Application.MatchScore,
		ExperienceYears: req.ExperienceYears,
	})

	prompt := fmt.Sprintf(suggestionPromptTemplate,
		req.Project.Title,
		orNotAvailable(util.TruncateRunes(req.Project.Description, 200)),
		orNotAvailable(strings.Join(req.Project.RequiredSkills, ", ")),
		req.Project.Priority,
		req.ExperienceYears,
		orNotAvailable(strings.Join(req.Application.HardSkills, ", ")),
		req.Application.MatchScore,
		orNotAvailable(util.TruncateRunes(req.Application.ParsedText, cvPreviewChars)),
		req.Application.Status,
		req.Application.CreatedAt.Format("2006-01-02"))

	raw, err := g.llm.GenerateJSON(ctx, "You are a technical recruiter who designs assessments. Reply ONLY with valid JSON.", prompt, 0.7)
	if err != nil {
		g.log.Warn("assessment suggestion failed, using heuristic", zap.Error(err))
		return &fallback
	}
	s, err := ParseSuggestion(raw, fallback)
	if err != nil {
		g.log.Warn("assessment suggestion unreadable, using heuristic",
			zap.Error(err),
			zap.String("raw", logger.TruncateForLog(raw, 200)))
		return &fallback
	}
	return s
}

// ParseQuizQuestions reads the "questions" array of a quiz reply.
func ParseQuizQuestions(raw string) ([]model.Question, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	var questions []model.Question
	for _, item := range doc.Get("questions").Array() {
		text := strings.TrimSpace(item.Get("question_text").String())
		if text == "" {
			continue
		}
		qType := strings.ToUpper(item.Get("question_type").String())
		switch qType {
		case model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse, model.QuestionTypeShortAnswer:
		default:
			qType = model.QuestionTypeMultipleChoice
		}
		questions = append(questions, model.Question{
			Type:          qType,
			Text:          text,
			Options:       stringList(item.Get("options")),
			CorrectAnswer: strings.TrimSpace(item.Get("correct_answer").String()),
			Explanation:   item.Get("explanation").String(),
			Points:        pointsOr(item.Get("points"), 10),
			Position:      len(questions),
			GeneratedByAI: true,
		})
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// ParseCodingChallenges reads the "challenges" array of a coding reply.
func ParseCodingChallenges(raw, language string) ([]model.Question, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	var questions []model.Question
	for _, item := range doc.Get("challenges").Array() {
		text := strings.TrimSpace(item.Get("question_text").String())
		if text == "" {
			continue
		}
		lang := strings.TrimSpace(item.Get("programming_language").String())
		if lang == "" {
			lang = language
		}
		var cases []model.TestCase
		for _, tc := range item.Get("test_cases").Array() {
			cases = append(cases, model.TestCase{
				Description:    tc.Get("description").String(),
				Input:          jsonText(tc.Get("input")),
				ExpectedOutput: jsonText(tc.Get("expected_output")),
			})
		}
		questions = append(questions, model.Question{
			Type:                model.QuestionTypeCode,
			Text:                text,
			CodeSnippet:         item.Get("code_snippet").String(),
			ProgrammingLanguage: lang,
			TestCases:           cases,
			Explanation:         item.Get("explanation").String(),
			Points:              pointsOr(item.Get("points"), 20),
			Position:            len(questions),
			GeneratedByAI:       true,
		})
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// ParseCodeEvaluation reads a code review reply without applying any floor.
func ParseCodeEvaluation(raw string) (*assessment.CodeEvaluation, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	ev := &assessment.CodeEvaluation{
		IsCorrect:    doc.Get("is_correct").Bool(),
		Score:        doc.Get("score_percentage").Float(),
		Feedback:     doc.Get("feedback").String(),
		Strengths:    stringList(doc.Get("strengths")),
		Improvements: stringList(doc.Get("improvements")),
	}
	for i, r := range doc.Get("test_results").Array() {
		n := int(r.Get("test_case").Int())
		if n == 0 {
			n = i + 1
		}
		ev.TestResults = append(ev.TestResults, model.TestResult{
			TestCase: n,
			Passed:   r.Get("passed").Bool(),
			Message:  r.Get("message").String(),
		})
	}
	return ev, nil
}

// ParseSuggestion reads a suggestion reply. Missing or invalid fields are
// taken from fallback.
func ParseSuggestion(raw string, fallback assessment.Suggestion) (*assessment.Suggestion, error) {
	if _, err := parseObject(raw); err != nil {
		return nil, err
	}
	var s assessment.Suggestion
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &s); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}

	s.Type = strings.ToUpper(strings.TrimSpace(s.Type))
	if s.Type != model.AssessmentTypeQuiz && s.Type != model.AssessmentTypeCoding {
		s.Type = fallback.Type
	}
	s.Difficulty = strings.ToUpper(strings.TrimSpace(s.Difficulty))
	if _, ok := difficultyLevels[s.Difficulty]; !ok {
		s.Difficulty = fallback.Difficulty
	}
	if strings.TrimSpace(s.Title) == "" {
		s.Title = fallback.Title
	}
	if s.TimeMinutes <= 0 {
		s.TimeMinutes = fallback.TimeMinutes
	}
	if s.PassingScore <= 0 || s.PassingScore > 100 {
		s.PassingScore = fallback.PassingScore
	}
	if s.NumQuestions <= 0 {
		s.NumQuestions = fallback.NumQuestions
	}
	switch {
	case s.Type == model.AssessmentTypeQuiz:
		s.ProgrammingLanguage = nil
	case s.ProgrammingLanguage == nil || strings.TrimSpace(*s.ProgrammingLanguage) == "":
		lang := "JavaScript"
		if fallback.ProgrammingLanguage != nil {
			lang = *fallback.ProgrammingLanguage
		}
		s.ProgrammingLanguage = &lang
	}
	s.FallbackUsed = false
	return &s, nil
}

func parseObject(raw string) (gjson.Result, error) {
	raw = stripCodeFence(raw)
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return gjson.Result{}, fmt.Errorf("model reply is not a JSON object")
	}
	return gjson.Parse(raw), nil
}

func difficultyLevel(difficulty string) string {
	if level, ok := difficultyLevels[difficulty]; ok {
		return level
	}
	return difficultyLevels[model.DifficultyMedium]
}

// jsonText keeps string values as they are and other JSON values as their source text.
func jsonText(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return v.Raw
}

func pointsOr(v gjson.Result, def int) int {
	if p := int(v.Int()); p > 0 {
		return p
	}
	return def
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not available"
	}
	return s
}
