package assessment

import (
	"strconv"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/model"
)

// Grade is the automatic verdict on an answer. Graded is false when the
// question needs a reviewer (code, short answers, unreadable keys).
type Grade struct {
	Graded       bool
	IsCorrect    bool
	PointsEarned float64
}

// GradeChoice grades multiple choice answers by option index and true/false
// answers by their text, case-insensitively. Everything else is left ungraded.
func GradeChoice(q *model.Question, selectedOption *int, answerText string) Grade {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		want, err := strconv.Atoi(strings.TrimSpace(q.CorrectAnswer))
		if err != nil || selectedOption == nil {
			return Grade{}
		}
		return choiceGrade(*selectedOption == want, q.Points)
	case model.QuestionTypeTrueFalse:
		want, ok := parseBool(q.CorrectAnswer)
		got, gotOK := parseBool(answerText)
		if !ok || !gotOK {
			return Grade{}
		}
		return choiceGrade(got == want, q.Points)
	}
	return Grade{}
}

func choiceGrade(correct bool, points int) Grade {
	g := Grade{Graded: true, IsCorrect: correct}
	if correct {
		g.PointsEarned = float64(points)
	}
	return g
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "verdadero", "1":
		return true, true
	case "false", "falso", "0":
		return false, true
	}
	return false, false
}

// PointsEarned converts a percentage score into question points.
func PointsEarned(scorePercent float64, points int) float64 {
	return clampPercent(scorePercent) / 100 * float64(points)
}

// ComputeScore is earned over total points as a percentage; 0 when the
// assessment has no points at all.
func ComputeScore(totalPoints int, earned float64) float64 {
	if totalPoints <= 0 {
		return 0
	}
	return earned / float64(totalPoints) * 100
}

// TotalPoints sums the points of every question.
func TotalPoints(questions []model.Question) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}

// Passed reports whether score reaches the assessment's passing score.
func Passed(a *model.Assessment) bool {
	return a.Score != nil && *a.Score >= float64(a.PassingScore)
}
