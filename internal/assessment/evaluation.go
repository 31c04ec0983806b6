// Package assessment grades technical assessments: choice answers, LLM code
// evaluations and the final assessment score.
package assessment

import (
	"fmt"
	"math"

	"github.com/fadilmartias/ats-matcher/internal/model"
)

// CodeEvaluation is a grader's verdict on one code answer. Score is a percentage.
type CodeEvaluation struct {
	IsCorrect    bool               `json:"is_correct"`
	Score        float64            `json:"score_percentage"`
	Feedback     string             `json:"feedback"`
	Strengths    []string           `json:"strengths"`
	Improvements []string           `json:"improvements"`
	TestResults  []model.TestResult `json:"test_results"`
}

// minScores is the floor for working code per difficulty.
var minScores = map[string]float64{
	model.DifficultyEasy:   80,
	model.DifficultyMedium: 75,
	model.DifficultyHard:   70,
}

// MinPassingScore is the lowest score a correct solution may receive.
// Unknown difficulties are treated as MEDIUM.
func MinPassingScore(difficulty string) float64 {
	if s, ok := minScores[difficulty]; ok {
		return s
	}
	return minScores[model.DifficultyMedium]
}

// ClampCodeEvaluation enforces the grading floors on a model verdict:
//
//   - is_correct with a score under the difficulty minimum is raised to it;
//   - all tests passing is raised to the minimum and marked correct;
//   - at least 80% of tests passing with a score under 70 is raised to 70,
//     and is_correct then only holds when every test passed;
//   - a verdict that is still correct, or has every test passing, never ends
//     below the minimum.
//
// The first three checks compare the score the model returned, not the
// adjusted one, so the 80% rule can lower a score the first two raised.
func ClampCodeEvaluation(ev CodeEvaluation, difficulty string) CodeEvaluation {
	minScore := MinPassingScore(difficulty)
	ev.Score = clampPercent(ev.Score)
	modelScore := ev.Score

	total := len(ev.TestResults)
	passed := 0
	for _, r := range ev.TestResults {
		if r.Passed {
			passed++
		}
	}
	allPassed := total > 0 && passed == total

	if ev.IsCorrect && modelScore < minScore {
		ev.Score = minScore
		ev.Feedback = "Correct solution. " + ev.Feedback
	}
	if allPassed && modelScore < minScore {
		ev.Score = minScore
		ev.IsCorrect = true
		ev.Feedback = fmt.Sprintf("All tests passed (%d/%d). %s", passed, total, ev.Feedback)
	}
	if total > 0 {
		passRate := float64(passed) / float64(total) * 100
		if passRate >= 80 && modelScore < 70 {
			ev.Score = max(70, modelScore)
			ev.IsCorrect = passRate == 100
		}
	}

	if ev.IsCorrect && ev.Score < minScore {
		ev.Score = minScore
	}
	if allPassed && ev.Score < minScore {
		ev.Score = minScore
		ev.IsCorrect = true
	}
	return ev
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
