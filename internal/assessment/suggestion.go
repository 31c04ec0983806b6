package assessment

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/model"
)

// Suggestion holds the proposed parameters of an assessment for one application.
type Suggestion struct {
	Title               string   `json:"suggested_title"`
	Description         string   `json:"suggested_description"`
	Type                string   `json:"suggested_type"`
	Difficulty          string   `json:"suggested_difficulty"`
	TimeMinutes         int      `json:"suggested_time_minutes"`
	PassingScore        int      `json:"suggested_passing_score"`
	NumQuestions        int      `json:"suggested_num_questions"`
	ProgrammingLanguage *string  `json:"suggested_programming_language"`
	DifficultyReason    string   `json:"difficulty_reason"`
	TimeReason          string   `json:"time_reason"`
	ScoreReason         string   `json:"score_reason"`
	TypeReason          string   `json:"type_reason"`
	DetectedSkills      []string `json:"detected_skills"`
	ExperienceLevel     string   `json:"candidate_experience_level"`
	ProjectComplexity   string   `json:"project_complexity"`
	FallbackUsed        bool     `json:"fallback_used,omitempty"`
}

// SuggestionInput is what the heuristic looks at.
type SuggestionInput struct {
	ProjectTitle    string
	RequiredSkills  []string
	Priority        int
	MatchScore      float64
	ExperienceYears float64
}

var codingKeywords = []string{
	"react", "python", "java", "javascript", "node", "django", "angular",
	"vue", "php", "ruby", "go", "rust", "c++", "c#", "swift", "kotlin",
}

// Suggest derives assessment parameters without a model. A high match score
// gets an easier test; programming skills in the project get a coding test.
func Suggest(in SuggestionInput) Suggestion {
	difficulty, passing, minutes := model.DifficultyHard, 75, 90
	switch {
	case in.MatchScore >= 80:
		difficulty, passing, minutes = model.DifficultyEasy, 65, 30
	case in.MatchScore >= 60:
		difficulty, passing, minutes = model.DifficultyMedium, 70, 60
	}

	hasCoding := false
	for _, skill := range in.RequiredSkills {
		if containsAny(strings.ToLower(skill), codingKeywords) {
			hasCoding = true
			break
		}
	}

	s := Suggestion{
		Title:             "Assessment " + in.ProjectTitle,
		Description:       fmt.Sprintf("Technical assessment for project %s - %s level", in.ProjectTitle, strings.ToLower(difficulty)),
		Type:              model.AssessmentTypeQuiz,
		Difficulty:        difficulty,
		TimeMinutes:       minutes,
		PassingScore:      passing,
		NumQuestions:      10,
		DifficultyReason:  fmt.Sprintf("A match score of %g%% suggests %s", in.MatchScore, difficulty),
		TimeReason:        fmt.Sprintf("%s difficulty needs about %d minutes", difficulty, minutes),
		ScoreReason:       fmt.Sprintf("A minimum score of %d%% fits %s", passing, difficulty),
		TypeReason:        "Mostly theoretical skills suggest QUIZ",
		DetectedSkills:    detectedSkills(in.RequiredSkills),
		ExperienceLevel:   experienceLevel(in.ExperienceYears),
		ProjectComplexity: projectComplexity(in.Priority),
		FallbackUsed:      true,
	}
	if hasCoding {
		lang := programmingLanguage(in.RequiredSkills)
		s.Type = model.AssessmentTypeCoding
		s.NumQuestions = 5
		s.ProgrammingLanguage = &lang
		s.TypeReason = "Programming skills detected suggest CODING"
	}
	return s
}

// programmingLanguage picks the first skill that names a language, JavaScript otherwise.
func programmingLanguage(skills []string) string {
	for _, skill := range skills {
		s := strings.ToLower(skill)
		switch {
		case strings.Contains(s, "python"), strings.Contains(s, "django"):
			return "Python"
		case strings.Contains(s, "java") && !strings.Contains(s, "javascript"):
			return "Java"
		case strings.Contains(s, "react"), strings.Contains(s, "node"), strings.Contains(s, "javascript"):
			return "JavaScript"
		}
	}
	return "JavaScript"
}

func experienceLevel(years float64) string {
	switch {
	case years < 2:
		return "junior"
	case years < 5:
		return "intermediate"
	}
	return "senior"
}

func projectComplexity(priority int) string {
	switch {
	case priority <= 2:
		return "high"
	case priority <= 3:
		return "medium"
	}
	return "low"
}

func detectedSkills(skills []string) []string {
	if len(skills) == 0 {
		return []string{"Not specified"}
	}
	return append([]string(nil), skills[:min(5, len(skills))]...)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
