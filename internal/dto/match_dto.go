package dto

import "github.com/fadilmartias/ats-matcher/internal/matching"

type MatchRequest struct {
	RequiredSkills  []string `json:"required_skills" validate:"max=500"`
	CandidateSkills []string `json:"candidate_skills" validate:"max=500"`
	Strategy        string   `json:"strategy" validate:"omitempty,oneof=fuzzy exact"`
}

type MatchResponse struct {
	Strategy     matching.Strategy     `json:"strategy"`
	Score        float64               `json:"score"`
	BaseScore    float64               `json:"base_score"`
	BreadthBonus float64               `json:"breadth_bonus"`
	ExactScore   float64               `json:"exact_score"`
	Skills       []matching.SkillMatch `json:"skills"`
}

type NormalizeRequest struct {
	Labels []string `json:"labels" validate:"required,max=500"`
}

type NormalizedLabel struct {
	Label      string `json:"label"`
	Normalized string `json:"normalized"`
}
