package usecase

import (
	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/matching"
)

// MatchUsecase scores ad-hoc skill lists without touching storage.
type MatchUsecase struct {
	strategy matching.Strategy
}

func NewMatchUsecase(strategy matching.Strategy) *MatchUsecase {
	return &MatchUsecase{strategy: strategy}
}

func (uc *MatchUsecase) Match(req dto.MatchRequest) dto.MatchResponse {
	strategy := uc.strategy
	if req.Strategy != "" {
		strategy = matching.ParseStrategy(req.Strategy)
	}

	res := matching.Evaluate(req.RequiredSkills, req.CandidateSkills)
	exact := matching.ComputeExactMatch(req.RequiredSkills, req.CandidateSkills)

	score := res.Score
	if strategy == matching.StrategyExact {
		score = exact
	}
	return dto.MatchResponse{
		Strategy:     strategy,
		Score:        score,
		BaseScore:    res.BaseScore,
		BreadthBonus: res.BreadthBonus,
		ExactScore:   exact,
		Skills:       res.Skills,
	}
}

func (uc *MatchUsecase) Normalize(labels []string) []dto.NormalizedLabel {
	out := make([]dto.NormalizedLabel, len(labels))
	for i, l := range labels {
		out[i] = dto.NormalizedLabel{Label: l, Normalized: matching.Normalize(l)}
	}
	return out
}
