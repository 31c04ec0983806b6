package matching

import (
	"math"
	"strconv"
	"strings"
)

const (
	// containmentFloor is the similarity granted when one skill contains the other.
	containmentFloor = 0.95

	relevanceShare = 0.9
	breadthShare   = 0.1

	// breadthCap is the number of distinct candidate skills that earns the full bonus.
	breadthCap = 10
)

// SkillMatch reports how one required skill was matched.
type SkillMatch struct {
	Required   string  `json:"required"`
	Normalized string  `json:"normalized"`
	BestMatch  string  `json:"best_match,omitempty"`
	Similarity float64 `json:"similarity"`
	Weight     float64 `json:"weight"`
}

// Result is a match score together with the numbers that produced it.
type Result struct {
	Score        float64      `json:"score"`
	BaseScore    float64      `json:"base_score"`
	BreadthBonus float64      `json:"breadth_bonus"`
	Skills       []SkillMatch `json:"skills"`
}

// ComputeMatch scores candidate against required in [0, 100], rounded to one decimal.
// Empty inputs, or inputs that normalize to nothing, score 0.
func ComputeMatch(required, candidate []string) float64 {
	return Evaluate(required, candidate).Score
}

// Evaluate computes the fuzzy match score and its per-skill breakdown.
// Breakdown entries follow the order of required.
func Evaluate(required, candidate []string) Result {
	cand := NormalizeAll(candidate)

	skills := make([]SkillMatch, 0, len(required))
	for _, label := range required {
		norm := Normalize(label)
		if norm == "" {
			continue
		}
		skills = append(skills, SkillMatch{Required: label, Normalized: norm})
	}

	if len(skills) == 0 || len(cand) == 0 {
		return Result{Skills: skills}
	}

	total := 0.0
	for i := range skills {
		best, bestMatch := bestSimilarity(skills[i].Normalized, cand)
		skills[i].BestMatch = bestMatch
		skills[i].Similarity = best
		skills[i].Weight = tierWeight(best)
		total += skills[i].Weight
	}

	base := total / float64(len(skills)) * 100.0
	bonus := breadthBonus(cand)
	final := math.Min(base*relevanceShare+bonus*breadthShare, 100.0)

	return Result{
		Score:        roundScore(final),
		BaseScore:    roundScore(base),
		BreadthBonus: bonus,
		Skills:       skills,
	}
}

// bestSimilarity returns the highest similarity of req against any candidate skill,
// and the first candidate that reached it.
func bestSimilarity(req string, cand []string) (float64, string) {
	best, bestMatch := 0.0, ""
	for _, c := range cand {
		sim := Similarity(req, c)
		if strings.Contains(c, req) || strings.Contains(req, c) {
			sim = math.Max(sim, containmentFloor)
		}
		if sim > best {
			best, bestMatch = sim, c
		}
	}
	return best, bestMatch
}

func tierWeight(best float64) float64 {
	switch {
	case best >= 0.90:
		return 1.0
	case best >= 0.75:
		return 0.7
	case best >= 0.60:
		return 0.4
	}
	return 0.0
}

func breadthBonus(cand []string) float64 {
	unique := make(map[string]struct{}, len(cand))
	for _, c := range cand {
		unique[c] = struct{}{}
	}
	return math.Min(float64(len(unique))/breadthCap, 1.0) * 10.0
}

// roundScore rounds to one decimal, ties to even on the exact binary value.
func roundScore(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
