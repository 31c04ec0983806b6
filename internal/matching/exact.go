package matching

// ComputeExactMatch is the legacy scoring formula: the share of required skills
// that appear verbatim (case-insensitively) in the candidate list, times 100.
// Scores already persisted under it stay comparable when MATCH_STRATEGY=exact.
func ComputeExactMatch(required, candidate []string) float64 {
	if len(required) == 0 || len(candidate) == 0 {
		return 0.0
	}

	req := lowerSet(required)
	cand := lowerSet(candidate)

	hits := 0
	for s := range req {
		if _, ok := cand[s]; ok {
			hits++
		}
	}
	return roundScore(float64(hits) / float64(len(req)) * 100)
}

func lowerSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[lowerFull(l)] = struct{}{}
	}
	return set
}
