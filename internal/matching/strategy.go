package matching

import "strings"

// Strategy selects the scoring formula.
type Strategy string

const (
	StrategyFuzzy Strategy = "fuzzy"
	StrategyExact Strategy = "exact"
)

// ParseStrategy maps a configuration value to a Strategy; anything unknown is fuzzy.
func ParseStrategy(s string) Strategy {
	if Strategy(strings.ToLower(strings.TrimSpace(s))) == StrategyExact {
		return StrategyExact
	}
	return StrategyFuzzy
}

// Score dispatches to the formula selected by strategy.
func Score(strategy Strategy, required, candidate []string) float64 {
	if strategy == StrategyExact {
		return ComputeExactMatch(required, candidate)
	}
	return ComputeMatch(required, candidate)
}
