package config

import (
	"os"
	"sync"

	"github.com/fadilmartias/ats-matcher/internal/matching"
)

type MatchingConfig struct {
	Strategy matching.Strategy
}

var (
	matchingConfig *MatchingConfig
	matchingOnce   sync.Once
)

func LoadMatchingConfig() *MatchingConfig {
	matchingOnce.Do(func() {
		matchingConfig = &MatchingConfig{
			Strategy: matching.ParseStrategy(os.Getenv("MATCH_STRATEGY")),
		}
	})
	return matchingConfig
}
