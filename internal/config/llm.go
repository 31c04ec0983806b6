package config

import (
	"strings"
	"sync"
)

const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

type LLMConfig struct {
	Provider string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = loadLLMConfig()
	})
	return llmConfig
}

func loadLLMConfig() *LLMConfig {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderOpenAI))
	if provider != LLMProviderGemini {
		provider = LLMProviderOpenAI
	}
	return &LLMConfig{Provider: provider}
}
