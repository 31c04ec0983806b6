package config

import (
	"os"
	"strings"
	"sync"
)

// OpenAIConfig points at any OpenAI-compatible chat completions API
// (OpenAI itself, or OpenRouter via OPENAI_BASE_URL).
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	openAIConfig *OpenAIConfig
	openAIOnce   sync.Once
)

func LoadOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		openAIConfig = loadOpenAIConfig()
	})
	return openAIConfig
}

func loadOpenAIConfig() *OpenAIConfig {
	return &OpenAIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
}
