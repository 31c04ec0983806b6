package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/config"
	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenAIService talks to an OpenAI-compatible /chat/completions endpoint in JSON mode.
type OpenAIService struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

func NewOpenAIService(cfg *config.OpenAIConfig, log *zap.Logger) *OpenAIService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(90 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &OpenAIService{client: client, model: cfg.Model, log: logger.OrNop(log)}
}

func (s *OpenAIService) GenerateJSON(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	messages := make([]map[string]string, 0, 2)
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	s.log.Debug("llm request", zap.String("model", s.model), zap.String("prompt", logger.TruncateForLog(prompt, 300)))

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":           s.model,
			"messages":        messages,
			"temperature":     temperature,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	body := resp.String()
	s.log.Debug("llm response", zap.Int("status", resp.StatusCode()), zap.String("body", logger.TruncateForLog(body, 300)))

	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("chat completion failed (%d): %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return stripCodeFence(text), nil
}
