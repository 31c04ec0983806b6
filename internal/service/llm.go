package service

import (
	"context"
	"strings"
)

// JSONGenerator asks a chat model for a single JSON object.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string, temperature float32) (string, error)
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
