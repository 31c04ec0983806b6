package service

import "context"

type stubGenerator struct {
	response string
	err      error

	system      string
	prompt      string
	temperature float32
	calls       int
}

func (s *stubGenerator) GenerateJSON(_ context.Context, system, prompt string, temperature float32) (string, error) {
	s.calls++
	s.system = system
	s.prompt = prompt
	s.temperature = temperature
	return s.response, s.err
}
