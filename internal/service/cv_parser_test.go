package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVParser_Parse(t *testing.T) {
	gen := &stubGenerator{response: `{
		"full_name": "Ana Pérez",
		"emails": ["ana@example.com"],
		"skills": {"hard": ["Python", " Django ", "", 42], "soft": ["Teamwork"]}
	}`}
	parser := NewCVParser(gen, 20000, nil)

	got, err := parser.Parse(context.Background(), "Ana Pérez - Backend developer")

	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.FullName)
	assert.Equal(t, []string{"ana@example.com"}, got.Emails)
	assert.Equal(t, []string{"Python", "Django"}, got.HardSkills)
	assert.Equal(t, []string{"Teamwork"}, got.SoftSkills)
	assert.Equal(t, float32(0.1), gen.temperature)
	assert.Contains(t, gen.system, "ATS parser")
	assert.Contains(t, gen.prompt, `"required": ["full_name", "emails", "skills"]`)
	assert.True(t, strings.HasSuffix(gen.prompt, "CV:\nAna Pérez - Backend developer"))
}

func TestCVParser_Parse_TruncatesText(t *testing.T) {
	gen := &stubGenerator{response: `{"skills":{}}`}
	parser := NewCVParser(gen, 5, nil)

	_, err := parser.Parse(context.Background(), "ñañañañaña")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gen.prompt, "CV:\nñañañ"))
}

func TestCVParser_Parse_Errors(t *testing.T) {
	_, err := NewCVParser(&stubGenerator{err: errors.New("quota exceeded")}, 100, nil).
		Parse(context.Background(), "cv")
	assert.ErrorContains(t, err, "quota exceeded")

	_, err = NewCVParser(&stubGenerator{response: "not json"}, 100, nil).
		Parse(context.Background(), "cv")
	assert.Error(t, err)

	_, err = NewCVParser(&stubGenerator{response: `["a"]`}, 100, nil).
		Parse(context.Background(), "cv")
	assert.Error(t, err)
}

func TestHardSkills(t *testing.T) {
	tests := []struct {
		name      string
		extracted string
		want      []string
	}{
		{"list", `{"skills":{"hard":["Go","SQL"]}}`, []string{"Go", "SQL"}},
		{"non strings dropped", `{"skills":{"hard":["Go",1,null,{"x":1},"SQL"]}}`, []string{"Go", "SQL"}},
		{"comma separated string", `{"skills":{"hard":"React, Node.js ,,AWS"}}`, []string{"React", "Node.js", "AWS"}},
		{"missing skills", `{"full_name":"Ana"}`, nil},
		{"skills null", `{"skills":null}`, nil},
		{"hard is a number", `{"skills":{"hard":7}}`, nil},
		{"error payload", `{"error":"timeout"}`, nil},
		{"invalid json", `{"skills":`, nil},
		{"empty", ``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HardSkills(tt.extracted))
		})
	}
}

func TestExperienceYears(t *testing.T) {
	assert.Equal(t, 4.5, ExperienceYears(`{"experience_years": 4.5}`))
	assert.Equal(t, 3.0, ExperienceYears(`{"experience_years": "3"}`))
	assert.Equal(t, 0.0, ExperienceYears(`{"experience_years": -2}`))
	assert.Equal(t, 0.0, ExperienceYears(`{"full_name": "Ana"}`))
	assert.Equal(t, 0.0, ExperienceYears(`{"error": "timeout"`))
}
