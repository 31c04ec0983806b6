package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"go.uber.org/zap"
)

const candidateScoreSystemPrompt = `You are an IT recruiting expert. Rate how well a candidate fits a project.
Return a JSON object with:
1. "skills_score": 0-10, how well the hard and soft skills match.
2. "experience_score": 0-10, how relevant the work history is for this project.
3. "justification": a short explanation of the ratings.`

const candidateScorePromptTemplate = `PROJECT REQUIREMENTS:
Title: %s
Description: %s
Required skills: %s

CANDIDATE DATA (extracted from the CV):
%s

Rate on real relevance, not only on keywords.`

// CandidateScore is the model's holistic rating of an application.
type CandidateScore struct {
	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	Justification   string  `json:"justification"`
}

// CandidateScorer rates a candidate against a project beyond the skill match score.
type CandidateScorer struct {
	llm      JSONGenerator
	maxChars int
	log      *zap.Logger
}

func NewCandidateScorer(llm JSONGenerator, maxChars int, log *zap.Logger) *CandidateScorer {
	return &CandidateScorer{llm: llm, maxChars: maxChars, log: logger.OrNop(log)}
}

func (s *CandidateScorer) ScoreCandidate(ctx context.Context, project *model.Project, extracted string) (*CandidateScore, error) {
	prompt := fmt.Sprintf(candidateScorePromptTemplate,
		project.Title,
		orNotAvailable(project.Description),
		orNotAvailable(strings.Join(project.RequiredSkills, ", ")),
		util.TruncateRunes(extracted, s.maxChars))

	raw, err := s.llm.GenerateJSON(ctx, candidateScoreSystemPrompt, prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("score candidate: %w", err)
	}
	score, err := ParseCandidateScore(raw)
	if err != nil {
		s.log.Warn("candidate score unreadable", zap.String("raw", logger.TruncateForLog(raw, 200)))
		return nil, err
	}
	return score, nil
}

// ParseCandidateScore reads a rating reply; both scores are clamped to 0..10.
func ParseCandidateScore(raw string) (*CandidateScore, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	return &CandidateScore{
		SkillsScore:     clampTen(doc.Get("skills_score").Float()),
		ExperienceScore: clampTen(doc.Get("experience_score").Float()),
		Justification:   strings.TrimSpace(doc.Get("justification").String()),
	}, nil
}

// JSON is the stored form of the rating.
func (c *CandidateScore) JSON() json.RawMessage {
	b, _ := json.Marshal(c)
	return b
}

func clampTen(v float64) float64 {
	return min(max(v, 0), 10)
}
