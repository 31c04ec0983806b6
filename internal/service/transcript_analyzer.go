package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const transcriptMaxChars = 12000

const transcriptSystemPrompt = "You are an expert software architect and requirements analyst."

const transcriptPromptTemplate = `From the following transcript of a meeting with a client,
identify the requirements, estimate the effort and SUGGEST THE TECHNOLOGY STACK.

Return ONE JSON object with EXACTLY this structure:

{
  "project_summary": "Short 3-5 line summary",
  "required_skills": ["Technology1", "Technology2"],
  "functional_requirements": [
    {
      "id": "FR1",
      "title": "Short title",
      "description": "Plain language description",
      "complexity": "low|medium|high",
      "estimated_hours": 0
    }
  ],
  "non_functional_requirements": [
    {
      "id": "NFR1",
      "description": "Non functional requirement"
    }
  ],
  "project_title": "Suggested project name",
  "assumptions": ["Assumption 1"],
  "risks": ["Risk 1"],
  "total_estimated_hours": 0,
  "hourly_rate": %s,
  "estimated_cost": 0
}

IMPORTANT:
1. Use plain numbers for hours and costs.
2. In "required_skills" return a list of strings with the technologies mentioned or inferred
   (e.g. ["React", "Django", "PostgreSQL", "AWS"]). If none are mentioned, infer the most suitable
   ones for this kind of project.

TRANSCRIPT:
%s`

// TranscriptAnalysis is the project proposal derived from a meeting transcript.
type TranscriptAnalysis struct {
	Raw                 string
	ProjectTitle        string
	ProjectSummary      string
	RequiredSkills      []string
	TotalEstimatedHours float64
	EstimatedCost       float64
}

type TranscriptAnalyzer struct {
	llm JSONGenerator
	log *zap.Logger
}

func NewTranscriptAnalyzer(llm JSONGenerator, log *zap.Logger) *TranscriptAnalyzer {
	return &TranscriptAnalyzer{llm: llm, log: logger.OrNop(log)}
}

// Analyze never fails: any model or parsing error yields FallbackTranscriptAnalysis.
func (a *TranscriptAnalyzer) Analyze(ctx context.Context, transcript string, hourlyRate float64) *TranscriptAnalysis {
	rate, _ := json.Marshal(hourlyRate)
	prompt := fmt.Sprintf(transcriptPromptTemplate, rate, util.TruncateRunes(transcript, transcriptMaxChars))

	raw, err := a.llm.GenerateJSON(ctx, transcriptSystemPrompt, prompt, 0.2)
	if err != nil {
		a.log.Error("transcript analysis failed, using fallback", zap.Error(err))
		return FallbackTranscriptAnalysis()
	}
	analysis, err := ParseTranscriptAnalysis(raw)
	if err != nil {
		a.log.Error("transcript analysis unreadable, using fallback",
			zap.Error(err),
			zap.String("raw", logger.TruncateForLog(raw, 200)))
		return FallbackTranscriptAnalysis()
	}
	return analysis
}

func ParseTranscriptAnalysis(raw string) (*TranscriptAnalysis, error) {
	raw = stripCodeFence(raw)
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return nil, fmt.Errorf("transcript analysis is not a JSON object")
	}
	doc := gjson.Parse(raw)

	hours := doc.Get("total_estimated_hours")
	if !hours.Exists() {
		hours = doc.Get("estimated_hours")
	}
	return &TranscriptAnalysis{
		Raw:                 raw,
		ProjectTitle:        strings.TrimSpace(doc.Get("project_title").String()),
		ProjectSummary:      strings.TrimSpace(doc.Get("project_summary").String()),
		RequiredSkills:      stringList(doc.Get("required_skills")),
		TotalEstimatedHours: hours.Float(),
		EstimatedCost:       doc.Get("estimated_cost").Float(),
	}, nil
}

// FallbackTranscriptAnalysis keeps project creation working when the model is unavailable.
func FallbackTranscriptAnalysis() *TranscriptAnalysis {
	raw := `{"project_summary":"Failed to process the meeting transcript.","required_skills":["Manual analysis"],"estimated_hours":0,"estimated_cost":0,"functional_requirements":[]}`
	return &TranscriptAnalysis{
		Raw:            raw,
		ProjectSummary: "Failed to process the meeting transcript.",
		RequiredSkills: []string{"Manual analysis"},
	}
}
