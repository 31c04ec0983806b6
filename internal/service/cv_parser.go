package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ats-matcher/internal/logger"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const cvSchema = `{
  "type": "object",
  "properties": {
    "full_name": {"type": "string"},
    "emails": {"type": "array", "items": {"type": "string"}},
    "phones": {"type": "array", "items": {"type": "string"}},
    "skills": {
      "type": "object",
      "properties": {
        "hard": {"type": "array", "items": {"type": "string"}},
        "soft": {"type": "array", "items": {"type": "string"}}
      }
    },
    "education": {"type": "array"},
    "experience": {"type": "array"},
    "experience_years": {"type": "number"},
    "links": {"type": "array"},
    "languages": {"type": "array"}
  },
  "required": ["full_name", "emails", "skills"]
}`

const cvSystemPrompt = `You are an expert ATS parser.
Extract the information of a CV written in Spanish or English.
Never invent data. When something is missing, leave arrays or strings empty.
Reply ONLY with JSON that follows the schema.`

// CVExtraction is the structured view of a CV. Raw keeps the model's JSON as returned.
type CVExtraction struct {
	Raw        string
	FullName   string
	Emails     []string
	HardSkills []string
	SoftSkills []string
}

type CVParser struct {
	llm      JSONGenerator
	maxChars int
	log      *zap.Logger
}

func NewCVParser(llm JSONGenerator, maxChars int, log *zap.Logger) *CVParser {
	return &CVParser{llm: llm, maxChars: maxChars, log: logger.OrNop(log)}
}

// Parse sends the CV text to the model and reads back the structured fields.
func (p *CVParser) Parse(ctx context.Context, cvText string) (*CVExtraction, error) {
	prompt := fmt.Sprintf("Schema:\n%s\n\nCV:\n%s", cvSchema, util.TruncateRunes(cvText, p.maxChars))

	raw, err := p.llm.GenerateJSON(ctx, cvSystemPrompt, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("parse cv: %w", err)
	}

	extraction, err := ParseCVExtraction(raw)
	if err != nil {
		p.log.Warn("cv extraction is not valid JSON", zap.String("raw", logger.TruncateForLog(raw, 200)))
		return nil, err
	}
	p.log.Debug("cv parsed",
		zap.String("full_name", extraction.FullName),
		zap.Int("hard_skills", len(extraction.HardSkills)))
	return extraction, nil
}

// ParseCVExtraction reads the fields of a CV extraction JSON object.
func ParseCVExtraction(raw string) (*CVExtraction, error) {
	raw = stripCodeFence(raw)
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return nil, fmt.Errorf("cv extraction is not a JSON object")
	}
	doc := gjson.Parse(raw)
	return &CVExtraction{
		Raw:        raw,
		FullName:   strings.TrimSpace(doc.Get("full_name").String()),
		Emails:     stringList(doc.Get("emails")),
		HardSkills: HardSkills(raw),
		SoftSkills: stringList(doc.Get("skills.soft")),
	}, nil
}

// HardSkills returns skills.hard of a CV extraction. Non-string entries are
// dropped and a single comma separated string is split. Anything unreadable
// yields nil.
func HardSkills(extracted string) []string {
	if !gjson.Valid(extracted) {
		return nil
	}
	return stringList(gjson.Get(extracted, "skills.hard"))
}

// ExperienceYears returns experience_years of a CV extraction, 0 when absent.
func ExperienceYears(extracted string) float64 {
	if !gjson.Valid(extracted) {
		return 0
	}
	return max(gjson.Get(extracted, "experience_years").Float(), 0)
}

func stringList(v gjson.Result) []string {
	var out []string
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if item.Type != gjson.String {
				continue
			}
			if s := strings.TrimSpace(item.Str); s != "" {
				out = append(out, s)
			}
		}
	case v.Type == gjson.String:
		for _, part := range strings.Split(v.Str, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
