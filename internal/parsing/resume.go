// Package parsing provides the resume and job parsing agents: language-model
// extraction into canonical records, with a deterministic regex fallback that
// guarantees the pipeline always has something to score.
package parsing

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-scanner/internal/extraction"
	"github.com/jonathan/resume-scanner/internal/ingestion"
	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/schemas"
	"github.com/jonathan/resume-scanner/internal/types"
)

// Agent parses raw resume and job text into canonical records.
// A nil client skips the language-model path entirely.
type Agent struct {
	client llm.Client
}

// NewAgent creates a parsing agent backed by the given gateway client.
func NewAgent(client llm.Client) *Agent {
	return &Agent{client: client}
}

// ParseResume converts raw resume text into a ParsedResume. It attempts the
// language-model path first and degrades to the field extractor on any
// gateway or parse failure; it never returns an error.
// The second return value reports whether the result is degraded.
func (a *Agent) ParseResume(ctx context.Context, rawText, label string) (*types.ParsedResume, bool) {
	text := ingestion.Prepare(rawText)

	if a.client != nil {
		resume, err := a.parseResumeLLM(ctx, text, label)
		if err == nil {
			return resume, false
		}
		log.Printf("resume parsing degraded to field extractor: %v", err)
	}

	return extraction.Resume(text, label), true
}

func (a *Agent) parseResumeLLM(ctx context.Context, text, label string) (*types.ParsedResume, error) {
	template := prompts.MustGet("parsing.json", "parse-resume")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": text,
	})

	reply, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume parse call failed", Cause: err}
	}

	if err := schemas.ValidateResumeReply(reply); err != nil {
		return nil, &ParseError{Message: "resume reply failed schema validation", Cause: err}
	}

	var resume types.ParsedResume
	if err := json.Unmarshal([]byte(reply), &resume); err != nil {
		return nil, &ParseError{Message: "resume reply is not valid JSON", Cause: err}
	}

	postProcessResume(&resume, text, label)
	return &resume, nil
}

// postProcessResume normalizes enums, dedupes skills, backfills contact
// fields the model missed, and stamps metadata.
func postProcessResume(resume *types.ParsedResume, text, label string) {
	resume.Normalize()
	resume.Skills = DedupeSkills(resume.Skills)

	if resume.Personal.Email == "" {
		resume.Personal.Email = extraction.Email(text)
	}
	if resume.Personal.Phone == "" {
		resume.Personal.Phone = extraction.Phone(text)
	}
	if len(resume.Personal.Links) == 0 {
		resume.Personal.Links = extraction.Links(text)
	}

	for i := range resume.Experience {
		resume.Experience[i].Company = strings.TrimSpace(resume.Experience[i].Company)
		resume.Experience[i].Position = strings.TrimSpace(resume.Experience[i].Position)
	}

	resume.Metadata = types.ParseMetadata{
		ParsedAt:      time.Now().UTC(),
		WordCount:     ingestion.WordCount(text),
		ParsingMethod: types.MethodAIEnhanced,
		SourceLabel:   label,
	}
}
