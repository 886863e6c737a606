package parsing

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jonathan/resume-scanner/internal/extraction"
	"github.com/jonathan/resume-scanner/internal/ingestion"
	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/prompts"
	"github.com/jonathan/resume-scanner/internal/schemas"
	"github.com/jonathan/resume-scanner/internal/types"
)

// ParseJob converts raw job posting text into a ParsedJob. It attempts the
// language-model path first and degrades to the field extractor on any
// gateway or parse failure; it never returns an error.
// The second return value reports whether the result is degraded.
func (a *Agent) ParseJob(ctx context.Context, rawText string) (*types.ParsedJob, bool) {
	text := ingestion.Prepare(rawText)

	if a.client != nil {
		job, err := a.parseJobLLM(ctx, text)
		if err == nil {
			return job, false
		}
		log.Printf("job parsing degraded to field extractor: %v", err)
	}

	return extraction.Job(text), true
}

func (a *Agent) parseJobLLM(ctx context.Context, text string) (*types.ParsedJob, error) {
	template := prompts.MustGet("parsing.json", "parse-job")
	prompt := prompts.Format(template, map[string]string{
		"JobText": text,
	})

	reply, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "job parse call failed", Cause: err}
	}

	if err := schemas.ValidateJobReply(reply); err != nil {
		return nil, &ParseError{Message: "job reply failed schema validation", Cause: err}
	}

	var job types.ParsedJob
	if err := json.Unmarshal([]byte(reply), &job); err != nil {
		return nil, &ParseError{Message: "job reply is not valid JSON", Cause: err}
	}

	postProcessJob(&job, text)
	return &job, nil
}

// postProcessJob normalizes enums, dedupes skills, derives keywords when the
// model omitted them, and stamps metadata.
func postProcessJob(job *types.ParsedJob, text string) {
	job.Normalize()
	job.Skills = DedupeJobSkills(job.Skills)

	if len(job.Keywords) == 0 {
		for _, s := range job.Skills {
			job.Keywords = append(job.Keywords, s.Name)
		}
	}

	seen := make(map[string]bool, len(job.Keywords))
	keywords := job.Keywords[:0]
	for _, kw := range job.Keywords {
		key := NormalizeKeyword(kw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, kw)
	}
	job.Keywords = keywords

	job.Metadata = types.ParseMetadata{
		ParsedAt:      time.Now().UTC(),
		WordCount:     ingestion.WordCount(text),
		ParsingMethod: types.MethodAIEnhanced,
	}
}
