package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/normalize"
	"github.com/jonathan/hiring-agent/internal/prompts"
	"github.com/jonathan/hiring-agent/internal/types"
)

const sectionTemplateFile = "sections.json"

// SectionExtractor produces one canonical-record fragment per call by
// driving a prompt/response round-trip against the text-generation engine.
type SectionExtractor struct {
	client llm.Client
	opts   llm.Options
	log    *zap.Logger
}

// NewSectionExtractor creates a section extractor with deterministic
// decoding parameters.
func NewSectionExtractor(client llm.Client, log *zap.Logger) *SectionExtractor {
	return &SectionExtractor{
		client: client,
		opts:   llm.DefaultOptions(),
		log:    log,
	}
}

// Extract runs one extraction round-trip for a single section and returns
// the transformed candidate-record fragment. A missing template is a
// configuration error and fails the call; an unparsable engine response
// returns (nil, nil) — the caller logs and continues, because a missing
// section is not fatal to the record.
func (e *SectionExtractor) Extract(ctx context.Context, resumeText string, section Section) (*types.CandidateRecord, error) {
	if section == "" {
		return nil, fmt.Errorf("empty section identifier")
	}

	tmpl, err := prompts.Get(sectionTemplateFile, string(section))
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", section, err)
	}
	system, err := prompts.Get(sectionTemplateFile, "section_system")
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", section, err)
	}

	prompt := prompts.Format(tmpl, map[string]string{"ResumeText": resumeText})

	response, err := e.client.Generate(ctx, system, prompt, e.opts)
	if err != nil {
		e.log.Warn("section extraction call failed",
			zap.String("section", string(section)),
			zap.Error(err))
		return nil, nil
	}

	repaired := normalize.RepairJSON(response)

	var raw map[string]any
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		e.log.Warn("section response is not valid JSON after repair",
			zap.String("section", string(section)),
			zap.Int("response_len", len(response)),
			zap.Error(err))
		return nil, nil
	}

	return transformSection(section, raw), nil
}
