// Package pipeline wires ingestion, extraction, enrichment, and evaluation
// into one end-to-end resume scoring run.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/evaluate"
	"github.com/jonathan/hiring-agent/internal/extract"
	"github.com/jonathan/hiring-agent/internal/ingest"
	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/types"
)

// Enricher fetches code-hosting evidence for a profile URL. *github.Enricher
// is the production implementation.
type Enricher interface {
	Enrich(ctx context.Context, profileURL string) (*types.Enrichment, error)
}

// Result is the output of one full pipeline run.
type Result struct {
	Record     *types.CandidateRecord `json:"record"`
	Enrichment *types.Enrichment      `json:"enrichment,omitempty"`
	Evaluation *types.Evaluation      `json:"evaluation"`
}

// Pipeline runs resume uploads end to end: text extraction, section
// assembly, optional GitHub enrichment, and rubric scoring.
type Pipeline struct {
	assembler *extract.Assembler
	enricher  Enricher
	evaluator *evaluate.Evaluator
	log       *zap.Logger
}

// New builds a pipeline. The enricher may be nil, which disables
// code-hosting enrichment entirely.
func New(client llm.Client, enricher Enricher, log *zap.Logger) *Pipeline {
	return &Pipeline{
		assembler: extract.NewAssembler(client, log),
		enricher:  enricher,
		evaluator: evaluate.NewEvaluator(client, log),
		log:       log,
	}
}

// Run scores one uploaded resume file. Enrichment failures degrade to a
// resume-only evaluation; a missing GitHub profile skips enrichment. The
// returned error is non-nil only for unreadable input or an evaluation
// that violates the output schema.
func (p *Pipeline) Run(ctx context.Context, filename string, content []byte) (*Result, error) {
	text, err := ingest.ExtractText(filename, content)
	if err != nil {
		return nil, err
	}
	return p.RunText(ctx, text)
}

// RunText scores resume text that has already been extracted.
func (p *Pipeline) RunText(ctx context.Context, resumeText string) (*Result, error) {
	record := p.assembler.Assemble(ctx, resumeText)

	var enrichment *types.Enrichment
	if p.enricher != nil {
		if profile := record.FindProfile("GitHub"); profile != nil && profile.URL != "" {
			var err error
			enrichment, err = p.enricher.Enrich(ctx, profile.URL)
			if err != nil {
				p.log.Warn("enrichment failed, scoring resume only",
					zap.String("profile_url", profile.URL), zap.Error(err))
				enrichment = nil
			}
		}
	}

	return p.finish(ctx, record, enrichment)
}

func (p *Pipeline) finish(ctx context.Context, record *types.CandidateRecord, enrichment *types.Enrichment) (*Result, error) {
	evaluation, err := p.evaluator.Evaluate(ctx, record, enrichment)
	if err != nil {
		return nil, err
	}
	return &Result{Record: record, Enrichment: enrichment, Evaluation: evaluation}, nil
}
