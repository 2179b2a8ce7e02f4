package extract

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/types"
)

// Assembler orchestrates the section extractor across all section types and
// merges the fragments into one canonical candidate record.
type Assembler struct {
	extractor *SectionExtractor
	log       *zap.Logger
}

// NewAssembler creates an assembler backed by the given text-generation client.
func NewAssembler(client llm.Client, log *zap.Logger) *Assembler {
	return &Assembler{
		extractor: NewSectionExtractor(client, log),
		log:       log,
	}
}

// Assemble extracts every section of the fixed section list and merges the
// results into an initially empty record. Sections populate disjoint fields,
// so the extraction calls run in parallel and the merge is serialized.
// Failed sections are logged and skipped: a partial record is valid output,
// not an error state.
func (a *Assembler) Assemble(ctx context.Context, resumeText string) *types.CandidateRecord {
	record := &types.CandidateRecord{}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, section := range Sections() {
		g.Go(func() error {
			fragment, err := a.extractor.Extract(gctx, resumeText, section)
			if err != nil {
				// Configuration errors (missing template) are fatal for
				// the section but not for the record.
				a.log.Error("section extraction skipped",
					zap.String("section", string(section)),
					zap.Error(err))
				return nil
			}
			if fragment == nil {
				return nil
			}
			mu.Lock()
			mergeFragment(record, fragment)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return an error; they degrade to partial output.
	_ = g.Wait()

	return record
}

// mergeFragment overwrites the record's fields with the fragment's non-empty
// ones. Each section populates a disjoint field set, so last write wins is
// safe regardless of completion order.
func mergeFragment(record, fragment *types.CandidateRecord) {
	if fragment.Basics != nil {
		record.Basics = fragment.Basics
	}
	if fragment.Work != nil {
		record.Work = fragment.Work
	}
	if fragment.Volunteer != nil {
		record.Volunteer = fragment.Volunteer
	}
	if fragment.Education != nil {
		record.Education = fragment.Education
	}
	if fragment.Awards != nil {
		record.Awards = fragment.Awards
	}
	if fragment.Certificates != nil {
		record.Certificates = fragment.Certificates
	}
	if fragment.Publications != nil {
		record.Publications = fragment.Publications
	}
	if fragment.Skills != nil {
		record.Skills = fragment.Skills
	}
	if fragment.Languages != nil {
		record.Languages = fragment.Languages
	}
	if fragment.Interests != nil {
		record.Interests = fragment.Interests
	}
	if fragment.References != nil {
		record.References = fragment.References
	}
	if fragment.Projects != nil {
		record.Projects = fragment.Projects
	}
}
