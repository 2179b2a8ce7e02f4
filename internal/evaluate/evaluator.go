// Package evaluate scores a merged candidate record against a fixed
// four-category rubric. The scoring engine's JSON output is repaired,
// reconciled against the rubric shape, and post-processed with
// deterministic rule overrides so the result is always bounded and valid.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/normalize"
	"github.com/jonathan/hiring-agent/internal/prompts"
	"github.com/jonathan/hiring-agent/internal/schemas"
	"github.com/jonathan/hiring-agent/internal/types"
)

const promptFile = "evaluation.json"

// defaultEvidence fills a category the engine did not score.
const defaultEvidence = "No data available"

// categoryAliases remaps category names the engine invents to the rubric's
// fixed four. Keys are normalized to lowercase with underscores.
var categoryAliases = map[string]types.Category{
	"open_source":       types.CategoryOpenSource,
	"opensource":        types.CategoryOpenSource,
	"open_src":          types.CategoryOpenSource,
	"self_projects":     types.CategorySelfProjects,
	"personal_projects": types.CategorySelfProjects,
	"projects":          types.CategorySelfProjects,
	"frontend":          types.CategorySelfProjects,
	"production":        types.CategoryProduction,
	"work_experience":   types.CategoryProduction,
	"backend":           types.CategoryProduction,
	"technical_skills":  types.CategoryTechnicalSkills,
	"skills":            types.CategoryTechnicalSkills,
}

// rawEvaluation is the wire shape of the scoring engine's reply.
type rawEvaluation struct {
	CandidateName       string                         `json:"candidate_name"`
	Scores              map[string]types.CategoryScore `json:"scores"`
	Bonus               types.Bonus                    `json:"bonus"`
	Deductions          types.Deductions               `json:"deductions"`
	KeyStrengths        []string                       `json:"key_strengths"`
	AreasForImprovement []string                       `json:"areas_for_improvement"`
}

// Evaluator runs the scoring rubric over candidate documents.
type Evaluator struct {
	client llm.Client
	opts   llm.Options
	log    *zap.Logger
}

// NewEvaluator creates an evaluator using the default generation options.
func NewEvaluator(client llm.Client, log *zap.Logger) *Evaluator {
	return &Evaluator{client: client, opts: llm.DefaultOptions(), log: log}
}

// Evaluate scores a candidate record with optional code-hosting enrichment.
func (e *Evaluator) Evaluate(ctx context.Context, record *types.CandidateRecord, enrichment *types.Enrichment) (*types.Evaluation, error) {
	return e.EvaluateDocument(ctx, BuildDocument(record, enrichment))
}

// EvaluateDocument scores an already-flattened narrative document. Engine
// failures and malformed replies degrade to the field-completion fallback;
// the only hard failure is a result that violates the output schema.
func (e *Evaluator) EvaluateDocument(ctx context.Context, document string) (*types.Evaluation, error) {
	raw := e.requestScores(ctx, document)

	scores := reconcileScores(raw.Scores)
	scores = EnforceRules(scores)

	name := strings.TrimSpace(raw.CandidateName)
	if name == "" {
		name = inferCandidateName(document)
	}

	bonus := ClampBonus(raw.Bonus)
	deductions := ClampDeductions(raw.Deductions)

	strengths := raw.KeyStrengths
	if isPlaceholderList(strengths) {
		strengths = DeriveStrengths(scores)
	} else if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}

	improvements := raw.AreasForImprovement
	if isPlaceholderList(improvements) {
		improvements = DeriveImprovements(scores)
	} else if len(improvements) > maxImprovements {
		improvements = improvements[:maxImprovements]
	}

	evaluation := &types.Evaluation{
		CandidateName:       name,
		Scores:              scores,
		Bonus:               bonus,
		Deductions:          deductions,
		KeyStrengths:        strengths,
		AreasForImprovement: improvements,
	}

	total := evaluation.TotalCategoryScore()
	evaluation.FinalScore = ClampFinalScore(total + bonus.Total - deductions.Total)
	evaluation.ScoringExplanation = scoringExplanation(evaluation, total)

	if err := schemas.ValidateEvaluation(evaluation); err != nil {
		return nil, fmt.Errorf("evaluation failed validation: %w", err)
	}
	return evaluation, nil
}

// requestScores runs the rubric prompt and parses the reply. Any failure
// returns an empty rawEvaluation so the field-completion fallback builds a
// zero-scored result instead of aborting the pipeline.
func (e *Evaluator) requestScores(ctx context.Context, document string) rawEvaluation {
	var raw rawEvaluation

	system, err := prompts.Get(promptFile, "scoring_system")
	if err != nil {
		e.log.Warn("scoring system prompt missing", zap.Error(err))
		return raw
	}
	criteria, err := prompts.Get(promptFile, "scoring_criteria")
	if err != nil {
		e.log.Warn("scoring criteria prompt missing", zap.Error(err))
		return raw
	}
	structure, err := prompts.Get(promptFile, "scoring_structure")
	if err != nil {
		e.log.Warn("scoring structure prompt missing", zap.Error(err))
		return raw
	}

	prompt := criteria + "\n\n" + prompts.Format(structure, map[string]string{"Document": document})

	response, err := e.client.Generate(ctx, system, prompt, e.opts)
	if err != nil {
		e.log.Warn("scoring call failed, building fallback evaluation", zap.Error(err))
		return raw
	}

	if err := json.Unmarshal([]byte(normalize.RepairJSON(response)), &raw); err != nil {
		e.log.Warn("scoring reply is not valid JSON, building fallback evaluation", zap.Error(err))
		return rawEvaluation{}
	}
	return raw
}

// reconcileScores maps whatever category names the engine returned onto the
// four rubric categories. Aliases are remapped, duplicate signals merge by
// taking the maximum, and missing categories default to a zero score.
func reconcileScores(raw map[string]types.CategoryScore) map[types.Category]types.CategoryScore {
	scores := make(map[types.Category]types.CategoryScore, 4)

	for name, entry := range raw {
		category, ok := categoryAliases[normalizeCategoryName(name)]
		if !ok {
			continue
		}
		max := types.CategoryMax(category)
		if entry.Score > max {
			entry.Score = max
		}
		if existing, dup := scores[category]; dup {
			if existing.Score >= entry.Score {
				continue
			}
		}
		entry.Max = max
		scores[category] = entry
	}

	for _, category := range types.Categories() {
		if _, ok := scores[category]; !ok {
			scores[category] = types.CategoryScore{
				Score:    0,
				Max:      types.CategoryMax(category),
				Evidence: defaultEvidence,
			}
		}
	}
	return scores
}

func normalizeCategoryName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// inferCandidateName scans the document for the first short, capitalized
// line, preferring an explicit name field when present.
func inferCandidateName(document string) string {
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "===") {
			continue
		}
		if value, ok := strings.CutPrefix(line, "Name: "); ok {
			if value != "" && value != "Not provided" {
				return value
			}
			continue
		}
		if len(line) <= 60 && len(strings.Fields(line)) <= 5 && startsUpper(line) {
			return line
		}
	}
	return "Unknown Candidate"
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// isPlaceholderList reports whether the engine's list output carries no
// real content and must be replaced by derivation.
func isPlaceholderList(items []string) bool {
	for _, item := range items {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "", "n/a", "none", "no data available", "not provided":
		default:
			return false
		}
	}
	return true
}

func fmtScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// scoringExplanation renders the arithmetic behind the final score.
func scoringExplanation(e *types.Evaluation, total float64) string {
	lines := []string{
		fmt.Sprintf("Base Score: %s/100", fmtScore(total)),
		fmt.Sprintf("  - Open Source: %s/35", fmtScore(e.Scores[types.CategoryOpenSource].Score)),
		fmt.Sprintf("  - Self Projects: %s/30", fmtScore(e.Scores[types.CategorySelfProjects].Score)),
		fmt.Sprintf("  - Production: %s/25", fmtScore(e.Scores[types.CategoryProduction].Score)),
		fmt.Sprintf("  - Technical Skills: %s/10", fmtScore(e.Scores[types.CategoryTechnicalSkills].Score)),
	}

	if e.Bonus.Total > 0 {
		lines = append(lines, "Bonus Points: +"+fmtScore(e.Bonus.Total))
		if e.Bonus.Breakdown != "" {
			lines = append(lines, "  - "+e.Bonus.Breakdown)
		}
	} else {
		lines = append(lines, "Bonus Points: +0")
	}

	if e.Deductions.Total > 0 {
		lines = append(lines, "Deductions: -"+fmtScore(e.Deductions.Total))
		if e.Deductions.Reasons != "" {
			lines = append(lines, "  - "+e.Deductions.Reasons)
		}
	} else {
		lines = append(lines, "Deductions: -0")
	}

	lines = append(lines, fmt.Sprintf("Final Score: %s + %s - %s = %s",
		fmtScore(total), fmtScore(e.Bonus.Total), fmtScore(e.Deductions.Total), fmtScore(e.FinalScore)))

	return strings.Join(lines, "\n")
}
