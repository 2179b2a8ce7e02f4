package evaluate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/types"
)

type fakeScorer struct {
	response string
	err      error
	prompt   string
	system   string
}

func (f *fakeScorer) Generate(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
	f.system = system
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeScorer) Close() error { return nil }

const wellFormedReply = `{
	"candidate_name": "Jane Doe",
	"scores": {
		"open_source": {"score": 22, "max": 35, "evidence": "Merged PRs in kubernetes"},
		"self_projects": {"score": 18, "max": 30, "evidence": "Several substantial repos"},
		"production": {"score": 12, "max": 25, "evidence": "Two years at Acme"},
		"technical_skills": {"score": 8, "max": 10, "evidence": "Go, Python, SQL"}
	},
	"bonus": {"total": 10, "breakdown": "GSoC participant"},
	"deductions": {"total": 5, "reasons": "Inflated titles"},
	"key_strengths": ["Deep Kubernetes contributions"],
	"areas_for_improvement": ["More production scale"]
}`

func TestEvaluateDocumentWellFormed(t *testing.T) {
	scorer := &fakeScorer{response: wellFormedReply}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	evaluation, err := evaluator.EvaluateDocument(context.Background(), "Jane Doe\nresume body")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", evaluation.CandidateName)
	assert.Equal(t, 22.0, evaluation.Scores[types.CategoryOpenSource].Score)
	assert.Equal(t, 60.0, evaluation.TotalCategoryScore())
	// 60 + 10 - 5.
	assert.Equal(t, 65.0, evaluation.FinalScore)
	assert.Equal(t, []string{"Deep Kubernetes contributions"}, evaluation.KeyStrengths)
	assert.Contains(t, evaluation.ScoringExplanation, "Base Score: 60/100")
	assert.Contains(t, evaluation.ScoringExplanation, "Final Score: 60 + 10 - 5 = 65")

	assert.Contains(t, scorer.prompt, "resume body")
	assert.NotEmpty(t, scorer.system)
}

func TestEvaluateDocumentAppliesPersonalOnlyCap(t *testing.T) {
	scorer := &fakeScorer{response: `{
		"candidate_name": "Jane Doe",
		"scores": {
			"open_source": {"score": 30, "max": 35, "evidence": "Only personal GitHub repositories"},
			"self_projects": {"score": 10, "max": 30, "evidence": "ok"},
			"production": {"score": 10, "max": 25, "evidence": "ok"},
			"technical_skills": {"score": 5, "max": 10, "evidence": "ok"}
		},
		"bonus": {"total": 0, "breakdown": ""},
		"deductions": {"total": 0, "reasons": ""},
		"key_strengths": ["x"],
		"areas_for_improvement": ["y"]
	}`}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	evaluation, err := evaluator.EvaluateDocument(context.Background(), "doc")
	require.NoError(t, err)

	openSource := evaluation.Scores[types.CategoryOpenSource]
	assert.Equal(t, 10.0, openSource.Score)
	assert.Contains(t, openSource.Evidence, "(Score capped at 10 due to only personal repositories)")
	// Final score reflects the capped value: 10 + 10 + 10 + 5.
	assert.Equal(t, 35.0, evaluation.FinalScore)
}

func TestEvaluateDocumentFallbackOnEngineFailure(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("connection refused")}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	doc := "=== BASIC INFORMATION ===\nName: Ravi Kumar\nEmail: ravi@example.com"
	evaluation, err := evaluator.EvaluateDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", evaluation.CandidateName)
	for _, category := range types.Categories() {
		entry := evaluation.Scores[category]
		assert.Zero(t, entry.Score)
		assert.Equal(t, types.CategoryMax(category), entry.Max)
		assert.Equal(t, "No data available", entry.Evidence)
	}
	assert.Equal(t, 0.0, evaluation.FinalScore)
	assert.Equal(t, []string{"Shows interest in software development"}, evaluation.KeyStrengths)
	assert.NotEmpty(t, evaluation.AreasForImprovement)
}

func TestEvaluateDocumentFallbackOnMalformedReply(t *testing.T) {
	scorer := &fakeScorer{response: "I am unable to score this resume."}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	evaluation, err := evaluator.EvaluateDocument(context.Background(), "Priya Sharma\nStudent at NIT")
	require.NoError(t, err)

	assert.Equal(t, "Priya Sharma", evaluation.CandidateName)
	assert.Equal(t, 0.0, evaluation.TotalCategoryScore())
}

func TestEvaluateDocumentRemapsAliasCategories(t *testing.T) {
	scorer := &fakeScorer{response: `{
		"candidate_name": "Jane Doe",
		"scores": {
			"open_source": {"score": 5, "max": 35, "evidence": "few PRs"},
			"backend": {"score": 14, "max": 25, "evidence": "API work"},
			"production": {"score": 9, "max": 25, "evidence": "deploys"},
			"frontend": {"score": 12, "max": 30, "evidence": "UI projects"},
			"technical_skills": {"score": 6, "max": 10, "evidence": "ok"}
		},
		"bonus": {"total": 0, "breakdown": ""},
		"deductions": {"total": 0, "reasons": ""},
		"key_strengths": ["x"],
		"areas_for_improvement": ["y"]
	}`}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	evaluation, err := evaluator.EvaluateDocument(context.Background(), "doc")
	require.NoError(t, err)

	// backend and production both map to production; the max wins.
	assert.Equal(t, 14.0, evaluation.Scores[types.CategoryProduction].Score)
	assert.Equal(t, 12.0, evaluation.Scores[types.CategorySelfProjects].Score)
}

func TestEvaluateDocumentClampsOutOfRangeTotals(t *testing.T) {
	scorer := &fakeScorer{response: `{
		"candidate_name": "Max Out",
		"scores": {
			"open_source": {"score": 90, "max": 35, "evidence": "impossible"},
			"self_projects": {"score": 80, "max": 30, "evidence": "impossible"},
			"production": {"score": 70, "max": 25, "evidence": "impossible"},
			"technical_skills": {"score": 60, "max": 10, "evidence": "impossible"}
		},
		"bonus": {"total": 99, "breakdown": "too generous"},
		"deductions": {"total": -4, "reasons": ""},
		"key_strengths": ["x"],
		"areas_for_improvement": ["y"]
	}`}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	evaluation, err := evaluator.EvaluateDocument(context.Background(), "doc")
	require.NoError(t, err)

	assert.Equal(t, 100.0, evaluation.TotalCategoryScore())
	assert.Equal(t, 20.0, evaluation.Bonus.Total)
	assert.Equal(t, 0.0, evaluation.Deductions.Total)
	assert.Equal(t, 120.0, evaluation.FinalScore)
}

func TestEvaluateDocumentDerivesPlaceholderLists(t *testing.T) {
	scorer := &fakeScorer{response: `{
		"candidate_name": "Jane Doe",
		"scores": {
			"open_source": {"score": 22, "max": 35, "evidence": "merged PRs"},
			"self_projects": {"score": 12, "max": 30, "evidence": "ok"},
			"production": {"score": 16, "max": 25, "evidence": "ok"},
			"technical_skills": {"score": 8, "max": 10, "evidence": "ok"}
		},
		"bonus": {"total": 0, "breakdown": ""},
		"deductions": {"total": 0, "reasons": ""},
		"key_strengths": ["N/A"],
		"areas_for_improvement": []
	}`}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	evaluation, err := evaluator.EvaluateDocument(context.Background(), "doc")
	require.NoError(t, err)

	assert.Contains(t, evaluation.KeyStrengths, "Strong open source contributions with significant impact")
	assert.NotEmpty(t, evaluation.AreasForImprovement)
}

func TestInferCandidateName(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"name field", "=== BASIC INFORMATION ===\nName: Asha Patel", "Asha Patel"},
		{"name field not provided", "Name: Not provided\nAsha Patel\nlong paragraph of text", "Asha Patel"},
		{"plain heading", "Asha Patel\nSoftware Engineer", "Asha Patel"},
		{"skips lowercase lines", "some preamble text here\nAsha Patel", "Asha Patel"},
		{"empty document", "", "Unknown Candidate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCandidateName(tt.doc))
		})
	}
}

func TestEvaluateBuildsDocumentFromRecord(t *testing.T) {
	scorer := &fakeScorer{response: wellFormedReply}
	evaluator := NewEvaluator(scorer, zap.NewNop())

	_, err := evaluator.Evaluate(context.Background(), sampleRecord(), nil)
	require.NoError(t, err)
	assert.Contains(t, scorer.prompt, "=== WORK EXPERIENCE ===")
	assert.Contains(t, scorer.prompt, "Jane Doe")
}
