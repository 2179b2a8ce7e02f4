package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/hiring-agent/internal/types"
)

func scoresWith(openSource types.CategoryScore) map[types.Category]types.CategoryScore {
	return map[types.Category]types.CategoryScore{
		types.CategoryOpenSource:      openSource,
		types.CategorySelfProjects:    {Score: 10, Max: 30, Evidence: "ok"},
		types.CategoryProduction:      {Score: 10, Max: 25, Evidence: "ok"},
		types.CategoryTechnicalSkills: {Score: 5, Max: 10, Evidence: "ok"},
	}
}

func TestEnforceRulesCapsPersonalOnlyOpenSource(t *testing.T) {
	scores := scoresWith(types.CategoryScore{
		Score:    25,
		Max:      35,
		Evidence: "Candidate has ONLY personal GitHub repositories with no merged PRs",
	})

	EnforceRules(scores)

	got := scores[types.CategoryOpenSource]
	assert.Equal(t, 10.0, got.Score)
	assert.Contains(t, got.Evidence, "(Score capped at 10 due to only personal repositories)")
}

func TestEnforceRulesLeavesLowScoresAlone(t *testing.T) {
	scores := scoresWith(types.CategoryScore{
		Score:    8,
		Max:      35,
		Evidence: "only personal projects",
	})

	EnforceRules(scores)

	got := scores[types.CategoryOpenSource]
	assert.Equal(t, 8.0, got.Score)
	assert.NotContains(t, got.Evidence, "capped")
}

func TestEnforceRulesIgnoresGenuineContributions(t *testing.T) {
	scores := scoresWith(types.CategoryScore{
		Score:    25,
		Max:      35,
		Evidence: "Merged contributions to kubernetes and prometheus",
	})

	EnforceRules(scores)
	assert.Equal(t, 25.0, scores[types.CategoryOpenSource].Score)
}

func TestEnforceRulesClampsToBounds(t *testing.T) {
	scores := map[types.Category]types.CategoryScore{
		types.CategoryOpenSource:      {Score: 50, Max: 35, Evidence: "overshoot"},
		types.CategorySelfProjects:    {Score: -3, Max: 30, Evidence: "undershoot"},
		types.CategoryProduction:      {Score: 25, Max: 99, Evidence: "wrong max"},
		types.CategoryTechnicalSkills: {Score: 10, Max: 10, Evidence: "exact"},
	}

	EnforceRules(scores)

	assert.Equal(t, 35.0, scores[types.CategoryOpenSource].Score)
	assert.Equal(t, 0.0, scores[types.CategorySelfProjects].Score)
	assert.Equal(t, 25.0, scores[types.CategoryProduction].Max)
	assert.Equal(t, 10.0, scores[types.CategoryTechnicalSkills].Score)
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 20.0, ClampBonus(types.Bonus{Total: 35}).Total)
	assert.Equal(t, 0.0, ClampBonus(types.Bonus{Total: -5}).Total)
	assert.Equal(t, 20.0, ClampDeductions(types.Deductions{Total: 50}).Total)
	assert.Equal(t, 120.0, ClampFinalScore(150))
	assert.Equal(t, -20.0, ClampFinalScore(-40))
	assert.Equal(t, 72.5, ClampFinalScore(72.5))
}
