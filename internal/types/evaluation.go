//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Evaluation score bounds. Category maxima sum to 100; the bonus cap and the
// final clamp bound the result to [-20, 120].
const (
	MaxOpenSourceScore      = 35.0
	MaxSelfProjectsScore    = 30.0
	MaxProductionScore      = 25.0
	MaxTechnicalSkillsScore = 10.0

	MaxBonusPoints = 20.0
	MaxDeductions  = 20.0
	MinFinalScore  = -20.0
	MaxFinalScore  = 120.0
)

// Category identifies one of the four mandatory scoring categories.
type Category string

// The four scoring categories, in rubric order.
const (
	CategoryOpenSource      Category = "open_source"
	CategorySelfProjects    Category = "self_projects"
	CategoryProduction      Category = "production"
	CategoryTechnicalSkills Category = "technical_skills"
)

// Categories lists all scoring categories in rubric order.
func Categories() []Category {
	return []Category{CategoryOpenSource, CategorySelfProjects, CategoryProduction, CategoryTechnicalSkills}
}

// CategoryMax returns the fixed maximum for a category, or 0 for an unknown one.
func CategoryMax(c Category) float64 {
	switch c {
	case CategoryOpenSource:
		return MaxOpenSourceScore
	case CategorySelfProjects:
		return MaxSelfProjectsScore
	case CategoryProduction:
		return MaxProductionScore
	case CategoryTechnicalSkills:
		return MaxTechnicalSkillsScore
	}
	return 0
}

// CategoryScore is one category sub-score with supporting evidence.
// Invariant after the rule-enforcement pass: 0 <= Score <= Max.
type CategoryScore struct {
	Score    float64 `json:"score" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gt=0"`
	Evidence string  `json:"evidence"`
}

// Bonus is additional credit outside the category maxima, capped at 20.
type Bonus struct {
	Total     float64 `json:"total" validate:"gte=0,lte=20"`
	Breakdown string  `json:"breakdown,omitempty"`
}

// Deductions subtract from the final score.
type Deductions struct {
	Total   float64 `json:"total" validate:"gte=0"`
	Reasons string  `json:"reasons,omitempty"`
}

// Evaluation is the terminal scoring artifact for one candidate. It is
// created once per evaluation call and never mutated afterward.
type Evaluation struct {
	CandidateName       string                     `json:"candidate_name" validate:"required"`
	Scores              map[Category]CategoryScore `json:"scores" validate:"len=4,dive"`
	Bonus               Bonus                      `json:"bonus"`
	Deductions          Deductions                 `json:"deductions"`
	KeyStrengths        []string                   `json:"key_strengths" validate:"min=1,max=5"`
	AreasForImprovement []string                   `json:"areas_for_improvement" validate:"min=1,max=3"`
	ScoringExplanation  string                     `json:"scoring_explanation,omitempty"`
	FinalScore          float64                    `json:"final_score" validate:"gte=-20,lte=120"`
}

// TotalCategoryScore sums the four category sub-scores.
func (e *Evaluation) TotalCategoryScore() float64 {
	var total float64
	for _, c := range Categories() {
		total += e.Scores[c].Score
	}
	return total
}

// RankEvaluations orders evaluations by final score descending. The input
// slice is not modified.
func RankEvaluations(evals []*Evaluation) []*Evaluation {
	ranked := make([]*Evaluation, len(evals))
	copy(ranked, evals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}
