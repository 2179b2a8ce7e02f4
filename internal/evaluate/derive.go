package evaluate

import (
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

// noContributionPhrases exclude a nonzero open-source score from producing
// a strength: the score exists but the evidence says the work was not
// genuine community contribution.
var noContributionPhrases = []string{
	"no evidence of significant open source contributions",
	"no demonstrable open source activity",
	"only personal github repositories",
	"no contributions to other projects",
	"lack of contributions to other projects",
}

const maxStrengths = 5
const maxImprovements = 3

// DeriveStrengths maps category scores to strength statements using fixed
// per-category thresholds. Used when the scoring engine omits the strength
// list or returns a placeholder.
func DeriveStrengths(scores map[types.Category]types.CategoryScore) []string {
	var strengths []string

	for _, category := range types.Categories() {
		entry, ok := scores[category]
		if !ok || entry.Score <= 0 {
			continue
		}
		score := entry.Score

		switch category {
		case types.CategoryOpenSource:
			lowered := strings.ToLower(entry.Evidence)
			excluded := false
			for _, phrase := range noContributionPhrases {
				if strings.Contains(lowered, phrase) {
					excluded = true
					break
				}
			}
			switch {
			case excluded:
			case score >= 20:
				strengths = append(strengths, "Strong open source contributions with significant impact")
			case score >= 15:
				strengths = append(strengths, "Active participation in open source projects")
			case score >= 12:
				strengths = append(strengths, "Some open source involvement and community contributions")
			}

		case types.CategorySelfProjects:
			switch {
			case score >= 20:
				strengths = append(strengths, "Impressive portfolio of self-initiated projects")
			case score >= 10:
				strengths = append(strengths, "Good variety of personal projects demonstrating technical skills")
			case score >= 5:
				strengths = append(strengths, "Some personal projects showing initiative")
			}

		case types.CategoryProduction:
			switch {
			case score >= 15:
				strengths = append(strengths, "Significant production experience at scale")
			case score >= 10:
				strengths = append(strengths, "Good production environment experience")
			case score >= 5:
				strengths = append(strengths, "Some production-level work experience")
			}

		case types.CategoryTechnicalSkills:
			switch {
			case score >= 7:
				strengths = append(strengths, "Strong technical skills across multiple technologies")
			case score >= 5:
				strengths = append(strengths, "Good technical breadth and problem-solving abilities")
			case score >= 3:
				strengths = append(strengths, "Demonstrated technical skills in relevant areas")
			}
		}
	}

	if len(strengths) == 0 {
		if totalScore(scores) > 0 {
			strengths = append(strengths, "Demonstrates technical capabilities and learning potential")
		} else {
			strengths = append(strengths, "Shows interest in software development")
		}
	}

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	return strengths
}

// DeriveImprovements maps score-to-max percentages to improvement
// statements. Unlike strengths, the tiers are relative, so a low score
// against a small maximum reads the same as a low score against a large one.
func DeriveImprovements(scores map[types.Category]types.CategoryScore) []string {
	var improvements []string

	for _, category := range types.Categories() {
		entry, ok := scores[category]
		if !ok || entry.Max <= 0 {
			continue
		}
		percentage := entry.Score / entry.Max * 100
		if percentage >= 70 {
			continue
		}

		switch category {
		case types.CategoryOpenSource:
			switch {
			case percentage < 30:
				improvements = append(improvements, "Significantly increase open source contributions and community engagement")
			case percentage < 50:
				improvements = append(improvements, "Build more substantial open source presence and contributions")
			default:
				improvements = append(improvements, "Enhance open source contributions and project impact")
			}

		case types.CategorySelfProjects:
			switch {
			case percentage < 30:
				improvements = append(improvements, "Develop more complex and impactful personal projects")
			case percentage < 50:
				improvements = append(improvements, "Create projects with better documentation and user adoption")
			default:
				improvements = append(improvements, "Enhance project complexity and real-world impact")
			}

		case types.CategoryProduction:
			switch {
			case percentage < 30:
				improvements = append(improvements, "Gain more production environment experience")
			case percentage < 50:
				improvements = append(improvements, "Seek opportunities for larger-scale production work")
			default:
				improvements = append(improvements, "Expand production experience and responsibilities")
			}

		case types.CategoryTechnicalSkills:
			switch {
			case percentage < 30:
				improvements = append(improvements, "Strengthen technical skills and problem-solving abilities")
			case percentage < 50:
				improvements = append(improvements, "Develop broader technical expertise")
			default:
				improvements = append(improvements, "Enhance technical depth and competitive programming skills")
			}
		}
	}

	if len(improvements) == 0 {
		if totalScore(scores) < 50 {
			improvements = append(improvements, "Focus on building a stronger technical portfolio")
		} else {
			improvements = append(improvements, "Continue developing technical skills and project impact")
		}
	}

	if len(improvements) > maxImprovements {
		improvements = improvements[:maxImprovements]
	}
	return improvements
}

func totalScore(scores map[types.Category]types.CategoryScore) float64 {
	var total float64
	for _, entry := range scores {
		total += entry.Score
	}
	return total
}
