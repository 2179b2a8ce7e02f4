package evaluate

import (
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

// personalOnlyMarkers are evidence phrases meaning the open-source score is
// supported only by the candidate's own repositories. Matching is
// case-insensitive on the evidence text.
var personalOnlyMarkers = []string{
	"only personal github repositories",
	"no contributions to other projects",
	"no evidence of significant open source contributions",
	"only personal projects",
}

// personalOnlyCap is the highest open-source score personal-only evidence
// can support.
const personalOnlyCap = 10.0

// personalOnlyDisclosure is appended to the evidence string whenever the
// cap fires.
const personalOnlyDisclosure = " (Score capped at 10 due to only personal repositories)"

func hasPersonalOnlyMarker(evidence string) bool {
	lowered := strings.ToLower(evidence)
	for _, marker := range personalOnlyMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// EnforceRules applies the deterministic scoring overrides after parsing.
// Every category score is clamped to [0, max], and an open-source score
// backed only by personal-repository evidence is capped at 10 with a
// disclosure appended. The input map is modified in place and returned.
func EnforceRules(scores map[types.Category]types.CategoryScore) map[types.Category]types.CategoryScore {
	for _, category := range types.Categories() {
		entry, ok := scores[category]
		if !ok {
			continue
		}

		entry.Max = types.CategoryMax(category)
		if entry.Score < 0 {
			entry.Score = 0
		}
		if entry.Score > entry.Max {
			entry.Score = entry.Max
		}

		if category == types.CategoryOpenSource &&
			entry.Score > personalOnlyCap && hasPersonalOnlyMarker(entry.Evidence) {
			entry.Score = personalOnlyCap
			entry.Evidence += personalOnlyDisclosure
		}

		scores[category] = entry
	}
	return scores
}

// ClampBonus bounds the bonus total to [0, 20].
func ClampBonus(bonus types.Bonus) types.Bonus {
	if bonus.Total < 0 {
		bonus.Total = 0
	}
	if bonus.Total > types.MaxBonusPoints {
		bonus.Total = types.MaxBonusPoints
	}
	return bonus
}

// ClampDeductions bounds the deduction total to [0, 20].
func ClampDeductions(deductions types.Deductions) types.Deductions {
	if deductions.Total < 0 {
		deductions.Total = 0
	}
	if deductions.Total > types.MaxDeductions {
		deductions.Total = types.MaxDeductions
	}
	return deductions
}

// ClampFinalScore bounds a final score to [-20, 120].
func ClampFinalScore(score float64) float64 {
	if score < types.MinFinalScore {
		return types.MinFinalScore
	}
	if score > types.MaxFinalScore {
		return types.MaxFinalScore
	}
	return score
}
