package similarity

import (
	"strings"

	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/vocabulary/behavior"
)

// Contextual component weights; they sum to 1.0.
const (
	ctxCategoryWeight = 0.35
	ctxImpactWeight   = 0.25
	ctxEnvWeight      = 0.10
	ctxUserWeight     = 0.10
	ctxDataWeight     = 0.10
	ctxPriorityWeight = 0.10
)

// ContextScore compares the derived workflow category and business
// impact of two scenarios, plus environment, user-context, data-shape,
// and priority indicators extracted from their free text. Each component
// grants its weight when the two indicator sets are equal; two empty
// sets count as equal.
func ContextScore(a, b *scenario.Scenario) float64 {
	ta, tb := a.Text(), b.Text()

	var score float64
	if a.WorkflowCategory == b.WorkflowCategory {
		score += ctxCategoryWeight
	}
	if a.BusinessImpact == b.BusinessImpact {
		score += ctxImpactWeight
	}
	if indicatorsEqual(ta, tb, behavior.EnvironmentIndicators) {
		score += ctxEnvWeight
	}
	if indicatorsEqual(ta, tb, behavior.UserContextIndicators) {
		score += ctxUserWeight
	}
	if indicatorsEqual(ta, tb, behavior.DataShapeIndicators) {
		score += ctxDataWeight
	}
	if indicatorsEqual(ta, tb, behavior.PriorityKeywords) {
		score += ctxPriorityWeight
	}
	return score
}

// indicatorsEqual reports whether both texts contain exactly the same
// subset of the given indicator keywords.
func indicatorsEqual(a, b string, keywords []string) bool {
	sa := indicatorSet(a, keywords)
	sb := indicatorSet(b, keywords)
	if len(sa) != len(sb) {
		return false
	}
	for k := range sa {
		if !sb[k] {
			return false
		}
	}
	return true
}

func indicatorSet(text string, keywords []string) map[string]bool {
	lower := strings.ToLower(text)
	s := make(map[string]bool)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			s[kw] = true
		}
	}
	return s
}
