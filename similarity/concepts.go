package similarity

import (
	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/vocabulary/behavior"
)

// Concept match tiers.
const (
	conceptExact   = 1.0
	conceptSynonym = 0.9
	conceptPartial = 0.6
)

// ConceptScore compares the typed business concepts extracted from two
// scenarios. Each concept in the larger set is paired with its best
// same-kind counterpart using exact, synonym, and partial-string tiers;
// the result is averaged over the larger set. When either scenario
// yields no concepts the score is 0.0: absence of business language is
// no evidence of equivalence.
func ConceptScore(a, b *scenario.Scenario) float64 {
	ca := behavior.ExtractConcepts(a.Text())
	cb := behavior.ExtractConcepts(b.Text())
	if len(ca) == 0 || len(cb) == 0 {
		return 0.0
	}

	from, to := ca, cb
	if len(cb) > len(ca) {
		from, to = cb, ca
	}

	var sum float64
	for _, c := range from {
		sum += bestConceptMatch(c, to)
	}
	return sum / float64(len(from))
}

// bestConceptMatch finds the highest-tier match for a concept among
// candidates of the same kind.
func bestConceptMatch(c behavior.Concept, candidates []behavior.Concept) float64 {
	best := 0.0
	for _, other := range candidates {
		if other.Kind != c.Kind {
			continue
		}
		switch {
		case other.Word == c.Word:
			return conceptExact
		case behavior.Synonymous(c.Word, other.Word):
			if best < conceptSynonym {
				best = conceptSynonym
			}
		case partialMatch(c.Word, other.Word):
			if best < conceptPartial {
				best = conceptPartial
			}
		}
	}
	return best
}
