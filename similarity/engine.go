// Package similarity scores how alike two behavior scenarios are.
//
// The engine combines six independent, bounded sub-scores (lexical
// title, business concepts, functional flow, context, domain state, and
// data variation) under an adaptive weight profile selected by an
// explicit rule table. Scoring is pure and deterministic: the same pair
// always yields the same score, and a scenario always scores 1.0 against
// itself.
package similarity

import (
	"strings"

	"github.com/c360studio/speccover/scenario"
)

// maxConfidenceBoost caps the convergent-evidence bonus.
const maxConfidenceBoost = 0.15

// Engine computes composite similarity scores between scenarios.
type Engine struct{}

// NewEngine creates a similarity engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Breakdown reports each sub-score and the weighting decision behind a
// composite score. Useful for diagnostics and for auditing the rule
// table; never required by callers that only need the score.
type Breakdown struct {
	Lexical     float64 `json:"lexical"`
	Concept     float64 `json:"concept"`
	Flow        float64 `json:"flow"`
	Context     float64 `json:"context"`
	DomainState float64 `json:"domain_state"`
	Variation   float64 `json:"variation"`
	Profile     string  `json:"profile"`
	Boost       float64 `json:"boost"`
}

// Score returns the composite similarity of two scenarios in [0,1].
func (e *Engine) Score(a, b *scenario.Scenario) float64 {
	score, _ := e.ScoreDetail(a, b)
	return score
}

// ScoreDetail returns the composite similarity along with its breakdown.
func (e *Engine) ScoreDetail(a, b *scenario.Scenario) (float64, Breakdown) {
	if identical(a, b) {
		return 1.0, Breakdown{
			Lexical: 1, Concept: 1, Flow: 1, Context: 1, DomainState: 1, Variation: 1,
			Profile: "identical",
		}
	}

	bd := Breakdown{
		Lexical:     TitleScore(a.Title, b.Title),
		Concept:     ConceptScore(a, b),
		Flow:        FlowScore(a.Steps, b.Steps),
		Context:     ContextScore(a, b),
		DomainState: DomainStateScore(a.Text(), b.Text()),
		Variation:   VariationScore(a, b),
	}

	// With no shared content at all, neutral sub-scores must not rescue
	// the pair: disjoint scenarios score exactly zero.
	if noSharedEvidence(a, b, bd) {
		bd.Profile = "disjoint"
		return 0.0, bd
	}

	sig := detectSignals(a, b)
	name, w := selectProfile(sig)
	bd.Profile = name

	total := w.Lexical*bd.Lexical +
		w.Concept*bd.Concept +
		w.Flow*bd.Flow +
		w.Context*bd.Context +
		w.DomainState*bd.DomainState +
		w.Variation*bd.Variation

	bd.Boost = confidenceBoost(a, b, bd)
	total += bd.Boost

	// A normalized-title match is a floor regardless of step content.
	if a.Title != "" && normalizeTitle(a.Title) == normalizeTitle(b.Title) && total < bd.Lexical {
		total = bd.Lexical
	}

	if total > 1.0 {
		total = 1.0
	}
	if total < 0.0 {
		total = 0.0
	}
	return total, bd
}

// QuickScore is the engine's fast path for large-set matching: exact
// title, normalized title, token overlap, and a domain-state keyword
// adjustment only. It agrees with the full engine on the obvious cases:
// identical titles score 1.0 and fully disjoint content scores 0.0.
func (e *Engine) QuickScore(a, b *scenario.Scenario) float64 {
	if a.Title != "" && a.Title == b.Title {
		return 1.0
	}
	score := TitleScore(a.Title, b.Title)

	ds := DomainStateScore(a.Text(), b.Text())
	switch {
	case ds == domainStateOpposed:
		score *= 0.5
	case ds == domainStateMatched:
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// identical reports whether two scenarios have the same title and the
// same step sequence.
func identical(a, b *scenario.Scenario) bool {
	if a == b {
		return true
	}
	if a.Title != b.Title || len(a.Steps) != len(b.Steps) {
		return false
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] {
			return false
		}
	}
	return true
}

// noSharedEvidence reports whether a pair shares no tokens, no concepts,
// and no domain-state or data-variation signals.
func noSharedEvidence(a, b *scenario.Scenario, bd Breakdown) bool {
	if bd.Lexical > 0 || bd.Concept > 0 {
		return false
	}
	if TokenOverlapScore(strings.Join(a.Steps, " "), strings.Join(b.Steps, " ")) > 0 {
		return false
	}
	if DetectDomainState(a.Text()) || DetectDomainState(b.Text()) {
		return false
	}
	if HasVariations(a.Text()) || HasVariations(b.Text()) {
		return false
	}
	return true
}

// confidenceBoost rewards convergent evidence: several sub-scores
// independently high, exact category and impact agreement, and
// near-equal step counts. Capped so no single heuristic dominates.
func confidenceBoost(a, b *scenario.Scenario, bd Breakdown) float64 {
	var boost float64

	high := 0
	for _, s := range []float64{bd.Lexical, bd.Concept, bd.Flow, bd.Context, bd.DomainState, bd.Variation} {
		if s > 0.8 {
			high++
		}
	}
	if high >= 3 {
		boost += 0.07
	}

	if a.WorkflowCategory == b.WorkflowCategory && a.BusinessImpact == b.BusinessImpact {
		boost += 0.05
	}

	diff := len(a.Steps) - len(b.Steps)
	if diff < 0 {
		diff = -diff
	}
	if len(a.Steps) > 0 && len(b.Steps) > 0 && diff <= 1 {
		boost += 0.03
	}

	if boost > maxConfidenceBoost {
		boost = maxConfidenceBoost
	}
	return boost
}
