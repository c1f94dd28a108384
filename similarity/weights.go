package similarity

import (
	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/vocabulary/behavior"
)

// Weights holds the relative weight of each sub-scorer.
type Weights struct {
	Lexical     float64
	Concept     float64
	Flow        float64
	Context     float64
	DomainState float64
	Variation   float64
}

// normalized scales the weights so they sum to 1.0.
func (w Weights) normalized() Weights {
	sum := w.Lexical + w.Concept + w.Flow + w.Context + w.DomainState + w.Variation
	if sum == 0 {
		return w
	}
	return Weights{
		Lexical:     w.Lexical / sum,
		Concept:     w.Concept / sum,
		Flow:        w.Flow / sum,
		Context:     w.Context / sum,
		DomainState: w.DomainState / sum,
		Variation:   w.Variation / sum,
	}
}

// signals summarizes the language classes detected across a scenario pair.
type signals struct {
	domainState bool
	variation   bool
	errorPath   bool
	performance bool
	security    bool
}

// detectSignals inspects both scenarios' combined text.
func detectSignals(a, b *scenario.Scenario) signals {
	text := a.Text() + "\n" + b.Text()
	return signals{
		domainState: DetectDomainState(a.Text()) || DetectDomainState(b.Text()),
		variation:   HasVariations(a.Text()) || HasVariations(b.Text()),
		errorPath:   behavior.ContainsAny(text, behavior.ErrorHandlingKeywords),
		performance: behavior.ContainsAny(text, behavior.PerformanceKeywords),
		security:    behavior.ContainsAny(text, behavior.SecurityKeywords),
	}
}

// weightRule pairs a predicate with the profile it selects. Rules are
// evaluated in declaration order; the first match wins, which makes the
// weighting decision auditable rule by rule.
type weightRule struct {
	name    string
	applies func(signals) bool
	profile Weights
}

var weightRules = []weightRule{
	{
		name:    "domain-state",
		applies: func(s signals) bool { return s.domainState },
		profile: Weights{Lexical: 0.25, Concept: 0.15, Flow: 0.15, Context: 0.10, DomainState: 0.25, Variation: 0.10},
	},
	{
		name:    "security",
		applies: func(s signals) bool { return s.security },
		profile: Weights{Lexical: 0.25, Concept: 0.30, Flow: 0.15, Context: 0.15, DomainState: 0.05, Variation: 0.10},
	},
	{
		name:    "error-handling",
		applies: func(s signals) bool { return s.errorPath },
		profile: Weights{Lexical: 0.25, Concept: 0.20, Flow: 0.30, Context: 0.10, DomainState: 0.05, Variation: 0.10},
	},
	{
		name:    "performance",
		applies: func(s signals) bool { return s.performance },
		profile: Weights{Lexical: 0.30, Concept: 0.20, Flow: 0.15, Context: 0.20, DomainState: 0.05, Variation: 0.10},
	},
	{
		name:    "data-variation",
		applies: func(s signals) bool { return s.variation },
		profile: Weights{Lexical: 0.25, Concept: 0.20, Flow: 0.15, Context: 0.10, DomainState: 0.05, Variation: 0.25},
	},
	{
		name:    "balanced",
		applies: func(signals) bool { return true },
		profile: Weights{Lexical: 0.30, Concept: 0.25, Flow: 0.20, Context: 0.10, DomainState: 0.05, Variation: 0.10},
	},
}

// selectProfile returns the first matching rule's name and normalized
// profile.
func selectProfile(s signals) (string, Weights) {
	for _, r := range weightRules {
		if r.applies(s) {
			return r.name, r.profile.normalized()
		}
	}
	// Unreachable: the last rule always applies.
	last := weightRules[len(weightRules)-1]
	return last.name, last.profile.normalized()
}
