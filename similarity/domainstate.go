package similarity

import (
	"strings"

	"github.com/c360studio/speccover/vocabulary/behavior"
)

// Domain-state score levels.
const (
	domainStateMatched = 0.95
	domainStateNeutral = 0.5
	domainStateOpposed = 0.15
)

// domainState is a detected stateful, named, on/off-style capability.
type domainState struct {
	nameTokens []string
	on         bool
}

// DetectDomainState reports whether the text concerns a named toggleable
// capability (a feature flag or similar). Detection requires both a
// toggle noun and a state word.
func DetectDomainState(text string) bool {
	_, ok := extractDomainState(text)
	return ok
}

// extractDomainState recovers the capability name tokens and state.
func extractDomainState(text string) (domainState, bool) {
	lower := strings.ToLower(text)

	if !behavior.ContainsAny(lower, behavior.DomainStateNouns) {
		return domainState{}, false
	}

	onIdx := firstIndex(lower, behavior.DomainStateOn)
	offIdx := firstIndex(lower, behavior.DomainStateOff)
	if onIdx < 0 && offIdx < 0 {
		return domainState{}, false
	}

	// When both states appear, the first occurrence wins.
	on := offIdx < 0 || (onIdx >= 0 && onIdx < offIdx)

	return domainState{nameTokens: capabilityName(lower), on: on}, true
}

// firstIndex returns the earliest index of any keyword, or -1.
func firstIndex(lower string, keywords []string) int {
	best := -1
	for _, kw := range keywords {
		if i := strings.Index(lower, kw); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// capabilityName collects the tokens naming the capability: everything
// that is not a toggle noun, a state word, or filler.
func capabilityName(lower string) []string {
	skip := make(map[string]bool)
	for _, lists := range [][]string{behavior.DomainStateNouns, behavior.DomainStateOn, behavior.DomainStateOff} {
		for _, kw := range lists {
			for _, w := range strings.Fields(kw) {
				skip[w] = true
			}
		}
	}
	for _, w := range []string{"the", "a", "an", "is", "are", "was", "when", "given", "then", "and", "but", "with", "for", "should", "be"} {
		skip[w] = true
	}

	var name []string
	for _, w := range tokenize(lower) {
		if !skip[w] {
			name = append(name, w)
		}
	}
	return name
}

// DomainStateScore compares two scenarios' toggleable-capability
// semantics. When both concern the same named capability in the same
// state the score is high; the same capability in opposite states scores
// low. Scenarios unrelated to domain state score neutral, not zero, so
// the engine does not double-penalize pairs that simply have nothing to
// say about toggles.
func DomainStateScore(aText, bText string) float64 {
	da, aOK := extractDomainState(aText)
	db, bOK := extractDomainState(bText)

	if !aOK || !bOK {
		return domainStateNeutral
	}
	if !nameMatch(da.nameTokens, db.nameTokens) {
		return domainStateNeutral
	}
	if da.on == db.on {
		return domainStateMatched
	}
	return domainStateOpposed
}

// nameMatch reports whether two capability name token sets overlap by at
// least half of the smaller set. Two empty names match.
func nameMatch(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}
	shared := 0
	for _, w := range b {
		if set[w] {
			shared++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return shared*2 >= smaller
}
