package similarity

import (
	"fmt"
	"strings"
)

// stepRole is the structural role a step plays in its scenario.
type stepRole int

const (
	roleSetup stepRole = iota
	roleTrigger
	roleOutcome
	roleAdditional
)

// actionType classifies what kind of user action a step describes.
type actionType int

const (
	actionNone actionType = iota
	actionInteraction
	actionInput
	actionNavigation
	actionSubmission
)

// validationType classifies what kind of check a step expresses.
type validationType int

const (
	validationNone validationType = iota
	validationPositive
	validationNegative
	validationResult
)

// stepPattern is the typed reduction of one step line.
type stepPattern struct {
	role       stepRole
	action     actionType
	validation validationType
}

// value renders the pattern as a comparable token for sequence matching.
func (p stepPattern) value() string {
	return fmt.Sprintf("%d/%d/%d", p.role, p.action, p.validation)
}

var actionKeywords = map[actionType][]string{
	actionInteraction: {"click", "select", "press", "choose", "check", "uncheck", "expand", "hover", "drag", "scroll", "toggle"},
	actionInput:       {"enter", "type", "fill", "input", "provide", "set ", "paste", "upload"},
	actionNavigation:  {"navigate", "open", "visit", "go to", "goes to", "return to", "browse", "redirect"},
	actionSubmission:  {"submit", "save", "send", "confirm", "apply", "complete", "place the order", "check out"},
}

var actionOrder = []actionType{actionInteraction, actionInput, actionNavigation, actionSubmission}

var validationKeywords = map[validationType][]string{
	validationNegative: {"error", "fail", "invalid", "not ", "reject", "denied", "blocked", "cannot", "unable", "forbidden"},
	validationPositive: {"should", "succe", "correct", "accepted", "valid ", "able to"},
	validationResult:   {"displayed", "shown", "redirected", "returned", "receive", "contains", "appears", "message", "visible", "see "},
}

// validationOrder checks negative first so "should see an error" reads
// as a negative check.
var validationOrder = []validationType{validationNegative, validationPositive, validationResult}

// classifyStep reduces one step line to its typed pattern.
func classifyStep(step string) stepPattern {
	lower := strings.ToLower(step)

	p := stepPattern{role: roleAdditional}
	switch {
	case strings.HasPrefix(lower, "given"):
		p.role = roleSetup
	case strings.HasPrefix(lower, "when"):
		p.role = roleTrigger
	case strings.HasPrefix(lower, "then"):
		p.role = roleOutcome
	}

	for _, a := range actionOrder {
		if containsAnyKeyword(lower, actionKeywords[a]) {
			p.action = a
			break
		}
	}
	for _, v := range validationOrder {
		if containsAnyKeyword(lower, validationKeywords[v]) {
			p.validation = v
			break
		}
	}
	return p
}

func classifySteps(steps []string) []stepPattern {
	out := make([]stepPattern, len(steps))
	for i, s := range steps {
		out[i] = classifyStep(s)
	}
	return out
}

func containsAnyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Flow sub-component weights.
const (
	flowStructuralWeight = 0.3
	flowSequenceWeight   = 0.3
	flowActionWeight     = 0.2
	flowValidationWeight = 0.2
)

// FlowScore compares the functional flow of two step sequences: the
// position-wise structural alignment, the longest common subsequence of
// typed pattern values, and the overlap of the action and validation
// sets, each independently weighted. Two empty sequences score 1.0
// (no flow to disagree on); one empty sequence scores 0.0.
func FlowScore(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	pa, pb := classifySteps(a), classifySteps(b)
	longer := len(pa)
	if len(pb) > longer {
		longer = len(pb)
	}

	structural := structuralAlignment(pa, pb) / float64(longer)
	sequence := float64(patternLCS(pa, pb)) / float64(longer)
	actions := actionSetOverlap(pa, pb)
	validations := validationSetOverlap(pa, pb)

	return flowStructuralWeight*structural +
		flowSequenceWeight*sequence +
		flowActionWeight*actions +
		flowValidationWeight*validations
}

// structuralAlignment counts position-wise role agreement.
func structuralAlignment(a, b []stepPattern) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	matches := 0.0
	for i := 0; i < n; i++ {
		if a[i].role == b[i].role {
			matches++
		}
	}
	return matches
}

// patternLCS computes the longest common subsequence over pattern values.
func patternLCS(a, b []stepPattern) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1].value() == b[j-1].value() {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// actionSetOverlap is the Jaccard overlap of the action types present in
// each sequence. Two action-free sequences overlap fully.
func actionSetOverlap(a, b []stepPattern) float64 {
	sa, sb := actionSet(a), actionSet(b)
	return setJaccard(sa, sb)
}

// validationSetOverlap is the Jaccard overlap of validation types.
func validationSetOverlap(a, b []stepPattern) float64 {
	sa, sb := validationSet(a), validationSet(b)
	return setJaccard(sa, sb)
}

func actionSet(ps []stepPattern) map[int]bool {
	s := make(map[int]bool)
	for _, p := range ps {
		if p.action != actionNone {
			s[int(p.action)] = true
		}
	}
	return s
}

func validationSet(ps []stepPattern) map[int]bool {
	s := make(map[int]bool)
	for _, p := range ps {
		if p.validation != validationNone {
			s[int(p.validation)] = true
		}
	}
	return s
}

// setJaccard computes intersection over union, with two empty sets
// counting as a full match.
func setJaccard(a, b map[int]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter, union := 0, len(b)
	for k := range a {
		if b[k] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

// StepPositionalScore compares steps pairwise by position using token
// overlap, normalized by the longer sequence. Used by the duplicate
// clusterer's composite score. Two empty sequences score 1.0.
func StepPositionalScore(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	n, longer := len(a), len(a)
	if len(b) < n {
		n = len(b)
	}
	if len(b) > longer {
		longer = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += TokenOverlapScore(a[i], b[i])
	}
	return sum / float64(longer)
}

// StepOverlapScore compares the full step text of two sequences as flat
// token bags, ignoring position. Used as the duplicate clusterer's
// secondary gate. Two empty sequences score 1.0.
func StepOverlapScore(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	return TokenOverlapScore(strings.Join(a, " "), strings.Join(b, " "))
}
