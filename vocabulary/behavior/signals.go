package behavior

import "strings"

// StepKeywords are the recognized step-introducing words, lowercase.
// Order matters only for display; matching is prefix-based.
var StepKeywords = []string{"given", "when", "then", "and", "but"}

// IsStepLine reports whether a trimmed line begins with a step keyword
// followed by whitespace.
func IsStepLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range StepKeywords {
		if strings.HasPrefix(lower, kw+" ") || strings.HasPrefix(lower, kw+"\t") {
			return true
		}
	}
	return false
}

// Domain-state vocabulary: words that signal a named, stateful, on/off
// style capability (a feature toggle under test).

// DomainStateNouns signal that the scenario concerns a toggleable capability.
var DomainStateNouns = []string{"feature flag", "feature toggle", "flag", "toggle", "switch", "feature"}

// DomainStateOn are words naming the enabled state.
var DomainStateOn = []string{"enabled", "on", "active", "activated", "turned on"}

// DomainStateOff are words naming the disabled state.
var DomainStateOff = []string{"disabled", "off", "inactive", "deactivated", "turned off"}

// VariationKind classifies a data-variation keyword.
type VariationKind string

// Variation kinds recognized by the data-variation scorer.
const (
	VariationRole        VariationKind = "role"
	VariationEnvironment VariationKind = "environment"
	VariationDataset     VariationKind = "dataset"
	VariationPermission  VariationKind = "permission"
)

// variationKeywords maps each variation kind to its trigger words.
var variationKeywords = map[VariationKind][]string{
	VariationRole:        {"admin", "administrator", "guest", "manager", "customer", "operator", "viewer", "editor", "superuser"},
	VariationEnvironment: {"staging", "production", "sandbox", "mobile", "desktop", "tablet", "offline", "chrome", "firefox", "safari"},
	VariationDataset:     {"empty dataset", "large dataset", "bulk", "sample data", "no records", "thousands", "single record", "boundary value"},
	VariationPermission:  {"read-only", "readonly", "full access", "restricted", "limited access", "elevated", "unprivileged"},
}

// variationKindOrder fixes the scan order for deterministic extraction.
var variationKindOrder = []VariationKind{
	VariationRole, VariationEnvironment, VariationDataset, VariationPermission,
}

// ExtractVariations returns the variation kinds present in the text, in
// the order their first keyword appears, each kind at most once.
func ExtractVariations(text string) []VariationKind {
	lower := strings.ToLower(text)

	type hit struct {
		kind VariationKind
		pos  int
	}
	var hits []hit
	for _, kind := range variationKindOrder {
		best := -1
		for _, kw := range variationKeywords[kind] {
			if i := strings.Index(lower, kw); i >= 0 && (best == -1 || i < best) {
				best = i
			}
		}
		if best >= 0 {
			hits = append(hits, hit{kind, best})
		}
	}
	// Insertion sort by position; the list has at most four entries.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]VariationKind, len(hits))
	for i, h := range hits {
		out[i] = h.kind
	}
	return out
}

// PriorityKeywords mark a scenario's stated priority or suite membership.
var PriorityKeywords = []string{"critical", "high priority", "low priority", "smoke", "regression", "p0", "p1", "blocker"}

// EnvironmentIndicators are deployment-context words used by the
// contextual scorer.
var EnvironmentIndicators = []string{"staging", "production", "sandbox", "local", "ci", "preview"}

// UserContextIndicators are acting-user words used by the contextual scorer.
var UserContextIndicators = []string{"admin", "guest", "anonymous", "logged in", "logged-in", "authenticated", "unauthenticated", "new user", "existing user"}

// DataShapeIndicators are input-shape words used by the contextual scorer.
var DataShapeIndicators = []string{"empty", "bulk", "large", "single", "multiple", "duplicate", "unicode", "special characters", "boundary"}

// ErrorHandlingKeywords signal negative-path scenarios.
var ErrorHandlingKeywords = []string{"error", "invalid", "fail", "fails", "failure", "rejected", "denied", "exception", "wrong", "incorrect", "missing", "unauthorized"}

// PerformanceKeywords signal performance-oriented scenarios.
var PerformanceKeywords = []string{"performance", "load", "latency", "response time", "concurrent", "throughput", "stress", "timeout"}

// SecurityKeywords signal security-oriented scenarios.
var SecurityKeywords = []string{"security", "permission", "access control", "unauthorized", "forbidden", "xss", "injection", "csrf", "encrypt", "privilege"}

// ContainsAny reports whether the lowercase form of text contains any of
// the given keywords.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
