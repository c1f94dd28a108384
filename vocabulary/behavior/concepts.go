package behavior

import "strings"

// ConceptKind is the type of a business concept extracted from scenario text.
type ConceptKind string

// Concept kinds. The similarity engine pairs concepts of the same kind
// before scoring them.
const (
	ConceptEntity    ConceptKind = "entity"
	ConceptAction    ConceptKind = "action"
	ConceptOutcome   ConceptKind = "outcome"
	ConceptCondition ConceptKind = "condition"
	ConceptVariation ConceptKind = "data-variation"
)

// Concept is one typed concept recognized in scenario text.
type Concept struct {
	Kind ConceptKind
	Word string
}

// conceptKeywords maps each concept kind to the words that signal it.
var conceptKeywords = map[ConceptKind][]string{
	ConceptEntity: {
		"user", "account", "admin", "customer", "order", "payment", "invoice",
		"cart", "product", "profile", "report", "email", "password", "file",
		"document", "subscription", "session", "form", "page", "record",
		"notification", "address", "item",
	},
	ConceptAction: {
		"login", "logs", "logout", "register", "create", "update", "delete",
		"submit", "search", "upload", "download", "approve", "cancel", "verify",
		"navigate", "toggle", "enable", "disable", "click", "select", "enter",
		"save", "send", "filter", "export", "import", "reset", "purchase",
	},
	ConceptOutcome: {
		"success", "successful", "successfully", "fails", "failure", "error",
		"displayed", "shown", "redirected", "saved", "rejected", "confirmed",
		"created", "removed", "accepted", "denied", "blocked", "visible",
	},
	ConceptCondition: {
		"valid", "invalid", "empty", "missing", "expired", "locked",
		"duplicate", "correct", "incorrect", "existing", "unauthorized",
		"required", "optional", "disabled", "enabled",
	},
	ConceptVariation: {
		"role", "guest", "mobile", "desktop", "staging", "production",
		"dataset", "permission", "locale", "browser", "environment",
	},
}

// conceptSynonyms groups interchangeable concept words. Words in the same
// group score as a synonym-tier match rather than requiring exact equality.
var conceptSynonyms = [][]string{
	{"login", "logs", "signin", "authenticate"},
	{"logout", "signout"},
	{"register", "signup", "enroll"},
	{"create", "add", "new"},
	{"delete", "remove"},
	{"update", "edit", "modify", "change"},
	{"submit", "send", "save"},
	{"success", "successful", "successfully", "confirmed", "accepted"},
	{"fails", "failure", "error", "rejected", "denied", "blocked"},
	{"displayed", "shown", "visible"},
	{"valid", "correct"},
	{"invalid", "incorrect", "wrong"},
	{"enable", "enabled", "on", "active"},
	{"disable", "disabled", "off", "inactive"},
	{"user", "customer"},
}

// conceptKindOrder fixes the scan order so extraction is deterministic.
var conceptKindOrder = []ConceptKind{
	ConceptEntity, ConceptAction, ConceptOutcome, ConceptCondition, ConceptVariation,
}

// ExtractConcepts scans text for known concept keywords and returns each
// hit exactly once, in first-occurrence order.
func ExtractConcepts(text string) []Concept {
	lower := strings.ToLower(text)
	words := fieldsAlnum(lower)

	seen := make(map[Concept]bool)
	var out []Concept
	for _, w := range words {
		for _, kind := range conceptKindOrder {
			for _, kw := range conceptKeywords[kind] {
				if w != kw {
					continue
				}
				c := Concept{Kind: kind, Word: kw}
				if !seen[c] {
					seen[c] = true
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// Synonymous reports whether two concept words belong to the same
// synonym group.
func Synonymous(a, b string) bool {
	if a == b {
		return false
	}
	for _, group := range conceptSynonyms {
		inA, inB := false, false
		for _, w := range group {
			if w == a {
				inA = true
			}
			if w == b {
				inB = true
			}
		}
		if inA && inB {
			return true
		}
	}
	return false
}

// fieldsAlnum splits text into lowercase alphanumeric words.
func fieldsAlnum(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
