package scenario

import "github.com/c360studio/speccover/vocabulary/behavior"

// Business impact classifications. These are short free-text labels, not
// a closed enum: the parser only ever produces the values below, but
// consumers compare them as plain strings.
const (
	impactRevenue    = "revenue-critical"
	impactSecurity   = "security-sensitive"
	impactOnboarding = "user-acquisition"
	impactIntegrity  = "data-integrity"
	impactExperience = "customer-experience"
	impactOperations = "operational-efficiency"
	impactGeneral    = "general-support"
)

// deriveFields computes the scenario's derived classifications from its
// title and steps. Called exactly once, when the parser finalizes the
// scenario; the fields are never recomputed or mutated afterwards.
func deriveFields(s *Scenario) {
	text := s.Text()
	s.WorkflowCategory = behavior.ClassifyWorkflow(text)
	s.BusinessImpact = classifyImpact(s.WorkflowCategory, text)
}

// classifyImpact maps a workflow category (plus a few keyword overrides)
// to a business impact label.
func classifyImpact(cat behavior.WorkflowCategory, text string) string {
	if behavior.ContainsAny(text, behavior.SecurityKeywords) {
		return impactSecurity
	}

	switch cat {
	case behavior.CategoryPayments, behavior.CategoryCheckout:
		return impactRevenue
	case behavior.CategoryAuthentication, behavior.CategorySecurity:
		return impactSecurity
	case behavior.CategoryRegistration:
		return impactOnboarding
	case behavior.CategoryDataManagement, behavior.CategoryValidation:
		return impactIntegrity
	case behavior.CategorySearch, behavior.CategoryNavigation, behavior.CategoryNotification:
		return impactExperience
	case behavior.CategoryReporting, behavior.CategoryAdministration,
		behavior.CategoryConfiguration, behavior.CategoryIntegration,
		behavior.CategoryPerformance:
		return impactOperations
	default:
		return impactGeneral
	}
}
