package behavior

import "strings"

// WorkflowCategory classifies a scenario into one business process area.
type WorkflowCategory string

// Workflow categories. CategoryGeneral is the catch-all for scenarios
// that match no other category.
const (
	CategoryAuthentication WorkflowCategory = "authentication"
	CategoryRegistration   WorkflowCategory = "registration"
	CategoryPayments       WorkflowCategory = "payments"
	CategoryCheckout       WorkflowCategory = "checkout"
	CategorySearch         WorkflowCategory = "search"
	CategoryReporting      WorkflowCategory = "reporting"
	CategoryAdministration WorkflowCategory = "administration"
	CategoryNotification   WorkflowCategory = "notification"
	CategoryDataManagement WorkflowCategory = "data-management"
	CategoryIntegration    WorkflowCategory = "integration"
	CategoryNavigation     WorkflowCategory = "navigation"
	CategoryValidation     WorkflowCategory = "validation"
	CategoryConfiguration  WorkflowCategory = "configuration"
	CategorySecurity       WorkflowCategory = "security"
	CategoryPerformance    WorkflowCategory = "performance"
	CategoryGeneral        WorkflowCategory = "general"
)

// categoryKeywords maps each category to the keywords that select it.
// Categories are evaluated in the order of categoryOrder; the first
// category with a keyword hit wins.
var categoryKeywords = map[WorkflowCategory][]string{
	CategoryAuthentication: {"login", "log in", "logs in", "logout", "log out", "sign in", "signin", "sign out", "authenticate", "authentication", "credential", "password reset", "session"},
	CategoryRegistration:   {"register", "registration", "sign up", "signup", "onboard", "create account", "new account", "enroll"},
	CategoryPayments:       {"payment", "pay ", "pays", "refund", "invoice", "billing", "charge", "credit card", "transaction", "subscription"},
	CategoryCheckout:       {"checkout", "cart", "basket", "order", "purchase", "shipping", "delivery"},
	CategorySearch:         {"search", "filter", "query", "sort", "lookup", "find", "autocomplete"},
	CategoryReporting:      {"report", "dashboard", "export", "chart", "analytics", "metrics", "summary", "statistics"},
	CategoryAdministration: {"admin", "administrator", "manage user", "user management", "moderat", "audit"},
	CategoryNotification:   {"notification", "notify", "email", "alert", "reminder", "message", "sms", "push"},
	CategoryDataManagement: {"import", "upload", "download", "bulk", "record", "data entry", "archive", "sync"},
	CategoryIntegration:    {"api", "webhook", "integration", "third-party", "external service", "endpoint"},
	CategoryNavigation:     {"navigate", "navigation", "menu", "breadcrumb", "redirect", "link", "page load", "tab"},
	CategoryValidation:     {"validate", "validation", "invalid", "required field", "format", "error message", "boundary"},
	CategoryConfiguration:  {"setting", "configuration", "configure", "preference", "feature flag", "toggle", "enable", "disable"},
	CategorySecurity:       {"security", "permission", "access control", "unauthorized", "forbidden", "role", "encrypt", "xss", "injection"},
	CategoryPerformance:    {"performance", "load time", "response time", "concurrent", "throughput", "latency", "timeout", "stress"},
}

// categoryOrder fixes the evaluation priority. More specific business
// flows are checked before broader technical buckets.
var categoryOrder = []WorkflowCategory{
	CategoryAuthentication,
	CategoryRegistration,
	CategoryPayments,
	CategoryCheckout,
	CategorySearch,
	CategoryReporting,
	CategoryAdministration,
	CategoryNotification,
	CategoryDataManagement,
	CategoryIntegration,
	CategorySecurity,
	CategoryPerformance,
	CategoryConfiguration,
	CategoryValidation,
	CategoryNavigation,
}

// ClassifyWorkflow returns the workflow category for the given text,
// or CategoryGeneral when nothing matches. Matching is case-insensitive.
func ClassifyWorkflow(text string) WorkflowCategory {
	lower := strings.ToLower(text)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return CategoryGeneral
}

// Categories returns all workflow categories in priority order,
// including the catch-all.
func Categories() []WorkflowCategory {
	out := make([]WorkflowCategory, 0, len(categoryOrder)+1)
	out = append(out, categoryOrder...)
	return append(out, CategoryGeneral)
}
