package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Navigation Errors (N001-N099)
	// ============================================

	"N001": {
		Category: CategoryNavigation,
		Message:  "Route not found",
		Detail:   "No entry in the route table matches the requested path. The navigation controller mounts the fallback view instead.",
	},
	"N002": {
		Category: CategoryNavigation,
		Message:  "Duplicate route name",
		Detail:   "Two route definitions share the same name. Only the first-declared definition is kept.",
	},
	"N003": {
		Category: CategoryNavigation,
		Message:  "View load failed",
		Detail:   "The view bound to the matched route failed to load or mount. The fallback view is mounted instead.",
	},
	"N004": {
		Category: CategoryNavigation,
		Message:  "View not registered",
		Detail:   "The route references a view key that has no loader in the view registry.",
	},
	"N005": {
		Category: CategoryNavigation,
		Message:  "Invalid route path",
		Detail:   "Route paths must be absolute (start with \"/\") and canonicalizable.",
	},
	"N006": {
		Category: CategoryNavigation,
		Message:  "Navigation superseded",
		Detail:   "A newer navigation request arrived while this one was loading its view. The stale result was discarded.",
	},
	"N007": {
		Category: CategoryNavigation,
		Message:  "Invalid navigation target",
		Detail:   "Navigation targets must be application-relative paths.",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config parse failed",
		Detail:   "toolbox.json could not be parsed as JSON.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "toolbox.json contains an invalid value.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Route manifest invalid",
		Detail:   "The YAML route manifest could not be read or parsed.",
	},

	// ============================================
	// CLI Errors (X001-X099)
	// ============================================

	"X001": {
		Category: CategoryCLI,
		Message:  "Strict route check failed",
		Detail:   "The route table produced diagnostics while --strict was set.",
	},
	"X002": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "A command argument or flag value is not recognized.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
