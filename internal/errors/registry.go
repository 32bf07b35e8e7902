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
	// Engine Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryEngine,
		Message:  "Unknown patch kind",
		Detail:   "The patcher ran into a patch it does not know how to apply. Patches are produced by the differ, so this is a bug in the engine.",
	},
	"E101": {
		Category: CategoryEngine,
		Message:  "Unknown node kind",
		Detail:   "A view tree node has a kind the engine does not handle. Build nodes with the vdom constructors.",
	},
	"E102": {
		Category: CategoryEngine,
		Message:  "Live DOM does not match the old view tree",
		Detail:   "A patch could not be bound to a live node. The live DOM was modified outside the engine, or the old view tree passed to the patcher is not the one that was rendered.",
	},

	// ============================================
	// Config Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The configuration file does not exist or cannot be read.",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file is not valid YAML or has fields of the wrong type.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Config validation failed",
		Detail:   "One or more configuration values are out of range.",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Unknown scenario",
		Detail:   "The requested bench scenario is not defined in the configuration.",
	},

	// ============================================
	// Input Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryInput,
		Message:  "Cannot read view input",
		Detail:   "The HTML file given on the command line could not be read.",
	},
	"E301": {
		Category: CategoryInput,
		Message:  "Cannot parse view input",
		Detail:   "The HTML input must be a fragment with exactly one root element.",
	},

	// ============================================
	// CLI Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryCLI,
		Message:  "Unknown output format",
		Detail:   "Supported formats are text and yaml.",
	},
	"E401": {
		Category: CategoryCLI,
		Message:  "Metrics server failed",
		Detail:   "The metrics HTTP server could not be started.",
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

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
