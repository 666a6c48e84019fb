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
	// Hook Errors (K001-K009)
	// ============================================

	"K001": {
		Category: CategoryHook,
		Message:  "Hook called outside render",
		Detail:   "Hooks read and write the slot array of the component that is currently rendering. Call them only from a component's render function.",
	},
	"K002": {
		Category: CategoryHook,
		Message:  "Hook order changed",
		Detail:   "Hook slots are addressed by call position. A component must call the same hooks in the same order on every render; do not call hooks conditionally or inside loops.",
	},
	"K003": {
		Category: CategoryHook,
		Message:  "Re-entrant render",
		Detail:   "A component instance was asked to re-render while it was already rendering.",
	},

	// ============================================
	// Boundary Errors (K010-K019)
	// ============================================

	"K010": {
		Category: CategoryRender,
		Message:  "Component initialization failed",
		Detail:   "The component panicked during its first render.",
	},
	"K011": {
		Category: CategoryRender,
		Message:  "Component render failed",
		Detail:   "The component panicked while re-rendering.",
	},
	"K012": {
		Category: CategoryEffect,
		Message:  "Effect failed",
		Detail:   "An effect registered with UseEffect or UseLayoutEffect panicked.",
	},
	"K013": {
		Category: CategoryState,
		Message:  "State update failed",
		Detail:   "A state updater passed to an Evolver panicked.",
	},
	"K014": {
		Category: CategoryEffect,
		Message:  "Effect cleanup failed",
		Detail:   "An effect cleanup panicked. Cleanup failures are logged and never interrupt unmounting.",
	},

	// ============================================
	// Tree Errors (K020-K029)
	// ============================================

	"K020": {
		Category: CategoryRender,
		Message:  "Unknown node kind",
		Detail:   "A virtual node carried a kind outside Text, Element, Fragment, Component and Nothing.",
	},
	"K021": {
		Category: CategoryRender,
		Message:  "Invalid component definition",
		Detail:   "A component node does not reference a definition created by kite.Define or kite.Memo.",
	},

	// ============================================
	// Config Errors (K030-K039)
	// ============================================

	"K030": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "kite.json could not be read or parsed.",
	},
	"K031": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// Literal Errors (K040-K049)
	// ============================================

	"K040": {
		Category: CategoryLiteral,
		Message:  "Invalid vnode literal",
		Detail:   "A JSON vnode literal must have exactly one of tag, text, fragment or nothing.",
	},

	// ============================================
	// CLI Errors (K050-K059)
	// ============================================

	"K050": {
		Category: CategoryCLI,
		Message:  "Refusing to overwrite file",
		Detail:   "The command would replace an existing file.",
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

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
