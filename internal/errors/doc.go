// Package errors provides structured errors for vtree.
//
// Each error has a unique code (e.g., "E100") mapping to a category, a
// short message and a longer explanation. Errors can carry a source
// location (used for configuration files), a suggestion and a wrapped
// cause.
//
// # Error Categories
//
//   - engine: internal invariant violations in the diff/patch engine
//   - config: configuration file errors
//   - input: malformed HTML or view input handed to the CLI
//   - cli: command line usage errors
//
// Engine errors are raised with panic: the patch list is generated by the
// engine itself, so an inconsistency can only be a bug.
//
// # Usage
//
//	err := errors.New("E201").
//	    WithLocation("vtree.yaml", 4, 3).
//	    WithSuggestion("list_size must be at least 1")
//
//	fmt.Println(err.Format())
package errors
