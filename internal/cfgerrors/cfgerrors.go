// Package cfgerrors defines the error taxonomy of spec.md §7: meta errors,
// parse errors, and action-prerequisite errors, each its own type so
// callers can distinguish them with errors.As.
package cfgerrors

import "fmt"

// MetaError is a missing or unknown mode/format meta value. It is fatal:
// callers must surface it and terminate before running any action
// (spec.md §7).
type MetaError struct {
	Message string
}

func (e *MetaError) Error() string {
	return fmt.Sprintf("meta error: %s", e.Message)
}

// NewMeta returns a MetaError with the given message.
func NewMeta(format string, a ...any) error {
	return &MetaError{Message: fmt.Sprintf(format, a...)}
}

// ParseError is a malformed rule line: a missing arrow, spaces inside a
// char-format letter, and the like. It is fatal to the parsing phase
// (spec.md §7); Line is 1-indexed and zero when not applicable.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParse returns a ParseError for the given line.
func NewParse(line int, format string, a ...any) error {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, a...)}
}

// ActionError is an action-prerequisite failure: e.g. cnf run without a
// start variable, or cyk run on a table whose final cell lacks the start
// variable. Actions errors are local: the action is skipped and the
// diagnostic is printed, but subsequent queued actions still run
// (spec.md §7).
type ActionError struct {
	Action  string
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q: %s", e.Action, e.Message)
}

// NewAction returns an ActionError for the named action.
func NewAction(action, format string, a ...any) error {
	return &ActionError{Action: action, Message: fmt.Sprintf(format, a...)}
}
