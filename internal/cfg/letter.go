// Package cfg implements the symbol model for context-free grammars:
// letters, words, rules, and grammars, along with the minimal-format
// classifier and fresh-name generator used throughout the rest of the
// toolkit.
package cfg

import "strings"

// Letter is a single terminal or variable symbol. Two letters are equal iff
// both their Name and Variable fields are equal. Letter is immutable and
// safe to use as a map key.
type Letter struct {
	Name     string
	Variable bool
}

// NewTerminal returns a Letter for the given terminal (non-variable) name.
func NewTerminal(name string) Letter {
	return Letter{Name: name}
}

// NewVariable returns a Letter for the given variable name.
func NewVariable(name string) Letter {
	return Letter{Name: name, Variable: true}
}

// String gives the letter's bare name, with no annotation of whether it is a
// variable. Use Format to get a representation in a particular surface
// syntax.
func (l Letter) String() string {
	return l.Name
}

// Format renders the letter the way it would appear in a rule line of the
// given MinFormat.
func (l Letter) Format(f MinFormat) string {
	if f == FormatSpacedExclaim && l.Variable {
		return l.Name + "!"
	}
	return l.Name
}

// hasUpper returns whether a string contains any uppercase letters, matching
// the case-discipline check the char/spaced formats rely on.
func hasUpper(s string) bool {
	return strings.ToLower(s) != s
}
