package cfg

import (
	"fmt"
	"strings"
)

// Rule is a single production: Input must satisfy Variable, and Output is
// the right-hand side word it produces. Rules are immutable and equal by
// value; since Output is a Word (a slice), Rule itself is not a comparable
// Go type, so Grammar indexes its rule set on Rule.Key() rather than storing
// Rule directly as a map key (see util.SVSet).
type Rule struct {
	Input  Letter
	Output Word
}

// Key returns a canonical string uniquely identifying r by structural
// equality (both the Input and every Output letter's name and Variable
// flag), suitable for use as the key of a util.SVSet[Rule].
func (r Rule) Key() string {
	var sb strings.Builder
	writeLetterKey(&sb, r.Input)
	sb.WriteString(" -> ")
	for i, l := range r.Output {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeLetterKey(&sb, l)
	}
	return sb.String()
}

func writeLetterKey(sb *strings.Builder, l Letter) {
	if l.Variable {
		sb.WriteByte('V')
	} else {
		sb.WriteByte('T')
	}
	sb.WriteByte(':')
	sb.WriteString(l.Name)
}

// NewRule creates a Rule from the given variable and output word. It panics
// if input is not a variable, failing fast on a malformed rule rather than
// letting it propagate into a Grammar.
func NewRule(input Letter, output Word) Rule {
	if !input.Variable {
		panic(fmt.Sprintf("rule input letter %q is not a variable", input.Name))
	}
	return Rule{Input: input, Output: output.Copy()}
}

// Equal returns whether r and o are the same rule.
func (r Rule) Equal(o Rule) bool {
	return r.Input == o.Input && r.Output.Equal(o.Output)
}

// String renders the rule as "A -> X Y Z".
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Input.Name, r.Output.String())
}

// Format renders the rule the way it would appear on a rule line in the
// given MinFormat.
func (r Rule) Format(f MinFormat) string {
	return fmt.Sprintf("%s -> %s", r.Input.Format(f), r.Output.Format(f))
}
