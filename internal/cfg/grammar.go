package cfg

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/cfgkit/internal/util"
)

// Grammar is an unordered set of Rules plus an optional start variable. Set
// semantics mean duplicate rules cannot exist and that iteration order is
// not part of the contract; any caller that needs a deterministic order
// (CYK tie-breaks, user-facing listings) must sort explicitly — see
// RulesSorted.
type Grammar struct {
	rules    util.SVSet[Rule]
	start    Letter
	hasStart bool
}

// New returns an empty Grammar with no rules and no start variable set.
func New() *Grammar {
	return &Grammar{rules: util.NewSVSet[Rule]()}
}

// AddRule adds r to the grammar. It panics if r.Input is not a variable;
// Rule construction already enforces this, so this only matters for rules
// assembled by hand.
func (g *Grammar) AddRule(r Rule) {
	if !r.Input.Variable {
		panic(fmt.Sprintf("rule input letter %q is not a variable", r.Input.Name))
	}
	g.rules.Set(r.Key(), r)
}

// RemoveRule removes r from the grammar. It has no effect if r is not
// present.
func (g *Grammar) RemoveRule(r Rule) {
	g.rules.Remove(r.Key())
}

// HasRule returns whether r is present in the grammar.
func (g *Grammar) HasRule(r Rule) bool {
	return g.rules.Has(r.Key())
}

// Rules returns the grammar's rules in unspecified order.
func (g *Grammar) Rules() []Rule {
	return g.rules.Elements()
}

// RulesSorted returns the grammar's rules sorted by their string form. This
// is the deterministic order spec.md §5 requires any tie-break-sensitive
// algorithm to impose explicitly.
func (g *Grammar) RulesSorted() []Rule {
	rs := g.Rules()
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].String() < rs[j].String()
	})
	return rs
}

// SetStart sets the grammar's start variable. It panics if v is not a
// variable.
func (g *Grammar) SetStart(v Letter) {
	if !v.Variable {
		panic(fmt.Sprintf("start letter %q is not a variable", v.Name))
	}
	g.start = v
	g.hasStart = true
}

// StartVariable returns the grammar's start variable and whether one has
// been set.
func (g *Grammar) StartVariable() (Letter, bool) {
	return g.start, g.hasStart
}

// RulesMap groups the grammar's rules by their input letter, keyed by the
// full Letter rather than by bare name, since two letters can share a name
// across the variable/terminal boundary.
func (g *Grammar) RulesMap() map[Letter][]Rule {
	m := make(map[Letter][]Rule)
	for _, r := range g.rules.Elements() {
		m[r.Input] = append(m[r.Input], r)
	}
	return m
}

// RulesFor returns the rules whose input letter is v.
func (g *Grammar) RulesFor(v Letter) []Rule {
	return g.RulesMap()[v]
}

// AllLetters returns every letter mentioned anywhere in the grammar, either
// as a rule's input or anywhere in a rule's output word, plus the start
// variable if one is set. No reachability pruning is performed, per
// spec.md §3.
func (g *Grammar) AllLetters() []Letter {
	seen := make(map[Letter]bool)
	var letters []Letter
	add := func(l Letter) {
		if !seen[l] {
			seen[l] = true
			letters = append(letters, l)
		}
	}
	if g.hasStart {
		add(g.start)
	}
	for _, r := range g.rules.Elements() {
		add(r.Input)
		for _, l := range r.Output {
			add(l)
		}
	}
	return letters
}

// AllVariables returns every variable letter in the grammar.
func (g *Grammar) AllVariables() []Letter {
	var out []Letter
	for _, l := range g.AllLetters() {
		if l.Variable {
			out = append(out, l)
		}
	}
	return out
}

// AllTerminals returns every terminal letter in the grammar.
func (g *Grammar) AllTerminals() []Letter {
	var out []Letter
	for _, l := range g.AllLetters() {
		if !l.Variable {
			out = append(out, l)
		}
	}
	return out
}

// Copy returns a deep copy of g. Each CNF phase calls this to produce its
// working copy, per spec.md §3's "each CNF phase returns a fresh grammar"
// ownership rule.
func (g *Grammar) Copy() *Grammar {
	cp := New()
	for _, r := range g.rules.Elements() {
		fresh := Rule{Input: r.Input, Output: r.Output.Copy()}
		cp.rules.Set(fresh.Key(), fresh)
	}
	cp.start = g.start
	cp.hasStart = g.hasStart
	return cp
}

// Equal returns whether g and o have the same rule set and the same start
// variable (or both have no start variable set).
func (g *Grammar) Equal(o *Grammar) bool {
	if g.hasStart != o.hasStart {
		return false
	}
	if g.hasStart && g.start != o.start {
		return false
	}
	if g.rules.Len() != o.rules.Len() {
		return false
	}
	for _, r := range g.rules.Elements() {
		if !o.HasRule(r) {
			return false
		}
	}
	return true
}

// String renders the grammar using its own minimal format.
func (g *Grammar) String() string {
	return g.ToFormat(g.MinFormat())
}

// ToFormat renders the grammar as rule lines in the given format, one
// variable per line with alternatives joined by "|", preceded by a "start"
// line if a start variable is set. This is the counterpart to the rule-line
// parser in the cfgfile package.
func (g *Grammar) ToFormat(f MinFormat) string {
	var sb strings.Builder

	if g.hasStart {
		sb.WriteString("start ")
		sb.WriteString(g.start.Format(f))
		sb.WriteString("\n")
	}

	m := g.RulesMap()
	vars := make([]Letter, 0, len(m))
	for v := range m {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	for _, v := range vars {
		rules := m[v]
		sort.Slice(rules, func(i, j int) bool { return rules[i].String() < rules[j].String() })
		outputs := make([]string, len(rules))
		for i, r := range rules {
			outputs[i] = r.Output.Format(f)
		}
		sb.WriteString(v.Format(f))
		sb.WriteString(" -> ")
		sb.WriteString(strings.Join(outputs, " | "))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// ToLatex renders the grammar as a LaTeX "aligned" environment using
// "\rightarrow" and "\mid", per spec.md §6's `_latex.txt` output file.
func (g *Grammar) ToLatex() string {
	m := g.RulesMap()
	vars := make([]Letter, 0, len(m))
	for v := range m {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	var sb strings.Builder
	sb.WriteString("\\begin{aligned}\n")
	for i, v := range vars {
		rules := m[v]
		sort.Slice(rules, func(i, j int) bool { return rules[i].String() < rules[j].String() })
		outputs := make([]string, len(rules))
		for j, r := range rules {
			outputs[j] = r.Output.String()
			if r.Output.IsEmpty() {
				outputs[j] = "\\varepsilon"
			}
		}
		sb.WriteString(v.Name)
		sb.WriteString(" &\\rightarrow ")
		sb.WriteString(strings.Join(outputs, " \\mid "))
		if i+1 < len(vars) {
			sb.WriteString(" \\\\")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\\end{aligned}")
	return sb.String()
}

var trailingDigits = regexp.MustCompile(`\d+$`)

// incrementName implements the fresh-name increment rule of spec.md §4.1:
// strip any trailing decimal suffix, increment it, and reattach; if there is
// no trailing digit, append "0".
func incrementName(name string) string {
	loc := trailingDigits.FindStringIndex(name)
	if loc == nil {
		return name + "0"
	}
	base := name[:loc[0]]
	n, err := strconv.Atoi(name[loc[0]:loc[1]])
	if err != nil {
		// unreachable: trailingDigits only matches decimal digits
		return name + "0"
	}
	return fmt.Sprintf("%s%d", base, n+1)
}

// FreshNames generates amount fresh letters seeded from seed: each shares
// seed's Variable flag and has a name absent from the grammar's letter set.
// Names generated earlier in the same call are considered taken for later
// ones in that call; the caller is responsible for adding the resulting
// rules to the grammar before calling FreshNames again, per spec.md §4.1
// and §9.
func (g *Grammar) FreshNames(seed Letter, amount int) []Letter {
	taken := make(map[string]bool)
	for _, l := range g.AllLetters() {
		taken[l.Name] = true
	}

	fresh := make([]Letter, 0, amount)
	previous := seed.Name
	for i := 0; i < amount; i++ {
		next := incrementName(previous)
		for taken[next] {
			next = incrementName(next)
		}
		taken[next] = true
		fresh = append(fresh, Letter{Name: next, Variable: seed.Variable})
		previous = next
	}
	return fresh
}
