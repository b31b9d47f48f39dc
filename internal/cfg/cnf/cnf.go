// Package cnf implements the five-phase Chomsky Normal Form rewrite system
// of spec.md §4.3: START, BIN, DEL, UNIT, TERM, each applied to a fixed
// point in that order.
package cnf

import (
	"fmt"

	"github.com/dekarrin/cfgkit/internal/cfg"
)

// Snapshot is one named stage of the normalization trace: the grammar as it
// stood immediately after a phase reached its fixed point.
type Snapshot struct {
	Phase   string
	Grammar *cfg.Grammar
}

// Normalize drives g through START, BIN, DEL, UNIT, and TERM in order, each
// to a fixed point, and returns the final CNF grammar along with a trace of
// the grammar after every phase. g is not mutated; Normalize panics if g has
// no start variable set, matching the action-prerequisite error spec.md §7
// assigns to the cnf action (callers should check for a start variable
// themselves and treat its absence as an action-prerequisite error rather
// than letting this panic surface).
func Normalize(g *cfg.Grammar) (*cfg.Grammar, []Snapshot) {
	if _, ok := g.StartVariable(); !ok {
		panic("cnf: grammar has no start variable")
	}

	trace := []Snapshot{{Phase: "initial", Grammar: g.Copy()}}

	cur := g
	for needStart(cur) {
		cur = doStart(cur)
	}
	trace = append(trace, Snapshot{Phase: "START", Grammar: cur.Copy()})

	for needBin(cur) {
		cur = doBin(cur)
	}
	trace = append(trace, Snapshot{Phase: "BIN", Grammar: cur.Copy()})

	for needDel(cur) {
		cur = doDel(cur)
	}
	trace = append(trace, Snapshot{Phase: "DEL", Grammar: cur.Copy()})

	for needUnit(cur) {
		cur = doUnit(cur)
	}
	trace = append(trace, Snapshot{Phase: "UNIT", Grammar: cur.Copy()})

	for needTerm(cur) {
		cur = doTerm(cur)
	}
	trace = append(trace, Snapshot{Phase: "TERM", Grammar: cur.Copy()})

	return cur, trace
}

// needStart reports whether the start variable appears in any rule's
// right-hand side.
func needStart(g *cfg.Grammar) bool {
	start, _ := g.StartVariable()
	for _, r := range g.Rules() {
		for _, l := range r.Output {
			if l == start {
				return true
			}
		}
	}
	return false
}

// doStart mints a fresh start variable S' and adds the rule S' -> S, where
// S was the old start.
func doStart(g *cfg.Grammar) *cfg.Grammar {
	cp := g.Copy()
	oldStart, _ := cp.StartVariable()
	newStart := cp.FreshNames(oldStart, 1)[0]
	cp.SetStart(newStart)
	cp.AddRule(cfg.NewRule(newStart, cfg.Word{oldStart}))
	return cp
}

// needBin reports whether any rule has a right-hand side longer than 2.
func needBin(g *cfg.Grammar) bool {
	for _, r := range g.Rules() {
		if len(r.Output) > 2 {
			return true
		}
	}
	return false
}

// doBin binarizes exactly one over-length rule and then stops, per
// spec.md §4.3 and §9: fresh names minted for this rule must be visible to
// the grammar before the next over-length rule (if any) is processed,
// otherwise Grammar.FreshNames could mint colliding names across
// two rules processed in the same pass. Batch-binarizing within one call is
// therefore a bug, not an optimization.
func doBin(g *cfg.Grammar) *cfg.Grammar {
	cp := g.Copy()

	var target cfg.Rule
	found := false
	for _, r := range cp.Rules() {
		if len(r.Output) > 2 {
			target = r
			found = true
			break
		}
	}
	if !found {
		return cp
	}

	cp.RemoveRule(target)

	k := len(target.Output)
	working := append([]cfg.Letter{target.Input}, cp.FreshNames(target.Input, k-2)...)

	for i := 0; i < k-1; i++ {
		if i == k-2 {
			cp.AddRule(cfg.NewRule(working[i], cfg.Word{target.Output[i], target.Output[i+1]}))
		} else {
			cp.AddRule(cfg.NewRule(working[i], cfg.Word{target.Output[i], working[i+1]}))
		}
	}

	return cp
}

// needDel reports whether any non-start rule has an empty right-hand side.
func needDel(g *cfg.Grammar) bool {
	start, _ := g.StartVariable()
	for _, r := range g.Rules() {
		if r.Input == start {
			continue
		}
		if r.Output.IsEmpty() {
			return true
		}
	}
	return false
}

// doDel implements the single-occurrence-removal-per-pass policy of
// spec.md §4.3/§9: in one pass it collects the non-start variables with an
// epsilon rule, removes those epsilon rules, and for every remaining rule
// whose right-hand side mentions one of those variables, adds a copy of the
// rule with a single occurrence of the variable removed. When the variable
// has no other rules of its own, the referencing rule is also removed,
// since it can no longer derive anything through that variable alone. This
// intentionally does not expand all 2^k-1 derivations when a occurrence
// count k>1 of the same nullable variable appears in one rule; see
// spec.md §9.
func doDel(g *cfg.Grammar) *cfg.Grammar {
	cp := g.Copy()
	start, _ := cp.StartVariable()

	epsilonVars := make(map[cfg.Letter]bool)
	var toRemove []cfg.Rule
	for _, r := range cp.Rules() {
		if r.Input == start {
			continue
		}
		if r.Output.IsEmpty() {
			epsilonVars[r.Input] = true
			toRemove = append(toRemove, r)
		}
	}
	for _, r := range toRemove {
		cp.RemoveRule(r)
	}

	nonEmptyVars := make(map[cfg.Letter]bool)
	for v := range cp.RulesMap() {
		nonEmptyVars[v] = true
	}

	var withOther, withoutOther []cfg.Letter
	for v := range epsilonVars {
		if nonEmptyVars[v] {
			withOther = append(withOther, v)
		} else {
			withoutOther = append(withoutOther, v)
		}
	}

	var toAdd []cfg.Rule
	toRemove = nil
	for _, r := range cp.Rules() {
		for _, v := range withOther {
			if newOut, ok := removeFirstOccurrence(r.Output, v); ok {
				toAdd = append(toAdd, cfg.NewRule(r.Input, newOut))
			}
		}
		for _, v := range withoutOther {
			if newOut, ok := removeFirstOccurrence(r.Output, v); ok {
				toAdd = append(toAdd, cfg.NewRule(r.Input, newOut))
				toRemove = append(toRemove, r)
			}
		}
	}
	for _, r := range toRemove {
		cp.RemoveRule(r)
	}
	for _, r := range toAdd {
		cp.AddRule(r)
	}

	return cp
}

// removeFirstOccurrence returns a copy of w with the first occurrence of
// letter removed, and whether such an occurrence was found.
func removeFirstOccurrence(w cfg.Word, letter cfg.Letter) (cfg.Word, bool) {
	for i, l := range w {
		if l == letter {
			out := make(cfg.Word, 0, len(w)-1)
			out = append(out, w[:i]...)
			out = append(out, w[i+1:]...)
			return out, true
		}
	}
	return nil, false
}

// needUnit reports whether any rule has a length-1 right-hand side whose
// sole letter is a variable.
func needUnit(g *cfg.Grammar) bool {
	for _, r := range g.Rules() {
		if len(r.Output) == 1 && r.Output[0].Variable {
			return true
		}
	}
	return false
}

// doUnit removes one generation of unit productions A -> B: self-loops
// (A == B) are dropped with nothing added; otherwise every rule B -> gamma
// contributes a new rule A -> gamma.
func doUnit(g *cfg.Grammar) *cfg.Grammar {
	cp := g.Copy()

	var toAdd, toRemove []cfg.Rule
	rulesMap := cp.RulesMap()
	for _, r := range cp.Rules() {
		if !(len(r.Output) == 1 && r.Output[0].Variable) {
			continue
		}
		toRemove = append(toRemove, r)
		if r.Output[0] == r.Input {
			continue
		}
		for _, external := range rulesMap[r.Output[0]] {
			toAdd = append(toAdd, cfg.NewRule(r.Input, external.Output))
		}
	}
	for _, r := range toRemove {
		cp.RemoveRule(r)
	}
	for _, r := range toAdd {
		cp.AddRule(r)
	}
	return cp
}

// needTerm reports whether any rule has a length-2 right-hand side
// containing a terminal.
func needTerm(g *cfg.Grammar) bool {
	for _, r := range g.Rules() {
		if len(r.Output) != 2 {
			continue
		}
		for _, l := range r.Output {
			if !l.Variable {
				return true
			}
		}
	}
	return false
}

// doTerm replaces every terminal in a length-2 right-hand side with a
// dedicated variable, reusing an existing sole-rule variable for that
// terminal if one exists, and otherwise minting U<name> (with fresh-name
// collision resolution).
func doTerm(g *cfg.Grammar) *cfg.Grammar {
	cp := g.Copy()
	letterMap := make(map[cfg.Letter]cfg.Letter)

	letterToVariable := func(letter cfg.Letter) cfg.Letter {
		if v, ok := letterMap[letter]; ok {
			return v
		}

		rulesMap := cp.RulesMap()
		for _, r := range cp.Rules() {
			if len(r.Output) == 1 && r.Output[0] == letter && len(rulesMap[r.Input]) == 1 {
				letterMap[letter] = r.Input
				return r.Input
			}
		}

		candidate := cfg.NewVariable(fmt.Sprintf("U%s", letter.Name))
		taken := false
		for _, l := range cp.AllLetters() {
			if l == candidate {
				taken = true
				break
			}
		}
		newVar := candidate
		if taken {
			newVar = cp.FreshNames(candidate, 1)[0]
		}
		letterMap[letter] = newVar
		cp.AddRule(cfg.NewRule(newVar, cfg.Word{letter}))
		return newVar
	}

	var toAdd, toRemove []cfg.Rule
	for _, r := range cp.Rules() {
		if len(r.Output) != 2 {
			continue
		}
		hasTerminal := false
		for _, l := range r.Output {
			if !l.Variable {
				hasTerminal = true
			}
		}
		if !hasTerminal {
			continue
		}
		toRemove = append(toRemove, r)
		newOutput := make(cfg.Word, len(r.Output))
		for i, l := range r.Output {
			if !l.Variable {
				newOutput[i] = letterToVariable(l)
			} else {
				newOutput[i] = l
			}
		}
		toAdd = append(toAdd, cfg.NewRule(r.Input, newOutput))
	}
	for _, r := range toRemove {
		cp.RemoveRule(r)
	}
	for _, r := range toAdd {
		cp.AddRule(r)
	}
	return cp
}
