// Package pda compiles a context-free grammar into a textual nondeterministic
// pushdown automaton description (spec.md §4.5), using a flat named-state
// transition table: each transition is a Start/Content/End triple, the same
// shape a finite-automaton transition table uses.
package pda

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/rosed"
)

const (
	stateStart      = "init"
	stateMain       = "main"
	stateEnd        = "ed"
	alphaPrefix     = "alpha"
	variablePrefix  = "var"
	bottomOfStack   = "$"
	fmtHeaderFormat = "format informal\naction render_in unname\n\nstart %s\nend %s\n"
)

// Transition is one edge of the compiled PDA: Start --Content--> End.
type Transition struct {
	Start   string
	Content string
	End     string
}

func (tr Transition) String() string {
	return fmt.Sprintf("%s %s %s", tr.Start, tr.Content, tr.End)
}

// PDA is the result of compiling a grammar: its start/accept state names
// and its ordered transition list.
type PDA struct {
	Start       string
	Accept      string
	Transitions []Transition
}

// htmlTag renders a push/pop/read operation label using an HTML-subscript
// tagging scheme: a multi-character name gets all but its first character
// wrapped in a <SUB> tag, and the whole token list is wrapped in
// push(...)/pop(...) when a verb is given.
func htmlTag(names []string, verb string, reverse bool) string {
	if len(names) == 0 {
		if verb == "" {
			return "<ε>"
		}
		return fmt.Sprintf("<%s(ε)>", verb)
	}
	ordered := names
	if reverse {
		ordered = make([]string, len(names))
		for i, n := range names {
			ordered[len(names)-1-i] = n
		}
	}

	tagged := make([]string, len(ordered))
	for i, n := range ordered {
		if len(n) <= 1 {
			tagged[i] = n
		} else {
			tagged[i] = n[:1] + "<SUB>" + n[1:] + "</SUB>"
		}
	}
	joined := strings.Join(tagged, "")
	if verb == "" {
		return fmt.Sprintf("<%s>", joined)
	}
	return fmt.Sprintf("<%s(%s)>", verb, joined)
}

// Compile produces the PDA for g: init/main/ed states, a varV state per
// variable, an alphat state per terminal, and the push/pop/read transitions
// of spec.md §4.5.
func Compile(g *cfg.Grammar) (*PDA, error) {
	start, ok := g.StartVariable()
	if !ok {
		return nil, fmt.Errorf("pda: grammar has no start variable")
	}

	p := &PDA{Start: stateStart, Accept: stateEnd}
	add := func(s, content, e string) {
		p.Transitions = append(p.Transitions, Transition{Start: s, Content: content, End: e})
	}

	add(stateStart, htmlTag([]string{start.Name, bottomOfStack}, "push", false), stateMain)
	add(stateMain, htmlTag([]string{bottomOfStack}, "pop", false), stateEnd)

	rulesMap := g.RulesMap()
	vars := g.AllVariables()
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	for _, v := range vars {
		stateName := variablePrefix + v.Name
		add(stateMain, htmlTag([]string{v.Name}, "pop", false), stateName)

		rules := rulesMap[v]
		sort.Slice(rules, func(i, j int) bool { return rules[i].String() < rules[j].String() })
		for _, r := range rules {
			names := make([]string, len(r.Output))
			for i, l := range r.Output {
				names[i] = l.Name
			}
			add(stateName, htmlTag(names, "push", true), stateMain)
		}
	}

	terms := g.AllTerminals()
	sort.Slice(terms, func(i, j int) bool { return terms[i].Name < terms[j].Name })
	for _, t := range terms {
		stateName := alphaPrefix + t.Name
		add(stateMain, htmlTag([]string{t.Name}, "pop", false), stateName)
		add(stateName, t.Name, stateMain)
	}

	return p, nil
}

// String renders the PDA in the flat line-per-transition text format of
// spec.md §6's `_pda.txt` output: a fixed header declaring start/accept
// states, then one "start content end" line per transition.
func (p *PDA) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(fmtHeaderFormat, p.Start, p.Accept))
	sb.WriteString("\n")
	for _, tr := range p.Transitions {
		sb.WriteString(tr.String())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Table renders the same transition list through rosed as a bordered
// three-column table, the `_pda_table.txt` companion supplemented in
// SPEC_FULL.md §12.
func (p *PDA) Table() string {
	data := [][]string{{"start", "content", "end"}}
	for _, tr := range p.Transitions {
		data = append(data, []string{tr.Start, tr.Content, tr.End})
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{TableBorders: true}).
		String()
}
