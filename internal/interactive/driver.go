// Package interactive implements the manual leftmost-derivation driver of
// spec.md §4.6: a REPL over a cfgtree.Tree that lets a human expand
// variable leaves one rule application at a time, undo, or quit.
package interactive

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfgtree"
)

// Driver owns no state beyond the parse tree and a cached rules map of the
// grammar, per spec.md §4.6.
type Driver struct {
	rulesMap map[cfg.Letter][]cfg.Rule
	tree     *cfgtree.Tree
	reader   ChoiceReader
	out      io.Writer
}

// New creates a Driver over a fresh parse tree seeded from startWord.
func New(g *cfg.Grammar, startWord cfg.Word, reader ChoiceReader, out io.Writer) *Driver {
	return &Driver{
		rulesMap: g.RulesMap(),
		tree:     cfgtree.New(startWord),
		reader:   reader,
		out:      out,
	}
}

// Tree returns the driver's underlying parse tree, e.g. for rendering the
// final derivation once the session ends.
func (d *Driver) Tree() *cfgtree.Tree {
	return d.tree
}

// Run drives the REPL until the user quits, reading one command per
// iteration via AskChoice.
func (d *Driver) Run() error {
	for {
		choice, err := d.AskChoice()
		if err != nil {
			return err
		}
		quit, err := d.PerformChoice(choice)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// AskChoice prompts for and validates the next command: either a variable
// index, "u" to undo, or "q" to quit.
func (d *Driver) AskChoice() (any, error) {
	for {
		fmt.Fprintln(d.out, d.tree.IndexedState())
		varCount := len(d.tree.VariableLeaves())
		fmt.Fprintln(d.out, "Select a variable: (undo with 'u', quit with 'q')")

		line, err := d.reader.ReadChoice()
		if err != nil {
			return nil, err
		}
		choice := strings.ToLower(strings.TrimSpace(line))

		if choice == "u" || choice == "q" {
			return choice, nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(d.out, "    Invalid input.")
			continue
		}
		if n < 0 || n >= varCount {
			fmt.Fprintln(d.out, "   Number out of range!")
			continue
		}
		return n, nil
	}
}

// PerformChoice applies choice (as returned by AskChoice) and reports
// whether the session should stop.
func (d *Driver) PerformChoice(choice any) (bool, error) {
	switch c := choice.(type) {
	case int:
		d.ExpandVariable(c)
		return false, nil
	case string:
		switch c {
		case "u":
			if err := d.tree.Undo(); err != nil {
				fmt.Fprintln(d.out, "Cannot undo!")
			}
		case "q":
			return true, nil
		}
		return false, nil
	default:
		return false, fmt.Errorf("interactive: unrecognized choice %v", choice)
	}
}

// ExpandVariable applies a rule to the variableIndex-th variable leaf
// (0-indexed, left-to-right). If exactly one rule applies it is chosen
// automatically; otherwise rules are sorted by their textual form and the
// user is asked to pick one.
func (d *Driver) ExpandVariable(variableIndex int) {
	leaf := d.tree.VariableLeaves()[variableIndex]
	rules := d.rulesMap[leaf.Letter]
	if len(rules) == 0 {
		fmt.Fprintf(d.out, "No rules found for %s\n", leaf.Letter.Name)
		return
	}

	var rule cfg.Rule
	if len(rules) == 1 {
		fmt.Fprintf(d.out, "Only 1 rule for %s. Applying...\n", leaf.Letter.Name)
		rule = rules[0]
	} else {
		sorted := append([]cfg.Rule(nil), rules...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
		rule = d.askRule(sorted)
	}

	d.tree.BranchWord(leaf, rule.Output)
}

func (d *Driver) askRule(rules []cfg.Rule) cfg.Rule {
	fmt.Fprintln(d.out, "Select a rule:")
	for i, r := range rules {
		fmt.Fprintf(d.out, "%3d. %s\n", i, r.String())
	}
	for {
		line, err := d.reader.ReadChoice()
		if err != nil {
			return rules[0]
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 || n >= len(rules) {
			fmt.Fprintf(d.out, "   Invalid number, must be in range: 0 <= x <= %d\n", len(rules)-1)
			continue
		}
		return rules[n]
	}
}
