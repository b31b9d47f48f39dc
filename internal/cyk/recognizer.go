package cyk

import (
	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfgtree"
)

// Fill builds and fills the CYK table for word over grammar g, per
// spec.md §4.4: for a row-1 cell at offset j, every rule A -> t where t is
// the header letter at j contributes an item; for a cell at row r>1, every
// split (i, r-i) and every pair of items from the two named cells whose
// letters match some rule A -> B C contributes an item with back-pointers
// to both source items.
func Fill(g *cfg.Grammar, word cfg.Word) *Table {
	t := NewTable(word)

	for _, pos := range t.IterPositions() {
		if pos.Row == 1 {
			destPos := Pos{Row: 0, Offset: pos.Offset}
			dest := t.HeaderAt(destPos.Offset)
			for _, r := range g.Rules() {
				if len(r.Output) != 1 || r.Output[0] != dest {
					continue
				}
				t.markRow1(pos, r.Input, destPos, dest)
			}
			continue
		}

		for _, destPair := range t.GenerateDestPairs(pos) {
			destAPos, destBPos := destPair[0], destPair[1]
			destA := t.Cell(destAPos)
			destB := t.Cell(destBPos)
			if len(destA) == 0 || len(destB) == 0 {
				continue
			}
			for _, a := range destA {
				for _, b := range destB {
					for _, r := range g.Rules() {
						if len(r.Output) != 2 || r.Output[0] != a.Var || r.Output[1] != b.Var {
							continue
						}
						t.markRow2(pos, r.Input, destAPos, a.Var, destBPos, b.Var)
					}
				}
			}
		}
	}

	return t
}

// Accepts reports whether the start variable appears as some item's
// variable in the final cell — the word is in the language iff this is
// true (spec.md §4.4, §8).
func Accepts(t *Table, g *cfg.Grammar) bool {
	start, ok := g.StartVariable()
	if !ok {
		return false
	}
	for _, it := range t.Cell(t.FinalPos()) {
		if it.Var == start {
			return true
		}
	}
	return false
}

// pendingNode pairs a tree node awaiting expansion with the CYK item that
// explains it.
type pendingNode struct {
	node *cfgtree.Node
	item Item
}

// Witness reconstructs a leftmost-derivation parse tree from an accepting
// table using the recommended deterministic tie-break order (spec.md §9).
// It panics if the table does not accept; callers must check Accepts first.
func Witness(t *Table, g *cfg.Grammar) *cfgtree.Tree {
	return WitnessOrdered(t, g, true)
}

// WitnessOrdered reconstructs a leftmost-derivation parse tree from an
// accepting table, per spec.md §4.4. It processes a FIFO worklist of
// (node, item) pairs: for the current pair it branches node to the word
// named by the item's non-nil back-pointers, and unless that word is a
// single terminal, enqueues each new child together with the item found at
// its corresponding back-pointer's position and letter.
//
// When sortTieBreaks is true, ties among multiple matching items in a cell
// are broken by CellSorted's deterministic (variable name, back-pointer
// position) order, as spec.md §9 recommends for reproducibility. When
// false, a cell's natural (unspecified, map-iteration) order is used
// instead, reproducing the non-deterministic witness selection spec.md §4.4
// otherwise leaves open; this is the "sort_tie_breaks = false" escape hatch
// documented on runconfig.Config.
//
// WitnessOrdered panics if the table does not accept; callers must check
// Accepts first, matching the action-prerequisite error spec.md §7 assigns
// to this case.
func WitnessOrdered(t *Table, g *cfg.Grammar, sortTieBreaks bool) *cfgtree.Tree {
	start, ok := g.StartVariable()
	if !ok {
		panic("cyk: grammar has no start variable")
	}

	cellItems := t.Cell
	if sortTieBreaks {
		cellItems = t.CellSorted
	}

	var startItem Item
	found := false
	for _, it := range cellItems(t.FinalPos()) {
		if it.Var == start {
			startItem = it
			found = true
			break
		}
	}
	if !found {
		panic("cyk: final cell does not contain the start variable")
	}

	tree := cfgtree.New(cfg.Word{start})
	rootLeaf := tree.Leaves()[0]

	worklist := []pendingNode{{node: rootLeaf, item: startItem}}

	for i := 0; i < len(worklist); i++ {
		cur := worklist[i]

		var word cfg.Word
		var backs []BackPointer
		backs = append(backs, cur.item.Dest1)
		if cur.item.HasLen == 2 {
			backs = append(backs, cur.item.Dest2)
		}
		for _, b := range backs {
			word = append(word, b.Letter)
		}

		tree.BranchWord(cur.node, word)

		if len(word) == 1 && !word[0].Variable {
			continue
		}

		newChildren := tree.LastAdded()
		for idx, child := range newChildren {
			back := backs[idx]
			nextItem, ok := findItem(cellItems, back.Pos, back.Letter)
			if !ok {
				continue
			}
			worklist = append(worklist, pendingNode{node: child, item: nextItem})
		}
	}

	return tree
}

func findItem(cellItems func(Pos) []Item, pos Pos, letter cfg.Letter) (Item, bool) {
	for _, it := range cellItems(pos) {
		if it.Var == letter {
			return it, true
		}
	}
	return Item{}, false
}
